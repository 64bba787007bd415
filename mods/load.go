package mods

import (
	"ark/common"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// LoadModule loads and validates the module whose module file is in the
// directory `path`.  Missing optional fields are given their defaults: `tac`
// output, the `out` directory and the verbose log level.
func LoadModule(path string) (*ArkModule, error) {
	f, err := os.Open(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, fmt.Errorf("error decoding module file: %w", err)
	}

	if tmf.Module == nil {
		return nil, fmt.Errorf("module file at %s is missing the [module] table", path)
	}

	arkMod := &ArkModule{
		// module root is the directory enclosing the module file
		ModuleRoot: path,
	}

	if err := validateModule(arkMod, tmf.Module); err != nil {
		return nil, err
	}

	arkMod.Name = tmf.Module.Name
	arkMod.EntryPath = filepath.Join(path, tmf.Module.Entry)

	arkMod.LogLevel = tmf.Module.LogLevel
	if arkMod.LogLevel == "" {
		arkMod.LogLevel = "verbose"
	}

	arkMod.Emit = tmf.Module.Emit
	if len(arkMod.Emit) == 0 {
		arkMod.Emit = []string{FormatTAC}
	}

	outputDir := tmf.Module.OutputDir
	if outputDir == "" {
		outputDir = "out"
	}
	arkMod.OutputDir = filepath.Join(path, outputDir)

	return arkMod, nil
}

// validateModule checks that the module contents are valid
func validateModule(amod *ArkModule, mod *tomlModule) error {
	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", amod.ModuleRoot)
	}

	if !common.IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if mod.Entry == "" {
		return fmt.Errorf("module %s must specify an entry file", mod.Name)
	}

	if filepath.Ext(mod.Entry) != common.SrcFileExtension {
		return fmt.Errorf("entry file of module %s must end in %s", mod.Name, common.SrcFileExtension)
	}

	finfo, err := os.Stat(filepath.Join(amod.ModuleRoot, mod.Entry))
	if err != nil {
		return fmt.Errorf("error loading entry file of module %s: %w", mod.Name, err)
	}

	if finfo.IsDir() {
		return fmt.Errorf("entry file of module %s is a directory", mod.Name)
	}

	for _, format := range mod.Emit {
		if _, ok := FormatExtensions[format]; !ok {
			return fmt.Errorf("unknown emit format `%s` in module %s", format, mod.Name)
		}
	}

	if mod.LogLevel != "" && !isValidLogLevel(mod.LogLevel) {
		return fmt.Errorf(
			"unknown log level `%s` in module %s: must be one of %s",
			mod.LogLevel,
			mod.Name,
			strings.Join(validLogLevels, ", "),
		)
	}

	if mod.Version != common.ArkVersion {
		amod.Warnings = append(amod.Warnings, fmt.Sprintf(
			"version of module `%s` (v%s) does not match current ark version (v%s)",
			mod.Name,
			mod.Version,
			common.ArkVersion,
		))
	}

	return nil
}

func isValidLogLevel(level string) bool {
	for _, valid := range validLogLevels {
		if level == valid {
			return true
		}
	}

	return false
}
