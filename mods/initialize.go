package mods

import (
	"ark/common"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// InitModule creates a new module with the given name at the given path.  An
// empty entry file is created alongside the module file if none exists.
func InitModule(name, path string) error {
	// convert the module directory to the path to module file
	modFilePath := filepath.Join(path, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("module file error: %w", err)
	}

	if !common.IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	mod := &tomlModule{
		Name:      name,
		Entry:     "main" + common.SrcFileExtension,
		Version:   common.ArkVersion,
		Emit:      []string{FormatTAC},
		OutputDir: "out",
	}

	f, err := os.Create(modFilePath)
	if err != nil {
		return fmt.Errorf("error creating module file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlModuleFile{Module: mod}); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}

	entryPath := filepath.Join(path, mod.Entry)
	if _, err := os.Stat(entryPath); os.IsNotExist(err) {
		if err := os.WriteFile(entryPath, nil, 0644); err != nil {
			return fmt.Errorf("error creating entry file: %w", err)
		}
	}

	return nil
}
