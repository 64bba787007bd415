package cmd

import (
	"ark/common"
	"ark/mods"
	"ark/report"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `ark` application
func Execute() {
	defer report.CatchICE()

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("ark", "ark is a tool for compiling ark programs", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile a source file or module", true)
	buildCmd.AddPrimaryArg("path", "the path to the source file or module directory", true)
	buildCmd.AddStringArg("output", "o", "the directory to write outputs to", false)

	checkCmd := cli.AddSubcommand("check", "check a source file or module for errors", true)
	checkCmd.AddPrimaryArg("path", "the path to the source file or module directory", true)

	emitCmd := cli.AddSubcommand("emit", "print a compilation artifact", true)
	emitCmd.AddPrimaryArg("file-path", "the path to the source file", true)
	formatArg := emitCmd.AddSelectorArg("format", "f", "the artifact to print", false, []string{"tac", "llvm", "ast"})
	formatArg.SetDefaultValue("tac")

	cli.AddSubcommand("repl", "start an interactive session", false)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the ark version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	// an explicit log level overrides the module's log level
	logLevel, _ := result.Arguments["loglevel"].(string)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		err = execBuildCommand(subResult, logLevel, false)
	case "check":
		err = execBuildCommand(subResult, logLevel, true)
	case "emit":
		err = execEmitCommand(subResult, logLevel)
	case "repl":
		err = runREPL()
	case "mod":
		err = execModCommand(subResult)
	case "version":
		report.PrintInfoMessage("ark Version", common.ArkVersion)
	}

	if err != nil {
		if !errors.Is(err, report.ErrCompilationFailed) {
			report.PrintErrorMessage("Error", err)
		}

		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

// buildTarget is the resolved input of a build: the file to compile along with
// the settings of its module.
type buildTarget struct {
	entryPath string
	logLevel  string
	emit      []string
	outputDir string
}

// resolveBuildTarget determines what a build path refers to.  A directory must
// be a module; a source file uses the settings of its enclosing module if it
// has one and the defaults otherwise.
func resolveBuildTarget(path string) (*buildTarget, error) {
	finfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if finfo.IsDir() {
		mod, err := mods.LoadModule(path)
		if err != nil {
			return nil, fmt.Errorf("error loading module: %w", err)
		}

		return targetOfModule(mod, mod.EntryPath), nil
	}

	if filepath.Ext(path) != common.SrcFileExtension {
		return nil, fmt.Errorf("source file must end in %s", common.SrcFileExtension)
	}

	if root, ok := mods.FindModuleRoot(filepath.Dir(path)); ok {
		mod, err := mods.LoadModule(root)
		if err != nil {
			return nil, fmt.Errorf("error loading module: %w", err)
		}

		return targetOfModule(mod, path), nil
	}

	return &buildTarget{
		entryPath: path,
		logLevel:  "verbose",
		emit:      []string{mods.FormatTAC},
		outputDir: filepath.Dir(path),
	}, nil
}

func targetOfModule(mod *mods.ArkModule, entryPath string) *buildTarget {
	for _, warning := range mod.Warnings {
		if report.ParseLogLevel(mod.LogLevel) >= report.LogLevelWarn {
			report.PrintWarningMessage("Module Warning", warning)
		}
	}

	return &buildTarget{
		entryPath: entryPath,
		logLevel:  mod.LogLevel,
		emit:      mod.Emit,
		outputDir: mod.OutputDir,
	}
}

// execBuildCommand executes the build and check subcommands.  A check stops
// after analysis.
func execBuildCommand(result *olive.ArgParseResult, logLevel string, checkOnly bool) error {
	path, _ := result.PrimaryArg()

	target, err := resolveBuildTarget(path)
	if err != nil {
		return err
	}

	if logLevel == "" {
		logLevel = target.logLevel
	}

	if outputDir, ok := result.Arguments["output"]; ok {
		target.outputDir = outputDir.(string)
	}

	rep := report.NewReporter(report.ParseLogLevel(logLevel))
	c, err := LoadCompiler(rep, target.entryPath)
	if err != nil {
		return err
	}

	rep.DisplayCompileHeader(target.entryPath)
	defer c.Finish()

	if !c.Analyze() {
		return report.ErrCompilationFailed
	}

	if checkOnly {
		return nil
	}

	if err := os.MkdirAll(target.outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	baseName := filepath.Base(target.entryPath)
	baseName = baseName[:len(baseName)-len(common.SrcFileExtension)]

	for _, format := range target.emit {
		var output string
		switch format {
		case mods.FormatTAC:
			output = c.Lower()
		case mods.FormatLLVM:
			var ok bool
			if output, ok = c.GenerateLLVM(); !ok {
				return report.ErrCompilationFailed
			}
		}

		outPath := filepath.Join(target.outputDir, baseName+mods.FormatExtensions[format])
		if err := os.WriteFile(outPath, []byte(output), 0644); err != nil {
			return fmt.Errorf("error writing output file: %w", err)
		}
	}

	return nil
}

// execEmitCommand executes the emit subcommand: the artifact is written to
// standard output so progress messages are never displayed.
func execEmitCommand(result *olive.ArgParseResult, logLevel string) error {
	path, _ := result.PrimaryArg()
	format := result.Arguments["format"].(string)

	level := report.ParseLogLevel(logLevel)
	if level > report.LogLevelWarn {
		level = report.LogLevelWarn
	}

	rep := report.NewReporter(level)
	c, err := LoadCompiler(rep, path)
	if err != nil {
		return err
	}

	defer c.rep.Display(c.ctx)

	if !c.Analyze() {
		return report.ErrCompilationFailed
	}

	switch format {
	case "tac":
		fmt.Print(c.Lower())
	case "llvm":
		output, ok := c.GenerateLLVM()
		if !ok {
			return report.ErrCompilationFailed
		}

		fmt.Print(output)
	case "ast":
		fmt.Print(c.DumpAST())
	}

	return nil
}

// execModCommand executes the `mod` subcommand and its subcommands.
func execModCommand(result *olive.ArgParseResult) error {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modName, workDir); err != nil {
			return fmt.Errorf("error initializing module: %w", err)
		}

		report.PrintInfoMessage("Module Created", modName)
	}

	return nil
}
