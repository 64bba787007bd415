package mods

// ArkModule is a loaded and validated `ark-mod.toml` module.  All paths are
// absolute.
type ArkModule struct {
	// Name is the name of the module.  It must be a valid identifier.
	Name string

	// ModuleRoot is the directory containing the module file.
	ModuleRoot string

	// EntryPath is the source file compiled by a module build.
	EntryPath string

	// LogLevel is the default log level of builds of the module.  It is
	// overridden by the CLI's log level when one is given.
	LogLevel string

	// Emit is the list of artifacts written by a build.  Each entry must be one
	// of the enumerated formats (prefixed `Format`).
	Emit []string

	// OutputDir is the directory build artifacts are written to.
	OutputDir string

	// Warnings are the non-fatal problems found while loading the module.
	Warnings []string
}

// Available Output Formats
const (
	FormatTAC  = "tac"  // Three-address code (`.tac`)
	FormatLLVM = "llvm" // LLVM IR (`.ll`)
)

// FormatExtensions maps each output format to the extension of its artifact.
var FormatExtensions = map[string]string{
	FormatTAC:  ".tac",
	FormatLLVM: ".ll",
}

var validLogLevels = []string{"silent", "error", "warn", "verbose"}

// -----------------------------------------------------------------------------

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents an ark module as it is encoded in TOML
type tomlModule struct {
	Name      string   `toml:"name"`
	Entry     string   `toml:"entry"`
	Version   string   `toml:"ark-version"`
	LogLevel  string   `toml:"log-level,omitempty"`
	Emit      []string `toml:"emit"`
	OutputDir string   `toml:"output-dir"`
}
