package mods

import (
	"ark/common"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FindModuleRoot searches `dir` and its parent directories for a directory
// containing a module file.  It returns the absolute path of the closest one.
func FindModuleRoot(dir string) (string, bool) {
	abspath, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		if checkPath(abspath) {
			return abspath, true
		}

		parent := filepath.Dir(abspath)
		if parent == abspath {
			return "", false
		}

		abspath = parent
	}
}

// checkPath checks to see if a directory holds a module file naming a module.
// The file is only queried, not validated: a malformed module file simply
// doesn't count.
func checkPath(abspath string) bool {
	mfPath := filepath.Join(abspath, common.ModuleFileName)

	finfo, err := os.Stat(mfPath)
	if err != nil || finfo.IsDir() {
		return false
	}

	tree, err := toml.LoadFile(mfPath)
	if err != nil {
		return false
	}

	name, ok := tree.Get("module.name").(string)
	return ok && name != ""
}
