// Package buildinfo locates the build-system integration files shipped with
// an installed copy of the library.
package buildinfo

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the directory holding the CMake package files for an
// installation rooted at pkgDir: <pkgDir>/lib/cmake/kwargs, made absolute.
func ConfigDir(pkgDir string) string {
	dir := filepath.Join(pkgDir, "lib", "cmake", "kwargs")
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// ExecutableConfigDir is ConfigDir for the directory of the running binary.
func ExecutableConfigDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return ConfigDir(filepath.Dir(exe)), nil
}
