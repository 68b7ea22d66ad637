package modfile

import (
	"os"
	"path/filepath"
)

// ResolveModulePath locates the source directory for an imported module
// name, searching in the same priority order as mods.ResolveModulePath:
// the root module itself, then each import directory, then the bundled
// standard library.
func (m *Module) ResolveModulePath(name string) (string, bool) {
	if name == m.Name {
		return m.RootDir, true
	}
	for _, dir := range m.ImportDirs {
		if path, ok := searchPath(dir, name); ok {
			return path, true
		}
	}
	if m.StdLibDir != "" {
		if path, ok := searchPath(m.StdLibDir, name); ok {
			return path, true
		}
	}
	return "", false
}

// searchPath checks the same-named subdirectory first, then falls back to
// scanning abspath's immediate children for a directory holding that
// module's .obx source file -- mirroring mods.searchPath.
func searchPath(abspath, modName string) (string, bool) {
	direct := filepath.Join(abspath, modName)
	if checkPath(direct, modName) {
		return direct, true
	}

	entries, err := os.ReadDir(abspath)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(abspath, entry.Name())
		if checkPath(candidate, modName) {
			return candidate, true
		}
	}
	return "", false
}

// checkPath reports whether abspath holds a source file belonging to
// modName. A module here is a single .obx source file named after it
// rather than a nested descriptor, so the check is a plain existence test
// against modName.obx and modName/modName.obx.
func checkPath(abspath, modName string) bool {
	direct := abspath + ".obx"
	if info, err := os.Stat(direct); err == nil && !info.IsDir() {
		return true
	}
	nested := filepath.Join(abspath, modName+".obx")
	if info, err := os.Stat(nested); err == nil && !info.IsDir() {
		return true
	}
	return false
}
