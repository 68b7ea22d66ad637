package driver

import (
	"fmt"
	"os"
	"path/filepath"
)

// stdlibModules lists the bundled standard-library artifacts translateAll
// copies alongside the generated module (spec.md §6).
var stdlibModules = []string{"In", "Out", "Input", "Math", "MathL", "OBX.Runtime"}

// writeScripts emits run.sh (always), build.sh (text back-end only, since a
// binary module needs no further assembly step), and clear.sh, mirroring
// spec.md §6. Tool discovery (ilasm, the .NET host) is left to PATH lookup
// inside the scripts themselves rather than resolved on the Go side.
func writeScripts(outDir, name string, useText bool) error {
	run := fmt.Sprintf("#!/bin/sh\nexec dotnet \"$(dirname \"$0\")/%s.exe\" \"$@\"\n", name)
	if err := writeScript(filepath.Join(outDir, "run.sh"), run); err != nil {
		return err
	}

	if useText {
		build := fmt.Sprintf(
			"#!/bin/sh\nilasm /exe /output:\"$(dirname \"$0\")/%s.exe\" \"$(dirname \"$0\")/%s.il\"\n",
			name, name)
		if err := writeScript(filepath.Join(outDir, "build.sh"), build); err != nil {
			return err
		}
	}

	clear := fmt.Sprintf(
		"#!/bin/sh\nrm -f \"$(dirname \"$0\")/%s.il\" \"$(dirname \"$0\")/%s.exe\" \"$(dirname \"$0\")/%s.runtimeconfig.json\"\n",
		name, name, name)
	return writeScript(filepath.Join(outDir, "clear.sh"), clear)
}

func writeScript(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o755)
}

// copyStdlib copies each bundled standard-library artifact from stdLibDir
// into outDir, under the extension the chosen back-end expects. A missing
// artifact is skipped rather than treated as an error -- not every program
// uses every library module, and the caller may not have a stdlib tree
// configured at all (stdLibDir == "").
func copyStdlib(stdLibDir, outDir, ext string) error {
	if stdLibDir == "" {
		return nil
	}
	for _, name := range stdlibModules {
		src := filepath.Join(stdLibDir, name+ext)
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("copying stdlib artifact %s: %w", name, err)
		}
		dst := filepath.Join(outDir, name+ext)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("copying stdlib artifact %s: %w", name, err)
		}
	}
	return nil
}

// runtimeConfigTemplate is the fixed framework/version stub spec.md §6
// requires so the host runtime loads the generated module.
const runtimeConfigTemplate = `{
  "runtimeOptions": {
    "tfm": "net6.0",
    "framework": {
      "name": "Microsoft.NETCore.App",
      "version": "6.0.0"
    }
  }
}
`

func writeRuntimeConfig(outDir, name string) error {
	path := filepath.Join(outDir, name+".runtimeconfig.json")
	return os.WriteFile(path, []byte(runtimeConfigTemplate), 0o644)
}
