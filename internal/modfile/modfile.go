// Package modfile parses the TOML module descriptor (oberon.mod) that
// anchors a translation run: the module's name, its import search
// directories, and one or more named build profiles. It is modeled on
// src/mods/load.go and src/mods/find.go, generalized from Chai's
// dependency-graph module file to the single-module descriptor this
// generator's driver needs.
package modfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FileName is the descriptor file a project root is expected to carry.
const FileName = "oberon.mod"

// Module is a parsed oberon.mod: a name, a set of directories searched (in
// order) when resolving an IMPORT, and the build profiles available to
// internal/driver's translateAll.
type Module struct {
	Name       string
	RootDir    string
	ImportDirs []string
	StdLibDir  string
	Profiles   []*Profile
}

// Profile carries the per-build settings mirrored from mods.BuildProfile:
// target triple, output format, and the GUI subsystem flag that
// internal/driver passes to the binary builder.
type Profile struct {
	Name         string
	TargetOS     string
	TargetArch   string
	OutputFormat Format
	GUI          bool
	OutputPath   string
	Primary      bool
	Default      bool
}

// Format selects the driver's output backend: textual assembly (the text
// renderer) or a binary module (the object model's serializer).
type Format int

const (
	FormatTextASM Format = iota
	FormatBinary
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "text-asm"
}

var formatNames = map[string]Format{
	"text-asm": FormatTextASM,
	"textasm":  FormatTextASM,
	"text":     FormatTextASM,
	"binary":   FormatBinary,
	"bin":      FormatBinary,
}

// tomlModuleFile mirrors tomlModuleFile in src/mods/load.go: the descriptor
// is a single top-level [module] table.
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

type tomlModule struct {
	Name       string         `toml:"name"`
	ImportDirs []string       `toml:"import_dirs"`
	StdLibDir  string         `toml:"stdlib_dir"`
	Profiles   []*tomlProfile `toml:"profile"`
}

type tomlProfile struct {
	Name       string `toml:"name"`
	TargetOS   string `toml:"target_os"`
	TargetArch string `toml:"target_arch"`
	Format     string `toml:"format"`
	GUI        bool   `toml:"gui"`
	OutputPath string `toml:"output_path"`
	Primary    bool   `toml:"primary"`
	Default    bool   `toml:"default"`
}

// Load reads and validates the oberon.mod descriptor rooted at dir,
// following the same read-unmarshal-validate shape as mods.LoadModule.
func Load(dir string) (*Module, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modfile: %w", err)
	}

	var tf tomlModuleFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("modfile: %s: %w", path, err)
	}
	if tf.Module == nil {
		return nil, fmt.Errorf("modfile: %s: missing [module] table", path)
	}
	if err := validateModule(tf.Module); err != nil {
		return nil, fmt.Errorf("modfile: %s: %w", path, err)
	}

	mod := &Module{
		Name:       tf.Module.Name,
		RootDir:    dir,
		ImportDirs: tf.Module.ImportDirs,
		StdLibDir:  tf.Module.StdLibDir,
	}
	for _, tp := range tf.Module.Profiles {
		prof, err := convertProfile(tp)
		if err != nil {
			return nil, fmt.Errorf("modfile: %s: profile %q: %w", path, tp.Name, err)
		}
		mod.Profiles = append(mod.Profiles, prof)
	}
	return mod, nil
}

func validateModule(tm *tomlModule) error {
	if tm.Name == "" {
		return fmt.Errorf("module name is required")
	}
	if !IsValidIdentifier(tm.Name) {
		return fmt.Errorf("module name %q is not a valid identifier", tm.Name)
	}
	seen := make(map[string]bool, len(tm.Profiles))
	for _, p := range tm.Profiles {
		if p.Name == "" {
			return fmt.Errorf("every profile must have a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func convertProfile(tp *tomlProfile) (*Profile, error) {
	format := FormatTextASM
	if tp.Format != "" {
		f, ok := formatNames[tp.Format]
		if !ok {
			return nil, fmt.Errorf("unknown output format %q", tp.Format)
		}
		format = f
	}
	return &Profile{
		Name:         tp.Name,
		TargetOS:     tp.TargetOS,
		TargetArch:   tp.TargetArch,
		OutputFormat: format,
		GUI:          tp.GUI,
		OutputPath:   tp.OutputPath,
		Primary:      tp.Primary,
		Default:      tp.Default,
	}, nil
}

// SelectProfile picks a build profile the same way mods.selectProfile does:
// an explicit name always wins; failing that, the profile marked Default;
// failing that, the one marked Primary; failing that, the sole profile if
// there is exactly one.
func (m *Module) SelectProfile(name string) (*Profile, error) {
	if name != "" {
		for _, p := range m.Profiles {
			if p.Name == name {
				return p, nil
			}
		}
		return nil, fmt.Errorf("modfile: no profile named %q", name)
	}
	for _, p := range m.Profiles {
		if p.Default {
			return p, nil
		}
	}
	var primary *Profile
	for _, p := range m.Profiles {
		if p.Primary {
			if primary != nil {
				return nil, fmt.Errorf("modfile: more than one profile marked primary")
			}
			primary = p
		}
	}
	if primary != nil {
		return primary, nil
	}
	if len(m.Profiles) == 1 {
		return m.Profiles[0], nil
	}
	return nil, fmt.Errorf("modfile: no profile selected and none is marked default or primary")
}

// IsValidIdentifier reports whether idstr could name an Oberon module:
// a letter followed by letters, digits, or underscores.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}
	for i, r := range idstr {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case r == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
