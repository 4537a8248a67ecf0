// Package hcltheme loads tessera color themes from HCL files.
//
// A file holds any number of theme blocks:
//
//	theme "solarized" {
//	  primary_foreground   = "#839496"
//	  primary_background   = "#002b36"
//	  secondary_foreground = "#586e75"
//	  secondary_background = "#073642"
//	  accent               = "#268bd2"
//	}
//
// Colors are hex strings ("#rrggbb" or "#rgb"). The secondary colors fall back
// to their primary counterparts and accent falls back to the primary
// foreground.
package hcltheme

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/tessera"
)

type hclThemeFile struct {
	Themes []*hclTheme `hcl:"theme,block"`
}

type hclTheme struct {
	Name                string  `hcl:"name,label"`
	PrimaryForeground   string  `hcl:"primary_foreground"`
	PrimaryBackground   string  `hcl:"primary_background"`
	SecondaryForeground *string `hcl:"secondary_foreground,optional"`
	SecondaryBackground *string `hcl:"secondary_background,optional"`
	Accent              *string `hcl:"accent,optional"`
}

// Themes is a set of named color themes. It implements tessera.ThemeProvider.
type Themes struct {
	themes map[string]tessera.ColorTheme
}

var _ tessera.ThemeProvider = (*Themes)(nil)

// NewThemes returns an empty set.
func NewThemes() *Themes {
	return &Themes{themes: make(map[string]tessera.ColorTheme)}
}

// Theme returns the theme registered under name.
func (t *Themes) Theme(name string) (tessera.ColorTheme, bool) {
	theme, ok := t.themes[name]
	return theme, ok
}

// Add registers theme under its name, replacing any theme already there.
func (t *Themes) Add(theme tessera.ColorTheme) {
	t.themes[theme.Name] = theme
}

// Names lists the registered theme names in sorted order.
func (t *Themes) Names() []string {
	return slices.Sorted(maps.Keys(t.themes))
}

// Len is the number of registered themes.
func (t *Themes) Len() int {
	return len(t.themes)
}

// Parse decodes theme blocks from src. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Themes, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hcltheme: failed to parse %s: %w", filename, diags)
	}
	themes := NewThemes()
	if err := themes.decode(file, filename); err != nil {
		return nil, err
	}
	return themes, nil
}

// Load reads and decodes a single theme file.
func Load(path string) (*Themes, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hcltheme: %w", err)
	}
	return Parse(src, path)
}

// LoadDir decodes every .hcl file in dir into one set. Files are read in name
// order and a theme name may only be defined once across all of them.
func LoadDir(dir string) (*Themes, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.hcl"))
	if err != nil {
		return nil, fmt.Errorf("hcltheme: %w", err)
	}
	slices.Sort(paths)

	parser := hclparse.NewParser()
	themes := NewThemes()
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("hcltheme: failed to parse %s: %w", path, diags)
		}
		if err := themes.decode(file, path); err != nil {
			return nil, err
		}
	}
	return themes, nil
}

func (t *Themes) decode(file *hcl.File, filename string) error {
	var parsed hclThemeFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("hcltheme: failed to decode %s: %w", filename, diags)
	}
	for _, raw := range parsed.Themes {
		if _, dup := t.themes[raw.Name]; dup {
			return fmt.Errorf("hcltheme: %s: theme %q defined twice", filename, raw.Name)
		}
		theme, err := raw.colorTheme()
		if err != nil {
			return fmt.Errorf("hcltheme: %s: theme %q: %w", filename, raw.Name, err)
		}
		t.themes[raw.Name] = theme
	}
	return nil
}

func (h *hclTheme) colorTheme() (tessera.ColorTheme, error) {
	theme := tessera.ColorTheme{Name: h.Name}
	var err error
	if theme.PrimaryForeground, err = parseColor("primary_foreground", h.PrimaryForeground); err != nil {
		return theme, err
	}
	if theme.PrimaryBackground, err = parseColor("primary_background", h.PrimaryBackground); err != nil {
		return theme, err
	}
	if theme.SecondaryForeground, err = optionalColor("secondary_foreground", h.SecondaryForeground, theme.PrimaryForeground); err != nil {
		return theme, err
	}
	if theme.SecondaryBackground, err = optionalColor("secondary_background", h.SecondaryBackground, theme.PrimaryBackground); err != nil {
		return theme, err
	}
	if theme.Accent, err = optionalColor("accent", h.Accent, theme.PrimaryForeground); err != nil {
		return theme, err
	}
	return theme, nil
}

func optionalColor(attr string, hex *string, fallback tessera.Color) (tessera.Color, error) {
	if hex == nil {
		return fallback, nil
	}
	return parseColor(attr, *hex)
}

func parseColor(attr, hex string) (tessera.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tessera.Color{}, fmt.Errorf("%s: %w", attr, err)
	}
	r, g, b := c.RGB255()
	return tessera.RGB(r, g, b), nil
}
