package hcltheme

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/phanxgames/tessera"
)

const solarized = `
theme "solarized" {
  primary_foreground   = "#839496"
  primary_background   = "#002b36"
  secondary_foreground = "#586e75"
  secondary_background = "#073642"
  accent               = "#268bd2"
}

theme "mono" {
  primary_foreground = "#fff"
  primary_background = "#000"
}
`

func TestParse(t *testing.T) {
	themes, err := Parse([]byte(solarized), "themes.hcl")
	if err != nil {
		t.Fatal(err)
	}
	if got := themes.Names(); !slices.Equal(got, []string{"mono", "solarized"}) {
		t.Errorf("Names = %v", got)
	}

	sol, ok := themes.Theme("solarized")
	if !ok {
		t.Fatal("solarized missing")
	}
	want := tessera.ColorTheme{
		Name:                "solarized",
		PrimaryForeground:   tessera.RGB(0x83, 0x94, 0x96),
		PrimaryBackground:   tessera.RGB(0x00, 0x2b, 0x36),
		SecondaryForeground: tessera.RGB(0x58, 0x6e, 0x75),
		SecondaryBackground: tessera.RGB(0x07, 0x36, 0x42),
		Accent:              tessera.RGB(0x26, 0x8b, 0xd2),
	}
	if sol != want {
		t.Errorf("solarized = %+v, want %+v", sol, want)
	}
}

func TestParseFallbacks(t *testing.T) {
	themes, err := Parse([]byte(solarized), "themes.hcl")
	if err != nil {
		t.Fatal(err)
	}
	mono, _ := themes.Theme("mono")
	white, black := tessera.RGB(255, 255, 255), tessera.RGB(0, 0, 0)
	if mono.PrimaryForeground != white || mono.PrimaryBackground != black {
		t.Errorf("primaries = %v / %v", mono.PrimaryForeground, mono.PrimaryBackground)
	}
	if mono.SecondaryForeground != white || mono.SecondaryBackground != black || mono.Accent != white {
		t.Errorf("fallbacks = %+v", mono)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `theme "x" {`, "failed to parse"},
		{"missing required", `theme "x" { primary_foreground = "#fff" }`, "failed to decode"},
		{"unknown attribute", `theme "x" {
  primary_foreground = "#fff"
  primary_background = "#000"
  glow = "#123"
}`, "failed to decode"},
		{"bad color", `theme "x" {
  primary_foreground = "red"
  primary_background = "#000"
}`, "primary_foreground"},
		{"bad optional color", `theme "x" {
  primary_foreground = "#fff"
  primary_background = "#000"
  accent = "blue"
}`, "accent"},
		{"duplicate", `
theme "x" {
  primary_foreground = "#fff"
  primary_background = "#000"
}
theme "x" {
  primary_foreground = "#fff"
  primary_background = "#000"
}`, "defined twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "themes.hcl", solarized)
	themes, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if themes.Len() != 2 {
		t.Errorf("Len = %d, want 2", themes.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.hcl")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", solarized)
	writeFile(t, dir, "b.hcl", `theme "paper" {
  primary_foreground = "#222222"
  primary_background = "#fafafa"
}`)
	writeFile(t, dir, "notes.txt", "not a theme")

	themes, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := themes.Names(); !slices.Equal(got, []string{"mono", "paper", "solarized"}) {
		t.Errorf("Names = %v", got)
	}

	writeFile(t, dir, "c.hcl", `theme "paper" {
  primary_foreground = "#000"
  primary_background = "#fff"
}`)
	if _, err := LoadDir(dir); err == nil || !strings.Contains(err.Error(), "defined twice") {
		t.Errorf("duplicate across files: %v", err)
	}
}

func TestThemesDriveComponentStyles(t *testing.T) {
	themes, err := Parse([]byte(solarized), "themes.hcl")
	if err != nil {
		t.Fatal(err)
	}
	var provider tessera.ThemeProvider = themes
	theme, ok := provider.Theme("solarized")
	if !ok {
		t.Fatal("solarized missing")
	}
	c := tessera.NewComponent(tessera.ComponentConfig{Size: tessera.NewSize(4, 1)})
	set := c.ApplyColorTheme(theme)
	if set.Default.Foreground != theme.PrimaryForeground || set.Default.Background != theme.PrimaryBackground {
		t.Errorf("default style = %+v", set.Default)
	}
	if set.Focused.Background != theme.Accent {
		t.Errorf("focused background = %v, want accent %v", set.Focused.Background, theme.Accent)
	}
}

func TestAddReplaces(t *testing.T) {
	themes := NewThemes()
	themes.Add(tessera.DefaultColorTheme)
	custom := tessera.DefaultColorTheme
	custom.Accent = tessera.ColorRed
	themes.Add(custom)
	if got, _ := themes.Theme("default"); got.Accent != tessera.ColorRed || themes.Len() != 1 {
		t.Errorf("Add did not replace: %+v (len %d)", got, themes.Len())
	}
}
