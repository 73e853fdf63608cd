package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Viewport.ZoomFactor != 1.1 || cfg.Viewport.ZoomOutReduction != 0.2 {
		t.Fatalf("unexpected zoom constants %+v", cfg.Viewport)
	}
	if cfg.Window.PanelWidth != 155 || cfg.Window.BottomMargin != 5 {
		t.Fatalf("unexpected margins %+v", cfg.Window)
	}
	ns, err := cfg.Namespace.Style()
	if err != nil {
		t.Fatalf("namespace style: %v", err)
	}
	if ns.Radius != 50 || ns.Fill != (color.RGBA{0x00, 0xd2, 0xcc, 0xff}) || ns.Stroke != (color.RGBA{0, 0, 0, 0xff}) || ns.StrokeWidth != 2 {
		t.Fatalf("unexpected namespace style %+v", ns)
	}
	def, err := cfg.Definition.Style()
	if err != nil {
		t.Fatalf("definition style: %v", err)
	}
	if def.Radius != 10 || def.Stroke != (color.RGBA{0xcc, 0xcc, 0xcc, 0xff}) || !def.Draggable {
		t.Fatalf("unexpected definition style %+v", def)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macho.yaml")
	data := []byte("viewport:\n  zoom_factor: 1.5\nnamespace:\n  fill: red\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Viewport.ZoomFactor != 1.5 || cfg.Viewport.ZoomOutReduction != 0.2 {
		t.Fatalf("viewport not overlaid: %+v", cfg.Viewport)
	}
	if cfg.Namespace.Fill != "red" || cfg.Namespace.Radius != 50 {
		t.Fatalf("namespace not overlaid: %+v", cfg.Namespace)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad_yaml", "viewport: [\n"},
		{"zero_zoom", "viewport:\n  zoom_factor: 0\n"},
		{"zoom_out_not_positive", "viewport:\n  zoom_factor: 0.2\n  zoom_out_reduction: 0.2\n"},
		{"bad_colour", "definition:\n  fill: \"#12\"\n"},
		{"zero_radius", "namespace:\n  radius: 0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "macho.yaml")
			if err := os.WriteFile(path, []byte(c.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#00D2CC", color.RGBA{0x00, 0xd2, 0xcc, 0xff}, false},
		{"#ccc", color.RGBA{0xcc, 0xcc, 0xcc, 0xff}, false},
		{"black", color.RGBA{0, 0, 0, 0xff}, false},
		{" Black ", color.RGBA{0, 0, 0, 0xff}, false},
		{"", color.RGBA{}, true},
		{"#12", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
		{"notacolour", color.RGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "macho.yaml")
	if err := os.WriteFile(path, []byte("window:\n  title: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("window:\n  title: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	abs, _ := filepath.Abs(path)
	select {
	case name := <-w.Events:
		if name != abs {
			t.Fatalf("event for %s, want %s", name, abs)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", path)
	}
}
