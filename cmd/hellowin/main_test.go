// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"winwrap.org/app"
	"winwrap.org/internal/win32"
)

func TestRunSimulated(t *testing.T) {
	f := newSimulation()
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 320, 240
	cfg.Position = &Position{X: 10, Y: 20}
	code, err := run(app.NewSystem(f, nil), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Errorf("got exit code %d, expected 0", code)
	}
	if n := len(f.Windows()); n != 0 {
		t.Errorf("%d windows left open", n)
	}
	if f.BeginPaints != 1 || f.EndPaints != 1 {
		t.Errorf("got %d BeginPaint and %d EndPaint, expected 1 each", f.BeginPaints, f.EndPaints)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		call string
		kind app.Kind
	}{
		{"LoadCursor", app.ResourceNotFound},
		{"RegisterClass", app.RegistrationFailed},
		{"CreateWindowEx", app.WindowCreationFailed},
		{"GetMessage", app.MessageRetrievalFailed},
	}
	for _, test := range tests {
		f := newSimulation()
		f.FailNext(test.call, win32.ERROR_INVALID_PARAMETER)
		_, err := run(app.NewSystem(f, nil), defaultConfig())
		if !errors.Is(err, &app.Error{Kind: test.kind, Code: win32.ERROR_INVALID_PARAMETER}) {
			t.Errorf("%s: got %v, expected %v", test.call, err, test.kind)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hellowin.yaml")
	data := []byte("title: Hello\nwidth: 640\nheight: 480\nposition:\n  x: 5\n  y: 6\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := defaultConfig()
	want.Title = "Hello"
	want.Width, want.Height = 640, 480
	want.Position = &Position{X: 5, Y: 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte("colour: red\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected error for an unknown field")
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := loadConfig(path); err != nil || !cmp.Equal(got, defaultConfig()) {
		t.Errorf("empty file: got (%+v, %v), expected defaults", got, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"ok", func(*Config) {}, ""},
		{"no class", func(c *Config) { c.Class = " " }, "class"},
		{"NUL title", func(c *Config) { c.Title = "a\x00b" }, "title"},
		{"width only", func(c *Config) { c.Width = 10 }, "width"},
		{"negative", func(c *Config) { c.Width, c.Height = -1, -1 }, "width"},
	}
	for _, test := range tests {
		cfg := defaultConfig()
		test.modify(&cfg)
		err := cfg.Validate()
		if test.path == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", test.name, err)
			}
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Path != test.path {
			t.Errorf("%s: got %v, expected error for %q", test.name, err, test.path)
		}
	}
}
