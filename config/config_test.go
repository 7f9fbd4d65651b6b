package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/insomnimus/arcup/macro"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcup.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
std_dir = "/opt/arcup/std"
lex_timeout = "250ms"
jobs = 3
log_level = "debug"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %s", err)
	}
	if c.StdDir != "/opt/arcup/std" {
		t.Errorf("std_dir = %q", c.StdDir)
	}
	if time.Duration(c.LexTimeout) != 250*time.Millisecond {
		t.Errorf("lex_timeout = %s", time.Duration(c.LexTimeout))
	}
	// unset keys keep their defaults
	if time.Duration(c.CompileTimeout) != 5*time.Second {
		t.Errorf("compile_timeout = %s, expected the default", time.Duration(c.CompileTimeout))
	}
	if c.Jobs != 3 {
		t.Errorf("jobs = %d", c.Jobs)
	}
	if lvl, err := c.Level(); err != nil || lvl != zapcore.DebugLevel {
		t.Errorf("log level = %v, %v", lvl, err)
	}

	opts := c.Options()
	if im, ok := opts.Importer.(macro.FileImporter); !ok || im.StdDir != "/opt/arcup/std" {
		t.Errorf("unexpected importer: %#v", opts.Importer)
	}
	if opts.LexTimeout != 250*time.Millisecond || opts.Timeout != 5*time.Second {
		t.Errorf("unexpected timeouts: %s, %s", opts.LexTimeout, opts.Timeout)
	}
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("Load(\"\") = %+v, expected the defaults", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults do not validate: %s", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []string{
		`lex_timeout = "soon"`,
		`jobs = 0`,
		`log_level = "chatty"`,
		`jobs = `,
	}
	for _, body := range tests {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%q: expected an error", body)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
