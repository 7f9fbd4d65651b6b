// Package config loads the settings of the arcup command from a TOML file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/naoina/toml"
	"go.uber.org/zap/zapcore"

	"github.com/insomnimus/arcup/lexer"
	"github.com/insomnimus/arcup/macro"
	"github.com/insomnimus/arcup/transpiler"
)

// Duration is a time.Duration written as a string such as "1500ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	// StdDir overrides the embedded std/ macro library.
	StdDir         string   `toml:"std_dir"`
	LexTimeout     Duration `toml:"lex_timeout"`
	CompileTimeout Duration `toml:"compile_timeout"`
	Jobs           int      `toml:"jobs"`
	LogLevel       string   `toml:"log_level"`
}

func Default() Config {
	return Config{
		LexTimeout:     Duration(lexer.DefaultTimeout),
		CompileTimeout: Duration(transpiler.DefaultTimeout),
		Jobs:           runtime.NumCPU(),
		LogLevel:       "info",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(&c); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.LexTimeout <= 0 || c.CompileTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// Options returns the compile options described by c.
func (c Config) Options() transpiler.Options {
	return transpiler.Options{
		Importer:   macro.FileImporter{StdDir: c.StdDir},
		LexTimeout: time.Duration(c.LexTimeout),
		Timeout:    time.Duration(c.CompileTimeout),
	}
}
