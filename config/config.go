// Package config holds server settings. Defaults reproduce the behavior of
// the original data server; a YAML file and command-line flags may override them.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sonnes/tensorview/core"
	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// File is the artifact path, relative to the working directory.
	File string `yaml:"file"`
	// Format names the reader used to decode File.
	Format string `yaml:"format"`
	// Slice selects the served values.
	Slice core.Slice `yaml:"slice"`
	CORS  CORS       `yaml:"cors"`
	Page  Page       `yaml:"page"`
}

// CORS controls cross-origin response headers.
type CORS struct {
	Origins []string `yaml:"origins"`
}

// Page configures the chart served at the root path.
type Page struct {
	Title string `yaml:"title"`
	// Notes is markdown rendered below the chart.
	Notes string  `yaml:"notes"`
	YMin  float64 `yaml:"y_min"`
	YMax  float64 `yaml:"y_max"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:   "127.0.0.1:5000",
		File:   "0.pt",
		Format: "torch",
		Slice:  core.DefaultSlice,
		CORS:   CORS{Origins: []string{"*"}},
		Page: Page{
			Title: "My Graph",
			YMin:  -15,
			YMax:  15,
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("addr must not be empty")
	case c.File == "":
		return errors.New("file must not be empty")
	case c.Format == "":
		return errors.New("format must not be empty")
	case c.Slice.Element < 0:
		return fmt.Errorf("slice.element must be >= 0, got %d", c.Slice.Element)
	case c.Slice.Column < 0:
		return fmt.Errorf("slice.column must be >= 0, got %d", c.Slice.Column)
	case c.Slice.Rows <= 0:
		return fmt.Errorf("slice.rows must be > 0, got %d", c.Slice.Rows)
	case c.Page.YMin >= c.Page.YMax:
		return fmt.Errorf("page.y_min (%g) must be below page.y_max (%g)", c.Page.YMin, c.Page.YMax)
	}
	return nil
}
