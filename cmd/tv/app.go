package main

import (
	"fmt"

	"github.com/sonnes/tensorview/config"
	"github.com/sonnes/tensorview/core"
	"github.com/sonnes/tensorview/reader"
	"github.com/sonnes/tensorview/reader/jsonarr"
	"github.com/sonnes/tensorview/reader/torch"
	"github.com/sonnes/tensorview/render"
	htmlrender "github.com/sonnes/tensorview/render/html"
	jsonrender "github.com/sonnes/tensorview/render/json"
	"github.com/sonnes/tensorview/render/terminal"
	"github.com/urfave/cli/v3"
)

// app holds the configuration and the reader and renderer registries used
// by CLI commands.
type app struct {
	cfg       config.Config
	readers   map[string]func() reader.Reader
	renderers map[string]func() render.Renderer
}

func newApp(cfg config.Config) *app {
	a := &app{
		cfg: cfg,
		readers: map[string]func() reader.Reader{
			torch.Format:   func() reader.Reader { return &torch.Reader{} },
			jsonarr.Format: func() reader.Reader { return &jsonarr.Reader{} },
		},
	}
	a.renderers = map[string]func() render.Renderer{
		"terminal": func() render.Renderer { return terminal.New() },
		"json":     func() render.Renderer { return jsonrender.New() },
		"html":     func() render.Renderer { return a.page() },
	}
	return a
}

func (a *app) reader(name string) (reader.Reader, error) {
	fn, ok := a.readers[name]
	if !ok {
		return nil, fmt.Errorf("unknown artifact format %q", name)
	}
	return fn(), nil
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

// page builds the chart renderer from the page settings.
func (a *app) page() *htmlrender.Renderer {
	r := htmlrender.New()
	r.Title = a.cfg.Page.Title
	r.Notes = a.cfg.Page.Notes
	r.YMin = a.cfg.Page.YMin
	r.YMax = a.cfg.Page.YMax
	return r
}

// view loads the configured artifact once and slices it.
func (a *app) view() (*core.View, error) {
	r, err := a.reader(a.cfg.Format)
	if err != nil {
		return nil, err
	}
	art, err := r.ReadFile(a.cfg.File)
	if err != nil {
		return nil, err
	}
	return core.Build(art, a.cfg.Slice)
}

// artifactFlags are shared by every command that loads the artifact.
func artifactFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "Artifact path (default 0.pt)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Artifact format: torch, json",
		},
		&cli.IntFlag{
			Name:  "element",
			Usage: "Index of the served element in the artifact",
		},
		&cli.IntFlag{
			Name:  "column",
			Usage: "Column served from the element",
		},
		&cli.IntFlag{
			Name:  "rows",
			Usage: "Maximum number of rows served (default 5000)",
		},
	}
}

// loadConfig reads --config when given and applies explicitly set flags on
// top. Flags left unset never override the file.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
	}
	if cmd.IsSet("file") {
		cfg.File = cmd.String("file")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("element") {
		cfg.Slice.Element = cmd.Int("element")
	}
	if cmd.IsSet("column") {
		cfg.Slice.Column = cmd.Int("column")
	}
	if cmd.IsSet("rows") {
		cfg.Slice.Rows = cmd.Int("rows")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
