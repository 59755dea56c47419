package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Load the artifact once and print the served slice",
		Flags: append(artifactFlags(),
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json, html",
				Value: "terminal",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a := newApp(cfg)
			rnd, err := a.renderer(cmd.String("o"))
			if err != nil {
				return err
			}

			v, err := a.view()
			if err != nil {
				return err
			}

			if err := rnd.Render(cmd.Root().Writer, v); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
