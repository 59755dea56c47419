package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/sonnes/tensorview/server"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the artifact slice over HTTP",
		Description: `Routes:
  GET /data   JSON array of the served slice
  GET /meta   artifact layout and the active slice
  GET /       line chart of the served slice`,
		Flags: append(artifactFlags(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default 127.0.0.1:5000)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a := newApp(cfg)
			r, err := a.reader(cfg.Format)
			if err != nil {
				return err
			}

			s := server.New(r, cfg.File)
			s.Slice = cfg.Slice
			s.Origins = cfg.CORS.Origins
			s.Page = a.page()
			s.Logger = log.Default()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.ListenAndServe(ctx, cfg.Addr)
		},
	}
}
