package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func newRoot() *cli.Command {
	return &cli.Command{
		Name:  "tv",
		Usage: "Serve a slice of a tensor artifact as JSON",
		Description: `Loads a serialized tensor file (torch.save output by default) and
serves column 0 of the first 5000 rows of its first element at /data.
The file is read again on every request.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCmd(),
			renderCmd(),
		},
	}
}

func main() {
	if err := newRoot().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
