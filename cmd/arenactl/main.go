// arenactl replays allocation traces against a pagearena.Arena and prints
// where every allocation landed.
package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("arenactl failed")
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "arenactl"
	app.Version = "0.1.0"
	app.Usage = "inspect page-arena allocation behaviour"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level,l",
			Value: "info",
			Usage: "log level: debug|info|warn|error",
		},
	}
	app.Before = func(c *cli.Context) error {
		zerolog.SetGlobalLevel(loglevel(c.String("log-level")))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "pagesize",
			Usage:  "print the host page size",
			Action: pageSizeAction,
		},
		{
			Name:      "trace",
			Aliases:   []string{"t"},
			Usage:     "replay allocation sizes and print the page table",
			ArgsUsage: "[size...]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file,f",
					Usage: "read sizes from file, one per line",
				},
				cli.StringFlag{
					Name:  "page-size,p",
					Usage: "default page size (e.g. 4096, 16KiB); host page size if empty",
				},
				cli.StringFlag{
					Name:  "backing,b",
					Value: "heap",
					Usage: "page backing: heap|mmap",
				},
				cli.StringFlag{
					Name:  "limit",
					Usage: "total capacity limit (e.g. 1MiB); unlimited if empty",
				},
				cli.StringFlag{
					Name:  "metrics-addr",
					Usage: "serve Prometheus metrics on this address until interrupted",
				},
			},
			Action: traceAction,
		},
	}
	return app
}

func loglevel(l string) zerolog.Level {
	switch strings.ToLower(l) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
