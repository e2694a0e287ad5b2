// carprice serves a used-car price prediction form backed by a pre-trained
// regression model.
//
// Usage:
//
//	carprice [--env local] [--config path] serve
//	carprice inspect
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/carprice/internal/config"
	"github.com/kailas-cloud/carprice/internal/version"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "carprice",
		Usage:   "Used-car price prediction form",
		Version: version.String(),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Value:   config.GetEnv(),
				Usage:   "Environment (local, dev, docker, prod)",
				EnvVars: []string{"ENV"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a config file (overrides --env lookup)",
				EnvVars: []string{"CARPRICE_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			serveCommand(),
			inspectCommand(),
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load(c.String("env"))
}
