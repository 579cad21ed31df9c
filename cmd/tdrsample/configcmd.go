package main

import (
	"github.com/urfave/cli/v2"

	"github.com/nozzle/tdr/internal/config"
)

// ConfigCommand prints the effective configuration.
var ConfigCommand = cli.Command{
	Name:  "config",
	Usage: "print the effective configuration as YAML",
	Action: func(ctx *cli.Context) error {
		cfg, err := config.Load(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		return cfg.WriteYAML(ctx.App.Writer)
	},
}
