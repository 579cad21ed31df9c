// Command tdrsample draws variates from the density catalog and inspects the
// hats built for them.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "YAML configuration file (default .tdr.yaml in the working directory)",
}

// App is the tdrsample application.
var App = cli.App{
	Name:     "tdrsample",
	HelpName: "tdrsample",
	Usage:    "sample log-concave densities by transformed density rejection",
	Flags:    []cli.Flag{configFlag},
	Commands: []*cli.Command{
		&SampleCommand,
		&InspectCommand,
		&ConfigCommand,
	},
}

func main() {
	if err := App.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
