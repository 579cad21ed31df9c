package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/nozzle/tdr/internal/config"
)

// InspectCommand prints the hat of the configured density.
var InspectCommand = cli.Command{
	Name:   "inspect",
	Usage:  "build the hat, optionally warm it up, and print its intervals",
	Action: inspectAction,
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "warmup", Usage: "draws taken before printing, refining the hat"},
	},
}

func inspectAction(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg, cfg.Sample.Seed, nil)
	if err != nil {
		return err
	}
	for range ctx.Int("warmup") {
		if _, err := gen.Sample(); err != nil {
			return err
		}
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(ctx.App.Writer)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "x", "log f", "d log f", "hat area", "right share"})
	for i, iv := range gen.Intervals() {
		tbl.AppendRow(table.Row{
			i,
			num(iv.X),
			num(iv.LogF),
			num(iv.DLogF),
			humanize.FormatFloat("#,###.######", math.Exp(iv.LogHatArea)),
			humanize.FormatFloat("#.###", iv.RightFraction),
		})
	}
	tbl.AppendFooter(table.Row{
		"", "", "", "",
		humanize.FormatFloat("#,###.######", gen.HatArea()),
		fmt.Sprintf("squeeze/hat %.4f", gen.SqueezeRatio()),
	})
	tbl.Render()

	fmt.Fprintf(ctx.App.Writer, "%s intervals, state %s\n", humanize.Comma(int64(gen.IntervalCount())), gen.State())
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
