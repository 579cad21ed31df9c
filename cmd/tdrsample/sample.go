package main

import (
	"bufio"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/nozzle/tdr"
	"github.com/nozzle/tdr/internal/config"
	"github.com/nozzle/tdr/internal/logger"
	"github.com/nozzle/tdr/internal/parallel"
	"github.com/nozzle/tdr/internal/rand"
	"github.com/nozzle/tdr/metrics"
)

// SampleCommand writes draws as one value per line.
var SampleCommand = cli.Command{
	Name:   "sample",
	Usage:  "draw variates and print them one per line",
	Action: sampleAction,
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "number of draws (overrides sample.count)"},
		&cli.UintFlag{Name: "seed", Usage: "seed of the first worker (overrides sample.seed)"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "independent generators run in parallel (overrides sample.workers)"},
		&cli.BoolFlag{Name: "stats", Usage: "log acceptance statistics when done"},
	},
}

func sampleAction(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	if ctx.IsSet("count") {
		cfg.Sample.Count = ctx.Int("count")
	}
	if ctx.IsSet("seed") {
		cfg.Sample.Seed = uint32(ctx.Uint("seed"))
	}
	if ctx.IsSet("workers") {
		cfg.Sample.Workers = ctx.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.NewLogger(cfg.Logging.Level, "tdrsample")
	// the generators share the "tdr" logger, its level is fixed here
	logger.NewLogger(cfg.Logging.Level, "tdr")

	workers := cfg.Sample.Workers
	if workers <= 0 {
		workers = parallel.NumWorkers()
	}
	collectors, err := metrics.NewWorkerCollectors(prometheus.NewRegistry(), prometheus.Labels{"density": cfg.Density.Name}, workers)
	if err != nil {
		return err
	}
	observers := make([]tdr.Observer, workers)
	for i, c := range collectors {
		observers[i] = c
	}

	draws, err := run(cfg, observers)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(ctx.App.Writer)
	for _, part := range draws {
		for _, x := range part {
			w.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
			w.WriteByte('\n')
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "write draws")
	}

	if ctx.Bool("stats") {
		log.Noticef("%s draws, acceptance rate %.4f", humanize.Comma(int64(cfg.Sample.Count)), metrics.AcceptanceRateOf(collectors...))
	}
	return nil
}

// run draws cfg.Sample.Count variates on independent generators, one per
// observer, each seeded with the configured seed plus its index. A nil
// observer is allowed.
func run(cfg *config.Config, observers []tdr.Observer) ([][]float64, error) {
	workers := len(observers)
	parts := parallel.Split(cfg.Sample.Count, workers)

	return parallel.Map(workers, workers, func(i int) ([]float64, error) {
		gen, err := newGenerator(cfg, cfg.Sample.Seed+uint32(i), observers[i])
		if err != nil {
			return nil, err
		}
		out := make([]float64, parts[i])
		for j := range out {
			if out[j], err = gen.Sample(); err != nil {
				return nil, errors.Wrapf(err, "worker %d draw %d", i, j)
			}
		}
		return out, nil
	})
}

func newGenerator(cfg *config.Config, seed uint32, obs tdr.Observer) (*tdr.Generator, error) {
	d, err := cfg.Density.New()
	if err != nil {
		return nil, err
	}
	gc := cfg.GeneratorConfig()
	gc.Observer = obs
	gen, err := tdr.New(d, rand.NewMT19937(seed), gc)
	if err != nil {
		return nil, err
	}
	if err := gen.Build(); err != nil {
		return nil, errors.Wrapf(err, "build %s hat", cfg.Density.Name)
	}
	return gen, nil
}
