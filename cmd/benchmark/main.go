package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/refsignal/refsignal"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	iterationsKey = "iters"
	profileKey    = "profile"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure update and batch latency of refsignal",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "Samples per benchmark",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Uint(iterationsKey))
	log.Printf("warming up")
	benchmark(iters, false)
	benchmark(iters, true)
	return nil
}

func pass(int) {}

// setup creates w signals with h listeners each.
func setup(w, h int) (*refsignal.ReactiveSystem, []*refsignal.WriteableSignal[int]) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	rs := refsignal.CreateReactiveSystem(refsignal.WithLogger(logger))

	signals := make([]*refsignal.WriteableSignal[int], w)
	for i := range signals {
		signals[i] = refsignal.Signal(rs, 0)
		for j := 0; j < h; j++ {
			signals[i].Subscribe(refsignal.ListenerFunc(pass))
		}
	}
	return rs, signals
}

func benchmark(iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("refsignal")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	appendRow := func(name string, tach *tachymeter.Tachymeter) {
		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				name,
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	for _, w := range ww {
		for _, h := range hh {
			_, signals := setup(w, h)
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			for i := 0; i < iters; i++ {
				start := time.Now()
				for _, s := range signals {
					s.SetValue(s.Value() + 1)
				}
				tach.AddTime(time.Since(start))
			}
			appendRow(fmt.Sprintf("unbatched: %d * %d", w, h), tach)

			rs, signals := setup(w, h)
			tach = tachymeter.New(&tachymeter.Config{Size: iters})
			for i := 0; i < iters; i++ {
				start := time.Now()
				_ = rs.Batch(func() error {
					for _, s := range signals {
						s.SetValue(s.Value() + 1)
						s.SetValue(s.Value() + 1)
					}
					return nil
				})
				tach.AddTime(time.Since(start))
			}
			appendRow(fmt.Sprintf("auto batch: %d * %d", w, h), tach)

			rs, signals = setup(w, h)
			deps := make([]refsignal.SignalAware, len(signals))
			for i, s := range signals {
				deps[i] = s
			}
			tach = tachymeter.New(&tachymeter.Config{Size: iters})
			for i := 0; i < iters; i++ {
				start := time.Now()
				_ = rs.BatchDeps(func() error {
					for _, s := range signals {
						s.SetValue(s.Value() + 1)
						s.SetValue(s.Value() + 1)
					}
					return nil
				}, deps...)
				tach.AddTime(time.Since(start))
			}
			appendRow(fmt.Sprintf("deps batch: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
