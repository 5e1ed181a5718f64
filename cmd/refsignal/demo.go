package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/delaneyj/refsignal/devtools"
	"github.com/delaneyj/refsignal/refsignal"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type batchMode string

const (
	modeNone batchMode = "none"
	modeAuto batchMode = "auto"
	modeDeps batchMode = "deps"
)

type demoConfig struct {
	updates    int
	mode       batchMode
	format     string
	maxHistory int
	logUpdates bool
	logger     logrus.FieldLogger
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cmd.Bool(verboseKey) {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := demoConfig{
		updates:    int(cmd.Uint(updatesKey)),
		mode:       batchMode(cmd.String(modeKey)),
		format:     cmd.String(formatKey),
		maxHistory: int(cmd.Uint(maxHistoryKey)),
		logUpdates: cmd.Bool(logUpdatesKey),
		logger:     logger,
	}
	return runDemo(os.Stdout, cfg)
}

// listenerCounts is how often each listener fired, keyed by signal name.
type listenerCounts map[string]int

func runDemo(w io.Writer, cfg demoConfig) error {
	dt := devtools.New(
		devtools.WithEnabled(true),
		devtools.WithLogUpdates(cfg.logUpdates),
		devtools.WithMaxHistory(cfg.maxHistory),
		devtools.WithLogger(cfg.logger),
		devtools.WithInspector(devtools.NewLogInspector(cfg.logger)),
	)
	rs := refsignal.CreateReactiveSystem(
		refsignal.WithSink(dt),
		refsignal.WithLogger(cfg.logger),
	)

	first := refsignal.Signal(rs, "", refsignal.WithName("firstName"))
	last := refsignal.Signal(rs, "", refsignal.WithName("lastName"))
	age := refsignal.Signal(rs, 0, refsignal.WithName("age"))
	signals := []refsignal.SignalAware{first, last, age}

	counts := listenerCounts{}
	first.OnChange(func(string) { counts[first.Name()]++ })
	last.OnChange(func(string) { counts[last.Name()]++ })
	age.OnChange(func(int) { counts[age.Name()]++ })

	renders := 0
	stop := refsignal.Effect(rs, func() error {
		renders++
		return nil
	}, first, last, age)
	defer stop()

	update := func() error {
		for i := 1; i <= cfg.updates; i++ {
			first.SetValue(fmt.Sprintf("first-%d", i))
			last.SetValue(fmt.Sprintf("last-%d", i))
			age.SetValue(i)
		}
		return nil
	}

	var err error
	switch cfg.mode {
	case modeNone:
		err = update()
	case modeAuto:
		err = rs.Batch(update)
	case modeDeps:
		err = rs.BatchDeps(update, signals...)
	default:
		return errors.Errorf("unknown batch mode %q", cfg.mode)
	}
	if err != nil {
		return errors.Wrap(err, "running updates")
	}

	switch cfg.format {
	case "table":
		dt.RenderTable(w)
	case "text":
		dt.WriteReport(w)
	case "summary":
	default:
		return errors.Errorf("unknown format %q", cfg.format)
	}

	writeSummary(w, signals, counts, renders, refsignal.Snapshot(signals...))
	return nil
}

func writeSummary(w io.Writer, signals []refsignal.SignalAware, counts listenerCounts, renders int, snapshot int64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"signal", "id", "notifications", "last updated"})
	for _, s := range signals {
		table.Append([]string{
			s.Name(),
			fmt.Sprint(s.ID()),
			humanize.Comma(int64(counts[s.Name()])),
			humanize.Time(s.LastUpdated()),
		})
	}
	table.Render()

	fmt.Fprintf(w, "effect runs: %s, snapshot: %d\n", humanize.Comma(int64(renders)), snapshot)
}
