package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	updatesKey    = "updates"
	modeKey       = "mode"
	formatKey     = "format"
	maxHistoryKey = "max-history"
	logUpdatesKey = "log-updates"
	verboseKey    = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "refsignal",
		Usage: "Drive a few signals through updates and batches and print what devtools saw",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  updatesKey,
				Usage: "Updates per signal",
				Value: 3,
			},
			&cli.StringFlag{
				Name:  modeKey,
				Usage: "Batching mode: none, auto or deps",
				Value: string(modeAuto),
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Output format: table, text or summary",
				Value: "table",
			},
			&cli.UintFlag{
				Name:  maxHistoryKey,
				Usage: "How many updates devtools keeps",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:  logUpdatesKey,
				Usage: "Log every tracked update",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Debug logging",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
