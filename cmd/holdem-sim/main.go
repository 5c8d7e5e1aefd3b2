// holdem-sim plays out hold'em scenarios between scripted strategies and
// reports per-seat results.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/handcoach/holdem/internal/config"
	"github.com/handcoach/holdem/internal/simulator"
)

type CLI struct {
	Config  string `short:"c" type:"path" help:"Scenario file (HCL). Omit for the built-in default scenario."`
	Hands   int    `default:"0" help:"Hands to play per table (overrides the scenario)"`
	Seed    int64  `default:"0" help:"RNG seed (0 for time-based)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdem-sim"),
		kong.Description("Texas hold'em strategy simulator."))

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	sc, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatal("load scenario", "err", err)
	}

	logger.Info("starting simulation",
		"tables", len(sc.Tables),
		"hands", pick(cli.Hands, sc.Sim.Hands),
		"seed", cli.Seed)

	res, err := simulator.Run(context.Background(), sc, simulator.Options{
		Hands:  cli.Hands,
		Seed:   cli.Seed,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("simulation failed", "err", err)
	}

	printResults(res)
	kctx.Exit(0)
}

func pick(override, fallback int) int {
	if override > 0 {
		return override
	}
	return fallback
}

func printResults(res *simulator.Results) {
	rate := 0.0
	if res.Elapsed > 0 {
		rate = float64(res.Hands) / res.Elapsed.Seconds()
	}
	fmt.Printf("Played %d hands across %d table(s) in %s (%.0f hands/sec)\n\n",
		res.Hands, len(res.Tables), res.Elapsed.Round(time.Millisecond), rate)
	for _, tr := range res.Tables {
		fmt.Printf("table %s: %d hands (%d showdowns, %d won by folds), %d actions\n",
			tr.Name, tr.HandsPlayed, tr.Showdowns, tr.FoldWins, tr.Actions)
		for _, s := range tr.Standings {
			fmt.Printf("  %-16s %-14s stack %6d  net %+d\n", s.Name, s.Strategy, s.Stack, s.Net)
		}
		fmt.Println()
	}
}
