// Package simulator drives scenario tables to completion. Each table runs
// as its own unit of work with no shared mutable state; the only
// cross-table coordination is the errgroup that collects failures.
package simulator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/handcoach/holdem/internal/ai"
	"github.com/handcoach/holdem/internal/config"
	"github.com/handcoach/holdem/internal/game"
	"github.com/handcoach/holdem/internal/randutil"
	"github.com/handcoach/holdem/internal/registry"
)

// maxStepsPerHand bounds the driver loop for a single hand. A correct
// engine converges in far fewer steps; hitting the bound means a betting
// round failed to make progress and must be surfaced, never papered over.
const maxStepsPerHand = 2000

// Options configures a run.
type Options struct {
	Hands  int
	Seed   int64
	Clock  quartz.Clock
	Logger *log.Logger
}

// SeatStanding is one seat's final position in a run.
type SeatStanding struct {
	Name     string
	Strategy string
	Stack    int
	Net      int
}

// TableResult aggregates one table's run. LastHand is the snapshot of the
// final completed hand, nil if the table never finished one.
type TableResult struct {
	Name        string
	HandsPlayed int
	Showdowns   int
	FoldWins    int
	Actions     int
	Standings   []SeatStanding
	LastHand    *game.CompletedHand
}

// Results aggregates a whole run.
type Results struct {
	Tables  []TableResult
	Hands   int
	Elapsed time.Duration
}

// Run plays every table in the scenario for the configured number of
// hands. Table RNGs are derived serially from the seed before any
// goroutine starts, so results are reproducible regardless of scheduling.
func Run(ctx context.Context, sc *config.Scenario, opts Options) (*Results, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	hands := opts.Hands
	if hands <= 0 {
		hands = sc.Sim.Hands
	}
	seed := opts.Seed
	if seed == 0 {
		seed = sc.Sim.Seed
	}

	reg := registry.New(logger)
	base := randutil.New(seed)

	runners := make([]*tableRunner, len(sc.Tables))
	for i, tc := range sc.Tables {
		r, err := newTableRunner(tc, randutil.Derive(base), logger)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(tc.Name, r.table); err != nil {
			return nil, err
		}
		runners[i] = r
	}

	start := clock.Now()
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error {
			return r.run(ctx, hands)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Drain the registry: each table is pulled back out for its final
	// snapshot, so a leftover entry means bookkeeping went wrong.
	res := &Results{Elapsed: clock.Since(start)}
	for i, r := range runners {
		table, ok := reg.Remove(sc.Tables[i].Name)
		if !ok {
			return nil, fmt.Errorf("simulator: table %s missing from registry", sc.Tables[i].Name)
		}
		tr := r.result()
		if snap, err := table.Snapshot(); err == nil {
			tr.LastHand = snap
		}
		res.Tables = append(res.Tables, tr)
		res.Hands += r.handsPlayed
	}
	return res, nil
}

// tableRunner owns one table, its strategies and their per-seat RNGs.
type tableRunner struct {
	name     string
	logger   *log.Logger
	table    *game.Table
	maxSteps int

	strategies []ai.Strategy
	seatRNGs   []*rand.Rand
	starting   []int
	seatNames  []string

	handsPlayed int
	showdowns   int
	foldWins    int
	actions     int
}

func newTableRunner(tc config.TableConfig, rng *rand.Rand, logger *log.Logger) (*tableRunner, error) {
	cfg := game.Config{SmallBlind: tc.SmallBlind, BigBlind: tc.BigBlind}
	r := &tableRunner{
		name:     tc.Name,
		logger:   logger.With("table", tc.Name),
		maxSteps: maxStepsPerHand,
	}
	for _, sc := range tc.Seats {
		strat, err := ai.New(sc.Strategy)
		if err != nil {
			return nil, fmt.Errorf("simulator: table %s seat %s: %w", tc.Name, sc.Name, err)
		}
		cfg.Seats = append(cfg.Seats, game.SeatConfig{Name: sc.Name, Strategy: sc.Strategy, Stack: sc.Stack})
		r.strategies = append(r.strategies, strat)
		r.seatRNGs = append(r.seatRNGs, randutil.Derive(rng))
		r.starting = append(r.starting, sc.Stack)
		r.seatNames = append(r.seatNames, sc.Name)
	}
	table, err := game.New(rng, cfg)
	if err != nil {
		return nil, fmt.Errorf("simulator: table %s: %w", tc.Name, err)
	}
	r.table = table
	return r, nil
}

func (r *tableRunner) run(ctx context.Context, hands int) error {
	for i := 0; i < hands; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.table.FundedSeats() < 2 {
			r.logger.Info("table finished early, one stack holds all chips", "hands", r.handsPlayed)
			return nil
		}
		if err := r.table.StartHand(); err != nil {
			return fmt.Errorf("simulator: table %s hand %d: %w", r.name, i+1, err)
		}
		if err := r.playHand(); err != nil {
			return fmt.Errorf("simulator: table %s hand %d: %w", r.name, r.table.HandNumber(), err)
		}
	}
	return nil
}

// playHand alternates advancing the state machine with asking the seat on
// turn for a decision. A strategy returning an illegal action is demoted
// to check-or-fold; engine corruption and non-convergence abort the table.
func (r *tableRunner) playHand() error {
	for steps := 0; ; steps++ {
		if steps >= r.maxSteps {
			return fmt.Errorf("hand failed to converge after %d steps", steps)
		}

		change, err := r.table.AdvanceIfRoundComplete()
		if err != nil {
			return err
		}
		if change != nil && change.HandComplete {
			r.recordHand(change.Result)
			return nil
		}

		seat, ok := r.table.CurrentTurn()
		if !ok {
			// Round complete but not yet advanced; loop back into advance.
			continue
		}

		view, err := r.table.View(seat)
		if err != nil {
			return err
		}
		d := r.strategies[seat].Decide(r.seatRNGs[seat], view)
		r.actions++

		if err := r.table.ApplyAction(seat, d.Action, d.Amount); err != nil {
			if errors.Is(err, game.ErrTableCorrupted) {
				return err
			}
			r.logger.Warn("strategy chose illegal action",
				"seat", r.seatNames[seat],
				"strategy", r.strategies[seat].Name(),
				"action", d.Action,
				"amount", d.Amount,
				"err", err)
			fallback := game.Fold
			if view.Allows(game.Check) {
				fallback = game.Check
			}
			if err := r.table.ApplyAction(seat, fallback, 0); err != nil {
				return fmt.Errorf("fallback %v rejected: %w", fallback, err)
			}
		}
	}
}

func (r *tableRunner) recordHand(res *game.CompletedHand) {
	r.handsPlayed++
	if res.WonByFold {
		r.foldWins++
	} else {
		r.showdowns++
	}
	r.logger.Debug("hand complete",
		"hand", res.HandNum,
		"board", res.Board,
		"pots", len(res.Pots),
		"by_fold", res.WonByFold)
}

func (r *tableRunner) result() TableResult {
	tr := TableResult{
		Name:        r.name,
		HandsPlayed: r.handsPlayed,
		Showdowns:   r.showdowns,
		FoldWins:    r.foldWins,
		Actions:     r.actions,
	}
	for i, info := range r.table.Seats() {
		tr.Standings = append(tr.Standings, SeatStanding{
			Name:     info.Name,
			Strategy: info.Strategy,
			Stack:    info.Stack,
			Net:      info.Stack - r.starting[i],
		})
	}
	return tr
}
