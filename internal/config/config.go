// Package config loads simulation scenarios from HCL files: which tables
// to run, who sits where, and with what stacks and blinds.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/handcoach/holdem/internal/ai"
)

// Scenario is a complete simulation configuration.
type Scenario struct {
	Sim    *SimSettings  `hcl:"sim,block"`
	Tables []TableConfig `hcl:"table,block"`
}

// SimSettings holds run-level knobs shared by every table.
type SimSettings struct {
	Hands    int    `hcl:"hands,optional"`
	Seed     int64  `hcl:"seed,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines one table and its seats.
type TableConfig struct {
	Name          string       `hcl:"name,label"`
	SmallBlind    int          `hcl:"small_blind"`
	BigBlind      int          `hcl:"big_blind"`
	StartingStack int          `hcl:"starting_stack,optional"`
	Seats         []SeatConfig `hcl:"seat,block"`
}

// SeatConfig defines one seat. Stack overrides the table's starting stack.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Stack    int    `hcl:"stack,optional"`
}

// Default returns a ready-to-run scenario: one four-seat table with one
// seat per strategy.
func Default() *Scenario {
	table := TableConfig{
		Name:          "main",
		SmallBlind:    5,
		BigBlind:      10,
		StartingStack: 1000,
	}
	for _, kind := range ai.Kinds() {
		table.Seats = append(table.Seats, SeatConfig{Name: kind, Strategy: kind})
	}
	return &Scenario{
		Sim:    &SimSettings{Hands: 100, LogLevel: "info"},
		Tables: []TableConfig{table},
	}
}

// Load parses a scenario file, applies defaults and validates. A missing
// path falls back to the default scenario.
func Load(path string) (*Scenario, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config: no such file %q", path)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", path, diags.Error())
	}

	var sc Scenario
	if diags := gohcl.DecodeBody(file.Body, nil, &sc); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", path, diags.Error())
	}

	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) applyDefaults() {
	if sc.Sim == nil {
		sc.Sim = &SimSettings{}
	}
	if sc.Sim.Hands == 0 {
		sc.Sim.Hands = 100
	}
	if sc.Sim.LogLevel == "" {
		sc.Sim.LogLevel = "info"
	}
	for i := range sc.Tables {
		t := &sc.Tables[i]
		if t.StartingStack == 0 {
			t.StartingStack = t.BigBlind * 100
		}
		for j := range t.Seats {
			if t.Seats[j].Stack == 0 {
				t.Seats[j].Stack = t.StartingStack
			}
		}
	}
}

// Validate checks structural soundness: blinds ordered, stacks positive,
// at least two seats per table, strategies known.
func (sc *Scenario) Validate() error {
	if len(sc.Tables) == 0 {
		return fmt.Errorf("config: at least one table must be configured")
	}
	if sc.Sim == nil || sc.Sim.Hands <= 0 {
		return fmt.Errorf("config: hands must be positive")
	}
	seen := make(map[string]bool)
	for _, t := range sc.Tables {
		if seen[t.Name] {
			return fmt.Errorf("config: duplicate table %q", t.Name)
		}
		seen[t.Name] = true
		if t.SmallBlind <= 0 {
			return fmt.Errorf("config: table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind <= t.SmallBlind {
			return fmt.Errorf("config: table %s: big blind must exceed small blind", t.Name)
		}
		if len(t.Seats) < 2 || len(t.Seats) > 10 {
			return fmt.Errorf("config: table %s: need 2-10 seats, got %d", t.Name, len(t.Seats))
		}
		for _, s := range t.Seats {
			if s.Stack <= 0 {
				return fmt.Errorf("config: table %s seat %s: stack must be positive", t.Name, s.Name)
			}
			if _, err := ai.New(s.Strategy); err != nil {
				return fmt.Errorf("config: table %s seat %s: %w", t.Name, s.Name, err)
			}
		}
	}
	return nil
}
