package evaluator

import (
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/handcoach/holdem/internal/deck"
	"github.com/handcoach/holdem/internal/randutil"
)

// Equity estimates the probability that the hole cards win at showdown
// against the given number of opponents holding unknown cards, by dealing
// random board completions and opponent hands. Ties count fractionally as
// 1/n of a win. The estimate is deterministic for a given RNG state and
// trial count.
func Equity(rng *rand.Rand, hole []deck.Card, board []deck.Card, opponents, trials int) float64 {
	if len(board) == 5 && opponents == 0 {
		return 1
	}
	if trials <= 0 || opponents < 1 {
		return 0
	}

	used := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		used[c] = true
	}
	for _, c := range board {
		used[c] = true
	}
	avail := make([]deck.Card, 0, 52)
	for _, c := range deck.All() {
		if !used[c] {
			avail = append(avail, c)
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > trials {
		workers = trials
	}
	if workers < 1 {
		workers = 1
	}

	// Seeds are drawn serially from the caller's RNG before the workers
	// launch, so the estimate does not depend on goroutine scheduling.
	rngs := make([]*rand.Rand, workers)
	for i := range rngs {
		rngs[i] = randutil.Derive(rng)
	}

	shares := make([]float64, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		share := trials / workers
		if w < trials%workers {
			share++
		}
		g.Go(func() error {
			shares[w] = runTrials(rngs[w], hole, board, avail, opponents, share)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	var sum float64
	for _, s := range shares {
		sum += s
	}
	return sum / float64(trials)
}

func runTrials(rng *rand.Rand, hole, board, avail []deck.Card, opponents, trials int) float64 {
	needBoard := 5 - len(board)
	needed := needBoard + 2*opponents
	sample := make([]deck.Card, len(avail))
	fullBoard := make([]deck.Card, 0, 5)
	oppHole := make([]deck.Card, 2)

	var sum float64
	for t := 0; t < trials; t++ {
		copy(sample, avail)
		// Partial Fisher-Yates: only the cards we deal get shuffled.
		for i := 0; i < needed; i++ {
			j := i + rng.IntN(len(sample)-i)
			sample[i], sample[j] = sample[j], sample[i]
		}

		fullBoard = append(fullBoard[:0], board...)
		fullBoard = append(fullBoard, sample[:needBoard]...)

		hero := EvaluateHole(hole, fullBoard)
		best := hero
		tied := 1
		heroBest := true
		for o := 0; o < opponents; o++ {
			oppHole[0] = sample[needBoard+2*o]
			oppHole[1] = sample[needBoard+2*o+1]
			opp := EvaluateHole(oppHole, fullBoard)
			switch opp.Compare(best) {
			case 1:
				best = opp
				tied = 1
				heroBest = false
			case 0:
				tied++
			}
		}
		if heroBest {
			sum += 1.0 / float64(tied)
		}
	}
	return sum
}
