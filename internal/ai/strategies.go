package ai

import (
	rand "math/rand/v2"

	"github.com/handcoach/holdem/internal/game"
)

// conservative plays tight: it pays to see cards only with a clear edge
// and raises only strong holdings.
type conservative struct{}

func (conservative) Name() string { return "conservative" }

func (conservative) Decide(rng *rand.Rand, v game.SeatView) Decision {
	strength := handStrength(rng, v)
	switch {
	case strength >= 0.80:
		return raiseTo(v, potRaise(v, 0.75))
	case strength >= 0.55:
		if v.CallAmount == 0 {
			return checkOrFold(v)
		}
		// Demands a margin over break-even before paying.
		if strength >= v.PotOdds()+0.10 {
			return callOrCheck(v)
		}
		return Decision{Action: game.Fold}
	default:
		return checkOrFold(v)
	}
}

// aggressive applies pressure: it raises a wide range and sizes up as the
// stack-to-pot ratio shrinks, shoving when committed.
type aggressive struct{}

func (aggressive) Name() string { return "aggressive" }

func (aggressive) Decide(rng *rand.Rand, v game.SeatView) Decision {
	strength := handStrength(rng, v)
	switch {
	case strength >= 0.65:
		if v.SPR < 3 {
			return raiseTo(v, v.MaxRaiseTo)
		}
		return raiseTo(v, potRaise(v, 1.0))
	case strength >= 0.40:
		if rng.Float64() < 0.35 {
			return raiseTo(v, potRaise(v, 0.60))
		}
		if v.CallAmount == 0 || strength >= v.PotOdds() {
			return callOrCheck(v)
		}
		return Decision{Action: game.Fold}
	default:
		if strength >= v.PotOdds() {
			return callOrCheck(v)
		}
		return checkOrFold(v)
	}
}

// evWeighted compares estimated equity directly against the price of the
// call and raises in proportion to its edge.
type evWeighted struct{}

func (evWeighted) Name() string { return "ev" }

func (evWeighted) Decide(rng *rand.Rand, v game.SeatView) Decision {
	strength := handStrength(rng, v)
	edge := strength - v.PotOdds()
	switch {
	case edge >= 0.30:
		return raiseTo(v, potRaise(v, edge))
	case edge >= 0.0:
		return callOrCheck(v)
	default:
		return checkOrFold(v)
	}
}

// bluffer plays close to evWeighted but occasionally represents strength
// with a weak holding, more often against fewer opponents.
type bluffer struct{}

func (bluffer) Name() string { return "bluffer" }

func (bluffer) Decide(rng *rand.Rand, v game.SeatView) Decision {
	strength := handStrength(rng, v)
	if strength < 0.35 {
		bluffRate := 0.25 / float64(max(v.Opponents, 1))
		if rng.Float64() < bluffRate {
			return raiseTo(v, potRaise(v, 0.75))
		}
	}
	edge := strength - v.PotOdds()
	switch {
	case edge >= 0.25:
		return raiseTo(v, potRaise(v, 0.8))
	case edge >= 0.0:
		return callOrCheck(v)
	default:
		return checkOrFold(v)
	}
}
