package evaluator

// Strength maps a rank's category onto a normalized [0,1] hand strength,
// 1 being the nuts end of the scale. Every strategy shares this one
// mapping; keeping a single copy is what stops the per-strategy threshold
// drift that creeps in when each bot carries its own table.
func Strength(r Rank) float64 {
	base := categoryStrength(r.Category())
	// Spread hands within a category by their kicker encoding so that, for
	// example, a pair of aces reads stronger than a pair of twos.
	tie := float64(r&0xFFFFF) / float64(0xFFFFF)
	return base + (1.0-tie)*categoryBand
}

// Categories occupy fixed bands of the scale; the kicker spread stays
// inside a band so no amount of kickers promotes a hand past the next
// category.
const categoryBand = 0.05

func categoryStrength(c Category) float64 {
	switch c {
	case RoyalFlush:
		return 0.95
	case StraightFlush:
		return 0.93
	case FourOfAKind:
		return 0.88
	case FullHouse:
		return 0.80
	case Flush:
		return 0.72
	case Straight:
		return 0.64
	case ThreeOfAKind:
		return 0.54
	case TwoPair:
		return 0.42
	case OnePair:
		return 0.22
	case HighCard:
		return 0.02
	default:
		return 0
	}
}
