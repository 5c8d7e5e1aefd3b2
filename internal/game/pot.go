package game

import (
	"sort"

	"github.com/handcoach/holdem/internal/deck"
	"github.com/handcoach/holdem/internal/evaluator"
)

// SidePot is a slice of the total pot together with the seats eligible to
// win it. The amounts of all side pots for a hand sum to the hand's pot
// exactly; settlement verifies this rather than assuming it.
type SidePot struct {
	Amount   int
	Eligible []int
}

// buildPots partitions the pot into contribution tiers. Tier boundaries
// are the distinct all-in contribution levels among live seats plus the
// top live contribution; a tier collects, from every seat (folded dead
// money included), the chips that seat contributed between the previous
// boundary and this one. Eligibility for a tier requires being live and
// having contributed at least to its boundary.
func buildPots(seats []*Seat) []SidePot {
	levels := make([]int, 0, len(seats))
	top := 0
	for _, s := range seats {
		if !s.InHand() || s.Contributed == 0 {
			continue
		}
		if s.AllIn {
			levels = append(levels, s.Contributed)
		}
		if s.Contributed > top {
			top = s.Contributed
		}
	}
	levels = append(levels, top)
	sort.Ints(levels)

	var pots []SidePot
	prev := 0
	for _, level := range levels {
		if level <= prev {
			continue
		}
		pot := SidePot{}
		for _, s := range seats {
			c := s.Contributed
			if c > level {
				c = level
			}
			if c > prev {
				pot.Amount += c - prev
			}
			if s.InHand() && s.Contributed >= level {
				pot.Eligible = append(pot.Eligible, s.Index)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}
	return pots
}

// refundUncalled returns the portion of the highest contribution no other
// seat could match back to its owner. Without this, a big stack shoving
// over a short all-in would have chips in the pot nobody can win.
func refundUncalled(seats []*Seat) int {
	var leader *Seat
	maxOther := 0
	for _, s := range seats {
		if !s.InHand() {
			if s.Contributed > maxOther {
				maxOther = s.Contributed
			}
			continue
		}
		if leader == nil || s.Contributed > leader.Contributed {
			if leader != nil && leader.Contributed > maxOther {
				maxOther = leader.Contributed
			}
			leader = s
		} else if s.Contributed > maxOther {
			maxOther = s.Contributed
		}
	}
	if leader == nil || leader.Contributed <= maxOther {
		return 0
	}
	refund := leader.Contributed - maxOther
	leader.Contributed -= refund
	leader.Stack += refund
	if leader.AllIn && leader.Stack > 0 {
		leader.AllIn = false
	}
	return refund
}

// potWinners evaluates the eligible seats against the board and returns
// every seat holding the strongest hand. Truly identical hands tie.
func potWinners(pot SidePot, seats []*Seat, board []deck.Card) []int {
	var winners []int
	var best evaluator.Rank
	for _, idx := range pot.Eligible {
		rank := evaluator.EvaluateHole(seats[idx].Hole, board)
		if len(winners) == 0 {
			best = rank
			winners = []int{idx}
			continue
		}
		switch rank.Compare(best) {
		case 1:
			best = rank
			winners = winners[:0]
			winners = append(winners, idx)
		case 0:
			winners = append(winners, idx)
		}
	}
	return winners
}

// splitPot divides a pot among its winners. Remainder chips that do not
// divide evenly go to the winner closest to the dealer's immediate left,
// measured by clockwise seat distance, not slice order.
func splitPot(amount int, winners []int, dealer, numSeats int) map[int]int {
	shares := make(map[int]int, len(winners))
	if len(winners) == 0 || amount <= 0 {
		return shares
	}
	each := amount / len(winners)
	remainder := amount % len(winners)
	for _, w := range winners {
		shares[w] = each
	}
	if remainder > 0 {
		closest := winners[0]
		best := clockwiseFromDealer(winners[0], dealer, numSeats)
		for _, w := range winners[1:] {
			if d := clockwiseFromDealer(w, dealer, numSeats); d < best {
				best = d
				closest = w
			}
		}
		shares[closest] += remainder
	}
	return shares
}

// clockwiseFromDealer is the number of seats from the dealer's left to the
// given seat, so the small blind position is distance zero.
func clockwiseFromDealer(seat, dealer, numSeats int) int {
	return (seat - dealer - 1 + numSeats) % numSeats
}
