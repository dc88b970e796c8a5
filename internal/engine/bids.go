package engine

import (
	"strconv"
	"strings"
)

// SubmitBids validates every player's raw bid for the active round and
// commits the set atomically, moving the round from Bidding to Playing.
// Nothing is committed on any validation failure.
func SubmitBids(g *Game, raw map[string]string) error {
	round, err := g.Current()
	if err != nil {
		return err
	}
	if round.State != StateBidding {
		return &RoundStateError{Index: round.Index, State: round.State, Want: StateBidding}
	}

	for email := range raw {
		if _, ok := g.Player(email); !ok {
			return &PlayerNotFoundError{Email: email}
		}
	}

	bids := make(map[string]int, len(g.Players))
	sum := 0
	for _, p := range g.Players {
		v, ok := raw[p.Email]
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			return &InvalidBidError{Email: p.Email, Reason: BidMissing, Cards: round.Cards}
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			return &InvalidBidError{Email: p.Email, Reason: BidNotANumber, Value: v, Cards: round.Cards}
		}
		if n < 0 || n > round.Cards {
			return &InvalidBidError{Email: p.Email, Reason: BidOutOfRange, Value: v, Cards: round.Cards}
		}
		bids[p.Email] = n
		sum += n
	}

	if sum == round.Cards {
		dealer := g.Players[DealerIndex(round.Index, len(g.Players))]
		return &DealerConstraintError{Dealer: dealer.Email, Sum: sum, Cards: round.Cards}
	}

	round.Bids = bids
	round.State = StatePlaying
	return nil
}

// ForbiddenDealerBid returns the single bid value the dealer may not make
// given everyone else's bids, or -1 when every value is open (the others
// already overshoot the cards dealt).
func ForbiddenDealerBid(othersSum, cards int) int {
	if othersSum > cards {
		return -1
	}
	return cards - othersSum
}
