package engine

// MissedSentinel is the wire value meaning "missed their bid, exact trick
// count not recorded". It is converted to an Outcome with no count at the
// boundary and never stored.
const MissedSentinel = -1

// SubmitTricks validates the submitted trick results for the active round,
// applies score deltas, completes the round and advances the game. All
// checks run before any commit.
//
// Each raw value is either MissedSentinel or the exact number of tricks the
// player took. A player scores bid+cards when the exact count equals their
// bid, and nothing otherwise.
func SubmitTricks(g *Game, raw map[string]int) error {
	round, err := g.Current()
	if err != nil {
		return err
	}
	if round.State != StatePlaying {
		return &RoundStateError{Index: round.Index, State: round.State, Want: StatePlaying}
	}

	for email := range raw {
		if _, ok := g.Player(email); !ok {
			return &PlayerNotFoundError{Email: email}
		}
	}

	for _, p := range g.Players {
		v, ok := raw[p.Email]
		if !ok {
			return &InvalidTricksError{Reason: TricksMissing, Email: p.Email, Cards: round.Cards}
		}
		if v < 0 && v != MissedSentinel {
			return &InvalidTricksError{Reason: TricksNegative, Email: p.Email, Cards: round.Cards}
		}
	}

	madeSum := 0
	anyMissed := false
	for _, p := range g.Players {
		v := raw[p.Email]
		if v == MissedSentinel {
			anyMissed = true
		} else if v == round.Bids[p.Email] {
			madeSum += v
		}
	}
	if madeSum > round.Cards {
		return &InvalidTricksError{Reason: TricksOversubscribed, MadeSum: madeSum, Cards: round.Cards}
	}
	if madeSum == round.Cards {
		// Every trick is accounted for by made bids, so a zero bidder marked
		// missed would have taken a trick that does not exist.
		for _, p := range g.Players {
			if round.Bids[p.Email] == 0 && raw[p.Email] == MissedSentinel {
				return &InvalidTricksError{Reason: TricksContradictory, Email: p.Email, MadeSum: madeSum, Cards: round.Cards}
			}
		}
	}
	if !anyMissed && madeSum != round.Cards {
		return &InvalidTricksError{Reason: TricksUnaccounted, MadeSum: madeSum, Cards: round.Cards}
	}

	outcomes := make(map[string]Outcome, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		v := raw[p.Email]
		if v == MissedSentinel {
			outcomes[p.Email] = Outcome{Made: false}
			continue
		}
		n := v
		made := v == round.Bids[p.Email]
		outcomes[p.Email] = Outcome{Made: made, Tricks: &n}
		if made {
			p.Score += round.Bids[p.Email] + round.Cards
		}
	}

	round.Outcomes = outcomes
	round.State = StateCompleted
	g.advance(round.Index)
	return nil
}

// advance moves CurrentRound past a just-completed round, pinning it at the
// final round once the game is over.
func (g *Game) advance(completed int) {
	if completed >= g.FinalRound {
		g.CurrentRound = g.FinalRound
		return
	}
	g.CurrentRound = completed + 1
	if g.CurrentRound > g.FinalRound {
		g.CurrentRound = g.FinalRound
	}
}
