package sim

import (
	"fmt"
	"math/rand"

	"judgement/internal/engine"
)

type stepRecord struct {
	Round int
	Kind  string
	Input string
}

// RunFullGame plays an entire game with randomly generated but legal bid
// sets and trick results, checking aggregate invariants after every commit.
// It returns an error describing the seed and the trailing steps when the
// engine misbehaves.
func RunFullGame(seed int64, numPlayers, deckSize int) error {
	rng := rand.New(rand.NewSource(seed))

	g := engine.NewGame(fmt.Sprintf("sim-%d", seed), engine.Config{DeckSize: deckSize})
	for i := 0; i < numPlayers; i++ {
		email := fmt.Sprintf("p%d@sim", i)
		if err := g.AddPlayer(email, fmt.Sprintf("Player %d", i), ""); err != nil {
			return err
		}
	}
	if err := g.Start(); err != nil {
		return err
	}

	records := []stepRecord{}
	for !g.Over() {
		round, err := g.Current()
		if err != nil {
			return failure(seed, records, err.Error())
		}
		idx := round.Index

		bids := randomBids(rng, g, round)
		if err := engine.SubmitBids(g, bids); err != nil {
			return failure(seed, records, fmt.Sprintf("bids rejected: %v (%v)", err, bids))
		}
		records = append(records, stepRecord{Round: idx, Kind: "bids", Input: fmt.Sprint(bids)})
		if err := checkInvariants(g); err != nil {
			return failure(seed, records, err.Error())
		}

		// Occasionally undo the bids and re-submit to exercise the revert path.
		if rng.Intn(4) == 0 {
			if err := engine.UndoRound(g, idx); err != nil {
				return failure(seed, records, fmt.Sprintf("undo rejected: %v", err))
			}
			records = append(records, stepRecord{Round: idx, Kind: "undo"})
			if err := engine.SubmitBids(g, bids); err != nil {
				return failure(seed, records, fmt.Sprintf("re-bid rejected: %v", err))
			}
		}

		tricks := randomTricks(rng, g, round)
		if err := engine.SubmitTricks(g, tricks); err != nil {
			return failure(seed, records, fmt.Sprintf("tricks rejected: %v (%v)", err, tricks))
		}
		records = append(records, stepRecord{Round: idx, Kind: "tricks", Input: fmt.Sprint(tricks)})
		if err := checkInvariants(g); err != nil {
			return failure(seed, records, err.Error())
		}
	}

	if g.CurrentRound != g.FinalRound {
		return failure(seed, records, fmt.Sprintf("finished at round %d, want %d", g.CurrentRound, g.FinalRound))
	}
	return nil
}

// randomBids draws a bid per player, re-rolling the dealer away from the
// one value the hook rule forbids.
func randomBids(rng *rand.Rand, g *engine.Game, round *engine.Round) map[string]string {
	dealer := engine.DealerIndex(round.Index, len(g.Players))
	bids := make(map[string]string, len(g.Players))
	othersSum := 0
	for i, p := range g.Players {
		if i == dealer {
			continue
		}
		b := rng.Intn(round.Cards + 1)
		bids[p.Email] = fmt.Sprint(b)
		othersSum += b
	}
	forbidden := engine.ForbiddenDealerBid(othersSum, round.Cards)
	for {
		b := rng.Intn(round.Cards + 1)
		if b != forbidden {
			bids[g.Players[dealer].Email] = fmt.Sprint(b)
			return bids
		}
	}
}

// randomTricks builds a consistent result set: players are admitted as
// "made" while their bids still fit into the tricks available, everyone
// else is marked missed, and at least one player always misses.
func randomTricks(rng *rand.Rand, g *engine.Game, round *engine.Round) map[string]int {
	order := rng.Perm(len(g.Players))
	tricks := make(map[string]int, len(g.Players))
	made := map[string]bool{}
	madeSum := 0
	for _, i := range order {
		p := g.Players[i]
		bid := round.Bids[p.Email]
		if madeSum+bid <= round.Cards {
			tricks[p.Email] = bid
			made[p.Email] = true
			madeSum += bid
		} else {
			tricks[p.Email] = engine.MissedSentinel
		}
	}
	if len(made) == len(g.Players) {
		// The hook rule keeps the bid sum away from the trick count, so a
		// non-zero bidder exists whenever madeSum reached the cap.
		for _, p := range g.Players {
			bid := round.Bids[p.Email]
			if bid > 0 || madeSum < round.Cards {
				tricks[p.Email] = engine.MissedSentinel
				break
			}
		}
	}
	return tricks
}

func checkInvariants(g *engine.Game) error {
	if g.CurrentRound < 1 || g.CurrentRound > g.FinalRound {
		return fmt.Errorf("current round %d outside 1..%d", g.CurrentRound, g.FinalRound)
	}
	for _, r := range g.Rounds {
		switch {
		case r.Index < g.CurrentRound:
			if r.State != engine.StateCompleted {
				return fmt.Errorf("round %d is %v but round %d is current", r.Index, r.State, g.CurrentRound)
			}
		case r.Index > g.CurrentRound:
			if r.State != engine.StateBidding || len(r.Bids) != 0 || len(r.Outcomes) != 0 {
				return fmt.Errorf("future round %d already has state", r.Index)
			}
		}
		switch r.State {
		case engine.StateBidding:
			if len(r.Bids) != 0 || len(r.Outcomes) != 0 {
				return fmt.Errorf("bidding round %d carries bids or outcomes", r.Index)
			}
		case engine.StatePlaying:
			if len(r.Bids) != len(g.Players) || len(r.Outcomes) != 0 {
				return fmt.Errorf("playing round %d has partial state", r.Index)
			}
		case engine.StateCompleted:
			if len(r.Bids) != len(g.Players) || len(r.Outcomes) != len(g.Players) {
				return fmt.Errorf("completed round %d has partial state", r.Index)
			}
		}
	}
	for _, p := range g.Players {
		if p.Score < 0 {
			return fmt.Errorf("negative score for %s: %d", p.Email, p.Score)
		}
	}
	return nil
}

func failure(seed int64, records []stepRecord, reason string) error {
	start := 0
	if len(records) > 10 {
		start = len(records) - 10
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[r%d %s] %s\n", r.Round, r.Kind, r.Input)
	}
	return fmt.Errorf("seed=%d reason=%s\nlast steps:\n%s", seed, reason, log)
}
