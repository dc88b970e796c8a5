package engine

import (
	"errors"
	"testing"
)

func TestUndoCompletedFinalRound(t *testing.T) {
	g := newTestGame(t, 3, 6)
	for i := 0; i < 2; i++ {
		completeRound(t, g)
	}
	// Final round deals one card: p1 bids 1 and makes it for +2 (bid 1 + cards 1).
	if err := SubmitBids(g, map[string]string{"p0@test": "0", "p1@test": "1", "p2@test": "1"}); err != nil {
		t.Fatalf("bids: %v", err)
	}
	if err := SubmitTricks(g, map[string]int{"p0@test": 0, "p1@test": 1, "p2@test": MissedSentinel}); err != nil {
		t.Fatalf("tricks: %v", err)
	}

	p1, _ := g.Player("p1@test")
	before := p1.Score
	if err := UndoRound(g, g.CurrentRound); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if p1.Score != before-2 {
		t.Fatalf("p1 score: got %d, want %d", p1.Score, before-2)
	}

	round, _ := g.Round(g.CurrentRound)
	if round.State != StateBidding || len(round.Bids) != 0 || len(round.Outcomes) != 0 {
		t.Fatalf("round not reset: %v bids=%v outcomes=%v", round.State, round.Bids, round.Outcomes)
	}
	if g.CurrentRound != g.FinalRound {
		t.Fatalf("undo must not rewind the round pointer, got %d", g.CurrentRound)
	}
}

func TestUndoFloorsScoreAtZero(t *testing.T) {
	g := newTestGame(t, 3, 6)
	if err := SubmitBids(g, map[string]string{"p0@test": "2", "p1@test": "0", "p2@test": "1"}); err != nil {
		t.Fatalf("bids: %v", err)
	}
	if err := SubmitTricks(g, map[string]int{"p0@test": 2, "p1@test": 0, "p2@test": MissedSentinel}); err != nil {
		t.Fatalf("tricks: %v", err)
	}
	// Simulate an upstream defect: the banked score is smaller than the delta.
	p0, _ := g.Player("p0@test")
	p0.Score = 1
	g.CurrentRound = 1
	round, _ := g.Round(1)
	round.State = StateCompleted

	if err := UndoRound(g, 1); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if p0.Score != 0 {
		t.Fatalf("score must floor at zero, got %d", p0.Score)
	}
}

func TestUndoActiveBiddingRoundResets(t *testing.T) {
	g := newTestGame(t, 3, 6)
	if err := UndoRound(g, 1); err != nil {
		t.Fatalf("undo of a bidding round should reset cleanly: %v", err)
	}
	round, _ := g.Round(1)
	if round.State != StateBidding {
		t.Fatalf("round state: got %v", round.State)
	}
}

func TestUndoRejectsNonCurrentRound(t *testing.T) {
	g := newTestGame(t, 3, 6)
	completeRound(t, g) // current is now round 2

	err := UndoRound(g, 1)
	var targetErr *InvalidUndoTargetError
	if !errors.As(err, &targetErr) {
		t.Fatalf("expected InvalidUndoTarget, got %v", err)
	}
	if targetErr.Target != 1 || targetErr.Current != 2 {
		t.Fatalf("error should carry target and current: %+v", targetErr)
	}

	err = UndoRound(g, 99)
	var nfErr *RoundNotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected RoundNotFound, got %v", err)
	}
}

func TestUndoThenReplayRound(t *testing.T) {
	g := newTestGame(t, 3, 6)
	if err := SubmitBids(g, map[string]string{"p0@test": "1", "p1@test": "0", "p2@test": "0"}); err != nil {
		t.Fatalf("bids: %v", err)
	}
	if err := UndoRound(g, 1); err != nil {
		t.Fatalf("undo: %v", err)
	}
	// The same round replays from scratch with different bids.
	if err := SubmitBids(g, map[string]string{"p0@test": "0", "p1@test": "0", "p2@test": "1"}); err != nil {
		t.Fatalf("replay bids: %v", err)
	}
	round, _ := g.Round(1)
	if round.State != StatePlaying || round.Bids["p2@test"] != 1 {
		t.Fatalf("replayed bids not committed: %v %v", round.State, round.Bids)
	}
}
