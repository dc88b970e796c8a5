package engine

import "testing"

func standings(scores ...int) []Player {
	players := make([]Player, len(scores))
	for i, s := range scores {
		players[i] = Player{
			Email: []string{"a@x", "b@x", "c@x", "d@x"}[i],
			Name:  []string{"Ann", "Ben", "Cam", "Dee"}[i],
			Score: s,
		}
	}
	return players
}

func TestPredictHiddenWhenNothingScored(t *testing.T) {
	p := Predict("a@x", standings(0, 0, 0), 5, false)
	if p.Show {
		t.Fatalf("prediction should hide before any score exists")
	}
}

func TestPredictHiddenForUnknownPlayer(t *testing.T) {
	p := Predict("nobody@x", standings(10, 5, 1), 5, false)
	if p.Show {
		t.Fatalf("unknown player must not get a prediction")
	}
}

func TestPredictTieAtTop(t *testing.T) {
	players := standings(50, 50, 20, 10)
	for _, email := range []string{"a@x", "b@x"} {
		p := Predict(email, players, 5, false)
		if !p.Show || p.Position != 1 {
			t.Fatalf("%s position: got %d, want 1", email, p.Position)
		}
		if len(p.TiedWith) != 1 {
			t.Fatalf("%s tiedWith: got %v", email, p.TiedWith)
		}
		if p.WinCondition == nil || p.WinCondition.Kind != WinTied {
			t.Fatalf("%s winCondition: got %+v", email, p.WinCondition)
		}
		if p.CatchUp != nil {
			t.Fatalf("leader should have no catch-up hint")
		}
	}
}

func TestPredictCatchUp(t *testing.T) {
	// Ben trails Ann by 10 with 5 cards this round.
	p := Predict("b@x", standings(60, 50, 20, 10), 5, false)
	if p.Position != 2 {
		t.Fatalf("position: got %d, want 2", p.Position)
	}
	cu := p.CatchUp
	if cu == nil || cu.TargetName != "Ann" || cu.Gap != 10 {
		t.Fatalf("catchUp target: %+v", cu)
	}
	// If Ann misses: bid >= 10+1-5 = 6, above the 5-card max.
	if cu.MinBidIfTargetMisses != 6 || !cu.ImpossibleIfTargetMisses {
		t.Fatalf("miss scenario: %+v", cu)
	}
	// If Ann makes: bid >= 11, impossible too.
	if cu.MinBidIfTargetMakes != 11 || !cu.ImpossibleIfTargetMakes {
		t.Fatalf("make scenario: %+v", cu)
	}

	// A 3-point gap is closeable even if the target makes.
	p = Predict("b@x", standings(53, 50, 20, 10), 5, false)
	cu = p.CatchUp
	if cu.MinBidIfTargetMisses != 0 || cu.ImpossibleIfTargetMisses {
		t.Fatalf("close miss scenario: %+v", cu)
	}
	if cu.MinBidIfTargetMakes != 4 || cu.ImpossibleIfTargetMakes {
		t.Fatalf("close make scenario: %+v", cu)
	}
}

func TestPredictCatchUpTiedTarget(t *testing.T) {
	p := Predict("c@x", standings(60, 20, 20, 10), 5, false)
	if p.Position != 2 {
		t.Fatalf("position: got %d, want 2", p.Position)
	}
	if p.CatchUp == nil || !p.CatchUp.TiedWithTarget || p.CatchUp.MinBidIfTargetMisses != 0 {
		t.Fatalf("tied catch-up: %+v", p.CatchUp)
	}
}

func TestPredictStayAhead(t *testing.T) {
	// Ann leads Ben by 12 with 5 cards: Ben needs bid >= 8, impossible.
	p := Predict("a@x", standings(62, 50, 20, 10), 5, false)
	sa := p.StayAhead
	if sa == nil || sa.TargetName != "Ben" || sa.Gap != 12 {
		t.Fatalf("stayAhead target: %+v", sa)
	}
	if sa.RequiredBid != 8 || !sa.YouAreSafe {
		t.Fatalf("stayAhead figures: %+v", sa)
	}

	// A 2-point lead is not safe.
	p = Predict("a@x", standings(52, 50, 20, 10), 5, false)
	if p.StayAhead.YouAreSafe {
		t.Fatalf("narrow lead reported safe")
	}

	// Last place has nobody below.
	p = Predict("d@x", standings(62, 50, 20, 10), 5, false)
	if p.StayAhead != nil {
		t.Fatalf("last place should have no stay-ahead hint")
	}
}

func TestPredictWinCondition(t *testing.T) {
	// Gap 11 > max swing 10: guaranteed regardless of outcomes.
	p := Predict("a@x", standings(61, 50, 20, 10), 5, false)
	if p.WinCondition == nil || p.WinCondition.Kind != WinGuaranteed {
		t.Fatalf("guaranteed: %+v", p.WinCondition)
	}

	// Positive but closeable gap on the final round.
	p = Predict("a@x", standings(55, 50, 20, 10), 5, true)
	if p.WinCondition.Kind != WinIfOthersMiss {
		t.Fatalf("final round lead: %+v", p.WinCondition)
	}

	// Same gap mid-game just reports the lead.
	p = Predict("a@x", standings(55, 50, 20, 10), 5, false)
	if p.WinCondition.Kind != WinLeadMaintained || p.WinCondition.Gap != 5 {
		t.Fatalf("mid-game lead: %+v", p.WinCondition)
	}
}

func TestPredictElimination(t *testing.T) {
	// Dee trails Cam by 11 on the final 5-card round; max gain is 10.
	p := Predict("d@x", standings(60, 50, 21, 10), 5, true)
	if !p.IsEliminated {
		t.Fatalf("unreachable gap should eliminate")
	}

	// A gap of exactly the max swing can still be tied.
	p = Predict("d@x", standings(60, 50, 20, 10), 5, true)
	if p.IsEliminated {
		t.Fatalf("reachable gap must not eliminate")
	}

	// Never eliminated before the final round.
	p = Predict("d@x", standings(60, 50, 21, 10), 5, false)
	if p.IsEliminated {
		t.Fatalf("elimination only applies to the final round")
	}
}

func TestPredictDoesNotMutate(t *testing.T) {
	players := standings(10, 30, 20, 5)
	_ = Predict("a@x", players, 5, false)
	if players[0].Score != 10 || players[1].Email != "b@x" {
		t.Fatalf("input slice mutated: %+v", players)
	}
}
