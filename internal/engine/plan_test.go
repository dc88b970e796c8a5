package engine

import "testing"

func TestGeneratePlanSmallDeck(t *testing.T) {
	rounds, final, err := GeneratePlan(3, 6)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if final != 3 {
		t.Fatalf("final round: got %d, want 3", final)
	}
	wantCards := []int{2, 1, 1, 2}
	wantTrumps := []Trump{TrumpSpades, TrumpDiamonds, TrumpClubs, TrumpHearts}
	if len(rounds) != len(wantCards) {
		t.Fatalf("round count: got %d, want %d", len(rounds), len(wantCards))
	}
	for i, r := range rounds {
		if r.Index != i+1 {
			t.Fatalf("round %d index: got %d", i, r.Index)
		}
		if r.Cards != wantCards[i] {
			t.Fatalf("round %d cards: got %d, want %d", r.Index, r.Cards, wantCards[i])
		}
		if r.Trump != wantTrumps[i] {
			t.Fatalf("round %d trump: got %v, want %v", r.Index, r.Trump, wantTrumps[i])
		}
		if r.State != StateBidding {
			t.Fatalf("round %d state: got %v", r.Index, r.State)
		}
	}
}

func TestGeneratePlanFullDeck(t *testing.T) {
	rounds, final, err := GeneratePlan(4, 52)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if final != 25 {
		t.Fatalf("final round: got %d, want 25", final)
	}
	if rounds[0].Cards != 13 || rounds[len(rounds)-1].Cards != 13 {
		t.Fatalf("plan should start and end at 13 cards, got %d and %d",
			rounds[0].Cards, rounds[len(rounds)-1].Cards)
	}
	for i, r := range rounds {
		if r.Trump != trumpCycle[i%5] {
			t.Fatalf("round %d trump: got %v", r.Index, r.Trump)
		}
	}
}

func TestGeneratePlanRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name       string
		numPlayers int
		deckSize   int
	}{
		{name: "too few players", numPlayers: 2, deckSize: 52},
		{name: "zero deck", numPlayers: 4, deckSize: 0},
		{name: "deck smaller than table", numPlayers: 7, deckSize: 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := GeneratePlan(tc.numPlayers, tc.deckSize)
			if err == nil {
				t.Fatalf("expected InvalidConfiguration for %d players deck %d", tc.numPlayers, tc.deckSize)
			}
			if _, ok := err.(*InvalidConfigurationError); !ok {
				t.Fatalf("wrong error type: %T", err)
			}
		})
	}
}

func TestDealerRotation(t *testing.T) {
	if DealerIndex(1, 4) != 0 {
		t.Fatalf("round 1 dealer should be seat 0, got %d", DealerIndex(1, 4))
	}
	if DealerIndex(5, 4) != 0 {
		t.Fatalf("round 5 dealer should wrap to seat 0, got %d", DealerIndex(5, 4))
	}
	if DealerIndex(3, 4) != 2 {
		t.Fatalf("round 3 dealer should be seat 2, got %d", DealerIndex(3, 4))
	}
}

func TestTrumpCycleWraps(t *testing.T) {
	if TrumpForRound(5) != TrumpNoTrump {
		t.Fatalf("round 5 should be no-trump, got %v", TrumpForRound(5))
	}
	if TrumpForRound(6) != TrumpSpades {
		t.Fatalf("round 6 should restart the cycle, got %v", TrumpForRound(6))
	}
}
