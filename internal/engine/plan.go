package engine

// trumpCycle is the fixed rotation applied from round 1 onward,
// independent of the cards dealt.
var trumpCycle = [5]Trump{TrumpSpades, TrumpDiamonds, TrumpClubs, TrumpHearts, TrumpNoTrump}

func TrumpForRound(index int) Trump {
	return trumpCycle[(index-1)%len(trumpCycle)]
}

// FinalRoundNumber is the last round actually played for a given deal plan.
func FinalRoundNumber(maxCards int) int {
	return 2*maxCards - 1
}

// DealerIndex returns the 0-based seat of the dealer for a 1-based round index.
func DealerIndex(roundIndex, numPlayers int) int {
	return (roundIndex - 1) % numPlayers
}

// GeneratePlan produces every round of a game up front: cards per player
// count down from the deck maximum to 1 and back up, with the trump cycle
// overlaid. The plan is deterministic, no external state.
func GeneratePlan(numPlayers, deckSize int) ([]Round, int, error) {
	if numPlayers < 3 || deckSize < 1 {
		return nil, 0, &InvalidConfigurationError{NumPlayers: numPlayers, DeckSize: deckSize}
	}
	maxCards := deckSize / numPlayers
	if maxCards < 1 {
		return nil, 0, &InvalidConfigurationError{NumPlayers: numPlayers, DeckSize: deckSize}
	}

	rounds := make([]Round, 0, 2*maxCards)
	cards := maxCards
	descending := true
	for i := 1; i <= 2*maxCards; i++ {
		rounds = append(rounds, Round{
			Index:    i,
			Cards:    cards,
			Trump:    TrumpForRound(i),
			State:    StateBidding,
			Bids:     map[string]int{},
			Outcomes: map[string]Outcome{},
		})
		if descending {
			if cards == 1 {
				descending = false
			} else {
				cards--
			}
		} else {
			cards++
		}
	}
	return rounds, FinalRoundNumber(maxCards), nil
}
