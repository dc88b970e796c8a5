package server

import "judgement/internal/engine"

type ScoreDelta struct {
	Email string `json:"email"`
	Delta int    `json:"delta"`
	Score int    `json:"score"`
}

type EventPayload struct {
	Round  int          `json:"round,omitempty"`
	Email  string       `json:"email,omitempty"`
	Deltas []ScoreDelta `json:"deltas,omitempty"`
}

// buildEvents derives client events from the committed transition. Both
// snapshots are already-cloned copies so the diff never races a mutation.
func buildEvents(prev, next *engine.Game) []Event {
	events := []Event{}

	if len(prev.Rounds) == 0 && len(next.Rounds) > 0 {
		events = append(events, Event{Type: "game_started", Data: EventPayload{Round: next.CurrentRound}})
	}

	for i := range next.Rounds {
		nr := next.Rounds[i]
		var pr engine.Round
		if i < len(prev.Rounds) {
			pr = prev.Rounds[i]
		}
		switch {
		case pr.State != engine.StatePlaying && nr.State == engine.StatePlaying:
			events = append(events, Event{Type: "bids_locked", Data: EventPayload{Round: nr.Index}})
		case pr.State != engine.StateCompleted && nr.State == engine.StateCompleted:
			events = append(events, Event{Type: "round_scored", Data: EventPayload{Round: nr.Index, Deltas: scoreDeltas(prev, next)}})
		case pr.State != engine.StateBidding && nr.State == engine.StateBidding:
			events = append(events, Event{Type: "round_undone", Data: EventPayload{Round: nr.Index, Deltas: scoreDeltas(prev, next)}})
		}
	}

	if !prev.Over() && next.Over() {
		events = append(events, Event{Type: "game_over", Data: EventPayload{Round: next.FinalRound}})
	}
	return events
}

func scoreDeltas(prev, next *engine.Game) []ScoreDelta {
	deltas := []ScoreDelta{}
	for i, p := range next.Players {
		before := 0
		if i < len(prev.Players) {
			before = prev.Players[i].Score
		}
		if p.Score != before {
			deltas = append(deltas, ScoreDelta{Email: p.Email, Delta: p.Score - before, Score: p.Score})
		}
	}
	return deltas
}
