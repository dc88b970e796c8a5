package engine

// UndoRound reverts the active round to its pre-bidding state. A completed
// round (only ever the final one, since completion otherwise advances the
// game) also has its score deltas reversed, floored at zero. CurrentRound
// is unchanged: the same round is replayed, history does not rewind
// further.
func UndoRound(g *Game, target int) error {
	round, ok := g.Round(target)
	if !ok {
		return &RoundNotFoundError{Index: target}
	}
	if target != g.CurrentRound {
		return &InvalidUndoTargetError{Target: target, Current: g.CurrentRound}
	}

	if round.State == StateCompleted {
		for i := range g.Players {
			p := &g.Players[i]
			o, ok := round.Outcomes[p.Email]
			if !ok || !o.Made {
				continue
			}
			p.Score -= round.Bids[p.Email] + round.Cards
			if p.Score < 0 {
				p.Score = 0
			}
		}
	}

	round.Bids = map[string]int{}
	round.Outcomes = map[string]Outcome{}
	round.State = StateBidding
	return nil
}
