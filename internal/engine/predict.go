package engine

import "sort"

type WinKind string

const (
	WinTied           WinKind = "tied-any-made-bid-wins"
	WinGuaranteed     WinKind = "guaranteed"
	WinIfOthersMiss   WinKind = "win-if-others-miss"
	WinLeadMaintained WinKind = "lead-maintained"
)

// CatchUp describes the bid needed to overtake the player immediately
// above. The "if they miss" figure is the primary hint; the "if they make"
// figure is the stricter guarantee.
type CatchUp struct {
	TargetName               string
	Gap                      int
	TiedWithTarget           bool
	MinBidIfTargetMisses     int
	ImpossibleIfTargetMisses bool
	MinBidIfTargetMakes      int
	ImpossibleIfTargetMakes  bool
}

// StayAhead describes whether the player immediately below can overtake
// this round.
type StayAhead struct {
	TargetName  string
	Gap         int
	RequiredBid int
	YouAreSafe  bool
}

type WinCondition struct {
	Kind WinKind
	Gap  int
}

type Prediction struct {
	Show         bool
	Position     int
	TiedWith     []string
	CatchUp      *CatchUp
	StayAhead    *StayAhead
	WinCondition *WinCondition
	IsEliminated bool
}

// Predict computes standings-derived hints for one player. It reads only
// the snapshot it is given and never mutates, so it is safe to call
// concurrently with game mutations.
func Predict(email string, players []Player, cardsPerPlayer int, finalRound bool) Prediction {
	anyScore := false
	for _, p := range players {
		if p.Score > 0 {
			anyScore = true
			break
		}
	}
	if !anyScore {
		return Prediction{}
	}

	sorted := append([]Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	idx := -1
	for i, p := range sorted {
		if p.Email == email {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Prediction{}
	}
	me := sorted[idx]

	pred := Prediction{Show: true, Position: 1}
	for _, p := range sorted {
		if p.Score > me.Score {
			pred.Position++
		}
		if p.Email != me.Email && p.Score == me.Score {
			pred.TiedWith = append(pred.TiedWith, p.Name)
		}
	}

	maxBid := cardsPerPlayer
	maxSwing := maxBid + cardsPerPlayer

	if pred.Position > 1 {
		target := sorted[idx-1]
		cu := &CatchUp{TargetName: target.Name, Gap: target.Score - me.Score}
		if cu.Gap == 0 {
			cu.TiedWithTarget = true
		} else {
			cu.MinBidIfTargetMisses = clampBid(cu.Gap + 1 - cardsPerPlayer)
			cu.ImpossibleIfTargetMisses = cu.MinBidIfTargetMisses > maxBid
			cu.MinBidIfTargetMakes = clampBid(cu.Gap + 1)
			cu.ImpossibleIfTargetMakes = cu.MinBidIfTargetMakes > maxBid
		}
		pred.CatchUp = cu

		if finalRound && me.Score+maxSwing < target.Score {
			pred.IsEliminated = true
		}
	}

	if idx < len(sorted)-1 {
		target := sorted[idx+1]
		sa := &StayAhead{TargetName: target.Name, Gap: me.Score - target.Score}
		sa.RequiredBid = clampBid(sa.Gap + 1 - cardsPerPlayer)
		sa.YouAreSafe = sa.Gap+1-cardsPerPlayer > maxBid
		pred.StayAhead = sa
	}

	if pred.Position == 1 {
		wc := &WinCondition{}
		switch {
		case len(pred.TiedWith) > 0:
			wc.Kind = WinTied
		case idx+1 >= len(sorted):
			wc.Kind = WinGuaranteed
		default:
			wc.Gap = me.Score - sorted[idx+1].Score
			switch {
			case wc.Gap > maxSwing:
				wc.Kind = WinGuaranteed
			case finalRound && wc.Gap > 0:
				wc.Kind = WinIfOthersMiss
			default:
				wc.Kind = WinLeadMaintained
			}
		}
		pred.WinCondition = wc
	}

	return pred
}

func clampBid(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
