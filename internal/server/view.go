package server

import "judgement/internal/engine"

type PlayerView struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Score  int    `json:"score"`
}

type RoundView struct {
	Index  int            `json:"index"`
	Cards  int            `json:"cards"`
	Trump  string         `json:"trump"`
	State  string         `json:"state"`
	Dealer string         `json:"dealer"`
	Bids   map[string]int `json:"bids"`
	Tricks map[string]int `json:"tricks"`
}

type GameView struct {
	ID           string       `json:"id"`
	Players      []PlayerView `json:"players"`
	Rounds       []RoundView  `json:"rounds"`
	CurrentRound int          `json:"currentRound"`
	FinalRound   int          `json:"finalRound"`
	GameOver     bool         `json:"gameOver"`
}

type CatchUpView struct {
	TargetName               string `json:"targetName"`
	Gap                      int    `json:"gap"`
	TiedWithTarget           bool   `json:"tiedWithTarget"`
	MinBidIfTargetMisses     int    `json:"minBidIfTargetMisses"`
	ImpossibleIfTargetMisses bool   `json:"impossibleIfTargetMisses"`
	MinBidIfTargetMakes      int    `json:"minBidIfTargetMakes"`
	ImpossibleIfTargetMakes  bool   `json:"impossibleIfTargetMakes"`
}

type StayAheadView struct {
	TargetName  string `json:"targetName"`
	Gap         int    `json:"gap"`
	RequiredBid int    `json:"requiredBid"`
	YouAreSafe  bool   `json:"youAreSafe"`
}

type WinConditionView struct {
	Kind string `json:"kind"`
	Gap  int    `json:"gap"`
}

type PredictionView struct {
	Show         bool              `json:"show"`
	Position     int               `json:"position,omitempty"`
	TiedWith     []string          `json:"tiedWith,omitempty"`
	CatchUp      *CatchUpView      `json:"catchUp,omitempty"`
	StayAhead    *StayAheadView    `json:"stayAhead,omitempty"`
	WinCondition *WinConditionView `json:"winCondition,omitempty"`
	IsEliminated bool              `json:"isEliminated,omitempty"`
}

func BuildGameView(g *engine.Game) *GameView {
	players := make([]PlayerView, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, PlayerView{Email: p.Email, Name: p.Name, Avatar: p.Avatar, Score: p.Score})
	}

	rounds := make([]RoundView, 0, len(g.Rounds))
	for _, r := range g.Rounds {
		bids := make(map[string]int, len(r.Bids))
		for email, b := range r.Bids {
			bids[email] = b
		}
		tricks := make(map[string]int, len(r.Outcomes))
		for email, o := range r.Outcomes {
			tricks[email] = OutcomeToWire(o)
		}
		dealer := ""
		if len(g.Players) > 0 {
			dealer = g.Players[engine.DealerIndex(r.Index, len(g.Players))].Email
		}
		rounds = append(rounds, RoundView{
			Index:  r.Index,
			Cards:  r.Cards,
			Trump:  r.Trump.String(),
			State:  r.State.String(),
			Dealer: dealer,
			Bids:   bids,
			Tricks: tricks,
		})
	}

	return &GameView{
		ID:           g.ID,
		Players:      players,
		Rounds:       rounds,
		CurrentRound: g.CurrentRound,
		FinalRound:   g.FinalRound,
		GameOver:     g.Over(),
	}
}

func BuildPredictionView(p engine.Prediction) *PredictionView {
	view := &PredictionView{
		Show:         p.Show,
		Position:     p.Position,
		TiedWith:     p.TiedWith,
		IsEliminated: p.IsEliminated,
	}
	if p.CatchUp != nil {
		view.CatchUp = &CatchUpView{
			TargetName:               p.CatchUp.TargetName,
			Gap:                      p.CatchUp.Gap,
			TiedWithTarget:           p.CatchUp.TiedWithTarget,
			MinBidIfTargetMisses:     p.CatchUp.MinBidIfTargetMisses,
			ImpossibleIfTargetMisses: p.CatchUp.ImpossibleIfTargetMisses,
			MinBidIfTargetMakes:      p.CatchUp.MinBidIfTargetMakes,
			ImpossibleIfTargetMakes:  p.CatchUp.ImpossibleIfTargetMakes,
		}
	}
	if p.StayAhead != nil {
		view.StayAhead = &StayAheadView{
			TargetName:  p.StayAhead.TargetName,
			Gap:         p.StayAhead.Gap,
			RequiredBid: p.StayAhead.RequiredBid,
			YouAreSafe:  p.StayAhead.YouAreSafe,
		}
	}
	if p.WinCondition != nil {
		view.WinCondition = &WinConditionView{
			Kind: string(p.WinCondition.Kind),
			Gap:  p.WinCondition.Gap,
		}
	}
	return view
}
