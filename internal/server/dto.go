package server

import (
	"errors"

	"judgement/internal/engine"
)

// ClientMessage is the wire envelope for every request. Type selects the
// payload fields that apply; ToRequest turns the envelope into one of the
// closed set of typed requests.
type ClientMessage struct {
	Type      string            `json:"type"`
	RequestID string            `json:"requestId,omitempty"`
	Bids      map[string]string `json:"bids,omitempty"`
	Tricks    map[string]int    `json:"tricks,omitempty"`
	Target    int               `json:"target,omitempty"`
	Email     string            `json:"email,omitempty"`
}

type ServerMessage struct {
	Type       string          `json:"type"`
	State      *GameView       `json:"state,omitempty"`
	Events     []Event         `json:"events,omitempty"`
	Prediction *PredictionView `json:"prediction,omitempty"`
	Error      *ErrorView      `json:"error,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Request is the closed union of engine-facing actions.
type Request interface{ isRequest() }

type StartGame struct{}

// SubmitBids carries raw per-player bid inputs; the engine parses and
// range-checks them.
type SubmitBids struct {
	Bids map[string]string
}

// SubmitTricks carries per-player trick results in the wire encoding,
// where engine.MissedSentinel means "missed, count not recorded".
type SubmitTricks struct {
	Tricks map[string]int
}

type UndoRound struct {
	Target int
}

type RequestState struct{}

// RequestPrediction asks for the strategic hints of one player; Email
// defaults to the requesting connection's identity.
type RequestPrediction struct {
	Email string
}

func (StartGame) isRequest()         {}
func (SubmitBids) isRequest()        {}
func (SubmitTricks) isRequest()      {}
func (UndoRound) isRequest()         {}
func (RequestState) isRequest()      {}
func (RequestPrediction) isRequest() {}

func (m ClientMessage) ToRequest() (Request, error) {
	switch m.Type {
	case "start_game":
		return StartGame{}, nil
	case "submit_bids":
		if len(m.Bids) == 0 {
			return nil, errors.New("bids required")
		}
		return SubmitBids{Bids: m.Bids}, nil
	case "submit_tricks":
		if len(m.Tricks) == 0 {
			return nil, errors.New("tricks required")
		}
		return SubmitTricks{Tricks: m.Tricks}, nil
	case "undo_round":
		if m.Target < 1 {
			return nil, errors.New("target round required")
		}
		return UndoRound{Target: m.Target}, nil
	case "request_state":
		return RequestState{}, nil
	case "prediction":
		return RequestPrediction{Email: m.Email}, nil
	default:
		return nil, errors.New("unknown message type")
	}
}

// OutcomeToWire renders a stored outcome back into the wire encoding.
func OutcomeToWire(o engine.Outcome) int {
	if o.Tricks != nil {
		return *o.Tricks
	}
	return engine.MissedSentinel
}

// errorCode maps engine errors onto stable wire codes the UI can branch on.
func errorCode(err error) string {
	var (
		cfgErr    *engine.InvalidConfigurationError
		bidErr    *engine.InvalidBidError
		dealerErr *engine.DealerConstraintError
		trickErr  *engine.InvalidTricksError
		rnfErr    *engine.RoundNotFoundError
		stateErr  *engine.RoundStateError
		undoErr   *engine.InvalidUndoTargetError
		playerErr *engine.PlayerNotFoundError
		startErr  *engine.GameStartedError
	)
	switch {
	case errors.As(err, &cfgErr):
		return "invalid_configuration"
	case errors.As(err, &bidErr):
		return "invalid_bid"
	case errors.As(err, &dealerErr):
		return "dealer_constraint_violation"
	case errors.As(err, &trickErr):
		return "invalid_trick_submission"
	case errors.As(err, &rnfErr):
		return "round_not_found"
	case errors.As(err, &stateErr):
		return "round_state"
	case errors.As(err, &undoErr):
		return "invalid_undo_target"
	case errors.As(err, &playerErr):
		return "player_not_found"
	case errors.As(err, &startErr):
		return "game_started"
	default:
		return "engine_error"
	}
}
