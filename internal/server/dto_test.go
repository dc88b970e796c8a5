package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgement/internal/engine"
)

func TestToRequestUnion(t *testing.T) {
	req, err := ClientMessage{Type: "start_game"}.ToRequest()
	require.NoError(t, err)
	assert.IsType(t, StartGame{}, req)

	req, err = ClientMessage{Type: "submit_bids", Bids: map[string]string{"a@x": "2"}}.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, SubmitBids{Bids: map[string]string{"a@x": "2"}}, req)

	req, err = ClientMessage{Type: "submit_tricks", Tricks: map[string]int{"a@x": -1}}.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, SubmitTricks{Tricks: map[string]int{"a@x": -1}}, req)

	req, err = ClientMessage{Type: "undo_round", Target: 3}.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, UndoRound{Target: 3}, req)

	req, err = ClientMessage{Type: "prediction", Email: "a@x"}.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, RequestPrediction{Email: "a@x"}, req)
}

func TestToRequestRejectsBadEnvelopes(t *testing.T) {
	cases := []ClientMessage{
		{Type: "launch_missiles"},
		{Type: "submit_bids"},
		{Type: "submit_tricks"},
		{Type: "undo_round"},
		{Type: "undo_round", Target: -2},
	}
	for _, msg := range cases {
		_, err := msg.ToRequest()
		assert.Error(t, err, "envelope %+v should be rejected", msg)
	}
}

func TestOutcomeToWire(t *testing.T) {
	two := 2
	assert.Equal(t, 2, OutcomeToWire(engine.Outcome{Made: true, Tricks: &two}))
	zero := 0
	assert.Equal(t, 0, OutcomeToWire(engine.Outcome{Made: false, Tricks: &zero}))
	assert.Equal(t, engine.MissedSentinel, OutcomeToWire(engine.Outcome{Made: false}))
}

func TestErrorCodes(t *testing.T) {
	cases := map[string]error{
		"invalid_configuration":       &engine.InvalidConfigurationError{NumPlayers: 9, DeckSize: 6},
		"invalid_bid":                 &engine.InvalidBidError{Email: "a@x", Reason: engine.BidMissing},
		"dealer_constraint_violation": &engine.DealerConstraintError{Dealer: "a@x", Sum: 3, Cards: 3},
		"invalid_trick_submission":    &engine.InvalidTricksError{Reason: engine.TricksOversubscribed},
		"round_not_found":             &engine.RoundNotFoundError{Index: 9},
		"invalid_undo_target":         &engine.InvalidUndoTargetError{Target: 1, Current: 2},
		"player_not_found":            &engine.PlayerNotFoundError{Email: "a@x"},
		"game_started":                &engine.GameStartedError{Email: "a@x"},
	}
	for code, err := range cases {
		assert.Equal(t, code, errorCode(err), "error %v", err)
	}
}
