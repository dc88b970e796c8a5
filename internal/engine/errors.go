package engine

import "fmt"

type InvalidConfigurationError struct {
	NumPlayers int
	DeckSize   int
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %d players cannot be dealt from a %d-card deck", e.NumPlayers, e.DeckSize)
}

type BidReason string

const (
	BidMissing    BidReason = "missing"
	BidNotANumber BidReason = "non-numeric"
	BidOutOfRange BidReason = "out-of-range"
)

type InvalidBidError struct {
	Email  string
	Reason BidReason
	Value  string
	Cards  int
}

func (e *InvalidBidError) Error() string {
	switch e.Reason {
	case BidMissing:
		return fmt.Sprintf("invalid bid: no bid from %s", e.Email)
	case BidNotANumber:
		return fmt.Sprintf("invalid bid: %q from %s is not a number", e.Value, e.Email)
	default:
		return fmt.Sprintf("invalid bid: %q from %s is outside 0..%d", e.Value, e.Email, e.Cards)
	}
}

// DealerConstraintError rejects a bid set whose sum equals the cards dealt;
// the hook rule guarantees at least one player misses every round.
type DealerConstraintError struct {
	Dealer string
	Sum    int
	Cards  int
}

func (e *DealerConstraintError) Error() string {
	return fmt.Sprintf("bids sum to %d which equals the %d cards dealt; dealer %s must bid differently", e.Sum, e.Cards, e.Dealer)
}

type TrickReason string

const (
	TricksMissing        TrickReason = "missing"
	TricksNegative       TrickReason = "negative"
	TricksOversubscribed TrickReason = "oversubscribed"
	TricksUnaccounted    TrickReason = "unaccounted"
	TricksContradictory  TrickReason = "contradictory-zero-bid-miss"
)

type InvalidTricksError struct {
	Reason  TrickReason
	Email   string
	MadeSum int
	Cards   int
}

func (e *InvalidTricksError) Error() string {
	switch e.Reason {
	case TricksMissing:
		return fmt.Sprintf("invalid tricks: no result for %s", e.Email)
	case TricksNegative:
		return fmt.Sprintf("invalid tricks: negative count for %s", e.Email)
	case TricksOversubscribed:
		return fmt.Sprintf("invalid tricks: made bids account for %d tricks but only %d were played", e.MadeSum, e.Cards)
	case TricksUnaccounted:
		return fmt.Sprintf("invalid tricks: nobody missed yet made bids account for %d of %d tricks", e.MadeSum, e.Cards)
	default:
		return fmt.Sprintf("invalid tricks: %s bid zero and cannot have missed when all %d tricks are accounted for", e.Email, e.Cards)
	}
}

type RoundNotFoundError struct {
	Index int
}

func (e *RoundNotFoundError) Error() string {
	return fmt.Sprintf("round %d does not exist", e.Index)
}

type RoundStateError struct {
	Index int
	State RoundState
	Want  RoundState
}

func (e *RoundStateError) Error() string {
	return fmt.Sprintf("round %d is %v, want %v", e.Index, e.State, e.Want)
}

type InvalidUndoTargetError struct {
	Target  int
	Current int
}

func (e *InvalidUndoTargetError) Error() string {
	return fmt.Sprintf("cannot undo round %d: only the active round %d may be undone", e.Target, e.Current)
}

type PlayerNotFoundError struct {
	Email string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player %s is not in this game", e.Email)
}

type GameStartedError struct {
	Email string
}

func (e *GameStartedError) Error() string {
	return fmt.Sprintf("player %s cannot join: the game has already started", e.Email)
}
