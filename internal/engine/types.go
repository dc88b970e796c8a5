package engine

type Trump int

const (
	TrumpSpades Trump = iota
	TrumpDiamonds
	TrumpClubs
	TrumpHearts
	TrumpNoTrump
)

func (t Trump) String() string {
	switch t {
	case TrumpSpades:
		return "S"
	case TrumpDiamonds:
		return "D"
	case TrumpClubs:
		return "C"
	case TrumpHearts:
		return "H"
	case TrumpNoTrump:
		return "NT"
	default:
		return "?"
	}
}

type RoundState int

const (
	StateBidding RoundState = iota
	StatePlaying
	StateCompleted
)

func (s RoundState) String() string {
	switch s {
	case StateBidding:
		return "Bidding"
	case StatePlaying:
		return "Playing"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

type Player struct {
	Email  string
	Name   string
	Avatar string
	Score  int
}

// Outcome is one player's recorded result for a round. Made reports that
// the player took exactly as many tricks as they bid. Tricks holds the
// exact count when the table recorded one; a missed bid may be recorded
// without a count.
type Outcome struct {
	Made   bool
	Tricks *int
}

type Round struct {
	Index    int // 1-based
	Cards    int
	Trump    Trump
	State    RoundState
	Bids     map[string]int
	Outcomes map[string]Outcome
}

type Config struct {
	DeckSize int
}

func DefaultConfig() Config {
	return Config{DeckSize: 52}
}

type Game struct {
	ID      string
	Config  Config
	Players []Player
	Rounds  []Round

	// CurrentRound is the 1-based index of the only round allowed to be in
	// Bidding or Playing state; 0 until the game is started.
	CurrentRound int
	FinalRound   int
}

func NewGame(id string, cfg Config) *Game {
	if cfg.DeckSize == 0 {
		cfg = DefaultConfig()
	}
	return &Game{ID: id, Config: cfg}
}

// AddPlayer registers a player by email. Joining is idempotent; the seating
// order is append-only so the dealer rotation never reorders.
func (g *Game) AddPlayer(email, name, avatar string) error {
	if _, ok := g.Player(email); ok {
		return nil
	}
	if len(g.Rounds) > 0 {
		return &GameStartedError{Email: email}
	}
	g.Players = append(g.Players, Player{Email: email, Name: name, Avatar: avatar})
	return nil
}

func (g *Game) Player(email string) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].Email == email {
			return &g.Players[i], true
		}
	}
	return nil, false
}

func (g *Game) Round(index int) (*Round, bool) {
	if index < 1 || index > len(g.Rounds) {
		return nil, false
	}
	return &g.Rounds[index-1], true
}

// Current returns the active round.
func (g *Game) Current() (*Round, error) {
	r, ok := g.Round(g.CurrentRound)
	if !ok {
		return nil, &RoundNotFoundError{Index: g.CurrentRound}
	}
	return r, nil
}

// Over reports whether the final round has been completed.
func (g *Game) Over() bool {
	r, ok := g.Round(g.FinalRound)
	return ok && g.CurrentRound == g.FinalRound && r.State == StateCompleted
}

// Start generates the round plan and opens round 1 for bidding. Calling it
// on a game that already has rounds is a no-op so a retried start cannot
// wipe progress.
func (g *Game) Start() error {
	if len(g.Rounds) > 0 {
		return nil
	}
	rounds, final, err := GeneratePlan(len(g.Players), g.Config.DeckSize)
	if err != nil {
		return err
	}
	g.Rounds = rounds
	g.FinalRound = final
	g.CurrentRound = 1
	return nil
}

// Clone returns a deep copy of the game, used to hand snapshots to readers
// without sharing the mutable maps.
func (g *Game) Clone() *Game {
	out := &Game{
		ID:           g.ID,
		Config:       g.Config,
		Players:      append([]Player(nil), g.Players...),
		Rounds:       make([]Round, len(g.Rounds)),
		CurrentRound: g.CurrentRound,
		FinalRound:   g.FinalRound,
	}
	for i, r := range g.Rounds {
		cp := r
		cp.Bids = make(map[string]int, len(r.Bids))
		for k, v := range r.Bids {
			cp.Bids[k] = v
		}
		cp.Outcomes = make(map[string]Outcome, len(r.Outcomes))
		for k, v := range r.Outcomes {
			if v.Tricks != nil {
				n := *v.Tricks
				v.Tricks = &n
			}
			cp.Outcomes[k] = v
		}
		out.Rounds[i] = cp
	}
	return out
}
