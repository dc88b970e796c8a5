package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"judgement/internal/engine"
	"judgement/internal/history"
)

// Manager owns one Session per live game. Sessions are created on demand,
// rehydrated from the store when a game id is known but has no live
// session, and removed when the last client leaves.
type Manager struct {
	mu       sync.Mutex
	store    Store
	outbox   *history.Outbox
	log      *logrus.Logger
	sessions map[string]*Session
}

func NewManager(store Store, outbox *history.Outbox, log *logrus.Logger) *Manager {
	return &Manager{
		store:    store,
		outbox:   outbox,
		log:      log,
		sessions: map[string]*Session{},
	}
}

func (m *Manager) Create(cfg engine.Config) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	g := engine.NewGame(id, cfg)
	m.store.Put(g.Clone())
	s := m.newSession(g)
	m.sessions[id] = s
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, true
	}
	g, ok := m.store.Get(id)
	if !ok {
		return nil, false
	}
	s := m.newSession(g.Clone())
	m.sessions[id] = s
	return s, true
}

func (m *Manager) newSession(g *engine.Game) *Session {
	return &Session{
		manager:  m,
		game:     g,
		store:    m.store,
		outbox:   m.outbox,
		log:      m.log.WithField("game", g.ID),
		requests: map[string]bool{},
		clients:  map[*client]bool{},
	}
}

func (m *Manager) drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Session serializes every mutation of one game behind a single mutex and
// fans the committed snapshot out to all connected clients. The engine
// either fully commits or returns an error leaving the game untouched, so
// store writes, broadcasts and history records always describe a
// consistent state.
type Session struct {
	mu       sync.Mutex
	manager  *Manager
	game     *engine.Game
	store    Store
	outbox   *history.Outbox
	log      *logrus.Entry
	requests map[string]bool
	clients  map[*client]bool
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ID
}

// Join registers the connection and adds its identity to the player list
// when the game is still forming. A connection for an unknown email on a
// started game stays as an observer.
func (s *Session) Join(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c] = true
	prev := s.game.Clone()
	if err := s.game.AddPlayer(c.email, c.name, ""); err != nil {
		s.log.WithField("email", c.email).Info("joined as observer")
		s.sendStateLocked(c, nil)
		return
	}
	snapshot := s.game.Clone()
	if len(snapshot.Players) != len(prev.Players) {
		s.store.Put(snapshot)
		s.broadcastLocked(snapshot, []Event{{Type: "player_joined", Data: EventPayload{Email: c.email}}})
		return
	}
	s.sendStateLocked(c, nil)
}

func (s *Session) Leave(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.clients, c)
	close(c.send)
	empty := len(s.clients) == 0
	id := s.game.ID
	s.mu.Unlock()

	if empty {
		s.manager.drop(id)
	}
}

// Handle decodes and dispatches one client message.
func (s *Session) Handle(c *client, msg ClientMessage) {
	req, err := msg.ToRequest()
	if err != nil {
		s.sendError(c, "bad_request", err.Error())
		return
	}

	switch req := req.(type) {
	case StartGame:
		s.apply(c, msg.RequestID, "start", func(g *engine.Game) error {
			return g.Start()
		})
	case SubmitBids:
		s.apply(c, msg.RequestID, "bids", func(g *engine.Game) error {
			return engine.SubmitBids(g, req.Bids)
		})
	case SubmitTricks:
		s.apply(c, msg.RequestID, "tricks", func(g *engine.Game) error {
			return engine.SubmitTricks(g, req.Tricks)
		})
	case UndoRound:
		s.apply(c, msg.RequestID, "undo", func(g *engine.Game) error {
			return engine.UndoRound(g, req.Target)
		})
	case RequestState:
		s.mu.Lock()
		s.sendStateLocked(c, nil)
		s.mu.Unlock()
	case RequestPrediction:
		s.predict(c, req)
	}
}

// apply runs one mutation through validate-then-commit. After a successful
// commit the snapshot is stored, broadcast and enqueued for history, in
// that order; none of those steps can fail the already-committed action.
func (s *Session) apply(c *client, requestID, action string, mutate func(*engine.Game) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if requestID != "" && s.requests[requestID] {
		// Duplicate delivery of an already-committed action: resend state.
		s.sendStateLocked(c, nil)
		return
	}

	prev := s.game.Clone()
	if err := mutate(s.game); err != nil {
		s.log.WithField("action", action).WithError(err).Info("action rejected")
		s.sendErrorLocked(c, errorCode(err), err.Error())
		return
	}
	if requestID != "" {
		s.requests[requestID] = true
	}

	snapshot := s.game.Clone()
	s.store.Put(snapshot)
	s.broadcastLocked(snapshot, buildEvents(prev, snapshot))
	s.outbox.Enqueue(history.Record{
		GameID:   snapshot.ID,
		Action:   action,
		At:       time.Now(),
		Snapshot: snapshot,
	})
	s.log.WithFields(logrus.Fields{"action": action, "round": snapshot.CurrentRound}).Info("action committed")
}

func (s *Session) predict(c *client, req RequestPrediction) {
	email := req.Email
	if email == "" {
		email = c.email
	}

	s.mu.Lock()
	g := s.game.Clone()
	s.mu.Unlock()

	cards := 0
	if round, err := g.Current(); err == nil {
		cards = round.Cards
	}
	p := engine.Predict(email, g.Players, cards, g.CurrentRound == g.FinalRound)

	s.mu.Lock()
	s.emitLocked(c, ServerMessage{Type: "prediction", Prediction: BuildPredictionView(p)})
	s.mu.Unlock()
}

func (s *Session) broadcastLocked(snapshot *engine.Game, events []Event) {
	msg := mustEncode(ServerMessage{Type: "state", State: BuildGameView(snapshot), Events: events})
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			// A blocked buffered channel means the client cannot keep up;
			// drop it so the broadcast never stalls the game.
			close(c.send)
			delete(s.clients, c)
		}
	}
}

func (s *Session) sendStateLocked(c *client, events []Event) {
	s.emitLocked(c, ServerMessage{Type: "state", State: BuildGameView(s.game), Events: events})
}

func (s *Session) sendError(c *client, code, message string) {
	s.mu.Lock()
	s.sendErrorLocked(c, code, message)
	s.mu.Unlock()
}

func (s *Session) sendErrorLocked(c *client, code, message string) {
	s.emitLocked(c, ServerMessage{Type: "error", Error: &ErrorView{Code: code, Message: message}})
}

// emitLocked sends to one client. The membership check matters: a dropped
// client's channel is closed, and only s.mu holders mutate the set.
func (s *Session) emitLocked(c *client, msg ServerMessage) {
	if !s.clients[c] {
		return
	}
	select {
	case c.send <- mustEncode(msg):
	default:
	}
}

func mustEncode(msg ServerMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return data
}
