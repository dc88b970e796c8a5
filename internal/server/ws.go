package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"judgement/internal/engine"
)

// Handler upgrades WebSocket connections and hands them to a game session.
// The "game" query parameter is either an existing game id or "new".
type Handler struct {
	manager  *Manager
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewHandler(manager *Manager, log *logrus.Logger) *Handler {
	return &Handler{
		manager:  manager,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		log:      log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	name := r.URL.Query().Get("name")
	if email == "" || name == "" {
		http.Error(w, "email and name query parameters are required", http.StatusBadRequest)
		return
	}

	var sess *Session
	gameID := r.URL.Query().Get("game")
	if gameID == "" || gameID == "new" {
		cfg := engine.DefaultConfig()
		if v := r.URL.Query().Get("deck"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid deck size", http.StatusBadRequest)
				return
			}
			cfg.DeckSize = n
		}
		sess = h.manager.Create(cfg)
	} else {
		s, ok := h.manager.Get(gameID)
		if !ok {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		sess = s
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}

	c := &client{
		conn:    conn,
		email:   email,
		name:    name,
		session: sess,
		send:    make(chan []byte, 64),
	}
	sess.Join(c)

	go c.readPump()
	go c.writePump()
}
