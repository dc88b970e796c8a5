package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendWait       = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 50 * time.Second
	maxMessageSize = 4096
)

// A client is a WebSocket connection plus the identity it connected with
// and a buffered channel of outgoing messages.
type client struct {
	conn    *websocket.Conn
	email   string
	name    string
	session *Session
	send    chan []byte
}

func (c *client) readPump() {
	defer func() {
		c.session.Leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.session.sendError(c, "bad_request", "invalid json")
			continue
		}
		c.session.Handle(c, msg)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, open := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(sendWait))
			if !open {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(sendWait)); err != nil {
				return
			}
		}
	}
}
