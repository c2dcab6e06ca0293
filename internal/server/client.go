package server

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/EvilPatrick06/battlemap/pkg/logger"
	"github.com/EvilPatrick06/battlemap/pkg/overlay"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var clientSeq atomic.Int64

// Update is one server-to-client websocket message. The server pushes a
// fresh snapshot after every map change.
type Update struct {
	Type     string            `json:"type"`
	Snapshot *overlay.Snapshot `json:"snapshot,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Command is one client-to-server websocket message.
type Command struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
	Open   bool   `json:"open"`
}

// Client bridges one websocket connection and the map server.
type Client struct {
	srv  *Server
	conn *websocket.Conn
	send chan Update
	id   string
}

func NewClient(srv *Server, conn *websocket.Conn) *Client {
	return &Client{
		srv:  srv,
		conn: conn,
		id:   fmt.Sprintf("client-%d", clientSeq.Add(1)),
	}
}

// readPump reads commands from the client until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.srv.hub.Unregister(c.id)
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		logger.Log.WithField("client_id", c.id).Info("Client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS error: %v", err)
			}
			break
		}
		c.handleCommand(cmd)
	}
}

func (c *Client) handleCommand(cmd Command) {
	switch cmd.Action {
	case "toggle_door":
		if err := c.srv.ToggleDoor(cmd.Index, cmd.Open); err != nil {
			c.trySend(Update{Type: "error", Error: err.Error()})
		}
	default:
		c.trySend(Update{Type: "error", Error: fmt.Sprintf("unknown action %q", cmd.Action)})
	}
}

// trySend queues a message for this client, dropping it if the client
// cannot keep up.
func (c *Client) trySend(msg Update) {
	select {
	case c.send <- msg:
	default:
	}
}

// writePump forwards queued updates to the client and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
