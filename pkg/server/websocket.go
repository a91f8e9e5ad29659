package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	wayfinderrors "github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/middleware"
	"github.com/callmeskyy111/wayfind/pkg/nav"
	"github.com/callmeskyy111/wayfind/pkg/routepath"
)

// client is one WebSocket peer attached to the session.
type client struct {
	id     string
	conn   *websocket.Conn
	server *Server
	logger *slog.Logger

	// send carries encoded frames to the write pump. It is closed by
	// whoever removes the client from the server map, never by the
	// pumps themselves.
	send chan []byte
}

// handleWS upgrades the connection, registers the client, replays the
// current location as a hello frame and runs the read loop.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		s.logger.Error("websocket upgrade failed", "error", err)
		middleware.RecordWebSocketError("upgrade")
		return
	}

	c := &client{
		id:     uuid.New().String(),
		conn:   conn,
		server: s,
		send:   make(chan []byte, s.config.SendBuffer),
	}
	c.logger = s.logger.With("client_id", c.id[:8])

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[c.id] = c
	s.mu.Unlock()

	middleware.RecordClientConnect()
	c.logger.Info("client connected", "remote", conn.RemoteAddr())

	// Replay the current location so the peer can render without
	// waiting for the next navigation.
	entries, cursor := s.session.History()
	hello := Frame{
		Type:     FrameHello,
		ClientID: c.id,
		Location: &entries[cursor],
		Cursor:   cursor,
		Length:   len(entries),
	}
	if data, err := json.Marshal(hello); err == nil {
		s.sendTo(c, data)
	}

	go c.writePump()
	c.readPump()
}

// writePump drains the send channel onto the connection and keeps the
// peer alive with pings. It exits when the channel is closed or a
// write fails; closing the connection then unblocks the read pump.
func (c *client) writePump() {
	ticker := time.NewTicker(c.server.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.server.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("write failed", "error", err)
				middleware.RecordWebSocketError("write")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.server.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes peer commands and applies them to the session. It
// owns deregistration: when it returns the client is gone.
func (c *client) readPump() {
	defer func() {
		c.server.removeClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.server.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.server.config.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.server.config.PongTimeout))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("read failed", "error", err)
				middleware.RecordWebSocketError("read")
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.sendError("invalid command payload")
			continue
		}

		c.applyCommand(cmd)
	}
}

// applyCommand executes one peer command against the session. The
// resulting event, if any, reaches the peer through the broadcast.
func (c *client) applyCommand(cmd Command) {
	switch cmd.Type {
	case CmdNavigate:
		if cmd.Path == "" {
			c.sendError("navigate requires a path")
			return
		}
		res, err := routepath.Canonicalize(cmd.Path)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		loc := nav.Location{Path: res.Path, Query: res.Query, State: cmd.State}
		if cmd.Replace {
			c.server.session.Replace(loc)
		} else {
			c.server.session.Push(loc)
		}

	case CmdBack:
		c.server.session.Back()

	case CmdForward:
		c.server.session.Forward()

	case CmdGo:
		c.server.session.Go(cmd.Delta)

	default:
		c.sendError("unknown command type: " + cmd.Type)
	}
}

// sendError queues an error frame for this client.
func (c *client) sendError(detail string) {
	e := wayfinderrors.New("E082")
	frame := Frame{
		Type:    FrameError,
		Code:    e.Code,
		Message: e.Message,
		Detail:  detail,
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	c.server.sendTo(c, data)
}

// broadcast fans a session event out to every connected client. It
// runs inside the session's notify path, so it never blocks: clients
// whose send buffer is full are dropped.
func (s *Server) broadcast(ev nav.Event) {
	middleware.RecordNavigation(ev.Action.String())
	middleware.RecordHistoryLength(ev.Length)

	frame := Frame{
		Type:     FrameNav,
		Action:   ev.Action.String(),
		Location: &ev.Location,
		Cursor:   ev.Cursor,
		Length:   ev.Length,
	}
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("frame encode failed", "error", err)
		return
	}

	var dropped []*client

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			delete(s.clients, c.id)
			close(c.send)
			dropped = append(dropped, c)
		}
	}
	s.mu.Unlock()

	for _, c := range dropped {
		middleware.RecordClientDisconnect()
		middleware.RecordWebSocketError("slow_consumer")
		c.logger.Warn("client dropped, send buffer full")
	}
}

// sendTo queues a frame for one client. The membership check under the
// lock keeps the send off a closed channel.
func (s *Server) sendTo(c *client, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// removeClient deregisters a client and closes its send channel. Safe
// to call more than once; only the first call closes the channel.
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c.id]
	if ok {
		delete(s.clients, c.id)
		close(c.send)
	}
	s.mu.Unlock()

	if ok {
		middleware.RecordClientDisconnect()
		c.logger.Info("client disconnected")
	}
}
