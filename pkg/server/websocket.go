package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/veld-ui/veld/pkg/dom"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// eventFrame is a client-to-server message.
type eventFrame struct {
	Type  string `json:"type"` // "event"
	Node  uint64 `json:"node"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// patchFrame is a server-to-client message.
type patchFrame struct {
	Type    string      `json:"type"` // "patches"
	Patches []dom.Patch `json:"patches"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sid := r.URL.Query().Get("sid")
	sess := s.lookupSession(sid)
	if sess == nil || sess.Closed() {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	s.logger.Info("session attached", "session", sess.ID)

	go s.writePump(sess, conn)
	s.readPump(sess, conn)
}

// readPump feeds client events into the session until the socket dies.
func (s *Server) readPump(sess *Session, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		s.dropSession(sess)
		s.logger.Info("session detached", "session", sess.ID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame eventFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.logger.Warn("bad frame", "session", sess.ID, "err", err)
			continue
		}
		if frame.Type != "event" {
			continue
		}
		sess.HandleEvent(frame.Node, frame.Name, frame.Value)
	}
}

// writePump streams patch frames and pings until the session closes.
func (s *Server) writePump(sess *Session, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case patches := <-sess.Patches():
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(patchFrame{Type: "patches", Patches: patches}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sess.done:
			return
		}
	}
}
