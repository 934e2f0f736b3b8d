package server

import (
	"log"
	"net/http"

	"neurolearn/internal/wshub"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// handleWS upgrades the connection and streams progress/mode change
// messages until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}

	id := uuid.New().String()
	client := &wshub.Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	s.Hub.Register(client)
	defer s.Hub.Unregister(id)

	client.WritePump(r.Context())
	conn.Close(websocket.StatusNormalClosure, "")
}
