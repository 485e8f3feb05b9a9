package ws

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// CommandHandler receives every command token the dashboard sends,
// regardless of which channel carried it.
type CommandHandler func(cmd string)

// Server exposes the WebSocket endpoint and the /cmd fallback, feeding
// both into one command handler.
type Server struct {
	hub     *Hub
	handler CommandHandler
}

func NewServer(hub *Hub, handler CommandHandler) *Server {
	return &Server{hub: hub, handler: handler}
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/cmd", s.handleCmd)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		// The deck and the robot share a private LAN; any origin goes.
		CheckOrigin: func(*http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	log.Printf("dashboard connected: %s", r.RemoteAddr)
	c := s.hub.add(conn)

	go func() {
		defer func() {
			s.hub.remove(c)
			log.Printf("dashboard disconnected: %s", r.RemoteAddr)
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var f Frame
			if err := json.Unmarshal(data, &f); err != nil {
				continue
			}
			if f.Type != FrameCmd {
				continue
			}
			var p CmdPayload
			if err := json.Unmarshal(f.Data, &p); err != nil {
				continue
			}
			s.handler(p.Cmd)
		}
	}()
}

// handleCmd is the single-shot fallback: POST {"c": "<cmd>"} and a plain
// text reply.
func (s *Server) handleCmd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body FallbackBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.handler(body.C)

	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "OK "+body.C)
}

func ListenAndServe(host string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("botsim listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
