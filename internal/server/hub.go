package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// envelope wraps every websocket message with its type.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// hub fans broadcast messages out to every connected websocket client.
type hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	log        *slog.Logger
}

func newHub(log *slog.Logger) *hub {
	return &hub{
		clients:    map[*client]bool{},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		log:        log,
	}
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer, drop it.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// announce broadcasts a typed payload to every client.
func (h *hub) announce(typ string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.log.Error("encoding broadcast", "type", typ, "err", err)
		return
	}
	msg, err := json.Marshal(envelope{Type: typ, Payload: payload})
	if err != nil {
		h.log.Error("encoding envelope", "type", typ, "err", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("broadcast queue full, dropping message", "type", typ)
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 128)}
	s.hub.register <- c

	go func() {
		for msg := range c.send {
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
		c.conn.Close()
	}()

	// Reads are discarded; the socket is broadcast only. A read error
	// means the client went away.
	go func() {
		for {
			if _, _, err := c.conn.ReadMessage(); err != nil {
				s.hub.unregister <- c
				return
			}
		}
	}()

	// Greet the new client with the current state.
	s.hub.announce("state", s.engine.Snapshot())
}
