// Package obs provides a read-only websocket feed of simulation snapshots,
// so the colony can be watched from outside the terminal.
package obs

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Server broadcasts snapshots to every connected observer. Observers only
// receive; any message they send is read and discarded to keep the
// connection's control frames flowing.
type Server struct {
	addr     string
	upgrader websocket.Upgrader

	listener net.Listener
	httpSrv  *http.Server

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// client wraps one observer connection with a buffered outbound queue. A
// writer goroutine drains it; when the queue is full, frames are dropped
// rather than stalling the simulation.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates an observer server bound to addr (host:port).
func NewServer(addr string) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // local tool, not a public endpoint
		},
		clients: make(map[*client]struct{}),
	}
}

// Start begins listening and serving in the background. Returns an error only
// if the address cannot be bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Handler: mux}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Warn("observer server stopped")
		}
	}()

	logrus.WithField("addr", ln.Addr().String()).Info("observer feed listening")
	return nil
}

// Addr returns the bound address, useful when the configured port was 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// ClientCount returns the number of connected observers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast encodes the snapshot once and queues it to every client. Clients
// that cannot keep up have frames dropped, never the whole connection.
func (s *Server) Broadcast(snap Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		logrus.WithError(err).Warn("snapshot encode failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- raw:
		default:
			// Slow observer; skip this frame for them.
		}
	}
}

// Close stops the listener and disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
	if s.httpSrv != nil {
		_ = s.httpSrv.Close()
	}
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	logrus.WithField("remote", conn.RemoteAddr().String()).Debug("observer connected")

	go s.writeLoop(c)
	s.readLoop(c)
}

// writeLoop drains the client's queue until it is closed or a write fails.
func (s *Server) writeLoop(c *client) {
	for raw := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			s.drop(c)
			break
		}
	}
	_ = c.conn.Close()
}

// readLoop discards inbound messages. A read error means the observer is
// gone; drop it.
func (s *Server) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			s.drop(c)
			return
		}
	}
}

// drop unregisters the client and closes its queue exactly once.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, present := s.clients[c]
	if present {
		delete(s.clients, c)
	}
	s.mu.Unlock()

	if present {
		close(c.send)
		logrus.WithField("remote", c.conn.RemoteAddr().String()).Debug("observer disconnected")
	}
}
