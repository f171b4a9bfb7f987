// Package controlpanel serves the widget page that edits simulation
// parameters. Widgets talk to the viewer over a websocket; every accepted
// message becomes a command on the frame loop's queue.
package controlpanel

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solarsystem/core"
)

//go:embed panel.html
var panelPage []byte

const writeTimeout = 2 * time.Second

// Server is the control panel HTTP server
type Server struct {
	queue    *core.CommandQueue
	known    map[string]bool
	metrics  *Metrics
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	stateMu sync.Mutex
	state   Snapshot
	dirty   chan struct{}

	httpServer *http.Server
}

// New creates a panel that pushes commands onto queue for the named bodies.
// Metrics are registered on reg and served from gatherer.
func New(queue *core.CommandQueue, bodies []string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Server {
	known := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		known[b] = true
	}
	return &Server{
		queue:    queue,
		known:    known,
		metrics:  NewMetrics(reg),
		gatherer: gatherer,
		upgrader: websocket.Upgrader{
			CheckOrigin: sameHost,
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		dirty:   make(chan struct{}, 1),
	}
}

// sameHost only accepts page origins served by this panel
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host
}

// Metrics returns the panel's metrics
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the panel's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.servePage)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Start listens on addr and serves until ctx is cancelled. It returns once
// the listener is bound.
func (s *Server) Start(ctx context.Context, addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go s.broadcastLoop(ctx)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("controlpanel: serve: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
		s.closeClients()
	}()

	log.Printf("controlpanel: listening on http://%s", ln.Addr())
	return ln.Addr(), nil
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(panelPage)
}

// Publish records the latest state. Clients are updated asynchronously when it
// differs from the previous one, so the frame loop never waits on the network.
func (s *Server) Publish(snap Snapshot) {
	s.stateMu.Lock()
	changed := !s.state.Equal(snap)
	s.state = snap
	s.stateMu.Unlock()

	if changed {
		select {
		case s.dirty <- struct{}{}:
		default:
		}
	}
}

func (s *Server) snapshot() Snapshot {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
			s.broadcast(s.snapshot())
		}
	}
}

func (s *Server) broadcast(snap Snapshot) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, mu := range s.clients {
		if err := writeJSON(conn, mu, snap); err != nil {
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	for _, conn := range failed {
		s.removeClient(conn)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("controlpanel: websocket upgrade error:", err)
		return
	}

	mu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = mu
	s.metrics.clients.Set(float64(len(s.clients)))
	s.clientsMu.Unlock()
	defer s.removeClient(conn)

	if err := writeJSON(conn, mu, s.snapshot()); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("controlpanel: read error:", err)
			}
			return
		}

		cmd, err := msg.ToCommand(s.known)
		if err != nil {
			s.metrics.rejected.Inc()
			log.Printf("controlpanel: rejected %+v: %v", msg, err)
			if err := writeJSON(conn, mu, Reply{Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		s.metrics.commands.WithLabelValues(msg.Op).Inc()
		s.queue.Push(cmd)
	}
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
	}
	s.metrics.clients.Set(float64(len(s.clients)))
	s.clientsMu.Unlock()
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
	s.metrics.clients.Set(0)
	s.clientsMu.Unlock()
}

func writeJSON(conn *websocket.Conn, mu *sync.Mutex, v any) error {
	mu.Lock()
	defer mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}
