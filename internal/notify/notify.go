package notify

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"sync"
	"sync/atomic"
)

const (
	RegisterMessageType      = "register"
	VenueVerifiedMessageType = "venue_verified"
)

type RegisterMessage struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

type VenueVerifiedMessage struct {
	Type    string `json:"type"`
	VenueID string `json:"venue_id"`
}

type Client struct {
	UserID string
	Addr   *net.UDPAddr
}

type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

func (r *Registry) Register(userID string, addr *net.UDPAddr) {
	if userID == "" || addr == nil {
		return
	}
	r.mu.Lock()
	r.clients[userID] = Client{UserID: userID, Addr: addr}
	r.mu.Unlock()
}

func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	delete(r.clients, userID)
	r.mu.Unlock()
}

func (r *Registry) Snapshot() []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make([]Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	return clients
}

type Server struct {
	addr     string
	registry *Registry
	logger   *log.Logger

	mu     sync.Mutex
	conn   *net.UDPConn
	closed atomic.Bool
}

func NewServer(addr string, registry *Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{addr: addr, registry: registry, logger: logger}
}

func (s *Server) Run() error {
	udpAddr, err := net.ResolveUDPAddr("udp", s.addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	s.logger.Printf("[udp-notify] listening on %s", s.addr)

	buffer := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFromUDP(buffer)
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			return err
		}
		msg, err := parseRegisterMessage(buffer[:n])
		if err != nil {
			s.logger.Printf("[udp-notify] invalid message from %s: %v", addr, err)
			continue
		}
		if msg.Type != RegisterMessageType {
			continue
		}
		s.registry.Register(msg.UserID, addr)
		s.logger.Printf("[udp-notify] registered client %s (%s)", msg.UserID, addr)
	}
}

// Close stops the server; a blocked ReadFromUDP in Run unblocks and
// Run returns nil. Safe to call before Run has bound the socket.
func (s *Server) Close() error {
	s.closed.Store(true)
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (s *Server) liveConn() *net.UDPConn {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return nil
	}
	return s.conn
}

// BroadcastVenueVerified pushes a venue_verified notice to every
// registered UDP client.
func (s *Server) BroadcastVenueVerified(venueID string) {
	conn := s.liveConn()
	if conn == nil {
		s.logger.Printf("[udp-notify] server not running")
		return
	}
	payload, err := json.Marshal(VenueVerifiedMessage{
		Type:    VenueVerifiedMessageType,
		VenueID: venueID,
	})
	if err != nil {
		s.logger.Printf("[udp-notify] marshal broadcast: %v", err)
		return
	}

	clients := s.registry.Snapshot()
	for _, client := range clients {
		s.sendWithRetry(conn, client, payload)
	}
}

func (s *Server) sendWithRetry(conn *net.UDPConn, client Client, payload []byte) {
	if err := s.sendOnce(conn, client, payload); err == nil {
		return
	}
	if err := s.sendOnce(conn, client, payload); err != nil {
		s.logger.Printf("[udp-notify] notify user %s at %s: %v", client.UserID, client.Addr, err)
		s.registry.Remove(client.UserID)
	}
}

func (s *Server) sendOnce(conn *net.UDPConn, client Client, payload []byte) error {
	if client.Addr == nil {
		return errors.New("missing client address")
	}
	_, err := conn.WriteToUDP(payload, client.Addr)
	return err
}

func parseRegisterMessage(data []byte) (RegisterMessage, error) {
	var msg RegisterMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, err
	}
	if msg.UserID == "" || msg.Type == "" {
		return msg, errors.New("missing required fields")
	}
	return msg, nil
}
