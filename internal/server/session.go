package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/events"
	"github.com/lgbarn/chess-rules-go/internal/manager"
)

// clientBuffer is the number of pending messages a slow WebSocket client
// may fall behind by before it is disconnected.
const clientBuffer = 16

// Message is pushed to WebSocket clients for every game event.
type Message struct {
	Type string       `json:"type"`
	Side string       `json:"side"`
	View manager.View `json:"view"`
}

// client is one WebSocket connection watching a session.
type client struct {
	send chan []byte
}

// Session is one game played through the server. Commands on a session
// run one at a time.
type Session struct {
	ID string

	mu sync.Mutex
	m  *manager.Manager

	clientsMu sync.Mutex
	clients   map[*client]struct{}
	closed    bool

	logger *zap.Logger
}

func newSession(white, black string, logger *zap.Logger) *Session {
	id := uuid.New().String()
	logger = logger.With(zap.String("session", id))
	s := &Session{
		ID:      id,
		m:       manager.New(manager.WithLogger(logger)),
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
	s.m.Bus().SubscribeAll(s.broadcast)
	s.m.NewGame(white, black)
	return s
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(m *manager.Manager) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isClosed() {
		return fmt.Errorf("session %s: %w", s.ID, errors.ErrUnknownSession)
	}
	return fn(s.m)
}

func (s *Session) isClosed() bool {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return s.closed
}

// View returns the current view of the game.
func (s *Session) View() manager.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.View()
}

// broadcast runs on the goroutine holding s.mu, inside a manager command.
func (s *Session) broadcast(e events.Event) {
	data, err := json.Marshal(Message{Type: e.Kind.String(), Side: e.Side.Token(), View: s.m.View()})
	if err != nil {
		s.logger.Error("encode event", zap.Error(err))
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Warn("dropping slow websocket client")
			s.dropLocked(c)
		}
	}
}

// attach registers a client and queues the current view as its first
// message.
func (s *Session) attach() (*client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(Message{Type: events.GameChanged.String(), Side: s.m.ActiveSide().Token(), View: s.m.View()})
	if err != nil {
		return nil, err
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("session %s: %w", s.ID, errors.ErrUnknownSession)
	}
	c := &client{send: make(chan []byte, clientBuffer)}
	c.send <- data
	s.clients[c] = struct{}{}
	return c, nil
}

// detach unregisters a client.
func (s *Session) detach(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.dropLocked(c)
}

func (s *Session) dropLocked(c *client) {
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

// close disconnects every client.
func (s *Session) close() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.closed = true
	for c := range s.clients {
		s.dropLocked(c)
	}
}

// Clients returns the number of connected WebSocket clients.
func (s *Session) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// Store holds the live sessions. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	logger   *zap.Logger
}

// NewStore returns an empty store holding at most max sessions; 0 means
// unlimited.
func NewStore(max int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{sessions: make(map[string]*Session), max: max, logger: logger}
}

// Create starts a session with a new game.
func (st *Store) Create(white, black string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.max > 0 && len(st.sessions) >= st.max {
		return nil, fmt.Errorf("%d sessions: %w", st.max, errors.ErrSessionLimit)
	}
	s := newSession(white, black, st.logger)
	st.sessions[s.ID] = s
	st.logger.Info("session created", zap.String("session", s.ID))
	return s, nil
}

// Get returns the session with id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, errors.ErrUnknownSession)
	}
	return s, nil
}

// Delete ends the session with id and disconnects its clients.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %q: %w", id, errors.ErrUnknownSession)
	}
	s.close()
	st.logger.Info("session deleted", zap.String("session", id))
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CloseAll ends every session.
func (st *Store) CloseAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()
	for _, s := range sessions {
		s.close()
	}
}
