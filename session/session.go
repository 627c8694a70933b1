package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mcp-bridge/mcp-bridge/providers"
)

var (
	// ErrInvalidMessage is returned when a message misses its role.
	ErrInvalidMessage = errors.New("invalid message")
	// ErrNotFound is returned when a session id resolves to nothing.
	ErrNotFound = errors.New("session not found")
)

// Session owns the ordered, append-only message history of one chat
// session, the active provider adapter and a monotonically increasing
// turn counter. Messages are never mutated or deleted; correction is by
// appending. A message's identity is its position in the log.
type Session struct {
	id       string
	provider providers.Provider

	// exchangeMu serializes user exchanges: at most one model call or
	// tool-execution batch is in flight per session at any time.
	exchangeMu sync.Mutex

	mu       sync.RWMutex
	messages []providers.Message
	turns    int
}

// New creates a session bound to a provider adapter. A non-empty
// system prompt is appended as the first message.
func New(provider providers.Provider, systemPrompt string) *Session {
	s := &Session{
		id:       uuid.NewString(),
		provider: provider,
		messages: make([]providers.Message, 0, 16),
	}
	if systemPrompt != "" {
		s.messages = append(s.messages, providers.Message{
			Role:    providers.MessageRoleSystem,
			Content: systemPrompt,
		})
	}
	return s
}

// ID returns the stable identifier for the session.
func (s *Session) ID() string {
	return s.id
}

// Provider returns the active provider adapter.
func (s *Session) Provider() providers.Provider {
	return s.provider
}

// Append adds a message to the log.
func (s *Session) Append(msg providers.Message) error {
	if msg.Role == "" {
		return ErrInvalidMessage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

// History returns a copy of the message log in conversation order.
func (s *Session) History() []providers.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]providers.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// BeginTurn increments the session-lifetime turn counter and returns
// its new value.
func (s *Session) BeginTurn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns++
	return s.turns
}

// Turns returns the number of model turns issued over the session's
// lifetime.
func (s *Session) Turns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns
}

// LockExchange blocks until no other user exchange is in flight for
// this session.
func (s *Session) LockExchange() {
	s.exchangeMu.Lock()
}

// UnlockExchange releases the exchange lock.
func (s *Session) UnlockExchange() {
	s.exchangeMu.Unlock()
}

// Store holds the live sessions, keyed by id. Independent sessions run
// concurrently; the store itself is the only shared structure.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Add registers a session.
func (st *Store) Add(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID()] = s
}

// Get resolves a session by id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove destroys a session when its user-facing chat session ends.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
