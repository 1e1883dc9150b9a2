package history

import (
	"sync"

	"curhat-bot/internal/llm"
)

type session struct {
	msgs []llm.Message
	// summary is a reserved slot for future conversation compaction;
	// nothing writes it yet.
	summary string
}

// Manager keeps a bounded per-user conversation window. Each append
// truncates the window to the most recent 2*maxTurns entries, so one
// retained turn is a user message plus an assistant reply.
type Manager struct {
	mu       sync.RWMutex
	maxTurns int
	sessions map[int64]*session
}

func NewManager(maxTurns int) *Manager {
	return &Manager{
		maxTurns: maxTurns,
		sessions: make(map[int64]*session),
	}
}

func (m *Manager) AppendUser(userID int64, content string) {
	m.append(userID, llm.Message{Role: "user", Content: content})
}

func (m *Manager) AppendAssistant(userID int64, content string) {
	m.append(userID, llm.Message{Role: "assistant", Content: content})
}

func (m *Manager) append(userID int64, msg llm.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session(userID)
	s.msgs = append(s.msgs, msg)
	if limit := 2 * m.maxTurns; len(s.msgs) > limit {
		s.msgs = s.msgs[len(s.msgs)-limit:]
	}
}

// Get returns a copy of the user's window, oldest first. Absent users get
// an empty window, not an error.
func (m *Manager) Get(userID int64) []llm.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil
	}
	out := make([]llm.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func (m *Manager) Summary(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return s.summary
	}
	return ""
}

// Reset drops the user's session entirely; a later Get starts fresh.
func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// session must be called with m.mu held for writing.
func (m *Manager) session(userID int64) *session {
	s, ok := m.sessions[userID]
	if !ok {
		s = &session{}
		m.sessions[userID] = s
	}
	return s
}
