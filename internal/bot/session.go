package bot

import (
	"strings"
	"sync"

	"efazi/internal/table"
)

// slot names for the three uploads.
const (
	slotBase    = "base"
	slotSource1 = "source1"
	slotSource2 = "source2"
)

// session tracks the uploads collected from one chat.
type session struct {
	source1 *table.Table
	source2 *table.Table
	base    *table.Table
}

func (s *session) complete() bool {
	return s.base != nil && s.source1 != nil && s.source2 != nil
}

func (s *session) missing() []string {
	var m []string
	if s.source1 == nil {
		m = append(m, slotSource1)
	}
	if s.source2 == nil {
		m = append(m, slotSource2)
	}
	if s.base == nil {
		m = append(m, slotBase)
	}
	return m
}

// slotFromCaption maps a document caption onto a slot name, or "" when the
// caption doesn't name one.
func slotFromCaption(caption string) string {
	c := strings.ToLower(strings.TrimSpace(caption))
	switch {
	case strings.Contains(c, slotBase) || strings.Contains(c, "rider"):
		return slotBase
	case strings.Contains(c, slotSource1) || c == "s1" || strings.Contains(c, "tracking"):
		return slotSource1
	case strings.Contains(c, slotSource2) || c == "s2" || strings.Contains(c, "store"):
		return slotSource2
	}
	return ""
}

// sessionStore is the per-chat upload state, safe for concurrent updates.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

func (st *sessionStore) get(chatID int64) *session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[chatID]
	if !ok {
		s = &session{}
		st.sessions[chatID] = s
	}
	return s
}

// store places a table into the named slot, or the first free slot in upload
// order (source1, source2, base) when no slot was named. Returns the slot
// used.
func (st *sessionStore) store(chatID int64, slot string, t *table.Table) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[chatID]
	if !ok {
		s = &session{}
		st.sessions[chatID] = s
	}

	if slot == "" {
		switch {
		case s.source1 == nil:
			slot = slotSource1
		case s.source2 == nil:
			slot = slotSource2
		default:
			slot = slotBase
		}
	}

	switch slot {
	case slotSource1:
		s.source1 = t
	case slotSource2:
		s.source2 = t
	case slotBase:
		s.base = t
	}
	return slot
}

func (st *sessionStore) clear(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}
