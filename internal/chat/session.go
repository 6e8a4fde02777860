package chat

import (
	"sync"
	"time"

	"lunchbot/internal/monitoring"
	"lunchbot/internal/service"
)

// flowKind tags which multi-step flow a session is driving.
type flowKind int

const (
	flowCreateGroup flowKind = iota
	flowJoinGroup
	flowAddEvent
	flowBrowseCurrent
	flowBrowseHistory
)

func (k flowKind) String() string {
	switch k {
	case flowCreateGroup:
		return "create_group"
	case flowJoinGroup:
		return "join_group"
	case flowAddEvent:
		return "add_event"
	case flowBrowseCurrent:
		return "browse_current"
	case flowBrowseHistory:
		return "browse_history"
	}
	return "unknown"
}

// Each flow carries its own typed field collection; there is no shared
// untyped bag. Exactly one of the pointers on a session is non-nil,
// matching its flow kind.

type createGroupFields struct {
	name string // the password arrives at the terminal step
}

type joinGroupFields struct {
	name string
}

type addEventFields struct {
	// choices is the answer set for the group step, computed once at
	// flow entry. Memberships gained later do not expand it.
	choices []string
	group   string
	date    time.Time
	start   time.Time // clock only; merged with date at the terminal
	end     time.Time
}

type browseFields struct {
	choices []string
	mode    service.Mode
}

// Step indexes within a flow. Flows are strictly linear; a failed
// validation keeps the session on the same step.
const (
	stepGroupName = iota
	stepGroupPassword
)

const (
	stepEventGroup = iota
	stepEventDate
	stepEventStart
	stepEventEnd
	stepEventLocation
)

// session is one user's progress through an open flow. It lives only in
// process memory and is dropped on completion, terminal failure,
// replacement by a new flow, or idle expiry.
type session struct {
	userID      string
	displayName string
	flow        flowKind
	step        int
	touched     time.Time

	create *createGroupFields
	join   *joinGroupFields
	event  *addEventFields
	browse *browseFields
}

// turnLock returns the mutex serializing turns for one user. Locks are
// created on first use and kept for the life of the process; the map
// carries one small entry per user id ever seen.
func (m *Machine) turnLock(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.turns[userID]
	if l == nil {
		l = &sync.Mutex{}
		m.turns[userID] = l
	}
	return l
}

// session returns the user's open session, dropping it first if it has
// sat idle past the TTL. Touches the session on every hit.
func (m *Machine) session(userID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.sessions[userID]
	if s == nil {
		return nil
	}
	if m.now().Sub(s.touched) > m.idleTTL {
		delete(m.sessions, userID)
		monitoring.OpenSessions(len(m.sessions))
		return nil
	}
	s.touched = m.now()
	return s
}

// put installs a session, silently replacing any open one for the same
// user (last entry wins).
func (m *Machine) put(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.touched = m.now()
	m.sessions[s.userID] = s
	monitoring.OpenSessions(len(m.sessions))
}

// drop removes the user's session, if any.
func (m *Machine) drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	monitoring.OpenSessions(len(m.sessions))
}
