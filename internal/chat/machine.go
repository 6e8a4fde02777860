// Package chat drives the conversational surface: a per-user session
// state machine that collects one field per inbound message, validating
// as it goes, and persists the result through the services when the
// last step completes.
//
// The package is transport-agnostic. Whatever delivers messages (a bot
// webhook, the HTTP chat endpoint) calls Handle with an opaque user id,
// an optional display name and the raw text, and sends the returned
// reply back to the user.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"lunchbot/internal/monitoring"
	"lunchbot/internal/service"
)

// DefaultIdleTTL is how long a session may sit idle before the next
// message from that user starts from a clean slate. The source system
// kept sessions forever; a bound was added so a long-running process
// does not accumulate abandoned flows.
const DefaultIdleTTL = 30 * time.Minute

// Machine owns the session registry and routes each inbound message to
// the right flow step. Sessions are keyed by user id and exist only in
// this process.
type Machine struct {
	groups  *service.Groups
	events  *service.Events
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	turns    map[string]*sync.Mutex
}

// NewMachine creates a Machine over the given services. An idleTTL of 0
// selects DefaultIdleTTL.
func NewMachine(groups *service.Groups, events *service.Events, idleTTL time.Duration) *Machine {
	if idleTTL == 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Machine{
		groups:   groups,
		events:   events,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*session),
		turns:    make(map[string]*sync.Mutex),
	}
}

// Handle processes one inbound chat turn and returns the reply text.
//
// An entry command always starts its flow, discarding any flow already
// open for the user without warning. Any other text is the answer to
// the current step of the open flow, or a usage hint when none is open.
//
// Turns for the same user are processed one at a time; session fields
// are only ever touched under that user's turn lock. Turns for
// different users run concurrently.
func (m *Machine) Handle(ctx context.Context, userID, displayName, text string) string {
	monitoring.ChatTurn()

	lock := m.turnLock(userID)
	lock.Lock()
	defer lock.Unlock()

	trimmed := strings.TrimSpace(text)
	if cmd, ok := entryCommand(trimmed); ok {
		return m.startCommand(ctx, userID, displayName, cmd)
	}

	if s := m.session(userID); s != nil {
		return m.advance(ctx, s, trimmed)
	}
	return replyUsage
}

// entryCommand recognizes the fixed command set, with or without a
// leading slash, case folded.
func entryCommand(text string) (string, bool) {
	cmd := strings.ToLower(strings.TrimPrefix(text, "/"))
	switch cmd {
	case "start", "create", "join", "addevent", "current", "history":
		return cmd, true
	}
	return "", false
}

func (m *Machine) startCommand(ctx context.Context, userID, displayName, cmd string) string {
	switch cmd {
	case "start":
		m.drop(userID)
		return replyGreeting
	case "create":
		m.put(&session{
			userID:      userID,
			displayName: displayName,
			flow:        flowCreateGroup,
			create:      &createGroupFields{},
		})
		return promptGroupName
	case "join":
		m.put(&session{
			userID:      userID,
			displayName: displayName,
			flow:        flowJoinGroup,
			join:        &joinGroupFields{},
		})
		return promptGroupName
	case "addevent":
		return m.startChoiceFlow(ctx, userID, displayName, flowAddEvent)
	case "current":
		return m.startChoiceFlow(ctx, userID, displayName, flowBrowseCurrent)
	default: // "history"
		return m.startChoiceFlow(ctx, userID, displayName, flowBrowseHistory)
	}
}

// startChoiceFlow opens a flow that begins with a group selection. The
// answer set is computed here, once; a caller with no memberships
// terminates immediately without a session ever being created.
func (m *Machine) startChoiceFlow(ctx context.Context, userID, displayName string, kind flowKind) string {
	// Starting a new flow discards the old one even when the new flow
	// dies on the spot.
	m.drop(userID)

	names, err := m.groups.MembershipsOf(ctx, userID)
	if err != nil {
		monitoring.FlowCompleted(kind.String(), "error")
		return replyFailure
	}
	if len(names) == 0 {
		monitoring.FlowCompleted(kind.String(), "no_groups")
		return replyNoGroups
	}

	s := &session{userID: userID, displayName: displayName, flow: kind}
	switch kind {
	case flowAddEvent:
		s.event = &addEventFields{choices: names}
	case flowBrowseCurrent:
		s.browse = &browseFields{choices: names, mode: service.ModeCurrent}
	default:
		s.browse = &browseFields{choices: names, mode: service.ModeHistory}
	}
	m.put(s)

	return promptChooseGroup(names)
}

// promptChooseGroup renders the numbered answer set for a choice step.
func promptChooseGroup(names []string) string {
	var b strings.Builder
	b.WriteString(promptGroupChoice)
	for i, name := range names {
		fmt.Fprintf(&b, "\n%d. %s", i+1, name)
	}
	return b.String()
}
