package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lunchbot/internal/models"
	"lunchbot/internal/monitoring"
	"lunchbot/internal/service"
)

// advance feeds the answer text to the session's current step. A
// validation failure re-prompts and leaves the session where it is;
// there is no retry limit. Terminal steps drop the session before
// touching the store so a failed persist never leaves a half-open flow.
func (m *Machine) advance(ctx context.Context, s *session, text string) string {
	switch s.flow {
	case flowCreateGroup:
		return m.advanceCreateGroup(ctx, s, text)
	case flowJoinGroup:
		return m.advanceJoinGroup(ctx, s, text)
	case flowAddEvent:
		return m.advanceAddEvent(ctx, s, text)
	default:
		return m.advanceBrowse(ctx, s, text)
	}
}

func (m *Machine) advanceCreateGroup(ctx context.Context, s *session, text string) string {
	switch s.step {
	case stepGroupName:
		if text == "" {
			return replyEmptyName
		}
		s.create.name = text
		s.step = stepGroupPassword
		return promptGroupPassword

	default: // stepGroupPassword, terminal
		if text == "" {
			return replyEmptyPassword
		}
		m.drop(s.userID)

		// The conversational flow overwrites an existing group of the
		// same name without complaint; only the API rejects duplicates.
		if err := m.groups.CreateOrReplace(ctx, s.create.name, text, s.userID); err != nil {
			monitoring.FlowCompleted(s.flow.String(), "error")
			return replyFailure
		}
		monitoring.FlowCompleted(s.flow.String(), "ok")
		return fmt.Sprintf("✅ Group '%s' created!", models.NormalizeGroupName(s.create.name))
	}
}

func (m *Machine) advanceJoinGroup(ctx context.Context, s *session, text string) string {
	switch s.step {
	case stepGroupName:
		if text == "" {
			return replyEmptyName
		}
		s.join.name = text
		s.step = stepGroupPassword
		return promptGroupPassword

	default: // stepGroupPassword, terminal
		if text == "" {
			return replyEmptyPassword
		}
		m.drop(s.userID)

		err := m.groups.Join(ctx, s.join.name, text, s.userID)
		switch {
		case errors.Is(err, service.ErrNotFound):
			monitoring.FlowCompleted(s.flow.String(), "not_found")
			return replyGroupNotFound
		case errors.Is(err, service.ErrUnauthorized):
			monitoring.FlowCompleted(s.flow.String(), "unauthorized")
			return replyWrongPassword
		case err != nil:
			monitoring.FlowCompleted(s.flow.String(), "error")
			return replyFailure
		}
		monitoring.FlowCompleted(s.flow.String(), "ok")
		return fmt.Sprintf("✅ You joined the group '%s'!", models.NormalizeGroupName(s.join.name))
	}
}

func (m *Machine) advanceAddEvent(ctx context.Context, s *session, text string) string {
	switch s.step {
	case stepEventGroup:
		name, ok := resolveChoice(text, s.event.choices)
		if !ok {
			return replyBadChoice
		}
		s.event.group = name
		s.step = stepEventDate
		return promptEventDate

	case stepEventDate:
		date, err := parseDate(text)
		if err != nil {
			return replyBadDate
		}
		s.event.date = date
		s.step = stepEventStart
		return promptEventStart

	case stepEventStart:
		clock, err := parseClock(text)
		if err != nil {
			return replyBadTime
		}
		s.event.start = clock
		s.step = stepEventEnd
		return promptEventEnd

	case stepEventEnd:
		clock, err := parseClock(text)
		if err != nil {
			return replyBadTime
		}
		s.event.end = clock
		s.step = stepEventLocation
		return promptEventLocation

	default: // stepEventLocation, terminal
		if text == "" {
			return replyEmptyLocation
		}
		m.drop(s.userID)

		ev := &models.Event{
			CreatorID:   s.userID,
			CreatorName: s.displayName,
			Start:       combine(s.event.date, s.event.start),
			End:         combine(s.event.date, s.event.end),
			Location:    text,
		}
		if _, err := m.events.Add(ctx, s.event.group, ev); err != nil {
			monitoring.FlowCompleted(s.flow.String(), "error")
			return replyFailure
		}
		monitoring.FlowCompleted(s.flow.String(), "ok")
		return replyEventAdded
	}
}

func (m *Machine) advanceBrowse(ctx context.Context, s *session, text string) string {
	// Single step: the group choice is also the terminal.
	name, ok := resolveChoice(text, s.browse.choices)
	if !ok {
		return replyBadChoice
	}
	m.drop(s.userID)

	events, err := m.events.Query(ctx, name, s.browse.mode)
	if err != nil {
		monitoring.FlowCompleted(s.flow.String(), "error")
		return replyFailure
	}
	monitoring.FlowCompleted(s.flow.String(), "ok")

	if len(events) == 0 {
		if s.browse.mode == service.ModeHistory {
			return replyNoHistoryEvents
		}
		return replyNoCurrentEvents
	}

	var b strings.Builder
	if s.browse.mode == service.ModeHistory {
		b.WriteString(headerHistory)
	} else {
		b.WriteString(headerCurrent)
	}
	for _, ev := range events {
		date, start, end := service.FormatEvent(ev)
		fmt.Fprintf(&b, "\n📅 %s %s - %s\n📍 %s\n👤 %s\n", date, start, end, ev.Location, ev.CreatorName)
	}
	return strings.TrimRight(b.String(), "\n")
}
