package chat

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"lunchbot/internal/models"
)

// The original accepted dates and times through a very permissive
// parser; a short list of explicit layouts covers the inputs people
// actually type. Single-digit day/month/hour are accepted by each
// layout.
var (
	dateLayouts  = []string{"2006-1-2", "2.1.2006", "2/1/2006"}
	clockLayouts = []string{"15:04", "15.04"}
)

var errUnparsable = errors.New("unparsable value")

// parseDate parses a calendar date in local time.
func parseDate(text string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparsable
}

// parseClock parses a time of day. Only the hour and minute of the
// result are meaningful.
func parseClock(text string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparsable
}

// combine merges a calendar date with a time of day into one naive
// local instant.
func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local)
}

// resolveChoice maps an answer to an entry of the choice set: either a
// 1-based index or the literal group name. Anything else is rejected
// and the step repeats.
func resolveChoice(text string, choices []string) (string, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], true
		}
		return "", false
	}

	want := models.NormalizeGroupName(text)
	for _, name := range choices {
		if name == want {
			return name, true
		}
	}
	return "", false
}
