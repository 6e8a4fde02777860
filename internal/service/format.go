package service

import "lunchbot/internal/models"

const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"

	// missingPart stands in for any instant the event does not carry.
	missingPart = "-"
)

// FormatEvent renders an event's window as display strings: date as
// day.month.year and times as 24-hour hour:minute.
//
// Start and End are formatted independently: a missing Start yields "-"
// for the date and start parts without affecting the end part, and vice
// versa.
func FormatEvent(ev models.Event) (datePart, startPart, endPart string) {
	datePart, startPart, endPart = missingPart, missingPart, missingPart
	if !ev.Start.IsZero() {
		datePart = ev.Start.Format(dateLayout)
		startPart = ev.Start.Format(timeLayout)
	}
	if !ev.End.IsZero() {
		endPart = ev.End.Format(timeLayout)
	}
	return datePart, startPart, endPart
}
