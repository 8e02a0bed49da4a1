package calendar

import (
	"time"

	"github.com/matzehuels/weekplan/pkg/errors"
)

// Source identifies where an event came from.
type Source string

const (
	SourceSimplePractice Source = "simplepractice"
	SourceGoogle         Source = "google"
	SourceHoliday        Source = "holiday"
	SourceManual         Source = "manual"
)

// Sources lists every source in legend order.
var Sources = []Source{SourceSimplePractice, SourceGoogle, SourceHoliday, SourceManual}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceSimplePractice, SourceGoogle, SourceHoliday, SourceManual:
		return true
	}
	return false
}

// Label returns the human-readable legend label.
func (s Source) Label() string {
	switch s {
	case SourceSimplePractice:
		return "SimplePractice"
	case SourceGoogle:
		return "Google Calendar"
	case SourceHoliday:
		return "Holidays"
	case SourceManual:
		return "Manual"
	}
	return string(s)
}

// Status is the optional appointment status.
type Status string

const (
	StatusNone            Status = ""
	StatusConfirmed       Status = "confirmed"
	StatusCanceledByHost  Status = "canceled-by-host"
	StatusCanceledByGuest Status = "canceled-by-guest"
)

// Canceled reports whether the status is one of the canceled variants.
func (s Status) Canceled() bool {
	return s == StatusCanceledByHost || s == StatusCanceledByGuest
}

// Label returns the text shown on daily cards.
func (s Status) Label() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusCanceledByHost:
		return "Canceled by clinician"
	case StatusCanceledByGuest:
		return "Canceled by client"
	}
	return ""
}

// Event is a scheduled appointment.
type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Start       time.Time `json:"start" yaml:"start"`
	End         time.Time `json:"end" yaml:"end"`
	Source      Source    `json:"source" yaml:"source"`
	Notes       []string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	ActionItems []string  `json:"action_items,omitempty" yaml:"action_items,omitempty"`
	Status      Status    `json:"status,omitempty" yaml:"status,omitempty"`
	// AllDay marks a date-only event. Only the calendar dates of Start and
	// End (exclusive) are meaningful.
	AllDay bool `json:"all_day,omitempty" yaml:"all_day,omitempty"`
}

// Duration returns End - Start.
func (e Event) Duration() time.Duration { return e.End.Sub(e.Start) }

// In returns e with its times expressed in loc. All-day events keep their
// calendar dates and get local midnights as Start and End.
func (e Event) In(loc *time.Location) Event {
	if e.AllDay {
		e.Start, e.End = dateIn(e.Start, loc), dateIn(e.End, loc)
		return e
	}
	e.Start, e.End = e.Start.In(loc), e.End.In(loc)
	return e
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Canceled reports whether the event was canceled by either party.
func (e Event) Canceled() bool { return e.Status.Canceled() }

// HasDetails reports whether the event carries notes or action items.
func (e Event) HasDetails() bool { return len(e.Notes) > 0 || len(e.ActionItems) > 0 }

// Overlaps reports whether the half-open intervals [Start, End) intersect.
func (e Event) Overlaps(o Event) bool {
	return e.Start.Before(o.End) && o.Start.Before(e.End)
}

// Validate checks the event invariants. Every failure carries
// ErrCodeMalformedEvent.
func (e Event) Validate() error {
	if err := errors.ValidateEventID(e.ID); err != nil {
		return err
	}
	if e.Start.IsZero() {
		return errors.New(errors.ErrCodeMalformedEvent, "event %s has no start", e.ID)
	}
	if e.End.IsZero() {
		return errors.New(errors.ErrCodeMalformedEvent, "event %s has no end", e.ID)
	}
	if !e.End.After(e.Start) {
		return errors.New(errors.ErrCodeMalformedEvent, "event %s ends at or before its start (%s <= %s)",
			e.ID, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	if e.Source != "" && !e.Source.Valid() {
		return errors.New(errors.ErrCodeMalformedEvent, "event %s has unknown source %q", e.ID, e.Source)
	}
	switch e.Status {
	case StatusNone, StatusConfirmed, StatusCanceledByHost, StatusCanceledByGuest:
	default:
		return errors.New(errors.ErrCodeMalformedEvent, "event %s has unknown status %q", e.ID, e.Status)
	}
	return nil
}

// Normalized returns a copy with defaults filled in. An empty source becomes
// SourceManual.
func (e Event) Normalized() Event {
	if e.Source == "" {
		e.Source = SourceManual
	}
	return e
}
