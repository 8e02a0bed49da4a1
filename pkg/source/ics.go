package source

import (
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
)

// actionPrefix marks description lines that are action items.
const actionPrefix = "- [ ]"

// ReadICS reads the VEVENT components of an iCalendar stream and tags them
// with src.
//
// DESCRIPTION lines become notes, except lines starting with "- [ ]", which
// become action items. STATUS:CANCELLED maps to a host cancellation and
// STATUS:CONFIRMED to confirmed. A missing DTEND is derived from DURATION,
// and date-only events become all-day events lasting one day by default.
// Events whose times cannot be read are kept with zero times so they surface
// as malformed.
func ReadICS(r io.Reader, src calendar.Source) ([]calendar.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse calendar")
	}

	var events []calendar.Event
	for _, ve := range cal.Events() {
		e := calendar.Event{Source: src}
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			e.ID = strings.TrimSpace(p.Value)
		}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			e.Title = unescape(p.Value)
		}
		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			e.Notes, e.ActionItems = splitDescription(unescape(p.Value))
		}
		if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
			switch strings.ToUpper(strings.TrimSpace(p.Value)) {
			case "CANCELLED":
				e.Status = calendar.StatusCanceledByHost
			case "CONFIRMED":
				e.Status = calendar.StatusConfirmed
			}
		}
		readTimes(ve, &e)
		events = append(events, e)
	}
	return events, nil
}

const dateLayout = "20060102"

func readTimes(ve *ical.VEvent, e *calendar.Event) {
	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start != nil && isDate(start) {
		e.AllDay = true
		t, err := time.Parse(dateLayout, strings.TrimSpace(start.Value))
		if err != nil {
			return
		}
		e.Start = t
		e.End = t.AddDate(0, 0, 1)
		if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
			if end, err := time.Parse(dateLayout, strings.TrimSpace(p.Value)); err == nil {
				e.End = end
			}
		} else if d, ok := eventDuration(ve); ok {
			e.End = t.Add(d)
		}
		return
	}

	if t, err := ve.GetStartAt(); err == nil {
		e.Start = t
	}
	if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
		if t, err := ve.GetEndAt(); err == nil {
			e.End = t
		}
		return
	}
	if d, ok := eventDuration(ve); ok && !e.Start.IsZero() {
		e.End = e.Start.Add(d)
	}
}

func isDate(p *ical.IANAProperty) bool {
	if vs := p.ICalParameters["VALUE"]; len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func eventDuration(ve *ical.VEvent) (time.Duration, bool) {
	p := ve.GetProperty(ical.ComponentProperty("DURATION"))
	if p == nil {
		return 0, false
	}
	d, err := parseDuration(p.Value)
	if err != nil {
		return 0, false
	}
	return d, true
}

// parseDuration parses an RFC 5545 duration such as "PT45M", "P1D" or
// "-P1W". Days count as 24 hours.
func parseDuration(s string) (time.Duration, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	sign := time.Duration(1)
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") || len(s) < 3 {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "invalid duration %q", s)
	}

	var d time.Duration
	inTime := false
	num := ""
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
			continue
		case r == 'T':
			if inTime || num != "" {
				return 0, errors.New(errors.ErrCodeInvalidFormat, "invalid duration %q", s)
			}
			inTime = true
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidFormat, "invalid duration %q", s)
		}
		unit, ok := durationUnit(r, inTime)
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidFormat, "invalid duration %q", s)
		}
		d += time.Duration(n) * unit
		num = ""
	}
	if num != "" {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "invalid duration %q", s)
	}
	return sign * d, nil
}

func durationUnit(r rune, inTime bool) (time.Duration, bool) {
	if inTime {
		switch r {
		case 'H':
			return time.Hour, true
		case 'M':
			return time.Minute, true
		case 'S':
			return time.Second, true
		}
		return 0, false
	}
	switch r {
	case 'W':
		return 7 * 24 * time.Hour, true
	case 'D':
		return 24 * time.Hour, true
	}
	return 0, false
}

func splitDescription(desc string) (notes, actions []string) {
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, actionPrefix):
			if item := strings.TrimSpace(strings.TrimPrefix(line, actionPrefix)); item != "" {
				actions = append(actions, item)
			}
		default:
			notes = append(notes, line)
		}
	}
	return notes, actions
}

var icsUnescaper = strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)

func unescape(s string) string { return icsUnescaper.Replace(s) }
