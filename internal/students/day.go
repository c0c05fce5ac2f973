package students

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// Day is a calendar date without time-of-day semantics.
// It keeps the raw text so that unparseable dates are reported, not silently fixed.
type Day struct {
	raw   string
	t     time.Time
	valid bool
}

func NewDay(year int, month time.Month, day int) Day {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day{raw: t.Format("2006-01-02"), t: t, valid: true}
}

// DayFromTime keeps only the calendar date of t, as seen in t's location.
func DayFromTime(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

func ParseDay(s string) Day {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := DayFromTime(t)
			d.raw = s
			return d
		}
	}
	return Day{raw: s}
}

// IsZero reports an absent date.
func (d Day) IsZero() bool {
	return d.raw == "" && !d.valid
}

func (d Day) Valid() bool {
	return d.valid
}

func (d Day) Time() time.Time {
	return d.t
}

func (d Day) Raw() string {
	return d.raw
}

// Before orders valid dates chronologically and places invalid ones after every valid date.
// Two invalid dates are never before each other, so a stable sort keeps their fetch order.
func (d Day) Before(other Day) bool {
	switch {
	case d.valid && other.valid:
		return d.t.Before(other.t)
	case d.valid:
		return true
	default:
		return false
	}
}

// Format renders dd/mm/yyyy; an invalid date renders its raw text.
func (d Day) Format() string {
	if !d.valid {
		return d.raw
	}
	return d.t.Format("02/01/2006")
}

// ShortFormat renders dd/mm, used for chart labels.
func (d Day) ShortFormat() string {
	if !d.valid {
		return d.raw
	}
	return d.t.Format("02/01")
}

func (d Day) String() string {
	if d.valid {
		return d.t.Format("2006-01-02")
	}
	return d.raw
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	*d = Day{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// not a string; keep it as an invalid date
		*d = Day{raw: string(data)}
		return nil
	}
	*d = ParseDay(s)
	return nil
}
