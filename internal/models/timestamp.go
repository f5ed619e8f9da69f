package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WireLayout is the timestamp layout the task API reads and writes
// (a zone-less local date-time).
const WireLayout = "2006-01-02T15:04:05"

// DateLayout is the date-only layout used by the form's date picker.
const DateLayout = "2006-01-02"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	WireLayout,
	"2006-01-02T15:04",
	DateLayout,
}

// Timestamp is a point in time as exchanged with the task API. Zone-less
// values are interpreted in time.Local.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp accepts RFC 3339, zone-less ISO date-times and plain dates.
func ParseTimestamp(raw string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range parseLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, raw)
		} else {
			t, err = time.ParseInLocation(layout, raw, time.Local)
		}
		if err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", raw)
}

// DateOnly returns the date portion formatted for a date input.
func (t Timestamp) DateOnly() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// String formats the timestamp in the wire layout.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(WireLayout)
}

// MarshalJSON encodes the wire layout in local time, or null when zero.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.In(time.Local).Format(WireLayout))
}

// UnmarshalJSON accepts null, an empty string or any layout ParseTimestamp does.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
