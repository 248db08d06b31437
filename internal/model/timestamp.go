package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Timestamp is a time stored as zone-less ISO-8601 text in local time,
// e.g. 2026-02-12T10:00:00.123456.
type Timestamp struct {
	time.Time
}

const (
	isoLayout      = "2006-01-02T15:04:05"
	isoLayoutMicro = "2006-01-02T15:04:05.000000"
)

// zonedLayouts carry an offset; the driver's own datetime format is one of them.
var zonedLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// localLayouts have no offset and are read in local time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// NewTimestamp wraps t for storage.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// Scan implements the sql.Scanner interface.
func (ts *Timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		ts.Time = time.Time{}
		return nil
	case time.Time:
		ts.Time = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", value)
	}
}

// Value implements the driver.Valuer interface.
func (ts Timestamp) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return ts.String(), nil
}

// String renders the stored form. Microseconds are omitted when zero.
func (ts Timestamp) String() string {
	local := ts.Time.In(time.Local)
	if local.Nanosecond()/int(time.Microsecond) == 0 {
		return local.Format(isoLayout)
	}
	return local.Format(isoLayoutMicro)
}

func (ts *Timestamp) parse(s string) error {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("scan timestamp: unrecognised value %q", s)
}
