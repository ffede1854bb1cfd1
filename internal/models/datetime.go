package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the fixed-width wire format for every serialized
// date-time: millisecond precision, no timezone suffix.
const DateTimeLayout = "2006-01-02 15:04:05.000"

// DateTime wraps time.Time with the service-wide wire format for JSON
// and database round-trips. Values are normalized to UTC and truncated
// to millisecond precision so that a stored timestamp reads back
// byte-identical.
type DateTime struct {
	time.Time
}

// NewDateTime normalizes t into a DateTime.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t.UTC().Truncate(time.Millisecond)}
}

// ParseDateTime parses a wire-format string into a DateTime.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid datetime %q: expected format YYYY-MM-DD HH:MM:SS.mmm", s)
	}
	return DateTime{t}, nil
}

func (dt DateTime) String() string {
	return dt.Time.Format(DateTimeLayout)
}

// MarshalJSON implements json.Marshaler using the wire format.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler using the wire format.
func (dt *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// Value implements driver.Valuer.
func (dt DateTime) Value() (driver.Value, error) {
	return dt.Time, nil
}

// Scan implements sql.Scanner.
func (dt *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		*dt = NewDateTime(v)
		return nil
	case string:
		parsed, err := ParseDateTime(v)
		if err != nil {
			return err
		}
		*dt = parsed
		return nil
	case []byte:
		parsed, err := ParseDateTime(string(v))
		if err != nil {
			return err
		}
		*dt = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into DateTime", src)
}
