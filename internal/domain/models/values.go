package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ID is an opaque server-assigned identifier. The API emits numeric ids but
// form submissions may carry them as strings, so both decode to the same value.
// An empty ID marks a draft that has not been created yet.
type ID string

// IsZero reports whether the id is absent.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts JSON numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(n.String())
	}
	return nil
}

// MarshalJSON writes canonical integer ids as numbers and anything else,
// including "007" or "+5", as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Date is a calendar date as exchanged with the API. Values read back from
// the server may carry a time and timezone suffix.
type Date string

// Today returns the UTC calendar date of now, the date the data service
// expects for stamped and defaulted fields.
func Today(now time.Time) Date {
	return Date(now.UTC().Format(dateLayout))
}

// Calendar strips any time or timezone part, keeping YYYY-MM-DD.
func (d Date) Calendar() Date {
	s := strings.TrimSpace(string(d))
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	return Date(s)
}

// Time parses the calendar part of the date.
func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d.Calendar()))
}

func (d Date) String() string { return string(d) }

// Money is a price. Decimal columns may be serialised as strings by the
// API, so both forms are accepted.
type Money float64

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode money: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*m = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("decode money %q: %w", s, err)
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	*m = Money(v)
	return nil
}

// Float returns the amount as a float64.
func (m Money) Float() float64 { return float64(m) }
