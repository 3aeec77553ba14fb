package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Millis is an instant expressed in epoch milliseconds, the portal's wire
// format for every date field.
type Millis int64

// MillisFrom converts a time to portal milliseconds.
func MillisFrom(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time returns the instant in the local time zone.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// IsZero reports whether the instant was absent on the wire.
func (m Millis) IsZero() bool { return m == 0 }

func (m Millis) String() string {
	return strconv.FormatInt(int64(m), 10)
}

// UnmarshalJSON accepts integers, floats (the portal sometimes sends 1.7e12)
// and null.
func (m *Millis) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Millis(int64(f))
	return nil
}

// FlexString decodes a JSON string or number into its textual form. The
// portal is inconsistent about quoting identifiers and marks.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// Float parses the value as a number; ok is false when empty or non-numeric.
func (s FlexString) Float() (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
