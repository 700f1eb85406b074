package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the display layout for absolute timestamps.
const DateTimeLayout = "2006-01-02 15:04:05"

// Timestamp holds a server time value exactly as received. The knowledge
// service sends unix numbers while the review service sends formatted strings,
// so the raw text is kept and interpreted at display time.
type Timestamp string

// UnmarshalJSON accepts JSON numbers and strings.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Timestamp(n.String())
	return nil
}

// Time parses the timestamp. Ten-digit numbers are unix seconds, other
// numbers are unix milliseconds; strings may be RFC 3339 or the server's
// "YYYY-MM-DD HH:MM:SS" layout, which is UTC.
func (t Timestamp) Time() (time.Time, bool) {
	raw := strings.TrimSpace(string(t))
	if raw == "" {
		return time.Time{}, false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		digits := strings.SplitN(strings.TrimPrefix(raw, "-"), ".", 2)[0]
		if len(digits) == 10 {
			return time.Unix(int64(n), 0), true
		}
		return time.UnixMilli(int64(n)), true
	}
	if strings.Contains(raw, "T") {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			return parsed, true
		}
		return time.Time{}, false
	}
	if parsed, err := time.ParseInLocation(DateTimeLayout, raw, time.UTC); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

// FormatDateTime renders the timestamp in loc using DateTimeLayout. Blank
// input yields "unknown"; unparseable input is returned unchanged.
func FormatDateTime(t Timestamp, loc *time.Location) string {
	if strings.TrimSpace(string(t)) == "" {
		return "unknown"
	}
	parsed, ok := t.Time()
	if !ok {
		return string(t)
	}
	if loc == nil {
		loc = time.Local
	}
	return parsed.In(loc).Format(DateTimeLayout)
}
