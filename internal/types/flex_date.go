package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted from the UI, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FlexDate is a time.Time that can be unmarshaled from a date-only string,
// an RFC3339 string, or JSON null. The zero value means "not supplied".
type FlexDate struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *FlexDate) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexDate: expected string, got %s", string(data))
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("FlexDate: unrecognized date %q", s)
}

// MarshalJSON implements the json.Marshaler interface.
func (d FlexDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Ptr returns the date as a *time.Time, nil when not supplied.
func (d FlexDate) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
