// This file holds the parsing of raw command-line values into domain
// values. Every string is converted once here and typed from then on.

package cli

import (
	"fmt"
	"strings"
	"time"

	"budgman/internal/core"
)

// timeLayouts are tried in order; the last two are read in local time.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime reads an entry timestamp. A blank value means now.
func ParseTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC 3339", s)
}

// ParseAmount reads a decimal amount such as 12.34 or 12,34.
func ParseAmount(s string) (core.Money, error) {
	m, err := core.ParseMoney(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("%w %q: use a non-negative decimal like 12.34", err, s)
	}
	return m, nil
}

// ParseName trims the name; blank names are left for validation to reject.
func ParseName(s string) string {
	return strings.TrimSpace(s)
}
