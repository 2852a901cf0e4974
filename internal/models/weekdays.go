package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodeWeekdays serializes a weekday set as comma-separated numbers
// (0=Sunday). Used by the SQL storage backends.
func EncodeWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

// DecodeWeekdays parses a comma-separated weekday-number string back into a
// weekday set. The empty string decodes to an empty set.
func DecodeWeekdays(s string) ([]time.Weekday, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday value: %q", part)
		}
		days = append(days, time.Weekday(n))
	}

	return days, nil
}
