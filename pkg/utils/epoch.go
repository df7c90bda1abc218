package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func FormatEpochMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// ParseEpochMillis accepts only a plain non-negative base-10 integer.
func ParseEpochMillis(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty epoch timestamp")
	}

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch timestamp %q: %w", s, err)
	}
	if ms < 0 {
		return time.Time{}, fmt.Errorf("negative epoch timestamp %d", ms)
	}

	return time.UnixMilli(ms), nil
}
