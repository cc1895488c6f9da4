package task

import (
	"strings"
	"time"

	"github.com/fastygo/taskspace/domain"
)

var zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}

// Zone-less layouts, including the HTML datetime-local format.
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDueDate parses raw as a due date. Inputs without a zone are read in loc.
func ParseDueDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.ErrInvalidDueDate
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ErrInvalidDueDate
}
