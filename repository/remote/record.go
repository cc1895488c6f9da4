package remote

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fastygo/taskspace/domain"
)

// isoLayout is the UTC literal the task API expects for due dates.
const isoLayout = "2006-01-02T15:04:05.000Z"

// FormatISO renders t as a UTC timestamp with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// recordID accepts string or numeric identifiers.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = recordID(n.String())
	return nil
}

// taskRecord is the task API's wire shape.
type taskRecord struct {
	ID              recordID `json:"_id"`
	TaskTitle       string   `json:"TaskTitle"`
	TaskDescription string   `json:"TaskDescription"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	CreatedAt       string   `json:"createdAt"`
	AssignedTo      string   `json:"assignedTo"`
}

type createPayload struct {
	TaskTitle       string `json:"TaskTitle"`
	TaskDescription string `json:"TaskDescription"`
	TaskDuedate     string `json:"TaskDuedate"`
}

type replacePayload struct {
	TaskTitle       string          `json:"TaskTitle"`
	TaskDescription string          `json:"TaskDescription"`
	TaskDuedate     string          `json:"TaskDuedate"`
	Status          domain.Status   `json:"status"`
	Priority        domain.Priority `json:"priority"`
}

// normalize maps a wire record into the internal task shape. Missing or
// unknown status and priority fall back to pending and medium.
func (r taskRecord) normalize() domain.Task {
	status := domain.Status(r.Status)
	if !status.Valid() {
		status = domain.StatusPending
	}
	priority := domain.Priority(r.Priority)
	if !priority.Valid() {
		priority = domain.PriorityMedium
	}
	return domain.Task{
		ID:          string(r.ID),
		Title:       r.TaskTitle,
		Description: r.TaskDescription,
		Status:      status,
		Priority:    priority,
		CreatedAt:   parseTimestamp(r.CreatedAt),
		AssignedTo:  r.AssignedTo,
	}
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
