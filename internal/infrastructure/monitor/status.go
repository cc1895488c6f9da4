package monitor

import "time"

type Status struct {
	TaskAPI       bool      `json:"task_api"`
	TaskAPIStatus int       `json:"task_api_status,omitempty"`
	Journal       bool      `json:"journal"`
	JournalSize   int       `json:"journal_size"`
	LastCheck     time.Time `json:"last_check"`
}
