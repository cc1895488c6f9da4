package domain

import "time"

// DashboardStats summarizes the cached task list for the dashboard view.
type DashboardStats struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	InProgress int            `json:"in_progress"`
	Pending    int            `json:"pending"`
	Percent    map[Status]int `json:"percent"`
	Recent     []Task         `json:"recent"`
	// Weekly is filled by the caller from journaled completions.
	Weekly     []DayCount     `json:"weekly"`
}

// DayCount is one bar of the weekly progress chart.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

const recentLimit = 3

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// ComputeStats counts tasks per status. Percentages are whole numbers and zero
// for an empty list.
func ComputeStats(tasks []Task) DashboardStats {
	stats := DashboardStats{
		Total:   len(tasks),
		Percent: make(map[Status]int, len(Statuses)),
	}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			stats.Completed++
		case StatusInProgress:
			stats.InProgress++
		default:
			stats.Pending++
		}
	}
	if stats.Total > 0 {
		stats.Percent[StatusCompleted] = stats.Completed * 100 / stats.Total
		stats.Percent[StatusInProgress] = stats.InProgress * 100 / stats.Total
		stats.Percent[StatusPending] = stats.Pending * 100 / stats.Total
	} else {
		for _, s := range Statuses {
			stats.Percent[s] = 0
		}
	}

	n := recentLimit
	if len(tasks) < n {
		n = len(tasks)
	}
	stats.Recent = append([]Task(nil), tasks[:n]...)
	return stats
}

// WeeklyCounts buckets completion times from the seven days ending at now by
// weekday, Monday first.
func WeeklyCounts(completions []time.Time, now time.Time) []DayCount {
	counts := make(map[time.Weekday]int, 7)
	since := now.Add(-7 * 24 * time.Hour)
	for _, ts := range completions {
		if ts.After(since) && !ts.After(now) {
			counts[ts.Weekday()]++
		}
	}
	out := make([]DayCount, 0, len(weekdays))
	for _, d := range weekdays {
		out = append(out, DayCount{Day: d.String()[:3], Count: counts[d]})
	}
	return out
}
