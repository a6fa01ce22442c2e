package models

// Stats is the dashboard aggregation over the (optionally gender-filtered)
// student population. TodayExpected equals Total: the intake runs one
// assessment campaign at a time, so the source never date-filters it and this
// implementation keeps that behaviour.
type Stats struct {
	Total         int            `json:"total"`
	CheckedIn     int            `json:"checked_in"`
	Booked        int            `json:"booked"`
	LevelCounts   map[string]int `json:"level_counts"`
	TodayExpected int            `json:"today_expected"`
}
