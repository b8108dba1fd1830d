package domain

import "time"

// SearchEvent records a completed list search.
type SearchEvent struct {
	Time     time.Time      `json:"time"`
	Filter   *FilterRequest `json:"filter"`
	Results  int            `json:"results"`
	HasMore  bool           `json:"has_more"`
	Duration time.Duration  `json:"duration_ns"`
}

// DetailViewEvent records a successful detail lookup.
type DetailViewEvent struct {
	Time    time.Time `json:"time"`
	PlaceID string    `json:"place_id"`
	Name    string    `json:"name"`
}
