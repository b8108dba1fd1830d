package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// RestaurantSummary is a single search hit. PlaceID is the unique key.
type RestaurantSummary struct {
	PlaceID        string    `json:"place_id"`
	Name           string    `json:"name"`
	Rating         *float64  `json:"rating,omitempty"`
	PhotoReference string    `json:"photo_reference,omitempty"`
	Location       *GeoPoint `json:"location,omitempty"`
}

// RestaurantDetail extends a summary with contact and opening-hours data.
type RestaurantDetail struct {
	RestaurantSummary
	Address     string   `json:"formatted_address,omitempty"`
	Phone       string   `json:"formatted_phone_number,omitempty"`
	Website     string   `json:"website,omitempty"`
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeeklyHours []string `json:"weekday_text,omitempty"`
}

// PagedResult is one page of search results. An empty ContinuationToken
// means there are no further pages.
type PagedResult struct {
	Items             []RestaurantSummary `json:"results"`
	ContinuationToken string              `json:"next_page_token,omitempty"`
}

// HasMore reports whether another page can be requested.
func (p *PagedResult) HasMore() bool {
	return p != nil && p.ContinuationToken != ""
}
