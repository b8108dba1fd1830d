package domain

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// RankBy selects the ordering of a nearby search.
type RankBy string

const (
	RankByProminence RankBy = "prominence"
	RankByDistance   RankBy = "distance"
)

// Price levels accepted by the places API.
const (
	MinPriceLevel = 0
	MaxPriceLevel = 4
)

// Raw query parameter names.
const (
	ParamPageToken = "pagetoken"
	ParamMinPrice  = "minprice"
	ParamMaxPrice  = "maxprice"
	ParamKeyword   = "keyword"
	ParamOpenNow   = "opennow"
	ParamType      = "type"
	ParamLat       = "lat"
	ParamLng       = "lng"
	ParamRankBy    = "rankby"
)

// FilterRequest is a validated, normalized search request.
type FilterRequest struct {
	PageToken string   `json:"pagetoken,omitempty"`
	MinPrice  *int     `json:"minprice,omitempty"`
	MaxPrice  *int     `json:"maxprice,omitempty"`
	Keyword   string   `json:"keyword,omitempty"`
	OpenNow   bool     `json:"opennow"`
	Type      string   `json:"type,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	RankBy    RankBy   `json:"rankby,omitempty"`
}

// Location returns the request coordinates when both lat and lng are set.
func (f *FilterRequest) Location() (GeoPoint, bool) {
	if f.Lat == nil || f.Lng == nil {
		return GeoPoint{}, false
	}
	return GeoPoint{Lat: *f.Lat, Lng: *f.Lng}, true
}

// ValidateQuery turns raw URL query parameters into a FilterRequest.
// Rules are applied in order and the first failure is returned as a
// *ValidationError. It has no side effects.
func ValidateQuery(q url.Values) (*FilterRequest, error) {
	req := &FilterRequest{}

	if present(q, ParamMinPrice) {
		p, ok := parsePrice(q[ParamMinPrice])
		if !ok {
			return nil, &ValidationError{
				Code:    CodeInvalidMinPrice,
				Field:   ParamMinPrice,
				Message: "Invalid minPrice. Must be a number between 0 and 4",
			}
		}
		req.MinPrice = &p
	}

	if present(q, ParamMaxPrice) {
		p, ok := parsePrice(q[ParamMaxPrice])
		if !ok {
			return nil, &ValidationError{
				Code:    CodeInvalidMaxPrice,
				Field:   ParamMaxPrice,
				Message: "Invalid maxPrice. Must be a number between 0 and 4",
			}
		}
		req.MaxPrice = &p
	}

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, &ValidationError{
			Code:    CodePriceRangeInverted,
			Field:   ParamMinPrice,
			Message: "minPrice cannot be greater than maxPrice",
		}
	}

	if present(q, ParamType) {
		// A repeated parameter arrives as an array, not a plain string.
		if len(q[ParamType]) != 1 {
			return nil, &ValidationError{
				Code:    CodeInvalidType,
				Field:   ParamType,
				Message: "Invalid type. Must be a string",
			}
		}
		req.Type = q.Get(ParamType)
	}

	req.OpenNow = len(q[ParamOpenNow]) == 1 && q.Get(ParamOpenNow) == "true"

	req.PageToken = q.Get(ParamPageToken)
	req.Keyword = q.Get(ParamKeyword)
	req.RankBy = RankBy(q.Get(ParamRankBy))
	req.Lat = parseCoord(q.Get(ParamLat))
	req.Lng = parseCoord(q.Get(ParamLng))

	return req, nil
}

// present treats an empty value the same as a missing parameter.
func present(q url.Values, key string) bool {
	for _, v := range q[key] {
		if v != "" {
			return true
		}
	}
	return false
}

func parsePrice(values []string) (int, bool) {
	if len(values) != 1 {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < MinPriceLevel || f > MaxPriceLevel {
		return 0, false
	}
	return int(f), true
}

func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Query renders the request back into raw query parameters, omitting
// empty values. ValidateQuery(r.Query()) yields an equivalent request.
func (f *FilterRequest) Query() url.Values {
	q := url.Values{}
	if f.PageToken != "" {
		q.Set(ParamPageToken, f.PageToken)
	}
	if f.MinPrice != nil {
		q.Set(ParamMinPrice, strconv.Itoa(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		q.Set(ParamMaxPrice, strconv.Itoa(*f.MaxPrice))
	}
	if f.Keyword != "" {
		q.Set(ParamKeyword, f.Keyword)
	}
	if f.OpenNow {
		q.Set(ParamOpenNow, "true")
	}
	if f.Type != "" {
		q.Set(ParamType, f.Type)
	}
	if f.Lat != nil {
		q.Set(ParamLat, strconv.FormatFloat(*f.Lat, 'f', -1, 64))
	}
	if f.Lng != nil {
		q.Set(ParamLng, strconv.FormatFloat(*f.Lng, 'f', -1, 64))
	}
	if f.RankBy != "" {
		q.Set(ParamRankBy, string(f.RankBy))
	}
	return q
}
