// Package frontend is the client side of the restaurant finder: filter
// selections, the accumulated result list and the JSON client that feeds it.
package frontend

import (
	"net/url"
	"strings"
	"sync"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// Defaults applied to a fresh or reset filter set.
const (
	DefaultRankBy = domain.RankByProminence
	DefaultType   = "restaurant"
)

// Price filter bounds used when the filter is switched on.
const (
	PriceFilterMin = 1
	PriceFilterMax = domain.MaxPriceLevel
)

// FilterOptions is a snapshot of the user's selections.
type FilterOptions struct {
	Keyword  string
	MinPrice *int
	MaxPrice *int
	OpenNow  bool
	RankBy   domain.RankBy
	Type     string
	Location *domain.GeoPoint
}

// DefaultFilters returns the selections shown on first load.
func DefaultFilters() FilterOptions {
	return FilterOptions{RankBy: DefaultRankBy, Type: DefaultType}
}

// FilterChange is one edit to the filter set. The set of changes is closed:
// only the types declared in this package implement it.
type FilterChange interface {
	apply(o *FilterOptions)
}

type (
	// SetKeyword replaces the free-text keyword.
	SetKeyword string
	// SetOpenNow toggles the open-now filter.
	SetOpenNow bool
	// SetRankBy selects prominence or distance ordering.
	SetRankBy domain.RankBy
	// SetType replaces the place type.
	SetType string
	// SetMinPrice sets the lower price level. A nil Level clears it.
	SetMinPrice struct{ Level *int }
	// SetMaxPrice sets the upper price level. A nil Level clears it.
	SetMaxPrice struct{ Level *int }
	// SetLocation pins the search center. A nil Point clears it.
	SetLocation struct{ Point *domain.GeoPoint }
)

func (c SetKeyword) apply(o *FilterOptions) { o.Keyword = string(c) }
func (c SetOpenNow) apply(o *FilterOptions) { o.OpenNow = bool(c) }
func (c SetRankBy) apply(o *FilterOptions)  { o.RankBy = domain.RankBy(c) }
func (c SetType) apply(o *FilterOptions)    { o.Type = string(c) }

func (c SetMinPrice) apply(o *FilterOptions) { o.MinPrice = copyInt(c.Level) }
func (c SetMaxPrice) apply(o *FilterOptions) { o.MaxPrice = copyInt(c.Level) }

func (c SetLocation) apply(o *FilterOptions) {
	if c.Point == nil {
		o.Location = nil
		return
	}
	p := *c.Point
	o.Location = &p
}

// PriceRange sets both price bounds, as the range slider does.
func PriceRange(min, max int) []FilterChange {
	return []FilterChange{SetMinPrice{Level: &min}, SetMaxPrice{Level: &max}}
}

// FilterState holds the current selections and derives request parameters
// from them. It is safe for concurrent use.
type FilterState struct {
	mu           sync.RWMutex
	opts         FilterOptions
	nearby       bool
	priceEnabled bool
	revision     uint64
}

// NewFilterState returns a state holding DefaultFilters.
func NewFilterState() *FilterState {
	return &FilterState{opts: DefaultFilters()}
}

// Apply applies changes in order and reports whether anything changed.
// Every effective change bumps the revision.
func (s *FilterState) Apply(changes ...FilterChange) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.opts
	for _, c := range changes {
		c.apply(&s.opts)
	}
	if optionsEqual(before, s.opts) {
		return false
	}
	s.revision++
	return true
}

// EnablePriceFilter switches the price filter on with the full 1..4 range,
// or off with both bounds cleared.
func (s *FilterState) EnablePriceFilter(on bool) bool {
	s.mu.Lock()
	s.priceEnabled = on
	s.mu.Unlock()

	if on {
		return s.Apply(PriceRange(PriceFilterMin, PriceFilterMax)...)
	}
	return s.Apply(SetMinPrice{}, SetMaxPrice{})
}

// PriceFilterEnabled reports whether the price filter is on.
func (s *FilterState) PriceFilterEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.priceEnabled
}

// setNearby records nearby mode. Turning it off also clears the location.
// Either effect counts as one change.
func (s *FilterState) setNearby(on bool, loc *domain.GeoPoint) bool {
	if !on {
		loc = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.opts
	SetLocation{Point: loc}.apply(&s.opts)
	changed := s.nearby != on || !optionsEqual(before, s.opts)
	s.nearby = on
	if changed {
		s.revision++
	}
	return changed
}

// Nearby reports whether nearby mode is on.
func (s *FilterState) Nearby() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nearby
}

// Reset restores the defaults and switches off nearby mode and the price filter.
func (s *FilterState) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.nearby || s.priceEnabled || !optionsEqual(s.opts, DefaultFilters())
	s.opts = DefaultFilters()
	s.nearby = false
	s.priceEnabled = false
	if changed {
		s.revision++
	}
	return changed
}

// Options returns a copy of the current selections.
func (s *FilterState) Options() FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o := s.opts
	o.MinPrice = copyInt(o.MinPrice)
	o.MaxPrice = copyInt(o.MaxPrice)
	if o.Location != nil {
		p := *o.Location
		o.Location = &p
	}
	return o
}

// Revision counts effective changes since construction.
func (s *FilterState) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Request derives the search request for the first page. In nearby mode
// with a known location the ranking is forced to distance.
func (s *FilterState) Request() *domain.FilterRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := s.opts
	req := &domain.FilterRequest{
		MinPrice: copyInt(o.MinPrice),
		MaxPrice: copyInt(o.MaxPrice),
		Keyword:  strings.TrimSpace(o.Keyword),
		OpenNow:  o.OpenNow,
		Type:     o.Type,
		RankBy:   o.RankBy,
	}
	if o.Location != nil {
		lat, lng := o.Location.Lat, o.Location.Lng
		req.Lat, req.Lng = &lat, &lng
		if s.nearby {
			req.RankBy = domain.RankByDistance
		}
	}
	return req
}

// Params renders Request as query parameters. Empty values are left out.
func (s *FilterState) Params() url.Values {
	return s.Request().Query()
}

// PriceLabel renders a price level as dollar signs. Levels outside 1..4
// have no label.
func PriceLabel(level int) string {
	if level < 1 || level > domain.MaxPriceLevel {
		return ""
	}
	return strings.Repeat("$", level)
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func optionsEqual(a, b FilterOptions) bool {
	if a.Keyword != b.Keyword || a.OpenNow != b.OpenNow || a.RankBy != b.RankBy || a.Type != b.Type {
		return false
	}
	if !intEqual(a.MinPrice, b.MinPrice) || !intEqual(a.MaxPrice, b.MaxPrice) {
		return false
	}
	if a.Location == nil || b.Location == nil {
		return a.Location == b.Location
	}
	return *a.Location == *b.Location
}
