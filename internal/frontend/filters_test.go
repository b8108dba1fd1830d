package frontend_test

import (
	"testing"

	"github.com/samirrijal/restofinder/internal/core/domain"
	"github.com/samirrijal/restofinder/internal/frontend"
)

func TestDefaultParams(t *testing.T) {
	s := frontend.NewFilterState()
	q := s.Params()

	if q.Get("rankby") != "prominence" || q.Get("type") != "restaurant" {
		t.Errorf("unexpected defaults %v", q)
	}
	for _, k := range []string{"keyword", "minprice", "maxprice", "opennow", "lat", "lng", "pagetoken"} {
		if q.Has(k) {
			t.Errorf("%s should be omitted when unset, got %v", k, q)
		}
	}
}

func TestApplyReportsChange(t *testing.T) {
	s := frontend.NewFilterState()

	if !s.Apply(frontend.SetKeyword("sushi")) {
		t.Fatal("expected keyword change")
	}
	if s.Apply(frontend.SetKeyword("sushi")) {
		t.Error("same keyword should not count as a change")
	}
	if s.Revision() != 1 {
		t.Errorf("expected revision 1, got %d", s.Revision())
	}

	s.Apply(frontend.SetOpenNow(true), frontend.SetType("cafe"))
	q := s.Params()
	if q.Get("keyword") != "sushi" || q.Get("opennow") != "true" || q.Get("type") != "cafe" {
		t.Errorf("unexpected params %v", q)
	}

	s.Apply(frontend.SetOpenNow(false))
	if s.Params().Has("opennow") {
		t.Error("opennow=false must not be sent")
	}
}

func TestPriceFilterToggle(t *testing.T) {
	s := frontend.NewFilterState()

	if !s.EnablePriceFilter(true) {
		t.Fatal("enabling should change filters")
	}
	q := s.Params()
	if q.Get("minprice") != "1" || q.Get("maxprice") != "4" {
		t.Errorf("expected 1..4, got %v", q)
	}

	s.Apply(frontend.PriceRange(2, 3)...)
	q = s.Params()
	if q.Get("minprice") != "2" || q.Get("maxprice") != "3" {
		t.Errorf("expected 2..3, got %v", q)
	}

	s.EnablePriceFilter(false)
	q = s.Params()
	if q.Has("minprice") || q.Has("maxprice") {
		t.Errorf("price params should be cleared, got %v", q)
	}
	if s.PriceFilterEnabled() {
		t.Error("price filter should be off")
	}
}

func TestParamsValidate(t *testing.T) {
	s := frontend.NewFilterState()
	s.EnablePriceFilter(true)
	s.Apply(frontend.SetKeyword("  ramen "), frontend.SetOpenNow(true),
		frontend.SetLocation{Point: &domain.GeoPoint{Lat: 51.5, Lng: -0.12}})

	req, err := domain.ValidateQuery(s.Params())
	if err != nil {
		t.Fatalf("derived params should validate: %v", err)
	}
	if req.Keyword != "ramen" || *req.MinPrice != 1 || *req.MaxPrice != 4 || !req.OpenNow {
		t.Errorf("unexpected request %+v", req)
	}
	if loc, ok := req.Location(); !ok || loc.Lat != 51.5 || loc.Lng != -0.12 {
		t.Errorf("location lost: %+v", req)
	}
	if req.RankBy != domain.RankByProminence {
		t.Errorf("location alone must not force distance ranking, got %q", req.RankBy)
	}
}

func TestOptionsIsACopy(t *testing.T) {
	s := frontend.NewFilterState()
	s.Apply(frontend.PriceRange(1, 2)...)

	o := s.Options()
	*o.MinPrice = 4
	if *s.Options().MinPrice != 1 {
		t.Error("Options must not alias internal state")
	}
}

func TestReset(t *testing.T) {
	s := frontend.NewFilterState()
	if s.Reset() {
		t.Error("reset of defaults should report no change")
	}

	s.EnablePriceFilter(true)
	s.Apply(frontend.SetKeyword("tacos"), frontend.SetRankBy(domain.RankByDistance))
	if !s.Reset() {
		t.Fatal("reset should report a change")
	}
	if s.Options() != frontend.DefaultFilters() {
		t.Errorf("expected defaults, got %+v", s.Options())
	}
	if s.PriceFilterEnabled() || s.Nearby() {
		t.Error("reset must switch off price filter and nearby mode")
	}
}

func TestPriceLabel(t *testing.T) {
	cases := map[int]string{0: "", 1: "$", 2: "$$", 3: "$$$", 4: "$$$$", 5: ""}
	for level, want := range cases {
		if got := frontend.PriceLabel(level); got != want {
			t.Errorf("PriceLabel(%d) = %q, want %q", level, got, want)
		}
	}
}
