package domain_test

import (
	"errors"
	"net/url"
	"strconv"
	"testing"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

func validationCode(t *testing.T, err error) domain.ValidationCode {
	t.Helper()
	ve, ok := domain.IsValidation(err)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return ve.Code
}

func TestValidateQuery_PriceGrid(t *testing.T) {
	for minP := 0; minP <= 4; minP++ {
		for maxP := minP; maxP <= 4; maxP++ {
			q := url.Values{
				"minprice": {strconv.Itoa(minP)},
				"maxprice": {strconv.Itoa(maxP)},
			}
			req, err := domain.ValidateQuery(q)
			if err != nil {
				t.Fatalf("min=%d max=%d: unexpected error: %v", minP, maxP, err)
			}
			if *req.MinPrice != minP || *req.MaxPrice != maxP {
				t.Errorf("min=%d max=%d: got %d/%d", minP, maxP, *req.MinPrice, *req.MaxPrice)
			}
		}
	}
}

func TestValidateQuery_MinPriceOutOfRange(t *testing.T) {
	for _, maxP := range []string{"", "0", "4", "9", "abc"} {
		q := url.Values{"minprice": {"5"}}
		if maxP != "" {
			q.Set("maxprice", maxP)
		}
		_, err := domain.ValidateQuery(q)
		if code := validationCode(t, err); code != domain.CodeInvalidMinPrice {
			t.Errorf("maxprice=%q: expected %s, got %s", maxP, domain.CodeInvalidMinPrice, code)
		}
	}
}

func TestValidateQuery_MinPriceMessage(t *testing.T) {
	_, err := domain.ValidateQuery(url.Values{"minprice": {"5"}})
	want := "Invalid minPrice. Must be a number between 0 and 4"
	if err == nil || err.Error() != want {
		t.Errorf("expected %q, got %v", want, err)
	}
}

func TestValidateQuery_InvalidPrices(t *testing.T) {
	tests := []struct {
		name string
		q    url.Values
		code domain.ValidationCode
	}{
		{"min negative", url.Values{"minprice": {"-1"}}, domain.CodeInvalidMinPrice},
		{"min not a number", url.Values{"minprice": {"cheap"}}, domain.CodeInvalidMinPrice},
		{"min fractional", url.Values{"minprice": {"1.5"}}, domain.CodeInvalidMinPrice},
		{"min repeated", url.Values{"minprice": {"1", "2"}}, domain.CodeInvalidMinPrice},
		{"max too high", url.Values{"maxprice": {"7"}}, domain.CodeInvalidMaxPrice},
		{"max not a number", url.Values{"maxprice": {"NaN"}}, domain.CodeInvalidMaxPrice},
		{"inverted", url.Values{"minprice": {"3"}, "maxprice": {"2"}}, domain.CodePriceRangeInverted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ValidateQuery(tt.q)
			if code := validationCode(t, err); code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, code)
			}
		})
	}
}

func TestValidateQuery_InvertedMessage(t *testing.T) {
	_, err := domain.ValidateQuery(url.Values{"minprice": {"3"}, "maxprice": {"2"}})
	if err == nil || err.Error() != "minPrice cannot be greater than maxPrice" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateQuery_MinPriceCheckedBeforeMaxPrice(t *testing.T) {
	_, err := domain.ValidateQuery(url.Values{"minprice": {"x"}, "maxprice": {"y"}})
	if code := validationCode(t, err); code != domain.CodeInvalidMinPrice {
		t.Errorf("expected min price to fail first, got %s", code)
	}
}

func TestValidateQuery_EmptyPriceIsAbsent(t *testing.T) {
	req, err := domain.ValidateQuery(url.Values{"minprice": {""}, "maxprice": {""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.MinPrice != nil || req.MaxPrice != nil {
		t.Errorf("expected prices to be absent, got %v/%v", req.MinPrice, req.MaxPrice)
	}
}

func TestValidateQuery_TypeArray(t *testing.T) {
	_, err := domain.ValidateQuery(url.Values{"type": {"bar", "cafe"}})
	if code := validationCode(t, err); code != domain.CodeInvalidType {
		t.Errorf("expected %s, got %s", domain.CodeInvalidType, code)
	}

	req, err := domain.ValidateQuery(url.Values{"type": {"cafe"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Type != "cafe" {
		t.Errorf("expected cafe, got %q", req.Type)
	}
}

func TestValidateQuery_OpenNow(t *testing.T) {
	tests := []struct {
		raw  []string
		want bool
	}{
		{nil, false},
		{[]string{"true"}, true},
		{[]string{"TRUE"}, false},
		{[]string{"1"}, false},
		{[]string{"false"}, false},
		{[]string{"true", "true"}, false},
	}
	for _, tt := range tests {
		q := url.Values{}
		if tt.raw != nil {
			q["opennow"] = tt.raw
		}
		req, err := domain.ValidateQuery(q)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.raw, err)
		}
		if req.OpenNow != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.raw, tt.want, req.OpenNow)
		}
	}
}

func TestValidateQuery_PassThrough(t *testing.T) {
	q := url.Values{
		"pagetoken": {"tok-1"},
		"keyword":   {"ramen"},
		"rankby":    {"distance"},
		"lat":       {"43.263"},
		"lng":       {"-2.935"},
	}
	req, err := domain.ValidateQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.PageToken != "tok-1" || req.Keyword != "ramen" || req.RankBy != domain.RankByDistance {
		t.Errorf("unexpected pass-through values: %+v", req)
	}
	loc, ok := req.Location()
	if !ok || loc.Lat != 43.263 || loc.Lng != -2.935 {
		t.Errorf("unexpected location %+v (ok=%v)", loc, ok)
	}
}

func TestValidateQuery_DistanceWithoutLocationAccepted(t *testing.T) {
	req, err := domain.ValidateQuery(url.Values{"rankby": {"distance"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := req.Location(); ok {
		t.Error("expected no location")
	}
}

func TestValidateQuery_BadCoordinatesIgnored(t *testing.T) {
	req, err := domain.ValidateQuery(url.Values{"lat": {"north"}, "lng": {"1.5"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Lat != nil {
		t.Errorf("expected lat to be absent, got %v", *req.Lat)
	}
	if req.Lng == nil || *req.Lng != 1.5 {
		t.Errorf("expected lng 1.5, got %v", req.Lng)
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	cause := errors.New("OVER_QUERY_LIMIT")
	err := &domain.UpstreamError{Op: domain.OpSearch, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected UpstreamError to unwrap to its cause")
	}
}
