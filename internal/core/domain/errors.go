package domain

import "errors"

// ValidationCode identifies which input rule rejected a request.
type ValidationCode string

const (
	CodeInvalidMinPrice    ValidationCode = "invalid_min_price"
	CodeInvalidMaxPrice    ValidationCode = "invalid_max_price"
	CodePriceRangeInverted ValidationCode = "price_range_inverted"
	CodeInvalidType        ValidationCode = "invalid_type"
	CodeInvalidID          ValidationCode = "invalid_id"
)

// ValidationError is a client-caused failure. It is never retried.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Upstream operations reported in UpstreamError.Op.
const (
	OpSearch  = "search"
	OpDetails = "details"
)

// UpstreamError wraps a failure of the external places API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

var (
	// ErrNotFound is returned when the places API has no record for an id.
	ErrNotFound = errors.New("restaurant not found")

	// ErrDetailFetch replaces the cause of any failed detail lookup.
	ErrDetailFetch = errors.New("failed to fetch restaurant details")
)

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
