package fish

import "errors"

var (
	// ErrExtraction is returned when a page is missing the scientific name
	// block or has an unexpected structure.
	ErrExtraction = errors.New("malformed species page")

	// ErrNoSuitableFish is returned when an attempt cap is configured and
	// every attempt was rejected by the criteria.
	ErrNoSuitableFish = errors.New("no suitable fish found")
)
