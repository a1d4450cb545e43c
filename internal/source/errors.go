package source

import "errors"

var (
	// ErrSourceUnavailable means the external source could not be reached or
	// answered with a non-success status.
	ErrSourceUnavailable = errors.New("reservation source unavailable")

	// ErrMalformedSource means the response is not a sequence of records.
	ErrMalformedSource = errors.New("reservation source returned malformed data")
)

// Drop reasons reported by the normalizer.
const (
	DropMissingFields = "missing_fields"
	DropMalformed     = "malformed"
)

var (
	errWrongType    = errors.New("unexpected JSON type")
	errUnparsedDate = errors.New("unrecognized date format")
	errNoSource     = errors.New("no reservation source configured")
)
