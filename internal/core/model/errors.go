package model

import "errors"

var (
	// ErrMalformedTimestamp marks a record whose start or end could not
	// be parsed as a date-time at all.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMissingCategory marks a record with an empty category; such
	// records take part in no computation.
	ErrMissingCategory = errors.New("missing category")

	// ErrInvertedInterval marks a record whose end precedes its start.
	ErrInvertedInterval = errors.New("inverted interval")

	// ErrNoData is the batch-level outcome when nothing usable remains
	// after ingestion and filtering. It is distinguishable from a
	// computation error; empty similarity results are NOT this error.
	ErrNoData = errors.New("no event data")
)
