package corpus

import "errors"

var (
	// ErrDuplicateID is returned when two entries share an id.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrMalformedFile is returned when a file is not a JSON array of entries.
	ErrMalformedFile = errors.New("malformed corpus file")

	// ErrNoFiles is returned when there is nothing to load.
	ErrNoFiles = errors.New("no corpus files")
)
