package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaStateMissing means the linter ran on a document the loader never finished.
	ErrSchemaStateMissing = errors.New("schema state missing: the schema loader must run before the schema linter")
	// ErrTreeMissing means a plugin ran on a document that was never parsed.
	ErrTreeMissing = errors.New("document has no syntax tree")
)

// ResolutionError is returned when a schema cannot be fetched or decoded.
type ResolutionError struct {
	URI        string
	StatusCode int
	// Body is the response body or file content that failed, if any was read.
	Body string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed to resolve schema %s", e.URI)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
