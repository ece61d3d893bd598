package engine

import "errors"

// Input validation errors. Callers driving a form may drop them silently;
// the CLI reports them.
var (
	ErrEmptyText       = errors.New("text is required")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidProgress = errors.New("progress must be an integer between 0 and 100")
)
