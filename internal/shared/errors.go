package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrDecodeResponse     = fmt.Errorf("failed to decode API response")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSelectionNotFound  = fmt.Errorf("selection not found")

	// Storage errors
	ErrNoMigrations = fmt.Errorf("no migrations to rollback")

	// Input validation errors
	ErrInvalidPage     = fmt.Errorf("invalid page number")
	ErrInvalidCount    = fmt.Errorf("invalid row count")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFormat   = fmt.Errorf("unsupported export format")
)
