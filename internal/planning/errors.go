package planning

import "errors"

var (
	// ErrInvalidInterval indicates a start date after its end date.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidPercentage indicates a percentage outside (0, 100].
	ErrInvalidPercentage = errors.New("invalid percentage")
	// ErrInvalidDate indicates an unparseable calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidGranularity indicates an unknown bucket granularity.
	ErrInvalidGranularity = errors.New("invalid granularity")
)
