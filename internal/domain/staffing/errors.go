package staffing

import "errors"

// ErrInvalidInput indicates a malformed staffing query.
var ErrInvalidInput = errors.New("invalid staffing query")
