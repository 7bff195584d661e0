package filter

import "errors"

// Sentinel kinds for parameter errors.
var (
	ErrInvalidParam = errors.New("invalid parameter")
)
