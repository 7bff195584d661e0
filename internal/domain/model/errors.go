package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrFlagScan = errors.New("invalid flag value")
)
