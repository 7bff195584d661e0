package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound = errors.New("row not found")
	ErrQuery    = errors.New("query failed")
	ErrOpen     = errors.New("open database failed")
)
