package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotReady = errors.New("service not ready")
	ErrStart    = errors.New("service start failed")
)
