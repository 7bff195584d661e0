package probe

import "errors"

var (
	// ErrUnhealthy is returned when the service does not answer /healthz with 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrChecksFailed is returned when at least one check fails.
	ErrChecksFailed = errors.New("checks failed")
	// ErrUnexpectedStatus is wrapped by checks that got the wrong status code.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrViolation is wrapped by checks whose response broke the expected property.
	ErrViolation = errors.New("property violated")
)
