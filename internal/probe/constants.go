package probe

import "time"

// Defaults used by cmd/probe and when a Config field is left zero.
const (
	DefaultBaseURL      = "http://localhost:3000"
	DefaultTimeout      = 10 * time.Second
	DefaultWorkers      = 4
	DefaultCuisine      = "Italian"
	DefaultRestaurantID = 1
	DefaultMissingID    = 999999
)
