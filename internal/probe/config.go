package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Timeout      time.Duration // HTTP request timeout
	Workers      int           // Checks run at once
	Cuisine      string        // Cuisine the cuisine check asks for
	RestaurantID int64         // Id expected to exist
	MissingID    int64         // Id expected to be absent
	Verbose      bool          // Log every passing check
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the check succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Report collects the results of a run in check order.
type Report struct {
	Results  []Result
	Duration time.Duration
}

// Failed returns the results whose check did not pass.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}
