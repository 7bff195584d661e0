package probe

import "io"

// ShowHelp prints usage information for the probe tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Foodie Probe
============

Checks a running catalog service: lookups by id, 404 on a missing id,
sort orders, the restaurant flag filter and exact cuisine matching.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:3000")
  -timeout duration
        HTTP request timeout (default 10s)
  -workers int
        Checks run at once (default 4)
  -cuisine string
        Cuisine to check (default "Italian")
  -id int
        Restaurant id expected to exist (default 1)
  -missing int
        Restaurant id expected to be absent (default 999999)
  -verbose
        Log every passing check
  -help
        Show this help message

Exit status is 1 when the service is unhealthy or any check fails.
`)
}
