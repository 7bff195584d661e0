// Package probe checks the observable properties of a running catalog
// service over HTTP.
package probe

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/foodie/pkg/logger"
)

// Run checks service health, runs every check concurrently, writes a
// report to out and returns ErrChecksFailed if any check failed.
func Run(ctx context.Context, cfg *Config, out io.Writer) (Report, error) {
	cfg = withDefaults(cfg)
	start := time.Now()
	log := logger.Get().Named("probe")

	log.Info(ctx, "starting probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := checkServiceHealth(ctx, client); err != nil {
		return Report{}, err
	}

	checks := Checks(cfg)
	results := make([]Result, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, check := range checks {
		i, check := i, check
		g.Go(func() error {
			began := time.Now()
			err := check.Run(gctx, client)
			results[i] = Result{Name: check.Name, Err: err, Duration: time.Since(began)}
			if err != nil {
				log.Warn(gctx, "check failed", logger.String("check", check.Name), logger.Error(err))
			} else if cfg.Verbose {
				log.Info(gctx, "check passed", logger.String("check", check.Name))
			}
			// Failures are collected in results; the group never cancels.
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Results: results, Duration: time.Since(start)}
	writeReport(out, report)

	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrChecksFailed, len(failed), len(results))
	}
	log.Info(ctx, "probe completed", logger.Duration("duration", report.Duration))
	return report, nil
}

func withDefaults(cfg *Config) *Config {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Cuisine == "" {
		c.Cuisine = DefaultCuisine
	}
	if c.RestaurantID == 0 {
		c.RestaurantID = DefaultRestaurantID
	}
	if c.MissingID == 0 {
		c.MissingID = DefaultMissingID
	}
	return &c
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, _, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != 200 {
		return fmt.Errorf("%w: /healthz returned %d", ErrUnhealthy, status)
	}
	return nil
}

func writeReport(out io.Writer, report Report) {
	if out == nil {
		return
	}
	for _, r := range report.Results {
		if r.Passed() {
			fmt.Fprintf(out, "PASS  %-32s %s\n", r.Name, r.Duration.Round(time.Microsecond))
			continue
		}
		fmt.Fprintf(out, "FAIL  %-32s %v\n", r.Name, r.Err)
	}
	fmt.Fprintf(out, "%d checks, %d failed, %s\n",
		len(report.Results), len(report.Failed()), report.Duration.Round(time.Millisecond))
}
