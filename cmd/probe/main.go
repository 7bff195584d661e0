package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/foodie/internal/probe"
	"github.com/okian/foodie/pkg/logger"
)

const defaultRunTimeout = 2 * time.Minute

func main() {
	var (
		baseURL = flag.String("url", probe.DefaultBaseURL, "Base URL of the service")
		timeout = flag.Duration("timeout", probe.DefaultTimeout, "HTTP request timeout")
		workers = flag.Int("workers", probe.DefaultWorkers, "Checks run at once")
		cuisine = flag.String("cuisine", probe.DefaultCuisine, "Cuisine to check")
		id      = flag.Int64("id", probe.DefaultRestaurantID, "Restaurant id expected to exist")
		missing = flag.Int64("missing", probe.DefaultMissingID, "Restaurant id expected to be absent")
		verbose = flag.Bool("verbose", false, "Log every passing check")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp(os.Stdout)
		return
	}

	if err := logger.InitWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:      *baseURL,
		Timeout:      *timeout,
		Workers:      *workers,
		Cuisine:      *cuisine,
		RestaurantID: *id,
		MissingID:    *missing,
		Verbose:      *verbose,
	}

	if _, err := probe.Run(ctx, cfg, os.Stdout); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		stop()
		cancel()
		os.Exit(1)
	}
}
