package probe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/foodie/internal/adapters/http/api"
	service "github.com/okian/foodie/internal/app"
	"github.com/okian/foodie/internal/testutil/catalogdb"
	"github.com/okian/foodie/pkg/logger"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New(service.WithDBPath(catalogdb.Seeded(t)), service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	router := mux.NewRouter()
	api.NewServer(svc, api.WithLogger(logger.Nop())).Register(context.Background(), router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	convey.Convey("Given a probe against a seeded catalog server", t, func() {
		convey.So(logger.InitWriter(io.Discard), convey.ShouldBeNil)
		srv := newCatalogServer(t)
		var out bytes.Buffer

		convey.Convey("When every check runs", func() {
			report, err := Run(context.Background(), &Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, &out)

			convey.Convey("Then all of them pass and the report lists them", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(report.Results, convey.ShouldHaveLength, len(Checks(withDefaults(nil))))
				convey.So(report.Failed(), convey.ShouldBeEmpty)
				convey.So(out.String(), convey.ShouldContainSubstring, "PASS  restaurant by id")
				convey.So(out.String(), convey.ShouldContainSubstring, "0 failed")
			})
		})

		convey.Convey("When the expected restaurant id is absent", func() {
			_, err := Run(context.Background(), &Config{BaseURL: srv.URL, RestaurantID: 4242}, &out)

			convey.Convey("Then the run fails on that check only", func() {
				convey.So(errors.Is(err, ErrChecksFailed), convey.ShouldBeTrue)
				convey.So(out.String(), convey.ShouldContainSubstring, "FAIL  restaurant by id")
				convey.So(out.String(), convey.ShouldContainSubstring, "1 failed")
			})
		})
	})
}

func TestRunAgainstBrokenService(t *testing.T) {
	convey.Convey("Given a service whose sort order is wrong", t, func() {
		convey.So(logger.InitWriter(io.Discard), convey.ShouldBeNil)
		router := mux.NewRouter()
		router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		router.HandleFunc("/dishes/sort-by-price", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"dishes":[{"id":1,"price":9},{"id":2,"price":3}]}`))
		})
		srv := httptest.NewServer(router)
		defer srv.Close()

		convey.Convey("When the price check runs", func() {
			err := sortedByPrice(context.Background(), newHTTPClient(srv.URL, time.Second))

			convey.Convey("Then it reports a violation", func() {
				convey.So(errors.Is(err, ErrViolation), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a route is missing", func() {
			err := sortedByRating(context.Background(), newHTTPClient(srv.URL, time.Second))

			convey.Convey("Then it reports the status", func() {
				convey.So(errors.Is(err, ErrUnexpectedStatus), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given an unhealthy service", t, func() {
		convey.So(logger.InitWriter(io.Discard), convey.ShouldBeNil)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		convey.Convey("Then Run stops before any check", func() {
			report, err := Run(context.Background(), &Config{BaseURL: srv.URL}, nil)
			convey.So(errors.Is(err, ErrUnhealthy), convey.ShouldBeTrue)
			convey.So(report.Results, convey.ShouldBeEmpty)
		})
	})
}

func TestCuisineMatchRejectsNull(t *testing.T) {
	convey.Convey("Given a cuisine route answering null", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"restaurants":null}`))
		}))
		defer srv.Close()

		err := cuisineMatch("Italian")(context.Background(), newHTTPClient(srv.URL, time.Second))
		convey.So(errors.Is(err, ErrViolation), convey.ShouldBeTrue)
	})
}

func TestWithDefaults(t *testing.T) {
	convey.Convey("Given an empty config", t, func() {
		cfg := withDefaults(&Config{})

		convey.So(cfg.BaseURL, convey.ShouldEqual, DefaultBaseURL)
		convey.So(cfg.Timeout, convey.ShouldEqual, DefaultTimeout)
		convey.So(cfg.Workers, convey.ShouldEqual, DefaultWorkers)
		convey.So(cfg.Cuisine, convey.ShouldEqual, DefaultCuisine)
		convey.So(cfg.RestaurantID, convey.ShouldEqual, int64(DefaultRestaurantID))
		convey.So(cfg.MissingID, convey.ShouldEqual, int64(DefaultMissingID))
	})
}

func TestSortChecksWithNulls(t *testing.T) {
	convey.Convey("Given sorted lists that contain null values", t, func() {
		router := mux.NewRouter()
		router.HandleFunc("/dishes/sort-by-price", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"dishes":[{"id":1,"price":null},{"id":2,"price":3},{"id":3,"price":9}]}`))
		})
		router.HandleFunc("/restaurants/sort-by-rating", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"restaurants":[{"id":1,"rating":4.5},{"id":2,"rating":null},{"id":3,"rating":4}]}`))
		})
		srv := httptest.NewServer(router)
		defer srv.Close()
		client := newHTTPClient(srv.URL, time.Second)

		convey.Convey("Then nulls count as the lowest value", func() {
			convey.So(sortedByPrice(context.Background(), client), convey.ShouldBeNil)
			convey.So(errors.Is(sortedByRating(context.Background(), client), ErrViolation), convey.ShouldBeTrue)
		})
	})
}
