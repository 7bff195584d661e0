// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	service "github.com/okian/foodie/internal/app"
	"github.com/okian/foodie/internal/domain/filter"
	"github.com/okian/foodie/internal/domain/model"
	"github.com/okian/foodie/internal/domain/types"
	"github.com/okian/foodie/pkg/logger"
	"github.com/okian/foodie/pkg/metrics"
)

// RestaurantCatalog answers restaurant queries.
type RestaurantCatalog interface {
	Restaurants(ctx context.Context) (types.RestaurantList, error)
	Restaurant(ctx context.Context, id model.ID) (types.RestaurantDetail, error)
	RestaurantsByCuisine(ctx context.Context, cuisine string) (types.RestaurantList, error)
	FilterRestaurants(ctx context.Context, f model.RestaurantFilter) (types.RestaurantList, error)
	RestaurantsByRating(ctx context.Context) (types.RestaurantList, error)
}

// DishCatalog answers dish queries.
type DishCatalog interface {
	Dishes(ctx context.Context) (types.DishList, error)
	Dish(ctx context.Context, id model.ID) (types.DishDetail, error)
	FilterDishes(ctx context.Context, f model.DishFilter) (types.DishList, error)
	DishesByPrice(ctx context.Context) (types.DishList, error)
}

// Readiness reports whether catalog queries can be served.
type Readiness interface {
	// Started is cheap and checked on every catalog request.
	Started() bool
	// Ready pings the store; used by /readyz.
	Ready(ctx context.Context) error
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RestaurantCatalog
	DishCatalog
	Readiness
	StatsProvider
}

// Server wires HTTP routes for the catalog API.
type Server struct {
	deps   Dependencies
	parser *filter.Parser
	logger logger.Logger

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	restaurantsHandler *RestaurantsHandler
	dishesHandler      *DishesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:   deps,
		parser: filter.New(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler(deps)
	s.statsHandler = NewStatsHandler(deps)
	s.restaurantsHandler = NewRestaurantsHandler(deps, s.parser, s.logger)
	s.dishesHandler = NewDishesHandler(deps, s.parser, s.logger)
	return s
}

// Register attaches all HTTP routes to router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	if router == nil {
		panic("router is nil")
	}

	// Match on the escaped path so an encoded slash stays inside one
	// segment; handlers decode variables with pathVar.
	router.UseEncodedPath()
	router.Use(RequestIDMiddleware, AccessLogMiddleware(s.logger))

	// Operational routes are served regardless of readiness.
	router.HandleFunc(route("/healthz"), MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	router.HandleFunc(route("/readyz"), MetricsMiddleware(s.healthHandler.HandleReady, "readyz")).Methods(http.MethodGet)
	router.Handle("/metrics", s.healthHandler.MetricsHandler()).Methods(http.MethodGet)
	router.HandleFunc(route("/stats"), MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	catalog := router.NewRoute().Subrouter()
	catalog.Use(ReadinessMiddleware(s.deps))

	rh := s.restaurantsHandler
	catalog.HandleFunc(route("/restaurants"), MetricsMiddleware(rh.HandleList, "restaurants")).Methods(http.MethodGet)
	catalog.HandleFunc(route("/restaurants/details/{id}"), MetricsMiddleware(rh.HandleDetails, "restaurant_details")).Methods(http.MethodGet)
	catalog.HandleFunc(route("/restaurants/cuisine/{cuisine}"), MetricsMiddleware(rh.HandleByCuisine, "restaurants_by_cuisine")).Methods(http.MethodGet)
	catalog.HandleFunc(route("/restaurants/filter"), MetricsMiddleware(rh.HandleFilter, "restaurants_filter")).Methods(http.MethodGet)
	catalog.HandleFunc(route("/restaurants/sort-by-rating"), MetricsMiddleware(rh.HandleSortByRating, "restaurants_sort_by_rating")).Methods(http.MethodGet)

	dh := s.dishesHandler
	catalog.HandleFunc(route("/dishes"), MetricsMiddleware(dh.HandleList, "dishes")).Methods(http.MethodGet)
	catalog.HandleFunc(route("/dishes/details/{id}"), MetricsMiddleware(dh.HandleDetails, "dish_details")).Methods(http.MethodGet)
	catalog.HandleFunc(route("/dishes/filter"), MetricsMiddleware(dh.HandleFilter, "dishes_filter")).Methods(http.MethodGet)
	catalog.HandleFunc(route("/dishes/sort-by-price"), MetricsMiddleware(dh.HandleSortByPrice, "dishes_sort_by_price")).Methods(http.MethodGet)
}

// route accepts path with or without a single trailing slash.
func route(path string) string {
	return path + "{slash:/?}"
}

// pathVar returns the decoded value of a route variable.
func pathVar(r *http.Request, name string) string {
	v := mux.Vars(r)[name]
	if s, err := url.PathUnescape(v); err == nil {
		return s
	}
	return v
}

// Client-facing messages.
const (
	msgNotReady = "Service not ready."

	msgFetchRestaurants          = "Failed to fetch restaurants."
	msgFetchRestaurant           = "Failed to fetch restaurant."
	msgFetchRestaurantsByCuisine = "Failed to fetch restaurants by cuisine."
	msgFetchRestaurantsByFilter  = "Failed to fetch restaurants by filter."
	msgFetchRestaurantsByRating  = "Failed to fetch restaurants sorted by rating."
	msgFetchDishes               = "Failed to fetch dishes."
	msgFetchDish                 = "Failed to fetch dish."
	msgFetchDishesByFilter       = "Failed to fetch dishes by filter."
	msgFetchDishesByPrice        = "Failed to fetch dishes sorted by price."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.Failure{Error: msg})
}

// writeNotFound answers with {"message": "No <entity> found with ID <rawID>."}.
func writeNotFound(w http.ResponseWriter, entity, rawID string) {
	writeJSON(w, http.StatusNotFound, types.Message{Message: fmt.Sprintf("No %s found with ID %s.", entity, rawID)})
}

// writeParamError answers 400 for a rejected request parameter.
func writeParamError(w http.ResponseWriter, err error) {
	var pe *filter.ParamError
	if errors.As(err, &pe) {
		metrics.RecordParamRejection(pe.Name)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s.", pe.Name, pe.Reason))
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request.")
}

// fail logs err under op and answers 503 when the service is not ready,
// otherwise 500 with the handler's fixed message.
func fail(ctx context.Context, w http.ResponseWriter, l logger.Logger, op, msg string, err error) {
	if errors.Is(err, service.ErrNotReady) {
		l.Warn(ctx, "request refused", logger.Error(WrapKind(op, ErrUnavailable, err)))
		writeError(w, http.StatusServiceUnavailable, msgNotReady)
		return
	}
	l.Error(ctx, "request failed", logger.Error(Wrap(op, err)))
	writeError(w, http.StatusInternalServerError, msg)
}
