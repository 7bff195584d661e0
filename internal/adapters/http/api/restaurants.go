package api

import (
	"errors"
	"net/http"

	"github.com/okian/foodie/internal/adapters/repository"
	"github.com/okian/foodie/internal/domain/filter"
	"github.com/okian/foodie/pkg/logger"
)

// RestaurantsHandler handles the /restaurants routes.
type RestaurantsHandler struct {
	deps   RestaurantCatalog
	parser *filter.Parser
	logger logger.Logger
}

// NewRestaurantsHandler creates a new restaurants handler.
func NewRestaurantsHandler(deps RestaurantCatalog, parser *filter.Parser, l logger.Logger) *RestaurantsHandler {
	return &RestaurantsHandler{deps: deps, parser: parser, logger: l}
}

// HandleList handles GET /restaurants.
func (h *RestaurantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_restaurants"
	body, err := h.deps.Restaurants(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchRestaurants, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleDetails handles GET /restaurants/details/{id}.
func (h *RestaurantsHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	const op = "api.restaurant_details"
	raw := pathVar(r, "id")
	id, err := h.parser.ID(raw)
	if err != nil {
		h.logger.Debug(r.Context(), "rejected id", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeParamError(w, err)
		return
	}
	body, err := h.deps.Restaurant(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.logger.Debug(r.Context(), "restaurant missing", logger.Error(WrapKind(op, ErrNotFound, err)))
		writeNotFound(w, "restaurant", raw)
		return
	}
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchRestaurant, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleByCuisine handles GET /restaurants/cuisine/{cuisine}.
// The match is case-sensitive; no match is 200 with an empty list.
func (h *RestaurantsHandler) HandleByCuisine(w http.ResponseWriter, r *http.Request) {
	const op = "api.restaurants_by_cuisine"
	body, err := h.deps.RestaurantsByCuisine(r.Context(), pathVar(r, "cuisine"))
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchRestaurantsByCuisine, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleFilter handles GET /restaurants/filter?isVeg=&hasOutdoorSeating=&isLuxury=.
func (h *RestaurantsHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.restaurants_filter"
	f, err := h.parser.RestaurantFilter(r.URL.Query())
	if err != nil {
		h.logger.Debug(r.Context(), "rejected filter", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeParamError(w, err)
		return
	}
	body, err := h.deps.FilterRestaurants(r.Context(), f)
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchRestaurantsByFilter, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleSortByRating handles GET /restaurants/sort-by-rating.
func (h *RestaurantsHandler) HandleSortByRating(w http.ResponseWriter, r *http.Request) {
	const op = "api.restaurants_sort_by_rating"
	body, err := h.deps.RestaurantsByRating(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchRestaurantsByRating, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
