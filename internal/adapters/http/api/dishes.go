package api

import (
	"errors"
	"net/http"

	"github.com/okian/foodie/internal/adapters/repository"
	"github.com/okian/foodie/internal/domain/filter"
	"github.com/okian/foodie/pkg/logger"
)

// DishesHandler handles the /dishes routes.
type DishesHandler struct {
	deps   DishCatalog
	parser *filter.Parser
	logger logger.Logger
}

// NewDishesHandler creates a new dishes handler.
func NewDishesHandler(deps DishCatalog, parser *filter.Parser, l logger.Logger) *DishesHandler {
	return &DishesHandler{deps: deps, parser: parser, logger: l}
}

// HandleList handles GET /dishes.
func (h *DishesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_dishes"
	body, err := h.deps.Dishes(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchDishes, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleDetails handles GET /dishes/details/{id}.
func (h *DishesHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	const op = "api.dish_details"
	raw := pathVar(r, "id")
	id, err := h.parser.ID(raw)
	if err != nil {
		h.logger.Debug(r.Context(), "rejected id", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeParamError(w, err)
		return
	}
	body, err := h.deps.Dish(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.logger.Debug(r.Context(), "dish missing", logger.Error(WrapKind(op, ErrNotFound, err)))
		writeNotFound(w, "dish", raw)
		return
	}
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchDish, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleFilter handles GET /dishes/filter?isVeg=.
func (h *DishesHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.dishes_filter"
	f, err := h.parser.DishFilter(r.URL.Query())
	if err != nil {
		h.logger.Debug(r.Context(), "rejected filter", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeParamError(w, err)
		return
	}
	body, err := h.deps.FilterDishes(r.Context(), f)
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchDishesByFilter, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleSortByPrice handles GET /dishes/sort-by-price.
func (h *DishesHandler) HandleSortByPrice(w http.ResponseWriter, r *http.Request) {
	const op = "api.dishes_sort_by_price"
	body, err := h.deps.DishesByPrice(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, op, msgFetchDishesByPrice, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
