package service

import (
	"context"
	"errors"

	"github.com/okian/foodie/internal/adapters/repository"
	"github.com/okian/foodie/internal/domain/model"
	"github.com/okian/foodie/internal/domain/types"
	"github.com/okian/foodie/pkg/logger"
	"github.com/okian/foodie/pkg/metrics"
)

// Operation names double as metric labels.
const (
	OpRestaurants          = "restaurants"
	OpRestaurantDetails    = "restaurant_details"
	OpRestaurantsByCuisine = "restaurants_by_cuisine"
	OpRestaurantsByFilter  = "restaurants_by_filter"
	OpRestaurantsByRating  = "restaurants_by_rating"
	OpDishes               = "dishes"
	OpDishDetails          = "dish_details"
	OpDishesByFilter       = "dishes_by_filter"
	OpDishesByPrice        = "dishes_by_price"
)

// Restaurants returns every restaurant.
func (s *Service) Restaurants(ctx context.Context) (types.RestaurantList, error) {
	rs, err := fetchList(ctx, s, OpRestaurants, func(st repository.Store) ([]model.Restaurant, error) {
		return st.AllRestaurants(ctx)
	})
	return types.NewRestaurantList(rs), err
}

// Restaurant returns the restaurant with the given id or repository.ErrNotFound.
func (s *Service) Restaurant(ctx context.Context, id model.ID) (types.RestaurantDetail, error) {
	r, err := fetchOne(ctx, s, OpRestaurantDetails, "restaurant", id, func(st repository.Store) (model.Restaurant, error) {
		return st.RestaurantByID(ctx, id)
	})
	return types.RestaurantDetail{Restaurant: r}, err
}

// RestaurantsByCuisine returns restaurants whose cuisine matches exactly.
func (s *Service) RestaurantsByCuisine(ctx context.Context, cuisine string) (types.RestaurantList, error) {
	rs, err := fetchList(ctx, s, OpRestaurantsByCuisine, func(st repository.Store) ([]model.Restaurant, error) {
		return st.RestaurantsByCuisine(ctx, cuisine)
	})
	return types.NewRestaurantList(rs), err
}

// FilterRestaurants returns restaurants matching all three flags.
func (s *Service) FilterRestaurants(ctx context.Context, f model.RestaurantFilter) (types.RestaurantList, error) {
	rs, err := fetchList(ctx, s, OpRestaurantsByFilter, func(st repository.Store) ([]model.Restaurant, error) {
		return st.RestaurantsByFilter(ctx, f)
	})
	return types.NewRestaurantList(rs), err
}

// RestaurantsByRating returns every restaurant, highest rating first.
func (s *Service) RestaurantsByRating(ctx context.Context) (types.RestaurantList, error) {
	rs, err := fetchList(ctx, s, OpRestaurantsByRating, func(st repository.Store) ([]model.Restaurant, error) {
		return st.RestaurantsByRating(ctx)
	})
	return types.NewRestaurantList(rs), err
}

// Dishes returns every dish.
func (s *Service) Dishes(ctx context.Context) (types.DishList, error) {
	ds, err := fetchList(ctx, s, OpDishes, func(st repository.Store) ([]model.Dish, error) {
		return st.AllDishes(ctx)
	})
	return types.NewDishList(ds), err
}

// Dish returns the dish with the given id or repository.ErrNotFound.
func (s *Service) Dish(ctx context.Context, id model.ID) (types.DishDetail, error) {
	d, err := fetchOne(ctx, s, OpDishDetails, "dish", id, func(st repository.Store) (model.Dish, error) {
		return st.DishByID(ctx, id)
	})
	return types.DishDetail{Dish: d}, err
}

// FilterDishes returns dishes matching the vegetarian flag.
func (s *Service) FilterDishes(ctx context.Context, f model.DishFilter) (types.DishList, error) {
	ds, err := fetchList(ctx, s, OpDishesByFilter, func(st repository.Store) ([]model.Dish, error) {
		return st.DishesByFilter(ctx, f)
	})
	return types.NewDishList(ds), err
}

// DishesByPrice returns every dish, cheapest first.
func (s *Service) DishesByPrice(ctx context.Context) (types.DishList, error) {
	ds, err := fetchList(ctx, s, OpDishesByPrice, func(st repository.Store) ([]model.Dish, error) {
		return st.DishesByPrice(ctx)
	})
	return types.NewDishList(ds), err
}

func fetchList[T any](ctx context.Context, s *Service, op string, fetch func(repository.Store) ([]T, error)) ([]T, error) {
	store, err := s.current()
	if err != nil {
		metrics.RecordCatalogRequest(op, "not_ready")
		return nil, err
	}
	out, err := fetch(store)
	if err != nil {
		metrics.RecordCatalogRequest(op, "error")
		s.log().Error(ctx, "catalog query failed", logger.String("op", op), logger.Error(err))
		return nil, err
	}
	metrics.RecordCatalogRequest(op, "ok")
	metrics.RecordResultSize(op, len(out))
	return out, nil
}

func fetchOne[T any](ctx context.Context, s *Service, op, entity string, id model.ID, fetch func(repository.Store) (T, error)) (T, error) {
	var zero T
	store, err := s.current()
	if err != nil {
		metrics.RecordCatalogRequest(op, "not_ready")
		return zero, err
	}
	v, err := fetch(store)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.RecordCatalogRequest(op, "not_found")
		metrics.RecordNotFound(entity)
		s.log().Debug(ctx, "catalog lookup missed", logger.String("op", op), logger.String("id", id.String()))
		return zero, err
	case err != nil:
		metrics.RecordCatalogRequest(op, "error")
		s.log().Error(ctx, "catalog query failed", logger.String("op", op), logger.String("id", id.String()), logger.Error(err))
		return zero, err
	}
	metrics.RecordCatalogRequest(op, "ok")
	metrics.RecordResultSize(op, 1)
	return v, nil
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}
