// Package repository provides read access to the restaurants and dishes tables.
package repository

import (
	"context"

	"github.com/okian/foodie/internal/domain/model"
)

// RestaurantStore reads the restaurants table.
type RestaurantStore interface {
	// AllRestaurants returns every row in storage order.
	AllRestaurants(ctx context.Context) ([]model.Restaurant, error)
	// RestaurantByID returns the row with the given key.
	// Returns ErrNotFound if no row matches.
	RestaurantByID(ctx context.Context, id model.ID) (model.Restaurant, error)
	// RestaurantsByCuisine returns rows whose cuisine equals the argument exactly.
	RestaurantsByCuisine(ctx context.Context, cuisine string) ([]model.Restaurant, error)
	// RestaurantsByFilter returns rows matching all three flags.
	RestaurantsByFilter(ctx context.Context, f model.RestaurantFilter) ([]model.Restaurant, error)
	// RestaurantsByRating returns every row ordered by rating desc.
	RestaurantsByRating(ctx context.Context) ([]model.Restaurant, error)
}

// DishStore reads the dishes table.
type DishStore interface {
	AllDishes(ctx context.Context) ([]model.Dish, error)
	// DishByID returns ErrNotFound if no row matches.
	DishByID(ctx context.Context, id model.ID) (model.Dish, error)
	DishesByFilter(ctx context.Context, f model.DishFilter) ([]model.Dish, error)
	// DishesByPrice returns every row ordered by price asc.
	DishesByPrice(ctx context.Context) ([]model.Dish, error)
}

// Store is the full data-access surface used by the service.
type Store interface {
	RestaurantStore
	DishStore

	// Ping verifies the underlying database answers.
	Ping(ctx context.Context) error
	// Close releases the database handle.
	Close() error
}
