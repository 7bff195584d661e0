// Package types contains the JSON bodies exchanged over the HTTP API.
package types

import "github.com/okian/foodie/internal/domain/model"

// RestaurantList wraps a list of restaurants.
type RestaurantList struct {
	Restaurants []model.Restaurant `json:"restaurants"`
}

// RestaurantDetail wraps a single restaurant.
type RestaurantDetail struct {
	Restaurant model.Restaurant `json:"restaurant"`
}

// DishList wraps a list of dishes.
type DishList struct {
	Dishes []model.Dish `json:"dishes"`
}

// DishDetail wraps a single dish.
type DishDetail struct {
	Dish model.Dish `json:"dish"`
}

// Message is the body of a 404 response.
type Message struct {
	Message string `json:"message"`
}

// Failure is the body of every 4xx/5xx response other than 404.
type Failure struct {
	Error string `json:"error"`
}

// Status is the body of the health endpoints.
type Status struct {
	Status string `json:"status"`
}

// NewRestaurantList never returns a nil slice so an empty result encodes as [].
func NewRestaurantList(rs []model.Restaurant) RestaurantList {
	if rs == nil {
		rs = []model.Restaurant{}
	}
	return RestaurantList{Restaurants: rs}
}

// NewDishList never returns a nil slice so an empty result encodes as [].
func NewDishList(ds []model.Dish) DishList {
	if ds == nil {
		ds = []model.Dish{}
	}
	return DishList{Dishes: ds}
}
