// Package model contains domain models passed between layers.
package model

// Dish is one row of the dishes table.
type Dish struct {
	ID     int64    `json:"id"`
	Name   *string  `json:"name"`
	IsVeg  NullFlag `json:"isVeg"`
	Rating *float64 `json:"rating"`
	Price  *float64 `json:"price"`
}

// DishFilter selects dishes by their vegetarian flag.
type DishFilter struct {
	IsVeg FlagParam
}
