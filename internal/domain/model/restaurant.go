// Package model contains domain models passed between layers.
package model

// Restaurant is one row of the restaurants table. Fields follow the
// column order and names; nullable columns are pointers so NULL encodes
// as JSON null.
type Restaurant struct {
	ID                int64    `json:"id"`
	Name              *string  `json:"name"`
	Cuisine           *string  `json:"cuisine"`
	IsVeg             NullFlag `json:"isVeg"`
	Rating            *float64 `json:"rating"`
	PriceForTwo       *float64 `json:"priceForTwo"`
	Location          *string  `json:"location"`
	HasOutdoorSeating NullFlag `json:"hasOutdoorSeating"`
	IsLuxury          NullFlag `json:"isLuxury"`
}

// RestaurantFilter selects restaurants by exact match on all three flags.
type RestaurantFilter struct {
	IsVeg             FlagParam
	HasOutdoorSeating FlagParam
	IsLuxury          FlagParam
}
