package probe

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okian/foodie/internal/domain/types"
)

// Check is one property verified against a running service.
type Check struct {
	Name string
	Run  func(ctx context.Context, c *HTTPClient) error
}

// Checks returns the checks a run performs for cfg.
func Checks(cfg *Config) []Check {
	return []Check{
		{Name: "restaurant by id", Run: restaurantByID(cfg.RestaurantID)},
		{Name: "missing restaurant is 404", Run: missingRestaurant(cfg.MissingID)},
		{Name: "restaurants sorted by rating", Run: sortedByRating},
		{Name: "dishes sorted by price", Run: sortedByPrice},
		{Name: "restaurant filter", Run: restaurantFilter},
		{Name: "cuisine match", Run: cuisineMatch(cfg.Cuisine)},
	}
}

func restaurantByID(id int64) func(context.Context, *HTTPClient) error {
	return func(ctx context.Context, c *HTTPClient) error {
		var body types.RestaurantDetail
		if err := c.getJSON(ctx, fmt.Sprintf("/restaurants/details/%d", id), 200, &body); err != nil {
			return err
		}
		if body.Restaurant.ID != id {
			return fmt.Errorf("%w: asked for id %d, got %d", ErrViolation, id, body.Restaurant.ID)
		}
		return nil
	}
}

func missingRestaurant(id int64) func(context.Context, *HTTPClient) error {
	return func(ctx context.Context, c *HTTPClient) error {
		var body types.Message
		if err := c.getJSON(ctx, fmt.Sprintf("/restaurants/details/%d", id), 404, &body); err != nil {
			return err
		}
		want := fmt.Sprintf("No restaurant found with ID %d.", id)
		if body.Message != want {
			return fmt.Errorf("%w: message %q, want %q", ErrViolation, body.Message, want)
		}
		return nil
	}
}

func sortedByRating(ctx context.Context, c *HTTPClient) error {
	var body types.RestaurantList
	if err := c.getJSON(ctx, "/restaurants/sort-by-rating", 200, &body); err != nil {
		return err
	}
	for i := 1; i < len(body.Restaurants); i++ {
		if below(body.Restaurants[i-1].Rating, body.Restaurants[i].Rating) {
			return fmt.Errorf("%w: rating at %d (%s) above rating at %d (%s)",
				ErrViolation, i, num(body.Restaurants[i].Rating), i-1, num(body.Restaurants[i-1].Rating))
		}
	}
	return nil
}

func sortedByPrice(ctx context.Context, c *HTTPClient) error {
	var body types.DishList
	if err := c.getJSON(ctx, "/dishes/sort-by-price", 200, &body); err != nil {
		return err
	}
	for i := 1; i < len(body.Dishes); i++ {
		if below(body.Dishes[i].Price, body.Dishes[i-1].Price) {
			return fmt.Errorf("%w: price at %d (%s) below price at %d (%s)",
				ErrViolation, i, num(body.Dishes[i].Price), i-1, num(body.Dishes[i-1].Price))
		}
	}
	return nil
}

func restaurantFilter(ctx context.Context, c *HTTPClient) error {
	var body types.RestaurantList
	if err := c.getJSON(ctx, "/restaurants/filter?isVeg=true&hasOutdoorSeating=true&isLuxury=false", 200, &body); err != nil {
		return err
	}
	for _, r := range body.Restaurants {
		if !r.IsVeg.Bool() || !r.HasOutdoorSeating.Bool() || !r.IsLuxury.Valid || r.IsLuxury.Bool() {
			return fmt.Errorf("%w: restaurant %d does not match the filter", ErrViolation, r.ID)
		}
	}
	return nil
}

func cuisineMatch(cuisine string) func(context.Context, *HTTPClient) error {
	return func(ctx context.Context, c *HTTPClient) error {
		var body types.RestaurantList
		if err := c.getJSON(ctx, "/restaurants/cuisine/"+url.PathEscape(cuisine), 200, &body); err != nil {
			return err
		}
		if body.Restaurants == nil {
			return fmt.Errorf("%w: restaurants is null, want a list", ErrViolation)
		}
		for _, r := range body.Restaurants {
			if r.Cuisine == nil || *r.Cuisine != cuisine {
				return fmt.Errorf("%w: restaurant %d has cuisine %s", ErrViolation, r.ID, str(r.Cuisine))
			}
		}
		return nil
	}
}

// below orders nullable numbers the way SQLite does: null before any value.
func below(a, b *float64) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	}
	return *a < *b
}

func num(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func str(v *string) string {
	if v == nil {
		return "null"
	}
	return strconv.Quote(*v)
}
