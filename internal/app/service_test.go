package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/foodie/internal/adapters/repository"
	service "github.com/okian/foodie/internal/app"
	"github.com/okian/foodie/internal/domain/model"
	"github.com/okian/foodie/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

var errBoom = errors.New("disk I/O error")

func ptr[T any](v T) *T { return &v }

// fakeStore serves canned rows and fails every query when err is set.
type fakeStore struct {
	restaurants []model.Restaurant
	dishes      []model.Dish
	err         error
	pingErr     error
	closed      bool
}

func (f *fakeStore) AllRestaurants(context.Context) ([]model.Restaurant, error) {
	return f.restaurants, f.err
}

func (f *fakeStore) RestaurantByID(_ context.Context, id model.ID) (model.Restaurant, error) {
	if f.err != nil {
		return model.Restaurant{}, f.err
	}
	for _, r := range f.restaurants {
		if id.Valid && r.ID == id.Num {
			return r, nil
		}
	}
	return model.Restaurant{}, repository.ErrNotFound
}

func (f *fakeStore) RestaurantsByCuisine(_ context.Context, cuisine string) ([]model.Restaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Restaurant
	for _, r := range f.restaurants {
		if r.Cuisine != nil && *r.Cuisine == cuisine {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) RestaurantsByFilter(context.Context, model.RestaurantFilter) ([]model.Restaurant, error) {
	return nil, f.err
}

func (f *fakeStore) RestaurantsByRating(context.Context) ([]model.Restaurant, error) {
	return f.restaurants, f.err
}

func (f *fakeStore) AllDishes(context.Context) ([]model.Dish, error) { return f.dishes, f.err }

func (f *fakeStore) DishByID(_ context.Context, id model.ID) (model.Dish, error) {
	if f.err != nil {
		return model.Dish{}, f.err
	}
	for _, d := range f.dishes {
		if id.Valid && d.ID == id.Num {
			return d, nil
		}
	}
	return model.Dish{}, repository.ErrNotFound
}

func (f *fakeStore) DishesByFilter(context.Context, model.DishFilter) ([]model.Dish, error) {
	return f.dishes, f.err
}

func (f *fakeStore) DishesByPrice(context.Context) ([]model.Dish, error) { return f.dishes, f.err }

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: []model.Restaurant{
			{ID: 1, Name: ptr("Spice Kitchen"), Cuisine: ptr("Indian"), Rating: ptr(4.5), IsVeg: model.ValidFlag(true)},
			{ID: 2, Name: ptr("Olive Bistro"), Cuisine: ptr("Italian"), Rating: ptr(4.2), IsLuxury: model.ValidFlag(true)},
		},
		dishes: []model.Dish{
			{ID: 1, Name: ptr("Paneer Butter Masala"), Price: ptr(300.0), IsVeg: model.ValidFlag(true)},
		},
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Started(), ShouldBeFalse)
			stats := svc.GetStats()
			So(stats["dbPath"], ShouldEqual, "./database1.sqlite")
			So(stats["readOnly"], ShouldEqual, true)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithDBPath("/srv/catalog.sqlite"),
			service.WithReadOnly(false),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["dbPath"], ShouldEqual, "/srv/catalog.sqlite")
			So(stats["readOnly"], ShouldEqual, false)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service with an injected store", t, func() {
		store := newFakeStore()
		svc := service.New(service.WithStore(store))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When querying before Start", func() {
			_, err := svc.Restaurants(ctx)

			Convey("Then the service refuses with ErrNotReady", func() {
				So(errors.Is(err, service.ErrNotReady), ShouldBeTrue)
				So(errors.Is(svc.Ready(ctx), service.ErrNotReady), ShouldBeTrue)
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil) // idempotent

			Convey("Then it is ready", func() {
				So(svc.Started(), ShouldBeTrue)
				So(svc.Ready(ctx), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})

			Convey("And a failing ping makes it not ready", func() {
				store.pingErr = errBoom
				err := svc.Ready(ctx)
				So(errors.Is(err, service.ErrNotReady), ShouldBeTrue)
				So(errors.Is(err, errBoom), ShouldBeTrue)
			})

			Convey("And stopping closes the store and refuses queries", func() {
				svc.Stop()
				svc.Stop()
				So(store.closed, ShouldBeTrue)
				So(svc.Started(), ShouldBeFalse)
				_, err := svc.Dishes(ctx)
				So(errors.Is(err, service.ErrNotReady), ShouldBeTrue)
			})
		})

		Convey("When the injected store does not answer", func() {
			store.pingErr = errBoom
			err := svc.Start(ctx)

			Convey("Then Start fails", func() {
				So(errors.Is(err, service.ErrStart), ShouldBeTrue)
				So(svc.Started(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a service pointing at a missing database file", t, func() {
		svc := service.New(service.WithDBPath(t.TempDir() + "/missing.sqlite"))

		Convey("Then Start fails with the open error", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrStart), ShouldBeTrue)
			So(errors.Is(err, repository.ErrOpen), ShouldBeTrue)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service over a fake store", t, func() {
		store := newFakeStore()
		svc := service.New(service.WithStore(store))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When fetching by id", func() {
			r, err := svc.Restaurant(ctx, model.NumericID(2))
			So(err, ShouldBeNil)
			So(*r.Restaurant.Name, ShouldEqual, "Olive Bistro")

			_, err = svc.Restaurant(ctx, model.NumericID(9))
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			d, err := svc.Dish(ctx, model.NumericID(1))
			So(err, ShouldBeNil)
			So(*d.Dish.Price, ShouldEqual, float64(300))

			_, err = svc.Dish(ctx, model.RawID("abc"))
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a list query matches nothing", func() {
			rs, err := svc.RestaurantsByCuisine(ctx, "Mexican")
			So(err, ShouldBeNil)
			So(rs.Restaurants, ShouldNotBeNil)
			So(rs.Restaurants, ShouldBeEmpty)

			rs, err = svc.FilterRestaurants(ctx, model.RestaurantFilter{})
			So(err, ShouldBeNil)
			So(rs.Restaurants, ShouldNotBeNil)
		})

		Convey("When the store fails", func() {
			store.err = errBoom

			Convey("Then every operation surfaces the error", func() {
				_, err := svc.Restaurants(ctx)
				So(errors.Is(err, errBoom), ShouldBeTrue)
				_, err = svc.RestaurantsByRating(ctx)
				So(errors.Is(err, errBoom), ShouldBeTrue)
				_, err = svc.Restaurant(ctx, model.NumericID(1))
				So(errors.Is(err, errBoom), ShouldBeTrue)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeFalse)
				_, err = svc.FilterDishes(ctx, model.DishFilter{})
				So(errors.Is(err, errBoom), ShouldBeTrue)
				_, err = svc.DishesByPrice(ctx)
				So(errors.Is(err, errBoom), ShouldBeTrue)
			})
		})
	})
}
