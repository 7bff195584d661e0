package filter_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/okian/foodie/internal/domain/filter"
	"github.com/okian/foodie/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParser_RestaurantFilter(t *testing.T) {
	Convey("Given a strict parser", t, func() {
		p := filter.New()
		So(p.Strict(), ShouldBeTrue)

		Convey("When all three flags are well formed", func() {
			q := url.Values{"isVeg": {"true"}, "hasOutdoorSeating": {"1"}, "isLuxury": {"false"}}
			f, err := p.RestaurantFilter(q)

			Convey("Then they are parsed to booleans", func() {
				So(err, ShouldBeNil)
				So(f.IsVeg.Valid, ShouldBeTrue)
				So(f.IsVeg.Value, ShouldBeTrue)
				So(f.HasOutdoorSeating.Value, ShouldBeTrue)
				So(f.IsLuxury.Valid, ShouldBeTrue)
				So(f.IsLuxury.Value, ShouldBeFalse)
			})
		})

		Convey("When a flag is missing", func() {
			q := url.Values{"isVeg": {"true"}, "hasOutdoorSeating": {"true"}}
			_, err := p.RestaurantFilter(q)

			Convey("Then it reports the missing parameter", func() {
				So(errors.Is(err, filter.ErrInvalidParam), ShouldBeTrue)
				var pe *filter.ParamError
				So(errors.As(err, &pe), ShouldBeTrue)
				So(pe.Name, ShouldEqual, "isLuxury")
				So(pe.Error(), ShouldEqual, "invalid isLuxury: is required")
			})
		})

		Convey("When a flag is not a boolean", func() {
			q := url.Values{"isVeg": {"sometimes"}, "hasOutdoorSeating": {"true"}, "isLuxury": {"true"}}
			_, err := p.RestaurantFilter(q)

			Convey("Then it is rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "invalid isVeg: must be true or false")
			})
		})
	})

	Convey("Given a lenient parser", t, func() {
		p := filter.New(filter.WithStrict(false))

		Convey("When values are garbage or absent", func() {
			q := url.Values{"isVeg": {"sometimes"}}
			f, err := p.RestaurantFilter(q)

			Convey("Then they pass through untouched", func() {
				So(err, ShouldBeNil)
				So(f.IsVeg, ShouldResemble, model.RawParam("sometimes", true))
				So(f.HasOutdoorSeating, ShouldResemble, model.RawParam("", false))
				So(f.IsLuxury.Present, ShouldBeFalse)
			})
		})
	})
}

func TestParser_DishFilter(t *testing.T) {
	Convey("Given a strict parser", t, func() {
		p := filter.New()

		Convey("When isVeg is false", func() {
			f, err := p.DishFilter(url.Values{"isVeg": {"false"}})
			So(err, ShouldBeNil)
			So(f.IsVeg.Valid, ShouldBeTrue)
			So(f.IsVeg.Value, ShouldBeFalse)
		})

		Convey("When isVeg is missing", func() {
			_, err := p.DishFilter(url.Values{})
			So(errors.Is(err, filter.ErrInvalidParam), ShouldBeTrue)
		})
	})
}

func TestParser_ID(t *testing.T) {
	Convey("Given a strict parser", t, func() {
		p := filter.New()

		Convey("When the id is an integer", func() {
			id, err := p.ID("17")
			So(err, ShouldBeNil)
			So(id.Valid, ShouldBeTrue)
			So(id.Num, ShouldEqual, 17)
			So(id.String(), ShouldEqual, "17")
		})

		Convey("When the id is not an integer", func() {
			_, err := p.ID("seventeen")
			So(errors.Is(err, filter.ErrInvalidParam), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "invalid id: must be an integer")
		})
	})

	Convey("Given a lenient parser", t, func() {
		p := filter.New(filter.WithStrict(false))
		id, err := p.ID("seventeen")
		So(err, ShouldBeNil)
		So(id.Valid, ShouldBeFalse)
		So(id.Arg(), ShouldEqual, "seventeen")
	})
}
