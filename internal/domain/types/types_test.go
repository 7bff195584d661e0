package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/foodie/internal/domain/model"
	types "github.com/okian/foodie/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func encode(v any) string {
	b, err := json.Marshal(v)
	So(err, ShouldBeNil)
	return string(b)
}

func TestEnvelopes(t *testing.T) {
	Convey("Given the response envelopes", t, func() {
		Convey("When a list is empty or nil", func() {
			Convey("Then it encodes as an empty array", func() {
				So(encode(types.NewRestaurantList(nil)), ShouldEqual, `{"restaurants":[]}`)
				So(encode(types.NewDishList(nil)), ShouldEqual, `{"dishes":[]}`)
				So(encode(types.NewDishList([]model.Dish{})), ShouldEqual, `{"dishes":[]}`)
			})
		})

		Convey("When a single dish is wrapped", func() {
			name, price := "Veg Hakka Noodles", 250.0
			body := types.DishDetail{Dish: model.Dish{ID: 3, Name: &name, IsVeg: model.ValidFlag(true), Price: &price}}

			Convey("Then it uses the dish key", func() {
				So(encode(body), ShouldEqual, `{"dish":{"id":3,"name":"Veg Hakka Noodles","isVeg":true,"rating":null,"price":250}}`)
			})
		})

		Convey("When error bodies are encoded", func() {
			Convey("Then 404s use message and the rest use error", func() {
				So(encode(types.Message{Message: "No dish found with ID 9."}), ShouldEqual, `{"message":"No dish found with ID 9."}`)
				So(encode(types.Failure{Error: "Failed to fetch dishes."}), ShouldEqual, `{"error":"Failed to fetch dishes."}`)
			})
		})
	})
}
