package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		router := mux.NewRouter()

		Convey("When registering the site handler", func() {
			Register(ctx, router)

			Convey("Then it should serve the landing page at /", func() {
				req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "Foodie catalog")
				So(w.Body.String(), ShouldContainSubstring, "/api-docs")
			})

			Convey("And it should not claim other paths", func() {
				req := httptest.NewRequest(http.MethodGet, "/index.html", http.NoBody)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And it should reject writes", func() {
				req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestSiteHandlerWithNilRouter(t *testing.T) {
	Convey("Given a nil router", t, func() {
		Convey("Then registering should panic", func() {
			So(func() {
				Register(context.Background(), nil)
			}, ShouldPanic)
		})
	})
}

func TestFS(t *testing.T) {
	Convey("Given the embedded file system", t, func() {
		f, err := FS().Open("index.html")

		Convey("Then index.html is present", func() {
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
		})
	})
}
