// Package repository provides read access to the restaurants and dishes tables.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/okian/foodie/internal/domain/model"
	"github.com/okian/foodie/pkg/logger"
	"github.com/okian/foodie/pkg/metrics"
)

const driverName = "sqlite3"

// Query names double as metric labels.
const (
	qAllRestaurants       = "all_restaurants"
	qRestaurantByID       = "restaurant_by_id"
	qRestaurantsByCuisine = "restaurants_by_cuisine"
	qRestaurantsByFilter  = "restaurants_by_filter"
	qRestaurantsByRating  = "restaurants_by_rating"
	qAllDishes            = "all_dishes"
	qDishByID             = "dish_by_id"
	qDishesByFilter       = "dishes_by_filter"
	qDishesByPrice        = "dishes_by_price"
)

// Rows are read whole, as stored, and matched to fields by column name.
const (
	selectRestaurants = "SELECT * FROM restaurants"
	selectDishes      = "SELECT * FROM dishes"
)

// SQLiteStore implements Store over a file-backed SQLite database.
// A single instance is shared by all request goroutines.
type SQLiteStore struct {
	db       *sql.DB
	readOnly bool
	logger   logger.Logger
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the database file at path and verifies it answers a ping.
// The schema is not created or checked; it is owned by whoever seeds the file.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := newStore(nil, opts...)

	db, err := sql.Open(driverName, s.dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	s.db = db

	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	s.logger.Info(ctx, "connected to sqlite database", logger.String("path", path), logger.Bool("read_only", s.readOnly))
	return s, nil
}

// NewSQLiteStore wraps an already opened handle.
func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	return newStore(db, opts...)
}

func newStore(db *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{
		db:       db,
		readOnly: true,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SQLiteStore) dsn(path string) string {
	if s.readOnly {
		return "file:" + path + "?mode=ro"
	}
	return "file:" + path
}

// Ping implements Store.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrOpen
	}
	return s.db.PingContext(ctx)
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AllRestaurants implements RestaurantStore.
func (s *SQLiteStore) AllRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	return queryRows(ctx, s, qAllRestaurants, selectRestaurants, scanRestaurant)
}

// RestaurantByID implements RestaurantStore.
func (s *SQLiteStore) RestaurantByID(ctx context.Context, id model.ID) (model.Restaurant, error) {
	return queryRow(ctx, s, qRestaurantByID, selectRestaurants+" WHERE id = ? LIMIT 1", scanRestaurant, id.Arg())
}

// RestaurantsByCuisine implements RestaurantStore. The comparison is case-sensitive.
func (s *SQLiteStore) RestaurantsByCuisine(ctx context.Context, cuisine string) ([]model.Restaurant, error) {
	return queryRows(ctx, s, qRestaurantsByCuisine, selectRestaurants+" WHERE cuisine = ?", scanRestaurant, cuisine)
}

// RestaurantsByFilter implements RestaurantStore.
func (s *SQLiteStore) RestaurantsByFilter(ctx context.Context, f model.RestaurantFilter) ([]model.Restaurant, error) {
	where, args := and(
		flagClause("isVeg", f.IsVeg),
		flagClause("hasOutdoorSeating", f.HasOutdoorSeating),
		flagClause("isLuxury", f.IsLuxury),
	)
	return queryRows(ctx, s, qRestaurantsByFilter, selectRestaurants+" WHERE "+where, scanRestaurant, args...)
}

// RestaurantsByRating implements RestaurantStore.
func (s *SQLiteStore) RestaurantsByRating(ctx context.Context) ([]model.Restaurant, error) {
	return queryRows(ctx, s, qRestaurantsByRating, selectRestaurants+" ORDER BY rating DESC", scanRestaurant)
}

// AllDishes implements DishStore.
func (s *SQLiteStore) AllDishes(ctx context.Context) ([]model.Dish, error) {
	return queryRows(ctx, s, qAllDishes, selectDishes, scanDish)
}

// DishByID implements DishStore.
func (s *SQLiteStore) DishByID(ctx context.Context, id model.ID) (model.Dish, error) {
	return queryRow(ctx, s, qDishByID, selectDishes+" WHERE id = ? LIMIT 1", scanDish, id.Arg())
}

// DishesByFilter implements DishStore.
func (s *SQLiteStore) DishesByFilter(ctx context.Context, f model.DishFilter) ([]model.Dish, error) {
	where, args := and(flagClause("isVeg", f.IsVeg))
	return queryRows(ctx, s, qDishesByFilter, selectDishes+" WHERE "+where, scanDish, args...)
}

// DishesByPrice implements DishStore.
func (s *SQLiteStore) DishesByPrice(ctx context.Context) ([]model.Dish, error) {
	return queryRows(ctx, s, qDishesByPrice, selectDishes+" ORDER BY price ASC", scanDish)
}

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanFunc reads the current row given the statement's column names.
type scanFunc[T any] func(cols []string, rs rowScanner) (T, error)

func scanRestaurant(cols []string, rs rowScanner) (model.Restaurant, error) {
	var r model.Restaurant
	err := rs.Scan(targets(cols, map[string]any{
		"id":                &r.ID,
		"name":              &r.Name,
		"cuisine":           &r.Cuisine,
		"isVeg":             &r.IsVeg,
		"rating":            &r.Rating,
		"priceForTwo":       &r.PriceForTwo,
		"location":          &r.Location,
		"hasOutdoorSeating": &r.HasOutdoorSeating,
		"isLuxury":          &r.IsLuxury,
	})...)
	return r, err
}

func scanDish(cols []string, rs rowScanner) (model.Dish, error) {
	var d model.Dish
	err := rs.Scan(targets(cols, map[string]any{
		"id":     &d.ID,
		"name":   &d.Name,
		"isVeg":  &d.IsVeg,
		"rating": &d.Rating,
		"price":  &d.Price,
	})...)
	return d, err
}

// targets lines up scan destinations with cols. Columns without a field
// are read and dropped; fields without a column stay zero.
func targets(cols []string, fields map[string]any) []any {
	dest := make([]any, len(cols))
	for i, c := range cols {
		if f, ok := fields[c]; ok {
			dest[i] = f
			continue
		}
		dest[i] = new(any)
	}
	return dest
}

// queryRows runs a multi-row statement. The result is never nil so an
// empty match encodes as [].
func queryRows[T any](ctx context.Context, s *SQLiteStore, name, query string, scan scanFunc[T], args ...any) ([]T, error) {
	start := time.Now()
	out, err := collect(ctx, s.db, query, scan, args...)
	s.observe(ctx, name, start, len(out), err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	}
	return out, nil
}

func collect[T any](ctx context.Context, db *sql.DB, query string, scan scanFunc[T], args ...any) ([]T, error) {
	if db == nil {
		return nil, ErrOpen
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(cols, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// queryRow runs a single-row lookup; no row is ErrNotFound.
func queryRow[T any](ctx context.Context, s *SQLiteStore, name, query string, scan scanFunc[T], args ...any) (T, error) {
	var zero T
	if s.db == nil {
		return zero, fmt.Errorf("%w: %s: %w", ErrQuery, name, ErrOpen)
	}

	start := time.Now()
	out, err := collect(ctx, s.db, query, scan, args...)
	s.observe(ctx, name, start, len(out), err)
	switch {
	case err != nil:
		return zero, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	case len(out) == 0:
		return zero, ErrNotFound
	}
	return out[0], nil
}

func (s *SQLiteStore) observe(ctx context.Context, name string, start time.Time, rows int, err error) {
	elapsed := time.Since(start)
	metrics.RecordQueryLatency(name, float64(elapsed.Microseconds())/1000)
	if err != nil {
		metrics.RecordQueryError(name)
		s.logger.Error(ctx, "query failed", logger.String("query", name), logger.Duration("elapsed", elapsed), logger.Error(err))
		return
	}
	metrics.RecordQueryRows(name, rows)
	s.logger.Debug(ctx, "query done", logger.String("query", name), logger.Int("rows", rows), logger.Duration("elapsed", elapsed))
}
