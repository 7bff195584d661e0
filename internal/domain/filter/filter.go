// Package filter turns raw request parameters into typed query inputs.
//
// In strict mode malformed or missing values are rejected with a
// *ParamError. In lenient mode every value is passed through untouched so
// the query compares it verbatim, which matches nothing for garbage input.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/foodie/internal/domain/model"
)

// Query parameter names.
const (
	ParamIsVeg             = "isVeg"
	ParamHasOutdoorSeating = "hasOutdoorSeating"
	ParamIsLuxury          = "isLuxury"
	ParamID                = "id"
)

// ParamError reports one rejected request parameter.
type ParamError struct {
	Name   string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
}

// Unwrap lets callers match ErrInvalidParam with errors.Is.
func (e *ParamError) Unwrap() error { return ErrInvalidParam }

// Parser converts request parameters into model inputs.
type Parser struct {
	strict bool
}

// New creates a Parser. Parsers are strict unless configured otherwise.
func New(opts ...Option) *Parser {
	p := &Parser{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Strict reports whether the parser rejects malformed input.
func (p *Parser) Strict() bool { return p.strict }

// RestaurantFilter reads isVeg, hasOutdoorSeating and isLuxury.
func (p *Parser) RestaurantFilter(q url.Values) (model.RestaurantFilter, error) {
	var (
		f   model.RestaurantFilter
		err error
	)
	if f.IsVeg, err = p.flag(q, ParamIsVeg); err != nil {
		return model.RestaurantFilter{}, err
	}
	if f.HasOutdoorSeating, err = p.flag(q, ParamHasOutdoorSeating); err != nil {
		return model.RestaurantFilter{}, err
	}
	if f.IsLuxury, err = p.flag(q, ParamIsLuxury); err != nil {
		return model.RestaurantFilter{}, err
	}
	return f, nil
}

// DishFilter reads isVeg.
func (p *Parser) DishFilter(q url.Values) (model.DishFilter, error) {
	isVeg, err := p.flag(q, ParamIsVeg)
	if err != nil {
		return model.DishFilter{}, err
	}
	return model.DishFilter{IsVeg: isVeg}, nil
}

// ID reads a row key from a path segment.
func (p *Parser) ID(raw string) (model.ID, error) {
	if !p.strict {
		return model.RawID(raw), nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return model.ID{}, &ParamError{Name: ParamID, Reason: "must be an integer"}
	}
	id := model.NumericID(n)
	id.Raw = raw
	return id, nil
}

func (p *Parser) flag(q url.Values, name string) (model.FlagParam, error) {
	raw, present := q[name]
	var v string
	if present && len(raw) > 0 {
		v = raw[0]
	}
	if !p.strict {
		return model.RawParam(v, present), nil
	}
	if !present {
		return model.FlagParam{}, &ParamError{Name: name, Reason: "is required"}
	}
	b, err := model.ParseFlag(v)
	if err != nil {
		return model.FlagParam{}, &ParamError{Name: name, Reason: "must be true or false"}
	}
	fp := model.BoolParam(b)
	fp.Raw = v
	return fp, nil
}
