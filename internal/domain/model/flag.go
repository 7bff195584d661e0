// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean column value. Datasets store flags as INTEGER 0/1,
// BOOLEAN, or TEXT "true"/"false"; Flag reads all of them and always
// serializes as a JSON boolean. NULL reads as false.
type Flag bool

// Scan implements sql.Scanner.
func (f *Flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case []byte:
		return f.scanText(string(v))
	case string:
		return f.scanText(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrFlagScan, src)
	}
	return nil
}

func (f *Flag) scanText(s string) error {
	b, err := ParseFlag(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrFlagScan, s)
	}
	*f = Flag(b)
	return nil
}

// Value implements driver.Valuer.
func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

// NullFlag is a flag column as stored. NULL and spellings that are not
// a boolean leave Valid false and encode as JSON null, so one odd row
// never fails the statement reading it.
type NullFlag struct {
	Flag  Flag
	Valid bool
}

// ValidFlag returns a NullFlag holding v.
func ValidFlag(v bool) NullFlag {
	return NullFlag{Flag: Flag(v), Valid: true}
}

// Bool reports whether the flag is known and true.
func (n NullFlag) Bool() bool {
	return n.Valid && bool(n.Flag)
}

// Scan implements sql.Scanner.
func (n *NullFlag) Scan(src any) error {
	if src == nil {
		*n = NullFlag{}
		return nil
	}
	var f Flag
	if err := f.Scan(src); err != nil {
		if errors.Is(err, ErrFlagScan) {
			*n = NullFlag{}
			return nil
		}
		return err
	}
	*n = NullFlag{Flag: f, Valid: true}
	return nil
}

// Value implements driver.Valuer.
func (n NullFlag) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return bool(n.Flag), nil
}

// MarshalJSON encodes true, false or null.
func (n NullFlag) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(bool(n.Flag))
}

// UnmarshalJSON accepts true, false or null.
func (n *NullFlag) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*n = NullFlag{}
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrFlagScan, b)
	}
	*n = ValidFlag(v)
	return nil
}

// ParseFlag parses the textual spellings a flag may take.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "t", "yes":
		return true, nil
	case "false", "0", "f", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// FlagParam is a filter input for one flag column.
//
// With Valid set, Value is compared against every stored encoding of the
// boolean. Otherwise Raw is bound verbatim; an absent parameter
// (Present false) binds NULL and matches no row.
type FlagParam struct {
	Value   bool
	Valid   bool
	Raw     string
	Present bool
}

// BoolParam returns a parsed flag input.
func BoolParam(v bool) FlagParam {
	return FlagParam{Value: v, Valid: true, Raw: strconv.FormatBool(v), Present: true}
}

// RawParam returns a passthrough flag input.
func RawParam(raw string, present bool) FlagParam {
	return FlagParam{Raw: raw, Present: present}
}

// ID identifies a row by its key. Raw keeps the path value for messages.
type ID struct {
	Num   int64
	Valid bool
	Raw   string
}

// NumericID returns an ID parsed as an integer key.
func NumericID(n int64) ID {
	return ID{Num: n, Valid: true, Raw: strconv.FormatInt(n, 10)}
}

// RawID returns an ID that is bound to the query as given.
func RawID(raw string) ID {
	return ID{Raw: raw}
}

// Arg returns the value to bind for this ID.
func (id ID) Arg() any {
	if id.Valid {
		return id.Num
	}
	return id.Raw
}

// String returns the identifier as the client supplied it.
func (id ID) String() string {
	return id.Raw
}
