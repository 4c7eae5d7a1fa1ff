package filter

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type boundKind uint8

const (
	boundUnset boundKind = iota
	boundAny
	boundValue
)

// Bound is a numeric constraint with three explicit states: unset (the caller said
// nothing), any (the caller explicitly asked for no constraint) and a specific value.
// A zero value is a real constraint and is never confused with unset.
type Bound struct {
	kind  boundKind
	value float64
}

// Unset returns a Bound that carries no constraint. It is the zero value.
func Unset() Bound { return Bound{} }

// Any returns an explicit "no constraint" Bound.
func Any() Bound { return Bound{kind: boundAny} }

// Value returns a Bound constraining to v.
func Value(v float64) Bound { return Bound{kind: boundValue, value: v} }

func (b Bound) IsUnset() bool { return b.kind == boundUnset }
func (b Bound) IsAny() bool   { return b.kind == boundAny }

// Get returns the constraint value and whether one is present.
func (b Bound) Get() (float64, bool) {
	return b.value, b.kind == boundValue
}

// String renders the bound in its query-string form: "", "any" or the number.
func (b Bound) String() string {
	switch b.kind {
	case boundAny:
		return "any"
	case boundValue:
		return strconv.FormatFloat(b.value, 'f', -1, 64)
	}
	return ""
}

var (
	errNotNumber   = errors.New("must be a number")
	errNotInteger  = errors.New("must be a whole number")
	errNegative    = errors.New("must not be negative")
	errPlusNotHere = errors.New(`the "N+" form is only accepted for room counts`)
)

// parseBound reads one query value. countForm enables the "N+" sentinel and
// requires integers, which is what bedroom and bathroom filters send.
func parseBound(raw string, countForm bool) (Bound, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unset(), nil
	}
	if strings.EqualFold(s, "any") {
		return Any(), nil
	}
	if strings.HasSuffix(s, "+") {
		if !countForm {
			return Bound{}, errPlusNotHere
		}
		s = strings.TrimSpace(strings.TrimSuffix(s, "+"))
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Bound{}, errNotNumber
	}
	if v < 0 {
		return Bound{}, errNegative
	}
	if countForm && v != math.Trunc(v) {
		return Bound{}, errNotInteger
	}
	return Value(v), nil
}
