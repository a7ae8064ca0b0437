// Package money represents a monetary value in the system.
package money

import (
	"fmt"
	"strconv"
)

// Money represents a value in the system.
type Money struct {
	value float64
}

// Parse parses the specified value, returning an error if anything is wrong.
func Parse(value float64) (Money, error) {
	if value < 0 {
		return Money{}, fmt.Errorf("invalid money value %f", value)
	}

	return Money{value}, nil
}

// MustParse parses the specified value and panics if anything is wrong.
func MustParse(value float64) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return m
}

// Value returns the value of the money.
func (m Money) Value() float64 {
	return m.value
}

// String returns the value of the money as a string.
func (m Money) String() string {
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

// Equal provides support for the go-cmp package and testing.
func (m Money) Equal(m2 Money) bool {
	return m.value == m2.value
}

// MarshalText provides support for logging and any marshal needs.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
