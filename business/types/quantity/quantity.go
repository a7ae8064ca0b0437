// Package quantity represents a unit count in the system.
package quantity

import (
	"fmt"
	"strconv"
)

// Quantity represents a unit count in the system.
type Quantity struct {
	value int
}

// Parse parses the specified value, returning an error if anything is wrong.
func Parse(value int) (Quantity, error) {
	if value < 0 {
		return Quantity{}, fmt.Errorf("invalid quantity %d", value)
	}

	return Quantity{value}, nil
}

// MustParse parses the specified value and panics if anything is wrong.
func MustParse(value int) Quantity {
	q, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return q
}

// Value returns the value of the quantity.
func (q Quantity) Value() int {
	return q.value
}

// String returns the value of the quantity as a string.
func (q Quantity) String() string {
	return strconv.Itoa(q.value)
}

// Equal provides support for the go-cmp package and testing.
func (q Quantity) Equal(q2 Quantity) bool {
	return q.value == q2.value
}

// MarshalText provides support for logging and any marshal needs.
func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}
