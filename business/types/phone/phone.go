// Package phone represents a contact phone number in the system. Numbers are
// stored normalized: an optional leading + followed by digits only.
package phone

import (
	"database/sql"
	"fmt"
	"strings"
)

// Phone represents a normalized phone number.
type Phone struct {
	value string
}

// Parse normalizes and validates the string value, returning a phone number.
// Spaces, hyphens, dots, and parentheses are accepted as input separators and
// stripped before validation.
func Parse(value string) (Phone, error) {
	norm, err := normalize(value)
	if err != nil {
		return Phone{}, err
	}

	return Phone{norm}, nil
}

// MustParse parses the string value and panics if it is not a valid phone
// number.
func MustParse(value string) Phone {
	p, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the normalized phone number.
func (p Phone) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Phone) Equal(p2 Phone) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

// Null represents a phone number that can be absent.
type Null struct {
	value string
	valid bool
}

// ParseNull parses the string value like Parse, treating the empty string as
// an absent number rather than an error.
func ParseNull(value string) (Null, error) {
	if value == "" {
		return Null{}, nil
	}

	norm, err := normalize(value)
	if err != nil {
		return Null{}, err
	}

	return Null{norm, true}, nil
}

// MustParseNull parses the string value and panics if it is not a valid phone
// number.
func MustParseNull(value string) Null {
	p, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return p
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.value,
		Valid:  n.valid,
	}
}

// String returns the normalized phone number, or NULL when absent.
func (n Null) String() string {
	if !n.valid {
		return "NULL"
	}

	return n.value
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.value == n2.value && n.valid == n2.valid
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// =============================================================================

func normalize(value string) (string, error) {
	var b strings.Builder

	for i, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)

		case r == '+' && i == 0:
			b.WriteRune(r)

		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':

		default:
			return "", fmt.Errorf("invalid phone %q", value)
		}
	}

	digits := strings.TrimPrefix(b.String(), "+")
	if len(digits) < 7 || len(digits) > 15 {
		return "", fmt.Errorf("invalid phone %q", value)
	}

	return b.String(), nil
}
