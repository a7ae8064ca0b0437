// Package systemrole represents the coarse platform level role carried by a
// user account. Store scoped permissions come from memberships, not from here.
package systemrole

import "fmt"

// The set of system roles that can be used.
var (
	Admin = newSystemRole("ADMIN")
	User  = newSystemRole("USER")
)

// =============================================================================

// Set of known system roles.
var systemRoles = make(map[string]SystemRole)

// SystemRole represents a platform level role in the system.
type SystemRole struct {
	value string
}

func newSystemRole(role string) SystemRole {
	r := SystemRole{role}
	systemRoles[role] = r
	return r
}

// String returns the name of the system role.
func (r SystemRole) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r SystemRole) Equal(r2 SystemRole) bool {
	return r.value == r2.value
}

// MarshalText provides support for logging and any marshal needs.
func (r SystemRole) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// =============================================================================

// Parse parses the string value and returns a system role if one exists.
func Parse(value string) (SystemRole, error) {
	role, exists := systemRoles[value]
	if !exists {
		return SystemRole{}, fmt.Errorf("invalid system role %q", value)
	}

	return role, nil
}

// MustParse parses the string value and returns a system role if one exists.
// If an error occurs the function panics.
func MustParse(value string) SystemRole {
	role, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return role
}
