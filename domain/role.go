package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. It is validated both here and by a
// CHECK constraint at the store boundary, so a row can never carry a value
// outside the enum.
type Role string

const (
	RoleUser   Role = "user"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

// ParseRole normalizes a free-form role string into a Role. Tokens minted by
// older builds carried mixed-case values, so comparison is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleArtist:
		return RoleArtist, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsAdmin reports whether a raw role claim resolves to the admin role.
// An absent or unparseable role is never admin.
func IsAdmin(s string) bool {
	r, err := ParseRole(s)
	return err == nil && r == RoleAdmin
}

func (r Role) String() string { return string(r) }
