package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is taken from the access token issued by the account service.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
