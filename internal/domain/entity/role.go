package entity

import "fmt"

// Role selects both the permissions a user has in the API and the database
// credential set their requests run under.
type Role string

const (
	RolePatient   Role = "patient"
	RolePhysician Role = "physician"
	RoleAdmin     Role = "admin"
)

// Roles lists every role in a stable order.
var Roles = []Role{RolePatient, RolePhysician, RoleAdmin}

func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RolePhysician, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
