package database

import (
	"fmt"

	"healthsystem/config"
	"healthsystem/internal/domain/entity"
)

// CredentialSet is the database login used for one role.
type CredentialSet struct {
	Role     entity.Role
	Username string
	Secret   string
}

// String never includes the secret, so a CredentialSet is safe to log.
func (c CredentialSet) String() string {
	return fmt.Sprintf("%s(%s:***)", c.Role, c.Username)
}

func (c CredentialSet) GoString() string {
	return c.String()
}

// Registry maps each role to its credential set. It is built once at startup
// and only read afterwards.
type Registry struct {
	sets map[entity.Role]CredentialSet
}

func NewRegistry(cfg config.DBConfig) (*Registry, error) {
	creds := map[entity.Role]config.DBCredential{
		entity.RolePatient:   cfg.Patient,
		entity.RolePhysician: cfg.Physician,
		entity.RoleAdmin:     cfg.Admin,
	}

	r := &Registry{sets: make(map[entity.Role]CredentialSet, len(creds))}
	owners := make(map[string]entity.Role, len(creds))
	for _, role := range entity.Roles {
		c := creds[role]
		if c.User == "" || c.Password == "" {
			return nil, fmt.Errorf("missing database credentials for role %s", role)
		}
		if other, dup := owners[c.User]; dup {
			return nil, fmt.Errorf("roles %s and %s share database user %q", other, role, c.User)
		}
		owners[c.User] = role
		r.sets[role] = CredentialSet{Role: role, Username: c.User, Secret: c.Password}
	}

	return r, nil
}

// Resolve returns the credentials for role. Unknown roles get the admin set.
func (r *Registry) Resolve(role entity.Role) CredentialSet {
	if set, ok := r.sets[role]; ok {
		return set
	}
	return r.sets[entity.RoleAdmin]
}
