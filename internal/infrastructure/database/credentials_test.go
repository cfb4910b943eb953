package database

import (
	"fmt"
	"strings"
	"testing"

	"healthsystem/config"
	"healthsystem/internal/domain/entity"
)

func TestRegistry_Resolve(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		role entity.Role
		want string
	}{
		{entity.RolePatient, "hs_patient"},
		{entity.RolePhysician, "hs_physician"},
		{entity.RoleAdmin, "hs_admin"},
		{entity.Role(""), "hs_admin"},
		{entity.Role("nurse"), "hs_admin"},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.role).Username; got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.role, got, tt.want)
		}
	}
}

func TestNewRegistry_MissingCredential(t *testing.T) {
	_, err := NewRegistry(config.DBConfig{
		Patient:   config.DBCredential{User: "hs_patient", Password: "x"},
		Physician: config.DBCredential{User: "hs_physician"},
		Admin:     config.DBCredential{User: "hs_admin", Password: "y"},
	})
	if err == nil || !strings.Contains(err.Error(), "physician") {
		t.Fatalf("expected missing physician credentials error, got %v", err)
	}
}

func TestNewRegistry_SharedUsername(t *testing.T) {
	_, err := NewRegistry(config.DBConfig{
		Patient:   config.DBCredential{User: "app", Password: "x"},
		Physician: config.DBCredential{User: "hs_physician", Password: "y"},
		Admin:     config.DBCredential{User: "app", Password: "z"},
	})
	if err == nil {
		t.Fatal("expected error for shared username")
	}
}

func TestCredentialSet_StringHidesSecret(t *testing.T) {
	c := testRegistry(t).Resolve(entity.RolePatient)
	for _, s := range []string{c.String(), fmt.Sprintf("%v", c), fmt.Sprintf("%+v", c), fmt.Sprintf("%#v", c)} {
		if strings.Contains(s, "pw-patient") {
			t.Errorf("secret leaked in %q", s)
		}
	}
}

func TestMigrationURL(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: "5432", Name: "healthsystem", SSLMode: "disable"}
	got := migrationURL(cfg, CredentialSet{Username: "hs_admin", Secret: "p@ss word"})

	if !strings.HasPrefix(got, "pgx5://hs_admin:") {
		t.Errorf("unexpected scheme or user in %q", got)
	}
	if strings.Contains(got, "p@ss word") {
		t.Errorf("expected password to be escaped in %q", got)
	}
	if !strings.HasSuffix(got, "@db:5432/healthsystem?sslmode=disable") {
		t.Errorf("unexpected host or query in %q", got)
	}
}
