package database

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthsystem/pkg/apperror"
	"healthsystem/pkg/response"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError_ConflictHidesConstraintName(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "clinic_name_address_key"}
	err := mapError("statement", pgErr)

	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !errors.Is(err, pgErr) || !IsUniqueViolation(err, "clinic_name_address_key") {
		t.Error("expected the driver error to stay reachable as the cause")
	}

	for _, mask := range []bool{true, false} {
		rec := httptest.NewRecorder()
		response.FromError(rec, err, mask)
		if rec.Code != http.StatusConflict {
			t.Errorf("mask=%t: expected 409, got %d", mask, rec.Code)
		}
		if body := rec.Body.String(); strings.Contains(body, "clinic_name_address_key") {
			t.Errorf("mask=%t: constraint name leaked: %s", mask, body)
		}
	}
}

func TestMapError_Kinds(t *testing.T) {
	tests := []struct {
		code string
		want apperror.Kind
	}{
		{"42501", apperror.KindAuthorization},
		{"P0001", apperror.KindValidation},
		{"57014", apperror.KindDatabase},
		{"42P01", apperror.KindDatabase},
	}
	for _, tt := range tests {
		err := mapError("statement", &pgconn.PgError{Code: tt.code, Message: "x"})
		if !apperror.IsKind(err, tt.want) {
			t.Errorf("%s: expected kind %v, got %v", tt.code, tt.want, err)
		}
	}
}
