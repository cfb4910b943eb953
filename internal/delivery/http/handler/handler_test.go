package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthsystem/config"
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/usecase"
	"healthsystem/pkg/apperror"
	"healthsystem/pkg/jwt"
	"healthsystem/pkg/response"
	"healthsystem/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func testBase(mask bool) Base {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewBase(log, validator.NewValidator(), mask)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

type fakeAuthUsecase struct {
	usecase.AuthUsecase
	loginErr    error
	registerErr error
	calls       int
}

func (f *fakeAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	f.calls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &dto.LoginResponse{
		User:      dto.UserResponse{ID: 1, Email: req.Email, UserType: "patient"},
		ExpiresIn: 3600,
		Token:     "signed-token",
	}, nil
}

func (f *fakeAuthUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.RegisterResponse, error) {
	f.calls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &dto.RegisterResponse{UserID: 1, ReferenceID: 2}, nil
}

func newTestAuthHandler(uc usecase.AuthUsecase, mask bool) *AuthHandler {
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "s", CookieName: "hs_session", Expiry: time.Hour})
	return NewAuthHandler(testBase(mask), uc, jwtService)
}

func TestLogin_SetsCookie(t *testing.T) {
	uc := &fakeAuthUsecase{}
	h := newTestAuthHandler(uc, false)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@example.com","password":"pw","remember_me":true}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "hs_session" || cookies[0].Value != "signed-token" {
		t.Fatalf("cookies = %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Errorf("cookie = %+v", cookies[0])
	}
	if strings.Contains(rec.Body.String(), "signed-token") {
		t.Error("token must not appear in the body")
	}
}

func TestLogin_MissingField(t *testing.T) {
	uc := &fakeAuthUsecase{}
	h := newTestAuthHandler(uc, false)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"pw"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); body.Error != "Missing field: email" {
		t.Errorf("error = %q", body.Error)
	}
	if uc.calls != 0 {
		t.Error("usecase must not run on invalid input")
	}
}

func TestLogin_ErrorStatuses(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{usecase.ErrAccountDeactivated, http.StatusForbidden},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		newTestAuthHandler(&fakeAuthUsecase{loginErr: tt.err}, true).Login(rec,
			httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@example.com","password":"pw"}`)))
		if rec.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestRegisterPatient_Statuses(t *testing.T) {
	body := `{"email":"n@example.com","password":"long-enough","name":"N","phone_number":"1",
		"dob":"1990-01-01","blood_type":"O+","address":"x"}`

	tests := []struct {
		name      string
		err       error
		mask      bool
		want      int
		wantError string
	}{
		{"created", nil, true, http.StatusCreated, ""},
		{"duplicate", usecase.ErrEmailAlreadyExists, true, http.StatusConflict, "Email already registered"},
		{"database masked", apperror.Database("insert failed", errors.New("relation does not exist")), true,
			http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestAuthHandler(&fakeAuthUsecase{registerErr: tt.err}, tt.mask).RegisterPatient(rec,
				httptest.NewRequest(http.MethodPost, "/auth/register/patient", strings.NewReader(body)))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.wantError != "" {
				if got := decode(t, rec).Error; got != tt.wantError {
					t.Errorf("error = %q", got)
				}
			}
		})
	}
}

type fakePatientUsecase struct {
	usecase.PatientUsecase
	gotID int64
}

func (f *fakePatientUsecase) GetPatient(ctx context.Context, id int64) (*entity.Patient, error) {
	f.gotID = id
	if id == 404 {
		return nil, usecase.ErrPatientNotFound
	}
	return &entity.Patient{ID: id, Name: "Ana"}, nil
}

func TestGetPatient(t *testing.T) {
	uc := &fakePatientUsecase{}
	h := NewPatientHandler(testBase(true), uc)
	r := mux.NewRouter()
	r.HandleFunc("/api/patients/{id}", h.GetPatient)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/patients/7", nil))
	if rec.Code != http.StatusOK || uc.gotID != 7 {
		t.Fatalf("status = %d id = %d", rec.Code, uc.gotID)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/patients/404", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/patients/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestQueryInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?patient_id=12&bad=x", nil)
	if v, err := queryInt64(req, "patient_id"); err != nil || v != 12 {
		t.Errorf("got %d, %v", v, err)
	}
	if v, err := queryInt64(req, "missing"); err != nil || v != 0 {
		t.Errorf("missing: got %d, %v", v, err)
	}
	if _, err := queryInt64(req, "bad"); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("bad: err = %v", err)
	}
}
