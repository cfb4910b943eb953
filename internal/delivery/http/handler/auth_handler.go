package handler

import (
	"net/http"
	"time"

	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/usecase"
	"healthsystem/pkg/jwt"
	"healthsystem/pkg/response"
)

type AuthHandler struct {
	Base
	authUsecase usecase.AuthUsecase
	jwtService  *jwt.JWTService
}

func NewAuthHandler(base Base, authUsecase usecase.AuthUsecase, jwtService *jwt.JWTService) *AuthHandler {
	return &AuthHandler{
		Base:        base,
		authUsecase: authUsecase,
		jwtService:  jwtService,
	}
}

// RegisterPatient handles patient self-registration
// @Summary Register a patient account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterPatientRequest true "Register Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register/patient [post]
func (h *AuthHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.authUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", res)
}

// RegisterPhysician handles physician registration
// @Summary Register a physician account
// @Description Reuses the clinic with the same name and address if it exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterPhysicianRequest true "Register Physician Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register/physician [post]
func (h *AuthHandler) RegisterPhysician(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPhysicianRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.authUsecase.RegisterPhysician(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Physician registered successfully", res)
}

// Login handles user login
// @Summary Login user
// @Description Login with email and password; sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cookie := &http.Cookie{
		Name:     h.jwtService.CookieName(),
		Value:    res.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.jwtService.SecureCookie(),
		SameSite: http.SameSiteLaxMode,
	}
	// Without remember-me the cookie dies with the browser session.
	if req.RememberMe {
		cookie.MaxAge = int(res.ExpiresIn)
		cookie.Expires = time.Now().Add(time.Duration(res.ExpiresIn) * time.Second)
	}
	http.SetCookie(w, cookie)

	response.Success(w, http.StatusOK, "Login successful", res)
}

// Logout handles user logout
// @Summary Logout user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.Logout(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.jwtService.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.jwtService.SecureCookie(),
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser handles getting current user info
// @Summary Get current user
// @Description Get the authenticated account and its patient or physician profile
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/current-user [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.CurrentUser(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
