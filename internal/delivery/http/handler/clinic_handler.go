package handler

import (
	"net/http"

	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/usecase"
	"healthsystem/pkg/response"
)

// ClinicHandler serves clinics and the physician to clinic assignments.
type ClinicHandler struct {
	Base
	clinicUsecase usecase.ClinicUsecase
}

func NewClinicHandler(base Base, clinicUsecase usecase.ClinicUsecase) *ClinicHandler {
	return &ClinicHandler{
		Base:          base,
		clinicUsecase: clinicUsecase,
	}
}

func (h *ClinicHandler) GetAllClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.GetAllClinics(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}

func (h *ClinicHandler) CreateClinic(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClinicRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.clinicUsecase.CreateClinic(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Clinic created successfully", res)
}

func (h *ClinicHandler) GetWorksAt(w http.ResponseWriter, r *http.Request) {
	physicianID, err := queryInt64(r, "physician_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	works, err := h.clinicUsecase.GetWorksAt(r.Context(), physicianID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Work assignments retrieved successfully", works)
}

func (h *ClinicHandler) CreateWorksAt(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWorksAtRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.clinicUsecase.CreateWorksAt(r.Context(), &req); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Work assignment created successfully", nil)
}
