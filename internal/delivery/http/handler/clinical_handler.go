package handler

import (
	"net/http"

	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/usecase"
	"healthsystem/pkg/response"
)

// ClinicalHandler serves health reports, prescriptions and medical history.
// List endpoints take patient_id; patients may omit it.
type ClinicalHandler struct {
	Base
	clinicalUsecase usecase.ClinicalUsecase
}

func NewClinicalHandler(base Base, clinicalUsecase usecase.ClinicalUsecase) *ClinicalHandler {
	return &ClinicalHandler{
		Base:            base,
		clinicalUsecase: clinicalUsecase,
	}
}

func (h *ClinicalHandler) CreateHealthReport(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHealthReportRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.clinicalUsecase.CreateHealthReport(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Health report created successfully", res)
}

func (h *ClinicalHandler) GetHealthReports(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryInt64(r, "patient_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	reports, err := h.clinicalUsecase.GetHealthReports(r.Context(), patientID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Health reports retrieved successfully", reports)
}

func (h *ClinicalHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.clinicalUsecase.CreatePrescription(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", res)
}

func (h *ClinicalHandler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryInt64(r, "patient_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	prescriptions, err := h.clinicalUsecase.GetPrescriptions(r.Context(), patientID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *ClinicalHandler) CreateMedicalHistory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalHistoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.clinicalUsecase.CreateMedicalHistory(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Medical history created successfully", res)
}

func (h *ClinicalHandler) UpdateMedicalHistory(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMedicalHistoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.clinicalUsecase.UpdateMedicalHistory(r.Context(), &req); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical history updated successfully", nil)
}

func (h *ClinicalHandler) GetMedicalHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryInt64(r, "patient_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	history, err := h.clinicalUsecase.GetMedicalHistory(r.Context(), patientID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical history retrieved successfully", history)
}
