package handler

import (
	"net/http"

	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/usecase"
	"healthsystem/pkg/response"
)

type AppointmentHandler struct {
	Base
	appointmentUsecase usecase.AppointmentUsecase
}

func NewAppointmentHandler(base Base, appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{
		Base:               base,
		appointmentUsecase: appointmentUsecase,
	}
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.appointmentUsecase.BookAppointment(r.Context(), &req); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", nil)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// GetBookedSlots requires physician_id and clinic_id; date narrows to one day.
func (h *AppointmentHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	physicianID, err := queryInt64(r, "physician_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	clinicID, err := queryInt64(r, "clinic_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	query := dto.BookedSlotsQuery{
		PhysicianID: physicianID,
		ClinicID:    clinicID,
		Date:        r.URL.Query().Get("date"),
	}
	if !h.validate(w, &query) {
		return
	}

	slots, err := h.appointmentUsecase.GetBookedSlots(r.Context(), &query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Booked time slots retrieved successfully", slots)
}
