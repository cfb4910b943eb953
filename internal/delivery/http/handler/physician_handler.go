package handler

import (
	"net/http"

	"healthsystem/internal/usecase"
	"healthsystem/pkg/response"
)

type PhysicianHandler struct {
	Base
	physicianUsecase usecase.PhysicianUsecase
}

func NewPhysicianHandler(base Base, physicianUsecase usecase.PhysicianUsecase) *PhysicianHandler {
	return &PhysicianHandler{
		Base:             base,
		physicianUsecase: physicianUsecase,
	}
}

// GetPhysicians lists physicians with their clinic and weekly schedule.
// Query: page (default 1), page_size (default 3).
func (h *PhysicianHandler) GetPhysicians(w http.ResponseWriter, r *http.Request) {
	physicians, meta, err := h.physicianUsecase.GetPhysicians(r.Context(), queryInt(r, "page"), queryInt(r, "page_size"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Physicians retrieved successfully", physicians, meta)
}
