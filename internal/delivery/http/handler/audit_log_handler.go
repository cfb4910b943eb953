package handler

import (
	"net/http"

	"healthsystem/internal/usecase"
	"healthsystem/pkg/response"
)

type AuditLogHandler struct {
	Base
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(base Base, auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		Base:            base,
		auditLogUsecase: auditLogUsecase,
	}
}

// GetMyActivity handles GET /api/activity?limit=
func (h *AuditLogHandler) GetMyActivity(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.GetMyActivity(r.Context(), queryInt(r, "limit"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
