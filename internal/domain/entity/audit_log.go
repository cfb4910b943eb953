package entity

import (
	"encoding/json"
	"time"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Metadata  JSON      `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// JSON is stored as jsonb
type JSON map[string]interface{}

// Bytes encodes j for a jsonb parameter; an empty map is stored as NULL.
func (j JSON) Bytes() ([]byte, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Common audit actions
const (
	AuditActionUserLogin         = "user.login"
	AuditActionUserLogout        = "user.logout"
	AuditActionPatientRegister   = "patient.register"
	AuditActionPhysicianRegister = "physician.register"
	AuditActionBillingPay        = "billing.pay"
	AuditActionAppointmentCancel = "appointment.cancel"
)
