package dto

import "github.com/shopspring/decimal"

type CreateHealthReportRequest struct {
	PhysicianID int64            `json:"physician_id" validate:"required,gt=0"`
	PatientID   int64            `json:"patient_id" validate:"required,gt=0"`
	ReportDate  string           `json:"report_date" validate:"required,datetime=2006-01-02"`
	Weight      *decimal.Decimal `json:"weight" validate:"required"`
	Height      *decimal.Decimal `json:"height" validate:"required"`
}

type CreatePrescriptionRequest struct {
	ReportID     int64  `json:"report_id" validate:"required,gt=0"`
	PhysicianID  int64  `json:"physician_id" validate:"required,gt=0"`
	Dosage       string `json:"dosage" validate:"required"`
	Frequency    string `json:"frequency" validate:"required"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Instructions string `json:"instructions" validate:"required"`
}

type CreateMedicalHistoryRequest struct {
	PatientID         int64  `json:"patient_id" validate:"required,gt=0"`
	HealthCondition   string `json:"health_condition" validate:"required"`
	DiagnosisDate     string `json:"diagnosis_date" validate:"required,datetime=2006-01-02"`
	TreatmentReceived string `json:"treatment_received" validate:"required"`
	Outcome           string `json:"outcome" validate:"required"`
	OngoingCare       *bool  `json:"ongoing_care" validate:"required"`
}

// UpdateMedicalHistoryRequest changes only the fields present in the body.
type UpdateMedicalHistoryRequest struct {
	HistoryID         int64   `json:"history_id" validate:"required,gt=0"`
	HealthCondition   *string `json:"health_condition"`
	DiagnosisDate     *string `json:"diagnosis_date" validate:"omitempty,datetime=2006-01-02"`
	TreatmentReceived *string `json:"treatment_received"`
	Outcome           *string `json:"outcome"`
	OngoingCare       *bool   `json:"ongoing_care"`
}
