package entity

import "github.com/shopspring/decimal"

type HealthReport struct {
	ID          int64           `json:"report_id"`
	PhysicianID int64           `json:"physician_id"`
	PatientID   int64           `json:"patient_id"`
	ReportDate  string          `json:"report_date"`
	Weight      decimal.Decimal `json:"weight"`
	Height      decimal.Decimal `json:"height"`
}

func (HealthReport) TableName() string {
	return "health_report"
}

type Prescription struct {
	ID           int64  `json:"prescription_id"`
	ReportID     int64  `json:"report_id"`
	PhysicianID  int64  `json:"physician_id"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Instructions string `json:"instructions"`
}

func (Prescription) TableName() string {
	return "prescription"
}

type MedicalHistory struct {
	ID                int64  `json:"history_id"`
	PatientID         int64  `json:"patient_id"`
	HealthCondition   string `json:"health_condition"`
	DiagnosisDate     string `json:"diagnosis_date"`
	TreatmentReceived string `json:"treatment_received"`
	Outcome           string `json:"outcome"`
	OngoingCare       bool   `json:"ongoing_care"`
}

func (MedicalHistory) TableName() string {
	return "medical_history"
}

// MedicalHistoryUpdate carries only the columns a client chose to change.
type MedicalHistoryUpdate struct {
	HealthCondition   *string
	DiagnosisDate     *string
	TreatmentReceived *string
	Outcome           *string
	OngoingCare       *bool
}

// Empty reports whether no column was supplied.
func (u MedicalHistoryUpdate) Empty() bool {
	return u.HealthCondition == nil && u.DiagnosisDate == nil && u.TreatmentReceived == nil &&
		u.Outcome == nil && u.OngoingCare == nil
}
