package entity

import "github.com/shopspring/decimal"

// Physician represents the physician domain row a physician account references
type Physician struct {
	ID          int64  `json:"physician_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Department  string `json:"department"`
}

func (Physician) TableName() string {
	return "physician"
}

// WorksAt links a physician to a clinic, optionally with a weekly schedule.
type WorksAt struct {
	PhysicianID int64            `json:"physician_id"`
	ClinicID    int64            `json:"clinic_id"`
	ScheduleID  *int64           `json:"schedule_id,omitempty"`
	DateJoined  string           `json:"date_joined,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (WorksAt) TableName() string {
	return "works_at"
}
