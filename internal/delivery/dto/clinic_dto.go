package dto

import "github.com/shopspring/decimal"

type CreateClinicRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type CreateWorksAtRequest struct {
	ClinicID    int64            `json:"clinic_id" validate:"required,gt=0"`
	PhysicianID int64            `json:"physician_id" validate:"required,gt=0"`
	ScheduleID  *int64           `json:"schedule_id"`
	DateJoined  string           `json:"date_joined" validate:"omitempty,datetime=2006-01-02"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
}
