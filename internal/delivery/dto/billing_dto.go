package dto

import "github.com/shopspring/decimal"

type CreateBillingRequest struct {
	PatientID     int64            `json:"patient_id" validate:"required,gt=0"`
	AppointmentID *int64           `json:"appointment_id"`
	InsuranceID   *int64           `json:"insurance_id"`
	TotalAmount   *decimal.Decimal `json:"total_amount" validate:"required"`
	PaymentStatus string           `json:"payment_status" validate:"omitempty,oneof=Pending Paid Overdue"`
	BillingDate   string           `json:"billing_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string           `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type PayBillRequest struct {
	BillingID int64 `json:"billing_id" validate:"required,gt=0"`
}
