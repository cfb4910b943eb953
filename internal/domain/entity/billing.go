package entity

import "github.com/shopspring/decimal"

// PaymentStatus represents the state of a bill
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// Billing represents a bill issued to a patient
type Billing struct {
	ID            int64           `json:"billing_id"`
	PatientID     int64           `json:"patient_id"`
	AppointmentID *int64          `json:"appointment_id,omitempty"`
	InsuranceID   *int64          `json:"insurance_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	BillingDate   string          `json:"billing_date"`
	DueDate       string          `json:"due_date"`
}

func (Billing) TableName() string {
	return "billing"
}

// IsPaid checks if the bill is settled
func (b *Billing) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}
