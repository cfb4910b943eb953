package dto

// BookAppointmentRequest books a slot. For patients PatientID is ignored and
// taken from the session.
type BookAppointmentRequest struct {
	PatientID       int64  `json:"patient_id"`
	PhysicianID     int64  `json:"physician_id" validate:"required,gt=0"`
	ClinicID        int64  `json:"clinic_id" validate:"required,gt=0"`
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
}

type BookedSlotsQuery struct {
	PhysicianID int64  `json:"physician_id" validate:"required,gt=0"`
	ClinicID    int64  `json:"clinic_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
