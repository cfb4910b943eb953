package entity

// Appointment represents a booked slot between a patient and a physician at a clinic
type Appointment struct {
	ID              int64  `json:"appointment_id"`
	PatientID       int64  `json:"patient_id"`
	PhysicianID     int64  `json:"physician_id"`
	ClinicID        int64  `json:"clinic_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// ProcedureBookAppointment checks physician/clinic linkage and slot
// availability before inserting, all inside the database.
const ProcedureBookAppointment = "sp_book_appointment"

// AppointmentDetail is an appointment as shown to the patient who owns it.
type AppointmentDetail struct {
	ID              int64  `json:"appointment_id"`
	ClinicName      string `json:"clinic_name"`
	ClinicAddress   string `json:"clinic_address"`
	PhysicianName   string `json:"physician_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}
