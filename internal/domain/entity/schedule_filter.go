package entity

// SlotFilter selects booked appointment slots for one physician at one clinic.
// Date is optional (YYYY-MM-DD).
type SlotFilter struct {
	PhysicianID int64
	ClinicID    int64
	Date        string
}

// BookedSlot is a row of the booked time slot view.
type BookedSlot struct {
	PhysicianID     int64  `json:"physician_id"`
	ClinicID        int64  `json:"clinic_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages rounds up.
func (p Page) TotalPages(total int64) int64 {
	if p.Size <= 0 {
		return 0
	}
	return (total + int64(p.Size) - 1) / int64(p.Size)
}
