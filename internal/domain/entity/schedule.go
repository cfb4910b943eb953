package entity

// Schedule is a physician's weekly availability at a clinic. Each day holds a
// free-form hours string such as "09:00-17:00", empty when unavailable.
type Schedule struct {
	ID        int64  `json:"schedule_id"`
	Monday    string `json:"monday,omitempty"`
	Tuesday   string `json:"tuesday,omitempty"`
	Wednesday string `json:"wednesday,omitempty"`
	Thursday  string `json:"thursday,omitempty"`
	Friday    string `json:"friday,omitempty"`
	Saturday  string `json:"saturday,omitempty"`
	Sunday    string `json:"sunday,omitempty"`
}

func (Schedule) TableName() string {
	return "schedule"
}

// PhysicianListing is one row of the paginated physician directory: the
// physician, where they work, and when.
type PhysicianListing struct {
	Physician
	ClinicID      *int64    `json:"clinic_id"`
	ClinicName    string    `json:"clinic,omitempty"`
	ClinicAddress string    `json:"cl_address,omitempty"`
	Schedule      *Schedule `json:"schedule,omitempty"`
}
