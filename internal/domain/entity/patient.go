package entity

// Patient represents the patient domain row a patient account references
type Patient struct {
	ID          int64  `json:"patient_id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dob"`
	BloodType   string `json:"blood_type"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Email       string `json:"email,omitempty"`
}

func (Patient) TableName() string {
	return "patient"
}

// Blood type constants
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
