package dto

// CreatePatientRequest adds a patient record without a login account.
type CreatePatientRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	DateOfBirth string `json:"dob" validate:"required,datetime=2006-01-02"`
	BloodType   string `json:"blood_type" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
	Address     string `json:"address" validate:"required"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}
