package dto

import "time"

// Request DTOs

type LoginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RegisterPatientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
	DateOfBirth string `json:"dob" validate:"required,datetime=2006-01-02"`
	BloodType   string `json:"blood_type" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address     string `json:"address" validate:"required"`
}

type RegisterPhysicianRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required"`
	PhoneNumber   string `json:"phone_number" validate:"required,max=32"`
	Department    string `json:"department" validate:"required"`
	ClinicName    string `json:"clinic_name" validate:"required"`
	ClinicAddress string `json:"clinic_address" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID          int64          `json:"id"`
	Email       string         `json:"email"`
	UserType    string         `json:"user_type"`
	ReferenceID *int64         `json:"reference_id"`
	LastLogin   *time.Time     `json:"last_login,omitempty"`
	Profile     map[string]any `json:"profile,omitempty"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresIn int64        `json:"expires_in"`
	// Token is written to the session cookie and never serialized.
	Token string `json:"-"`
}

type RegisterResponse struct {
	UserID      int64 `json:"user_id"`
	ReferenceID int64 `json:"reference_id"`
}
