package entity

import "time"

// User is a login account. ReferenceID points into the patient or physician
// table depending on Role; admins have no reference.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"user_type"`
	ReferenceID  *int64     `json:"reference_id"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (User) TableName() string {
	return "user_account"
}
