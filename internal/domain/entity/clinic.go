package entity

// Clinic is unique by (name, address).
type Clinic struct {
	ID      int64  `json:"clinic_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (Clinic) TableName() string {
	return "clinic"
}
