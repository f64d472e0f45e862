package models

import (
	"time"
)

// TechnicianStatus represents the employment status of a technician
type TechnicianStatus string

const (
	TechnicianActive   TechnicianStatus = "active"
	TechnicianInactive TechnicianStatus = "inactive"
)

// Technician represents a workshop staff member. Records refer to technicians by name.
type Technician struct {
	ID          string           `bson:"_id" json:"id"`
	Name        string           `bson:"name" json:"name" validate:"required"`
	Phone       string           `bson:"phone" json:"phone" validate:"required"`
	Email       string           `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Position    string           `bson:"position" json:"position"`
	Specialties []string         `bson:"specialties" json:"specialties"`
	HireDate    time.Time        `bson:"hire_date" json:"hire_date"`
	Status      TechnicianStatus `bson:"status" json:"status" validate:"oneof=active inactive"`
	Notes       string           `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `bson:"updated_at" json:"updated_at"`
}

// EntityID returns the technician id.
func (t Technician) EntityID() string { return t.ID }

// IsActive reports whether the technician is currently employed
func (t Technician) IsActive() bool {
	return t.Status == TechnicianActive
}
