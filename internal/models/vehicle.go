package models

import (
	"time"
)

// Vehicle represents a customer vehicle serviced by the workshop.
type Vehicle struct {
	ID              string    `bson:"_id" json:"id"`
	Brand           string    `bson:"brand" json:"brand" validate:"required"`
	Model           string    `bson:"model" json:"model" validate:"required"`
	EngineCode      string    `bson:"engine_code" json:"engine_code"`
	LicensePlate    string    `bson:"license_plate" json:"license_plate" validate:"required"`
	OwnerName       string    `bson:"owner_name" json:"owner_name" validate:"required"`
	CustomerPhone   string    `bson:"customer_phone" json:"customer_phone" validate:"required"`
	ManufactureYear int       `bson:"manufacture_year" json:"manufacture_year" validate:"gte=1900,lte=2100"`
	CurrentMileage  int       `bson:"current_mileage" json:"current_mileage" validate:"gte=0"` // in kilometers
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// EntityID returns the vehicle id.
func (v Vehicle) EntityID() string { return v.ID }

// Label is the "{brand} {model}" text used for display and sorting.
func (v Vehicle) Label() string {
	return v.Brand + " " + v.Model
}
