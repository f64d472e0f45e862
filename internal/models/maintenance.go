package models

import (
	"time"
)

// MaintenanceRecord is a single maintenance event linking one vehicle to one item.
type MaintenanceRecord struct {
	ID                     string    `json:"id" bson:"_id"`
	VehicleID              string    `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	ItemID                 string    `json:"item_id" bson:"item_id" validate:"required"`
	Date                   time.Time `json:"date" bson:"date" validate:"required"`
	Mileage                int       `json:"mileage" bson:"mileage" validate:"gte=0"` // odometer at service time, in kilometers
	Technician             string    `json:"technician,omitempty" bson:"technician,omitempty"`
	Notes                  string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Cost                   *float64  `json:"cost,omitempty" bson:"cost,omitempty" validate:"omitempty,gte=0"`
	NextMaintenanceMileage *int      `json:"next_maintenance_mileage,omitempty" bson:"next_maintenance_mileage,omitempty" validate:"omitempty,gte=0"`
	CreatedAt              time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" bson:"updated_at"`
}

// EntityID returns the record id.
func (r MaintenanceRecord) EntityID() string { return r.ID }

// CostOrZero returns the record cost, treating a missing cost as 0.
func (r MaintenanceRecord) CostOrZero() float64 {
	if r.Cost == nil {
		return 0
	}
	return *r.Cost
}
