// Package query filters, sorts and searches maintenance records and the
// entities they refer to. Every function is pure: inputs are never mutated.
package query

import (
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Resolver looks up the entities a record refers to.
type Resolver interface {
	Vehicle(id string) (models.Vehicle, bool)
	Item(id string) (models.MaintenanceItem, bool)
}

// RecordDetail is a record together with its resolved vehicle and item.
type RecordDetail struct {
	models.MaintenanceRecord
	Vehicle models.Vehicle         `json:"vehicle"`
	Item    models.MaintenanceItem `json:"item"`
}

// Join resolves the vehicle and item of every record. Records with a dangling
// reference are left out and their ids returned in dangling.
func Join(records []models.MaintenanceRecord, resolver Resolver) (details []RecordDetail, dangling []string) {
	details = make([]RecordDetail, 0, len(records))
	for _, r := range records {
		vehicle, ok := resolver.Vehicle(r.VehicleID)
		if !ok {
			dangling = append(dangling, r.ID)
			continue
		}
		item, ok := resolver.Item(r.ItemID)
		if !ok {
			dangling = append(dangling, r.ID)
			continue
		}
		details = append(details, RecordDetail{MaintenanceRecord: r, Vehicle: vehicle, Item: item})
	}
	return details, dangling
}

// Records strips the resolved entities again.
func Records(details []RecordDetail) []models.MaintenanceRecord {
	out := make([]models.MaintenanceRecord, len(details))
	for i, d := range details {
		out[i] = d.MaintenanceRecord
	}
	return out
}
