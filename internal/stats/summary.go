package stats

import (
	"github.com/shopspring/decimal"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Summary holds the top-line counters of a record set.
type Summary struct {
	TotalRecords      int     `json:"totalRecords"`
	TotalCost         float64 `json:"totalCost"`
	AvgCost           float64 `json:"avgCost"`
	UniqueVehicles    int     `json:"uniqueVehicles"`
	UniqueTechnicians int     `json:"uniqueTechnicians"`
}

// Summarize computes the counters of records. Missing cost counts as 0.
func Summarize(records []models.MaintenanceRecord) Summary {
	total := decimal.Zero
	vehicles := make(map[string]struct{})
	technicians := make(map[string]struct{})
	for _, r := range records {
		total = total.Add(recordCost(r))
		vehicles[r.VehicleID] = struct{}{}
		if r.Technician != "" {
			technicians[r.Technician] = struct{}{}
		}
	}

	s := Summary{
		TotalRecords:      len(records),
		TotalCost:         total.InexactFloat64(),
		UniqueVehicles:    len(vehicles),
		UniqueTechnicians: len(technicians),
	}
	if s.TotalRecords > 0 {
		s.AvgCost = total.Div(decimal.NewFromInt(int64(s.TotalRecords))).InexactFloat64()
	}
	return s
}
