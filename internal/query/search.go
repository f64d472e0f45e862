package query

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// SearchVehicles matches plate, brand, model and owner case-insensitively and the
// phone number as a plain substring. A blank query returns every vehicle.
func SearchVehicles(vehicles []models.Vehicle, q string) []models.Vehicle {
	q = strings.TrimSpace(q)
	if q == "" {
		return slices.Clone(vehicles)
	}
	lower := strings.ToLower(q)
	out := make([]models.Vehicle, 0)
	for _, v := range vehicles {
		if containsFold(v.LicensePlate, lower) ||
			containsFold(v.Brand, lower) ||
			containsFold(v.Model, lower) ||
			containsFold(v.OwnerName, lower) ||
			strings.Contains(v.CustomerPhone, q) {
			out = append(out, v)
		}
	}
	return out
}

// SearchTechnicians matches name, position, email and specialties case-insensitively
// and the phone number as a plain substring.
func SearchTechnicians(techs []models.Technician, q string) []models.Technician {
	q = strings.TrimSpace(q)
	if q == "" {
		return slices.Clone(techs)
	}
	lower := strings.ToLower(q)
	out := make([]models.Technician, 0)
	for _, t := range techs {
		if containsFold(t.Name, lower) ||
			strings.Contains(t.Phone, q) ||
			containsFold(t.Position, lower) ||
			containsFold(t.Email, lower) ||
			slices.ContainsFunc(t.Specialties, func(s string) bool { return containsFold(s, lower) }) {
			out = append(out, t)
		}
	}
	return out
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// OwnerGroup collects the vehicles sharing an owner name and phone.
type OwnerGroup struct {
	OwnerName         string           `json:"owner_name"`
	CustomerPhone     string           `json:"customer_phone"`
	Vehicles          []models.Vehicle `json:"vehicles"`
	TotalVehicles     int              `json:"total_vehicles"`
	TotalMaintenance  int              `json:"total_maintenance"`
	LatestMaintenance *time.Time       `json:"latest_maintenance,omitempty"`
}

type ownerKey struct{ name, phone string }

// GroupByOwner groups vehicles by owner. Maintenance totals cover every vehicle of
// the owner in fleet, not just the ones in vehicles. Groups are ordered by vehicle
// count, largest first.
func GroupByOwner(vehicles, fleet []models.Vehicle, records []models.MaintenanceRecord) []OwnerGroup {
	index := make(map[ownerKey]int)
	groups := make([]OwnerGroup, 0)
	for _, v := range vehicles {
		key := ownerKey{v.OwnerName, v.CustomerPhone}
		if i, ok := index[key]; ok {
			groups[i].Vehicles = append(groups[i].Vehicles, v)
			groups[i].TotalVehicles++
			continue
		}
		owned := make(map[string]bool)
		for _, fv := range fleet {
			if fv.OwnerName == v.OwnerName && fv.CustomerPhone == v.CustomerPhone {
				owned[fv.ID] = true
			}
		}
		group := OwnerGroup{
			OwnerName:     v.OwnerName,
			CustomerPhone: v.CustomerPhone,
			Vehicles:      []models.Vehicle{v},
			TotalVehicles: 1,
		}
		for _, r := range records {
			if !owned[r.VehicleID] {
				continue
			}
			group.TotalMaintenance++
			if group.LatestMaintenance == nil || r.Date.After(*group.LatestMaintenance) {
				d := r.Date
				group.LatestMaintenance = &d
			}
		}
		index[key] = len(groups)
		groups = append(groups, group)
	}
	slices.SortStableFunc(groups, func(a, b OwnerGroup) int {
		return cmp.Compare(b.TotalVehicles, a.TotalVehicles)
	})
	return groups
}

// MultiVehicleOwners keeps the groups owning more than one vehicle.
func MultiVehicleOwners(groups []OwnerGroup) []OwnerGroup {
	out := make([]OwnerGroup, 0)
	for _, g := range groups {
		if g.TotalVehicles > 1 {
			out = append(out, g)
		}
	}
	return out
}

// LatestRecord returns the most recent record of a vehicle.
func LatestRecord(vehicleID string, records []models.MaintenanceRecord) (models.MaintenanceRecord, bool) {
	var latest models.MaintenanceRecord
	found := false
	for _, r := range records {
		if r.VehicleID != vehicleID {
			continue
		}
		if !found || r.Date.After(latest.Date) {
			latest = r
			found = true
		}
	}
	return latest, found
}

// RecordTechnicians lists the distinct technician names found on records, in first-seen order.
func RecordTechnicians(records []models.MaintenanceRecord) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range records {
		if r.Technician == "" || seen[r.Technician] {
			continue
		}
		seen[r.Technician] = true
		out = append(out, r.Technician)
	}
	return out
}

// ItemGroup is one category of the maintenance catalog.
type ItemGroup struct {
	Category models.Category          `json:"category"`
	Label    string                   `json:"label"`
	Items    []models.MaintenanceItem `json:"items"`
}

// GroupItemsByCategory groups the catalog in category enumeration order.
// Empty categories are kept so every category is listed.
func GroupItemsByCategory(items []models.MaintenanceItem) []ItemGroup {
	groups := make([]ItemGroup, 0, len(models.Categories))
	for _, c := range models.Categories {
		group := ItemGroup{Category: c, Label: c.Label(), Items: []models.MaintenanceItem{}}
		for _, item := range items {
			if item.Category == c {
				group.Items = append(group.Items, item)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// ItemsInCategory filters the catalog by category.
func ItemsInCategory(items []models.MaintenanceItem, c models.Category) []models.MaintenanceItem {
	out := make([]models.MaintenanceItem, 0)
	for _, item := range items {
		if item.Category == c {
			out = append(out, item)
		}
	}
	return out
}

// TechnicianSummary holds the staff counters shown above the technician list.
type TechnicianSummary struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Senior       int `json:"senior"`         // active technicians with a 資深 position
	AvgWorkYears int `json:"avg_work_years"` // rounded mean over active technicians, 0 without any
}

// WorkYears counts calendar years between the hire date and now.
func WorkYears(hireDate, now time.Time) int {
	return now.Year() - hireDate.Year()
}

// SummarizeTechnicians computes the staff counters at now.
func SummarizeTechnicians(techs []models.Technician, now time.Time) TechnicianSummary {
	summary := TechnicianSummary{Total: len(techs)}
	years := 0
	for _, t := range techs {
		if !t.IsActive() {
			continue
		}
		summary.Active++
		years += WorkYears(t.HireDate, now)
		if strings.Contains(t.Position, "資深") {
			summary.Senior++
		}
	}
	if summary.Active > 0 {
		summary.AvgWorkYears = int(math.Round(float64(years) / float64(summary.Active)))
	}
	return summary
}
