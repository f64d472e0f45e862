package query

import (
	"slices"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// DateRange bounds a record date by calendar day. Both bounds are inclusive and optional.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// CostRange bounds a record cost. A missing cost compares as 0.
type CostRange struct {
	Min *float64
	Max *float64
}

// MileageRange bounds the odometer reading of a record.
type MileageRange struct {
	Min *int
	Max *int
}

// FilterSpec is a conjunction of filter dimensions. Zero-valued dimensions are inactive.
type FilterSpec struct {
	Query        string
	Categories   []models.Category
	ItemIDs      []string
	Technicians  []string
	VehicleIDs   []string
	DateRange    DateRange
	CostRange    CostRange
	MileageRange MileageRange
}

// IsZero reports whether no dimension is active.
func (s FilterSpec) IsZero() bool {
	return strings.TrimSpace(s.Query) == "" &&
		len(s.Categories) == 0 &&
		len(s.ItemIDs) == 0 &&
		len(s.Technicians) == 0 &&
		len(s.VehicleIDs) == 0 &&
		s.DateRange == (DateRange{}) &&
		s.CostRange == (CostRange{}) &&
		s.MileageRange == (MileageRange{})
}

// Filter returns the records matching every active dimension of spec, in input order.
func Filter(details []RecordDetail, spec FilterSpec) []RecordDetail {
	match := spec.compile()
	out := make([]RecordDetail, 0, len(details))
	for _, d := range details {
		if match(d) {
			out = append(out, d)
		}
	}
	return out
}

type predicate func(RecordDetail) bool

func (s FilterSpec) compile() predicate {
	var preds []predicate

	if q := strings.ToLower(strings.TrimSpace(s.Query)); q != "" {
		preds = append(preds, func(d RecordDetail) bool { return matchesText(d, q) })
	}
	if len(s.Categories) > 0 {
		preds = append(preds, func(d RecordDetail) bool { return slices.Contains(s.Categories, d.Item.Category) })
	}
	if len(s.ItemIDs) > 0 {
		preds = append(preds, func(d RecordDetail) bool { return slices.Contains(s.ItemIDs, d.ItemID) })
	}
	if len(s.Technicians) > 0 {
		preds = append(preds, func(d RecordDetail) bool {
			return d.Technician != "" && slices.Contains(s.Technicians, d.Technician)
		})
	}
	if len(s.VehicleIDs) > 0 {
		preds = append(preds, func(d RecordDetail) bool { return slices.Contains(s.VehicleIDs, d.VehicleID) })
	}
	if start := s.DateRange.Start; start != nil {
		from := startOfDay(*start)
		preds = append(preds, func(d RecordDetail) bool { return !d.Date.Before(from) })
	}
	if end := s.DateRange.End; end != nil {
		until := startOfDay(*end).AddDate(0, 0, 1)
		preds = append(preds, func(d RecordDetail) bool { return d.Date.Before(until) })
	}
	if lo := s.CostRange.Min; lo != nil {
		preds = append(preds, func(d RecordDetail) bool { return d.CostOrZero() >= *lo })
	}
	if hi := s.CostRange.Max; hi != nil {
		preds = append(preds, func(d RecordDetail) bool { return d.CostOrZero() <= *hi })
	}
	if lo := s.MileageRange.Min; lo != nil {
		preds = append(preds, func(d RecordDetail) bool { return d.Mileage >= *lo })
	}
	if hi := s.MileageRange.Max; hi != nil {
		preds = append(preds, func(d RecordDetail) bool { return d.Mileage <= *hi })
	}

	return func(d RecordDetail) bool {
		for _, p := range preds {
			if !p(d) {
				return false
			}
		}
		return true
	}
}

// matchesText expects q already lower-cased.
func matchesText(d RecordDetail, q string) bool {
	fields := []string{
		d.Vehicle.LicensePlate,
		d.Vehicle.Brand,
		d.Vehicle.Model,
		d.Vehicle.OwnerName,
		d.Item.Name,
		d.Technician,
		d.Notes,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
