package query

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

// SortField names the record attribute to order by.
type SortField string

const (
	SortByDate    SortField = "date"
	SortByMileage SortField = "mileage"
	SortByCost    SortField = "cost"
	SortByVehicle SortField = "vehicle"
)

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

var (
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// ParseSortField parses a sort field name. An empty string selects SortByDate.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByDate, nil
	case SortByDate, SortByMileage, SortByCost, SortByVehicle:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortField, s)
}

// ParseDirection parses asc/desc. An empty string selects Descending.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Descending, nil
	case Ascending, Descending:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Sort returns a new slice ordered by field. Ties keep their input order in both directions.
func Sort(details []RecordDetail, field SortField, dir Direction) []RecordDetail {
	out := slices.Clone(details)
	compare := comparator(field)
	if dir == Descending {
		asc := compare
		compare = func(a, b RecordDetail) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(field SortField) func(a, b RecordDetail) int {
	switch field {
	case SortByMileage:
		return func(a, b RecordDetail) int { return cmp.Compare(a.Mileage, b.Mileage) }
	case SortByCost:
		return func(a, b RecordDetail) int { return cmp.Compare(a.CostOrZero(), b.CostOrZero()) }
	case SortByVehicle:
		return func(a, b RecordDetail) int { return strings.Compare(a.Vehicle.Label(), b.Vehicle.Label()) }
	default:
		return func(a, b RecordDetail) int { return a.Date.Compare(b.Date) }
	}
}

// History returns the records of one vehicle joined with their items, newest first.
// Records whose item no longer resolves are skipped.
func History(vehicleID string, records []models.MaintenanceRecord, resolver Resolver) (models.Vehicle, []RecordDetail, error) {
	vehicle, ok := resolver.Vehicle(vehicleID)
	if !ok {
		return models.Vehicle{}, nil, fmt.Errorf("vehicle %s: %w", vehicleID, store.ErrNotFound)
	}
	own := make([]models.MaintenanceRecord, 0)
	for _, r := range records {
		if r.VehicleID == vehicleID {
			own = append(own, r)
		}
	}
	details, _ := Join(own, resolver)
	return vehicle, Sort(details, SortByDate, Descending), nil
}
