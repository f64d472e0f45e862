package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Store exclusively owns the four entity collections for the process lifetime.
// Relationships between entities are by-id lookups only.
type Store struct {
	Vehicles    *Table[models.Vehicle]
	Items       *Table[models.MaintenanceItem]
	Records     *Table[models.MaintenanceRecord]
	Technicians *Table[models.Technician]

	// serialises writes that check or touch more than one table
	writeMu sync.Mutex
}

// Seed is the initial content of a Store.
type Seed struct {
	Vehicles    []models.Vehicle
	Items       []models.MaintenanceItem
	Records     []models.MaintenanceRecord
	Technicians []models.Technician
}

// New creates a store populated with seed.
func New(seed Seed) *Store {
	return &Store{
		Vehicles:    NewTable(seed.Vehicles),
		Items:       NewTable(seed.Items),
		Records:     NewTable(seed.Records),
		Technicians: NewTable(seed.Technicians),
	}
}

// Vehicle resolves a vehicle by id.
func (s *Store) Vehicle(id string) (models.Vehicle, bool) {
	return s.Vehicles.Get(id)
}

// Item resolves a maintenance item by id.
func (s *Store) Item(id string) (models.MaintenanceItem, bool) {
	return s.Items.Get(id)
}

// InsertVehicle adds a vehicle, rejecting a license plate that is already registered.
func (s *Store) InsertVehicle(v models.Vehicle) ([]models.Vehicle, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.plateTaken(v.LicensePlate, v.ID) {
		return nil, fmt.Errorf("insert vehicle %s: %w", v.LicensePlate, ErrDuplicatePlate)
	}
	return s.Vehicles.Insert(v)
}

// UpdateVehicle replaces a vehicle in place.
func (s *Store) UpdateVehicle(v models.Vehicle) ([]models.Vehicle, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.plateTaken(v.LicensePlate, v.ID) {
		return nil, fmt.Errorf("update vehicle %s: %w", v.LicensePlate, ErrDuplicatePlate)
	}
	return s.Vehicles.Update(v)
}

// RemoveVehicle deletes a vehicle together with its maintenance records.
// It returns the remaining vehicles and the number of records removed.
func (s *Store) RemoveVehicle(id string) ([]models.Vehicle, int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	vehicles, err := s.Vehicles.Remove(id)
	if err != nil {
		return nil, 0, err
	}
	removed := s.Records.RemoveWhere(func(r models.MaintenanceRecord) bool {
		return r.VehicleID == id
	})
	return vehicles, removed, nil
}

// raiseMileage moves the vehicle odometer forward to mileage. Lower readings are
// ignored. Callers hold writeMu.
func (s *Store) raiseMileage(vehicleID string, mileage int, now time.Time) (bool, error) {
	v, ok := s.Vehicles.Get(vehicleID)
	if !ok {
		return false, fmt.Errorf("vehicle %s: %w", vehicleID, ErrNotFound)
	}
	if mileage <= v.CurrentMileage {
		return false, nil
	}
	v.CurrentMileage = mileage
	v.UpdatedAt = now
	if _, err := s.Vehicles.Update(v); err != nil {
		return false, err
	}
	return true, nil
}

// InsertRecords adds records for one vehicle and raises its odometer to the highest
// record mileage. Nothing is written unless the vehicle and every item resolve and
// every id is free. It reports whether the odometer moved.
func (s *Store) InsertRecords(vehicleID string, recs []models.MaintenanceRecord, now time.Time) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, ok := s.Vehicles.Get(vehicleID); !ok {
		return false, fmt.Errorf("insert records for vehicle %s: %w", vehicleID, ErrNotFound)
	}
	mileage := 0
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		if r.VehicleID != vehicleID {
			return false, fmt.Errorf("record %s belongs to vehicle %s, not %s", r.ID, r.VehicleID, vehicleID)
		}
		if _, ok := s.Items.Get(r.ItemID); !ok {
			return false, fmt.Errorf("record %s item %s: %w", r.ID, r.ItemID, ErrUnknownItem)
		}
		if _, ok := s.Records.Get(r.ID); ok || seen[r.ID] {
			return false, fmt.Errorf("insert record %s: %w", r.ID, ErrDuplicateID)
		}
		seen[r.ID] = true
		mileage = max(mileage, r.Mileage)
	}
	for _, r := range recs {
		if _, err := s.Records.Insert(r); err != nil {
			return false, err
		}
	}
	return s.raiseMileage(vehicleID, mileage, now)
}

// UpdateRecord replaces a record after checking that its vehicle and item still
// resolve. It returns the resolved vehicle and item.
func (s *Store) UpdateRecord(rec models.MaintenanceRecord) (models.Vehicle, models.MaintenanceItem, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	vehicle, ok := s.Vehicles.Get(rec.VehicleID)
	if !ok {
		return models.Vehicle{}, models.MaintenanceItem{}, fmt.Errorf("vehicle %s of record %s: %w", rec.VehicleID, rec.ID, ErrNotFound)
	}
	item, ok := s.Items.Get(rec.ItemID)
	if !ok {
		return models.Vehicle{}, models.MaintenanceItem{}, fmt.Errorf("record %s item %s: %w", rec.ID, rec.ItemID, ErrUnknownItem)
	}
	if _, err := s.Records.Update(rec); err != nil {
		return models.Vehicle{}, models.MaintenanceItem{}, err
	}
	return vehicle, item, nil
}

// RemoveItem deletes a catalog item unless a record still refers to it.
func (s *Store) RemoveItem(id string) ([]models.MaintenanceItem, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for _, r := range s.Records.All() {
		if r.ItemID == id {
			return nil, fmt.Errorf("remove item %s: %w", id, ErrItemInUse)
		}
	}
	return s.Items.Remove(id)
}

func (s *Store) plateTaken(plate, exceptID string) bool {
	plate = strings.TrimSpace(plate)
	for _, v := range s.Vehicles.All() {
		if v.ID != exceptID && strings.EqualFold(strings.TrimSpace(v.LicensePlate), plate) {
			return true
		}
	}
	return false
}
