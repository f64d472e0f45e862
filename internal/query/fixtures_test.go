package query

import (
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func costOf(v float64) *float64 { return &v }

func intOf(v int) *int { return &v }

func fixtureStore() *store.Store {
	vehicles := []models.Vehicle{
		{ID: "v1", Brand: "Toyota", Model: "Camry", LicensePlate: "ABC-1234", OwnerName: "張三", CustomerPhone: "0911"},
		{ID: "v2", Brand: "Honda", Model: "Civic", LicensePlate: "XYZ-5678", OwnerName: "李四", CustomerPhone: "0922"},
		{ID: "v3", Brand: "Audi", Model: "A4", LicensePlate: "QQQ-0001", OwnerName: "張三", CustomerPhone: "0911"},
	}
	items := []models.MaintenanceItem{
		{ID: "oil", Name: "機油更換", Category: models.CategoryEngine},
		{ID: "plug", Name: "火星塞更換", Category: models.CategoryEngine},
		{ID: "pads", Name: "煞車來令片更換", Category: models.CategoryBrake},
		{ID: "air", Name: "空氣濾清器更換", Category: models.CategoryFilter},
	}
	records := []models.MaintenanceRecord{
		{ID: "r1", VehicleID: "v1", ItemID: "oil", Date: date("2023-01-15"), Mileage: 40000, Technician: "陳志明", Cost: costOf(1000)},
		{ID: "r2", VehicleID: "v2", ItemID: "pads", Date: date("2023-02-20"), Mileage: 28000, Technician: "王大明", Cost: nil, Notes: "Front pads worn"},
		{ID: "r3", VehicleID: "v1", ItemID: "air", Date: date("2022-12-31"), Mileage: 39000, Cost: costOf(500)},
		{ID: "r4", VehicleID: "v3", ItemID: "plug", Date: date("2023-02-01"), Mileage: 15000, Technician: "陳志明", Cost: costOf(2500)},
		{ID: "r5", VehicleID: "v2", ItemID: "air", Date: date("2023-03-05"), Mileage: 29000, Technician: "林建國", Cost: costOf(300)},
	}
	return store.New(store.Seed{Vehicles: vehicles, Items: items, Records: records})
}

func fixtureDetails() []RecordDetail {
	s := fixtureStore()
	details, _ := Join(s.Records.All(), s)
	return details
}

func detailIDs(details []RecordDetail) []string {
	out := make([]string, 0, len(details))
	for _, d := range details {
		out = append(out, d.ID)
	}
	return out
}
