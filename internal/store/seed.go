package store

import (
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func cost(v float64) *float64 { return &v }

func km(v int) *int { return &v }

// DefaultItems is the reference maintenance catalog.
func DefaultItems() []models.MaintenanceItem {
	return []models.MaintenanceItem{
		{ID: "1", Name: "機油更換", Category: models.CategoryEngine, Description: "更換引擎機油"},
		{ID: "2", Name: "火星塞更換", Category: models.CategoryEngine, Description: "更換火星塞"},
		{ID: "3", Name: "正時皮帶更換", Category: models.CategoryEngine},
		{ID: "4", Name: "變速箱油更換", Category: models.CategoryTransmission, Description: "更換自動變速箱油"},
		{ID: "5", Name: "離合器檢查", Category: models.CategoryTransmission},
		{ID: "6", Name: "水箱精更換", Category: models.CategoryCooling, Description: "更換冷卻液"},
		{ID: "7", Name: "水幫浦檢查", Category: models.CategoryCooling},
		{ID: "8", Name: "電瓶更換", Category: models.CategoryElectrical, Description: "更換汽車電瓶"},
		{ID: "9", Name: "發電機檢查", Category: models.CategoryElectrical},
		{ID: "10", Name: "避震器檢查", Category: models.CategorySuspension},
		{ID: "11", Name: "四輪定位", Category: models.CategorySuspension},
		{ID: "12", Name: "煞車來令片更換", Category: models.CategoryBrake, Description: "更換前後煞車來令片"},
		{ID: "13", Name: "煞車油更換", Category: models.CategoryBrake},
		{ID: "14", Name: "空氣濾清器更換", Category: models.CategoryFilter},
		{ID: "15", Name: "機油濾清器更換", Category: models.CategoryFilter},
		{ID: "16", Name: "冷氣濾網更換", Category: models.CategoryFilter},
	}
}

// DefaultTechnicians is the initial workshop staff.
func DefaultTechnicians() []models.Technician {
	return []models.Technician{
		{
			ID: "1", Name: "陳志明", Phone: "0912-345-678", Email: "chen@example.com",
			Position: "資深技師", Specialties: []string{"引擎", "傳動"},
			HireDate: day("2018-03-15"), Status: models.TechnicianActive,
			Notes: "專精進口車引擎維修，曾獲技師認證獎項",
			CreatedAt: day("2018-03-15"), UpdatedAt: day("2023-05-20"),
		},
		{
			ID: "2", Name: "林建國", Phone: "0923-456-789", Email: "lin@example.com",
			Position: "中級技師", Specialties: []string{"電氣", "冷卻"},
			HireDate: day("2020-06-10"), Status: models.TechnicianActive,
			Notes: "電子系統專家，擅長診斷複雜電路問題",
			CreatedAt: day("2020-06-10"), UpdatedAt: day("2023-01-15"),
		},
		{
			ID: "3", Name: "王大明", Phone: "0934-567-890", Email: "wang@example.com",
			Position: "初級技師", Specialties: []string{"濾清", "煞車"},
			HireDate: day("2022-01-05"), Status: models.TechnicianActive,
			CreatedAt: day("2022-01-05"), UpdatedAt: day("2022-01-05"),
		},
		{
			ID: "4", Name: "李小華", Phone: "0945-678-901",
			Position: "資深技師", Specialties: []string{"懸吊", "煞車", "引擎"},
			HireDate: day("2015-11-20"), Status: models.TechnicianInactive,
			Notes: "已離職，曾負責進口車特殊保養",
			CreatedAt: day("2015-11-20"), UpdatedAt: day("2023-08-01"),
		},
	}
}

// DefaultVehicles is a small sample fleet. Two vehicles share an owner.
func DefaultVehicles() []models.Vehicle {
	return []models.Vehicle{
		{
			ID: "1", Brand: "Toyota", Model: "Camry", EngineCode: "2AR-FE", LicensePlate: "ABC-1234",
			OwnerName: "張三", CustomerPhone: "0911-111-111", ManufactureYear: 2019, CurrentMileage: 45000,
			CreatedAt: day("2023-01-10"), UpdatedAt: day("2023-06-15"),
		},
		{
			ID: "2", Brand: "Honda", Model: "Civic", EngineCode: "L15B7", LicensePlate: "XYZ-5678",
			OwnerName: "李四", CustomerPhone: "0922-222-222", ManufactureYear: 2020, CurrentMileage: 32000,
			CreatedAt: day("2023-02-05"), UpdatedAt: day("2023-07-01"),
		},
		{
			ID: "3", Brand: "Toyota", Model: "RAV4", EngineCode: "M20A-FKS", LicensePlate: "DEF-9012",
			OwnerName: "張三", CustomerPhone: "0911-111-111", ManufactureYear: 2021, CurrentMileage: 18000,
			CreatedAt: day("2023-03-20"), UpdatedAt: day("2023-08-12"),
		},
		{
			ID: "4", Brand: "Nissan", Model: "Sentra", EngineCode: "HR16DE", LicensePlate: "GHI-3456",
			OwnerName: "王五", CustomerPhone: "0933-333-333", ManufactureYear: 2018, CurrentMileage: 67000,
			CreatedAt: day("2023-04-02"), UpdatedAt: day("2023-09-09"),
		},
	}
}

// DefaultRecords is the sample maintenance history for DefaultVehicles.
func DefaultRecords() []models.MaintenanceRecord {
	rec := func(id, vehicleID, itemID, date string, mileage int, technician string, c *float64, notes string, next *int) models.MaintenanceRecord {
		d := day(date)
		return models.MaintenanceRecord{
			ID: id, VehicleID: vehicleID, ItemID: itemID, Date: d, Mileage: mileage,
			Technician: technician, Cost: c, Notes: notes, NextMaintenanceMileage: next,
			CreatedAt: d, UpdatedAt: d,
		}
	}
	return []models.MaintenanceRecord{
		rec("1", "1", "1", "2023-01-15", 40000, "陳志明", cost(1200), "使用全合成機油", km(45000)),
		rec("2", "1", "15", "2023-01-15", 40000, "陳志明", cost(350), "", km(45000)),
		rec("3", "2", "12", "2023-02-20", 28000, "王大明", cost(2800), "前輪來令片磨損", nil),
		rec("4", "1", "6", "2023-03-08", 41500, "林建國", cost(900), "", nil),
		rec("5", "3", "1", "2023-04-12", 12000, "陳志明", cost(1100), "", km(17000)),
		rec("6", "4", "8", "2023-05-03", 62000, "林建國", cost(3200), "電瓶老化無法充電", nil),
		rec("7", "2", "14", "2023-06-18", 30000, "王大明", nil, "保固內免費更換", nil),
		rec("8", "4", "4", "2023-07-22", 64500, "陳志明", cost(2500), "", km(104500)),
		rec("9", "3", "11", "2023-08-12", 16000, "", cost(800), "客戶自行前往輪胎行", nil),
		rec("10", "1", "12", "2023-06-15", 45000, "王大明", cost(3000), "", nil),
		rec("11", "4", "10", "2023-09-09", 67000, "李小華", cost(4500), "後避震器漏油", nil),
		rec("12", "2", "1", "2023-07-01", 32000, "陳志明", cost(1200), "", km(37000)),
	}
}

// DefaultSeed bundles the sample data set.
func DefaultSeed() Seed {
	return Seed{
		Vehicles:    DefaultVehicles(),
		Items:       DefaultItems(),
		Records:     DefaultRecords(),
		Technicians: DefaultTechnicians(),
	}
}
