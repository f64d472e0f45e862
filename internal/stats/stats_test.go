package stats

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

func costOf(v float64) *float64 { return &v }

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type catalog map[string]models.MaintenanceItem

func (c catalog) Item(id string) (models.MaintenanceItem, bool) {
	item, ok := c[id]
	return item, ok
}

var items = catalog{
	"oil":  {ID: "oil", Name: "機油更換", Category: models.CategoryEngine},
	"pads": {ID: "pads", Name: "煞車來令片更換", Category: models.CategoryBrake},
	"air":  {ID: "air", Name: "空氣濾清器更換", Category: models.CategoryFilter},
}

func sampleRecords() []models.MaintenanceRecord {
	return []models.MaintenanceRecord{
		{ID: "1", VehicleID: "v1", ItemID: "oil", Date: at("2023-01-15"), Technician: "陳志明", Cost: costOf(1200)},
		{ID: "2", VehicleID: "v2", ItemID: "pads", Date: at("2023-02-20"), Technician: "王大明", Cost: costOf(2800)},
		{ID: "3", VehicleID: "v1", ItemID: "oil", Date: at("2023-03-10"), Technician: "陳志明", Cost: nil},
		{ID: "4", VehicleID: "v3", ItemID: "air", Date: at("2023-03-11"), Cost: costOf(350)},
		{ID: "5", VehicleID: "v2", ItemID: "oil", Date: at("2023-01-02"), Technician: "林建國", Cost: costOf(1100)},
		{ID: "6", VehicleID: "v1", ItemID: "pads", Date: at("2023-04-01"), Technician: "王大明", Cost: costOf(3000)},
	}
}

func TestSummarize_ScenarioA(t *testing.T) {
	records := []models.MaintenanceRecord{
		{VehicleID: "v1", Cost: costOf(1000)},
		{VehicleID: "v1", Cost: nil},
		{VehicleID: "v2", Cost: costOf(500), Technician: "陳志明"},
	}
	s := Summarize(records)
	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, 1500.0, s.TotalCost)
	assert.Equal(t, 500.0, s.AvgCost)
	assert.Equal(t, 2, s.UniqueVehicles)
	assert.Equal(t, 1, s.UniqueTechnicians)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize_NoFloatDrift(t *testing.T) {
	records := []models.MaintenanceRecord{{Cost: costOf(0.1)}, {Cost: costOf(0.2)}}
	assert.Equal(t, 0.3, Summarize(records).TotalCost)
}

func TestByItem(t *testing.T) {
	got := ByItem(sampleRecords(), items, nil)
	require.Len(t, got, 3)

	oil := got[0]
	assert.Equal(t, "oil", oil.ItemID)
	assert.Equal(t, "機油更換", oil.ItemName)
	assert.Equal(t, models.CategoryEngine, oil.Category)
	assert.Equal(t, "引擎", oil.CategoryLabel)
	assert.Equal(t, 3, oil.Count)
	assert.Equal(t, 2300.0, oil.TotalCost)
	assert.InDelta(t, 766.67, oil.AvgCost, 0.01)
	assert.Equal(t, at("2023-03-10"), oil.LastMaintenance)

	assert.Equal(t, "pads", got[1].ItemID)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "air", got[2].ItemID)
}

func TestByItem_CategoryRestriction(t *testing.T) {
	brake := models.CategoryBrake
	got := ByItem(sampleRecords(), items, &brake)
	require.Len(t, got, 1)
	assert.Equal(t, "pads", got[0].ItemID)
	assert.Equal(t, 5800.0, got[0].TotalCost)
}

func TestByItem_SkipsDanglingItems(t *testing.T) {
	records := append(sampleRecords(), models.MaintenanceRecord{ID: "x", ItemID: "deleted", Cost: costOf(999), Date: at("2023-05-01")})

	got := ByItem(records, items, nil)
	for _, s := range got {
		assert.NotEqual(t, "deleted", s.ItemID)
	}
	assert.Len(t, ByCategory(records, items), 3)
}

func TestByItem_TotalsReconcileWithSummary(t *testing.T) {
	records := sampleRecords()
	var sum float64
	for _, s := range ByItem(records, items, nil) {
		sum += s.TotalCost
	}
	assert.Equal(t, Summarize(records).TotalCost, sum)
}

func TestByTechnician(t *testing.T) {
	got := ByTechnician(sampleRecords())
	require.Len(t, got, 3)
	assert.Equal(t, TechnicianStats{Name: "陳志明", Count: 2, TotalCost: 1200}, got[0])
	assert.Equal(t, TechnicianStats{Name: "王大明", Count: 2, TotalCost: 5800}, got[1])
	assert.Equal(t, TechnicianStats{Name: "林建國", Count: 1, TotalCost: 1100}, got[2])
}

func TestByMonth(t *testing.T) {
	got := ByMonth(sampleRecords())
	assert.Equal(t, []MonthlyStats{
		{Month: "2023-01", Count: 2, Cost: 2300},
		{Month: "2023-02", Count: 1, Cost: 2800},
		{Month: "2023-03", Count: 2, Cost: 350},
		{Month: "2023-04", Count: 1, Cost: 3000},
	}, got)
}

func TestByMonth_KeepsLatestTwelve(t *testing.T) {
	var records []models.MaintenanceRecord
	// 14 distinct months, inserted newest first
	for i := 13; i >= 0; i-- {
		d := time.Date(2022, time.January, 10, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		records = append(records, models.MaintenanceRecord{ID: fmt.Sprint(i), Date: d, Cost: costOf(100)})
	}

	got := ByMonth(records)
	require.Len(t, got, 12)
	assert.Equal(t, "2022-03", got[0].Month)
	assert.Equal(t, "2023-02", got[11].Month)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Month, got[i].Month)
	}
}

func TestByCategory(t *testing.T) {
	got := ByCategory(sampleRecords(), items)
	assert.Equal(t, []CategoryStats{
		{Category: models.CategoryEngine, Name: "引擎", Value: 3},
		{Category: models.CategoryBrake, Name: "煞車", Value: 2},
		{Category: models.CategoryFilter, Name: "濾清", Value: 1},
	}, got)
}

func TestTimeFilter_Window(t *testing.T) {
	now := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	records := sampleRecords()

	tests := []struct {
		tf   TimeFilter
		want int
	}{
		{AllTime, 6},
		{LastMonth, 1},   // from 2023-03-15
		{Last3Months, 5}, // from 2023-01-15
		{Last6Months, 6},
		{LastYear, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			assert.Len(t, Window(records, tt.tf, now), tt.want)
		})
	}
}

func TestParseTimeFilter(t *testing.T) {
	tf, err := ParseTimeFilter("")
	require.NoError(t, err)
	assert.Equal(t, AllTime, tf)
	assert.Equal(t, "全部時間", tf.Label())

	tf, err = ParseTimeFilter("6months")
	require.NoError(t, err)
	assert.Equal(t, "近半年", tf.Label())

	_, err = ParseTimeFilter("2weeks")
	assert.ErrorIs(t, err, ErrInvalidTimeFilter)
}

func TestBuildReport_JSONShape(t *testing.T) {
	now := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	report := BuildReport(sampleRecords(), items, AllTime, nil, now)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"timeFilter", "overallStats", "maintenanceStats", "technicianStats", "monthlyStats", "categoryStats", "generatedAt"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, "全部時間", report.TimeFilter)
	assert.Equal(t, 6, report.OverallStats.TotalRecords)
	assert.Equal(t, "maintenance-statistics-all.json", Filename(AllTime))
}

func TestBuildReport_SeedStore(t *testing.T) {
	s := store.New(store.DefaultSeed())
	report := BuildReport(s.Records.All(), s, AllTime, nil, time.Now())

	var itemTotal float64
	for _, it := range report.MaintenanceStats {
		itemTotal += it.TotalCost
	}
	assert.Equal(t, report.OverallStats.TotalCost, itemTotal)
	assert.LessOrEqual(t, len(report.MonthlyStats), MonthlyWindow)
}
