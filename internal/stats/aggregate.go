// Package stats computes grouped statistics and summary counters over a set of
// maintenance records.
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// MonthlyWindow is how many of the most recent months ByMonth keeps.
const MonthlyWindow = 12

// ItemLookup resolves maintenance items by id.
type ItemLookup interface {
	Item(id string) (models.MaintenanceItem, bool)
}

// ItemStats summarises the records of one maintenance item.
type ItemStats struct {
	ItemID          string          `json:"itemId"`
	ItemName        string          `json:"itemName"`
	Category        models.Category `json:"category"`
	CategoryLabel   string          `json:"categoryLabel"`
	Count           int             `json:"count"`
	TotalCost       float64         `json:"totalCost"`
	AvgCost         float64         `json:"avgCost"`
	LastMaintenance time.Time       `json:"lastMaintenance"`
}

// TechnicianStats summarises the records attributed to one technician name.
type TechnicianStats struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	TotalCost float64 `json:"totalCost"`
}

// MonthlyStats summarises the records of one calendar month (YYYY-MM).
type MonthlyStats struct {
	Month string  `json:"month"`
	Count int     `json:"count"`
	Cost  float64 `json:"cost"`
}

// CategoryStats is a {name, value} pair for chart rendering.
type CategoryStats struct {
	Category models.Category `json:"category"`
	Name     string          `json:"name"`
	Value    int             `json:"value"`
}

// recordCost returns the record cost as a decimal, missing cost counting as 0.
func recordCost(r models.MaintenanceRecord) decimal.Decimal {
	if r.Cost == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*r.Cost)
}

// group accumulates count and cost under a key, remembering first-seen order.
type group struct {
	count int
	total decimal.Decimal
	last  time.Time
}

type groups struct {
	keys []string
	byID map[string]*group
}

func newGroups() *groups {
	return &groups{byID: make(map[string]*group)}
}

func (g *groups) add(key string, r models.MaintenanceRecord) {
	acc, ok := g.byID[key]
	if !ok {
		acc = &group{last: r.Date}
		g.byID[key] = acc
		g.keys = append(g.keys, key)
	}
	acc.count++
	acc.total = acc.total.Add(recordCost(r))
	if r.Date.After(acc.last) {
		acc.last = r.Date
	}
}

// ByItem groups records by maintenance item, most frequent first. Records whose item
// does not resolve are skipped. A non-nil category restricts the output to that category.
func ByItem(records []models.MaintenanceRecord, items ItemLookup, category *models.Category) []ItemStats {
	g := newGroups()
	resolved := make(map[string]models.MaintenanceItem)
	for _, r := range records {
		item, ok := items.Item(r.ItemID)
		if !ok {
			continue
		}
		if category != nil && item.Category != *category {
			continue
		}
		resolved[r.ItemID] = item
		g.add(r.ItemID, r)
	}

	out := make([]ItemStats, 0, len(g.keys))
	for _, id := range g.keys {
		acc := g.byID[id]
		item := resolved[id]
		out = append(out, ItemStats{
			ItemID:          id,
			ItemName:        item.Name,
			Category:        item.Category,
			CategoryLabel:   item.Category.Label(),
			Count:           acc.count,
			TotalCost:       acc.total.InexactFloat64(),
			AvgCost:         acc.total.Div(decimal.NewFromInt(int64(acc.count))).InexactFloat64(),
			LastMaintenance: acc.last,
		})
	}
	slices.SortStableFunc(out, func(a, b ItemStats) int { return cmp.Compare(b.Count, a.Count) })
	return out
}

// ByTechnician groups records by technician name, most frequent first.
// Records without a technician are skipped.
func ByTechnician(records []models.MaintenanceRecord) []TechnicianStats {
	g := newGroups()
	for _, r := range records {
		if r.Technician == "" {
			continue
		}
		g.add(r.Technician, r)
	}

	out := make([]TechnicianStats, 0, len(g.keys))
	for _, name := range g.keys {
		acc := g.byID[name]
		out = append(out, TechnicianStats{Name: name, Count: acc.count, TotalCost: acc.total.InexactFloat64()})
	}
	slices.SortStableFunc(out, func(a, b TechnicianStats) int { return cmp.Compare(b.Count, a.Count) })
	return out
}

// ByMonth groups records by YYYY-MM in ascending order, keeping the latest MonthlyWindow months.
func ByMonth(records []models.MaintenanceRecord) []MonthlyStats {
	g := newGroups()
	for _, r := range records {
		g.add(r.Date.Format("2006-01"), r)
	}

	out := make([]MonthlyStats, 0, len(g.keys))
	for _, month := range g.keys {
		acc := g.byID[month]
		out = append(out, MonthlyStats{Month: month, Count: acc.count, Cost: acc.total.InexactFloat64()})
	}
	slices.SortFunc(out, func(a, b MonthlyStats) int { return cmp.Compare(a.Month, b.Month) })
	if len(out) > MonthlyWindow {
		out = out[len(out)-MonthlyWindow:]
	}
	return out
}

// ByCategory counts records per item category in first-seen order.
// Records whose item does not resolve are skipped.
func ByCategory(records []models.MaintenanceRecord, items ItemLookup) []CategoryStats {
	g := newGroups()
	for _, r := range records {
		item, ok := items.Item(r.ItemID)
		if !ok {
			continue
		}
		g.add(string(item.Category), r)
	}

	out := make([]CategoryStats, 0, len(g.keys))
	for _, key := range g.keys {
		c := models.Category(key)
		out = append(out, CategoryStats{Category: c, Name: c.Label(), Value: g.byID[key].count})
	}
	return out
}
