package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// TimeFilter selects how far back the statistics look.
type TimeFilter string

const (
	LastMonth   TimeFilter = "1month"
	Last3Months TimeFilter = "3months"
	Last6Months TimeFilter = "6months"
	LastYear    TimeFilter = "1year"
	AllTime     TimeFilter = "all"
)

var ErrInvalidTimeFilter = errors.New("invalid time filter")

var timeFilterLabels = map[TimeFilter]string{
	LastMonth:   "近一個月",
	Last3Months: "近三個月",
	Last6Months: "近半年",
	LastYear:    "近一年",
	AllTime:     "全部時間",
}

// ParseTimeFilter parses a time filter. An empty string selects AllTime.
func ParseTimeFilter(s string) (TimeFilter, error) {
	tf := TimeFilter(strings.TrimSpace(s))
	if tf == "" {
		return AllTime, nil
	}
	if _, ok := timeFilterLabels[tf]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFilter, s)
	}
	return tf, nil
}

// Label returns the display label of the filter.
func (tf TimeFilter) Label() string {
	if label, ok := timeFilterLabels[tf]; ok {
		return label
	}
	return string(tf)
}

// Start returns the inclusive lower bound of the window ending at now.
// AllTime has no bound and reports false.
func (tf TimeFilter) Start(now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	loc := now.Location()
	switch tf {
	case LastMonth:
		return time.Date(y, m-1, d, 0, 0, 0, 0, loc), true
	case Last3Months:
		return time.Date(y, m-3, d, 0, 0, 0, 0, loc), true
	case Last6Months:
		return time.Date(y, m-6, d, 0, 0, 0, 0, loc), true
	case LastYear:
		return time.Date(y-1, m, d, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

// Window keeps the records dated on or after the start of tf.
func Window(records []models.MaintenanceRecord, tf TimeFilter, now time.Time) []models.MaintenanceRecord {
	start, ok := tf.Start(now)
	if !ok {
		return records
	}
	out := make([]models.MaintenanceRecord, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out
}

// Report is the statistics export document.
type Report struct {
	TimeFilter       string            `json:"timeFilter"`
	OverallStats     Summary           `json:"overallStats"`
	MaintenanceStats []ItemStats       `json:"maintenanceStats"`
	TechnicianStats  []TechnicianStats `json:"technicianStats"`
	MonthlyStats     []MonthlyStats    `json:"monthlyStats"`
	CategoryStats    []CategoryStats   `json:"categoryStats"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}

// BuildReport windows records by tf and computes every statistic over the result.
// category only narrows the per-item statistics.
func BuildReport(records []models.MaintenanceRecord, items ItemLookup, tf TimeFilter, category *models.Category, now time.Time) Report {
	windowed := Window(records, tf, now)
	return Report{
		TimeFilter:       tf.Label(),
		OverallStats:     Summarize(windowed),
		MaintenanceStats: ByItem(windowed, items, category),
		TechnicianStats:  ByTechnician(windowed),
		MonthlyStats:     ByMonth(windowed),
		CategoryStats:    ByCategory(windowed, items),
		GeneratedAt:      now.UTC(),
	}
}

// Filename is the download name of a report for tf.
func Filename(tf TimeFilter) string {
	return fmt.Sprintf("maintenance-statistics-%s.json", tf)
}
