package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/query"
)

var errBadParam = errors.New("invalid query parameter")

// values returns every non-empty value of a repeatable parameter. Comma separated
// lists are accepted too.
func values(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseDate(q url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", errBadParam, key)
	}
	return &t, nil
}

func parseFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", errBadParam, key)
	}
	return &f, nil
}

func parseInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", errBadParam, key)
	}
	return &n, nil
}

// parseCategories accepts category codes or labels.
func parseCategories(q url.Values, key string) ([]models.Category, error) {
	var out []models.Category
	for _, v := range values(q, key) {
		c, err := models.ParseCategory(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadParam, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// parseCategory parses an optional single category.
func parseCategory(q url.Values, key string) (*models.Category, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" || raw == "all" {
		return nil, nil
	}
	c, err := models.ParseCategory(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadParam, err)
	}
	return &c, nil
}

// parseFilter reads a record FilterSpec from the query string.
func parseFilter(q url.Values) (query.FilterSpec, error) {
	var (
		spec query.FilterSpec
		err  error
	)
	spec.Query = q.Get("q")
	spec.ItemIDs = values(q, "item")
	spec.Technicians = values(q, "technician")
	spec.VehicleIDs = values(q, "vehicle")
	if spec.Categories, err = parseCategories(q, "category"); err != nil {
		return spec, err
	}
	if spec.DateRange.Start, err = parseDate(q, "date_from"); err != nil {
		return spec, err
	}
	if spec.DateRange.End, err = parseDate(q, "date_to"); err != nil {
		return spec, err
	}
	if spec.CostRange.Min, err = parseFloat(q, "cost_min"); err != nil {
		return spec, err
	}
	if spec.CostRange.Max, err = parseFloat(q, "cost_max"); err != nil {
		return spec, err
	}
	if spec.MileageRange.Min, err = parseInt(q, "mileage_min"); err != nil {
		return spec, err
	}
	if spec.MileageRange.Max, err = parseInt(q, "mileage_max"); err != nil {
		return spec, err
	}
	return spec, nil
}

// parseSort reads the sort field and direction, defaulting to newest first.
func parseSort(q url.Values) (query.SortField, query.Direction, error) {
	field, err := query.ParseSortField(q.Get("sort"))
	if err != nil {
		return "", "", err
	}
	dir, err := query.ParseDirection(q.Get("order"))
	if err != nil {
		return "", "", err
	}
	return field, dir, nil
}
