package query

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{"日期", "車輛", "車牌", "車主", "保養項目", "分類", "公里數", "技師", "金額", "備註"}

// ExportCSV writes details as CSV rows, one record per line, in the given order.
func ExportCSV(w io.Writer, details []RecordDetail) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range details {
		row := []string{
			d.Date.Format("2006/01/02"),
			d.Vehicle.Label(),
			d.Vehicle.LicensePlate,
			d.Vehicle.OwnerName,
			d.Item.Name,
			d.Item.Category.Label(),
			strconv.Itoa(d.Mileage),
			d.Technician,
			strconv.FormatFloat(d.CostOrZero(), 'f', -1, 64),
			d.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", d.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
