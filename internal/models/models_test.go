package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"brake", CategoryBrake, false},
		{" Engine ", CategoryEngine, false},
		{"濾清", CategoryFilter, false},
		{"懸吊", CategorySuspension, false},
		{"wheels", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "煞車", CategoryBrake.Label())
	assert.Equal(t, "wheels", Category("wheels").Label())
	assert.Len(t, Categories, 7)
	for _, c := range Categories {
		assert.True(t, IsValidCategory(c), c)
	}
}

func TestMaintenanceRecord_CostOrZero(t *testing.T) {
	cost := 1200.5
	assert.Equal(t, 1200.5, MaintenanceRecord{Cost: &cost}.CostOrZero())
	assert.Zero(t, MaintenanceRecord{}.CostOrZero())
}

func TestVehicleLabel(t *testing.T) {
	assert.Equal(t, "Toyota Camry", Vehicle{Brand: "Toyota", Model: "Camry"}.Label())
}

func TestTechnicianIsActive(t *testing.T) {
	assert.True(t, Technician{Status: TechnicianActive}.IsActive())
	assert.False(t, Technician{Status: TechnicianInactive}.IsActive())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Nil(t, s.Logo)
	assert.Equal(t, "light", s.Theme)
	assert.Equal(t, "zh-TW", s.Language)
	assert.True(t, s.Notifications.Maintenance)
}
