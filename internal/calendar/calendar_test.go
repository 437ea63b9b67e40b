package calendar

import (
	"testing"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaster(t *testing.T) {
	tests := []struct {
		year     int
		expected string
	}{
		{2000, "2000-04-23"},
		{2019, "2019-04-21"},
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2026, "2026-04-05"},
		{2038, "2038-04-25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Easter(tt.year).String(), "Easter %d", tt.year)
	}
}

func TestNational(t *testing.T) {
	holidays := National(2024)
	require.Len(t, holidays, 13)

	byName := make(map[string]string)
	for _, h := range holidays {
		byName[h.Name] = h.Date.String()
		assert.Equal(t, domain.HolidayNational, h.Type)
		assert.True(t, h.AffectsOvertime)
		assert.True(t, h.IsPaid)
	}
	assert.Equal(t, "2024-03-29", byName["Sexta-feira Santa"])
	assert.Equal(t, "2024-03-31", byName["Páscoa"])
	assert.Equal(t, "2024-05-30", byName["Corpo de Deus"])
	assert.Equal(t, "2024-04-25", byName["Dia da Liberdade"])

	assert.Equal(t, "2024-01-01", holidays[0].Date.String(), "sorted by date")
	assert.Equal(t, "2024-12-25", holidays[len(holidays)-1].Date.String())
}

func TestHolidays_ByLocation(t *testing.T) {
	tests := []struct {
		name      string
		workplace string
		count     int
		extra     string
	}{
		{"lisbon", "Lisboa", 14, "2024-06-13"},
		{"porto office", "Escritório, Porto", 14, "2024-06-24"},
		{"madeira", "Funchal", 15, "2024-07-01"},
		{"azores", "Ponta Delgada", 15, "2024-05-20"},
		{"unknown", "Somewhere", 13, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, _ := ParseLocation(tt.workplace)
			holidays := Holidays(2024, loc)
			assert.Len(t, holidays, tt.count)
			if tt.extra == "" {
				return
			}
			set := domain.NewHolidaySet(holidays)
			_, ok := set.Lookup(domain.MustDate(tt.extra))
			assert.True(t, ok, "expected a holiday on %s", tt.extra)
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		workplace string
		expected  Location
		found     bool
	}{
		{"Porto", Location{Municipality: "Porto", District: "Porto", Region: RegionNorth}, true},
		{"  escritório em vila real ", Location{Municipality: "Vila Real", District: "Vila Real", Region: RegionNorth}, true},
		{"Vila Nova de Gaia", Location{Municipality: "Vila Nova de Gaia", District: "Porto", Region: RegionNorth}, true},
		{"Cascais", Location{Municipality: "Cascais", District: "Lisboa", Region: RegionLisbon}, true},
		{"Funchal", Location{Municipality: "Funchal", District: "Madeira", Region: RegionMadeira}, true},
		{"Remote", Location{Municipality: "Remote"}, false},
		{"", Location{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.workplace, func(t *testing.T) {
			loc, ok := ParseLocation(tt.workplace)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestHolidays_WorkOnEasterIsHolidayOvertime(t *testing.T) {
	set := domain.NewHolidaySet(Holidays(2025, Location{}))
	h, ok := set.OvertimeHoliday(domain.MustDate("2025-04-18"))
	require.True(t, ok)
	assert.Equal(t, "Sexta-feira Santa", h.Name)
}
