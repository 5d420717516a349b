package views

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func warranty(id string, expiry timex.Date) models.Warranty {
	return models.Warranty{ID: id, ProductName: id, ExpiryDate: expiry}
}

func ids(ws []models.Warranty) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}

func TestUpcoming_IPhoneScenario(t *testing.T) {
	purchase := timex.NewDate(2024, time.January, 15)
	iphone := models.Warranty{
		ID:             "iphone",
		ProductName:    "iPhone 13",
		Brand:          "Apple",
		Category:       "Electronics",
		PurchaseDate:   purchase,
		WarrantyPeriod: 12,
		ExpiryDate:     models.ComputeExpiry(purchase, 12),
	}
	require.Equal(t, timex.NewDate(2025, time.January, 15), iphone.ExpiryDate)

	december := time.Date(2024, time.December, 20, 10, 0, 0, 0, time.UTC)
	november := time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC)

	for _, unit := range []WindowUnit{WindowDays, WindowLegacyMonths} {
		t.Run(unit.String(), func(t *testing.T) {
			win := Window{Days: 30, Unit: unit}
			ws := []models.Warranty{iphone}

			assert.Equal(t, []string{"iphone"}, ids(Upcoming(ws, december, time.UTC, win)))
			assert.Empty(t, Upcoming(ws, november, time.UTC, win))
		})
	}
}

func TestUpcoming_Boundaries(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	ws := []models.Warranty{
		warranty("yesterday", timex.NewDate(2024, time.June, 9)),
		warranty("today", timex.NewDate(2024, time.June, 10)),
		warranty("tomorrow", timex.NewDate(2024, time.June, 11)),
		warranty("day-30", timex.NewDate(2024, time.July, 10)),
		warranty("day-31", timex.NewDate(2024, time.July, 11)),
	}

	tests := []struct {
		name string
		win  Window
		want []string
	}{
		{"30 days", Window{Days: 30, Unit: WindowDays}, []string{"tomorrow", "day-30"}},
		{"one day", Window{Days: 1, Unit: WindowDays}, []string{"tomorrow"}},
		{"zero days", Window{Days: 0, Unit: WindowDays}, []string{}},
		{"legacy 30 is one month", Window{Days: 30, Unit: WindowLegacyMonths}, []string{"tomorrow", "day-30"}},
		{"legacy below 30 is empty", Window{Days: 29, Unit: WindowLegacyMonths}, []string{}},
		{"legacy 59 is still one month", Window{Days: 59, Unit: WindowLegacyMonths}, []string{"tomorrow", "day-30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Upcoming(ws, now, time.UTC, tt.win)))
		})
	}
}

func TestWindow_EndLegacyClampsMonth(t *testing.T) {
	now := time.Date(2024, time.January, 31, 9, 30, 0, 0, time.UTC)
	got := Window{Days: 30, Unit: WindowLegacyMonths}.End(now)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 30, 0, 0, time.UTC), got)
}

func TestParseWindowUnit(t *testing.T) {
	u, err := ParseWindowUnit("Months")
	require.NoError(t, err)
	assert.Equal(t, WindowLegacyMonths, u)

	u, err = ParseWindowUnit("")
	require.NoError(t, err)
	assert.Equal(t, WindowDays, u)

	_, err = ParseWindowUnit("weeks")
	require.Error(t, err)
}

func TestExpiredAndActive_Partition(t *testing.T) {
	ws := []models.Warranty{
		warranty("a", timex.NewDate(2023, time.May, 1)),
		warranty("b", timex.NewDate(2024, time.May, 1)),
		warranty("c", timex.NewDate(2025, time.May, 1)),
		warranty("d", timex.NewDate(2024, time.May, 2)),
	}

	nows := []time.Time{
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 1, 0, 0, 0, 1, time.UTC),
		time.Date(2024, time.May, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, now := range nows {
		t.Run(now.Format(time.RFC3339Nano), func(t *testing.T) {
			expired := Expired(ws, now, time.UTC)
			active := Active(ws, now, time.UTC)

			var want []string
			for _, w := range ws {
				if w.ExpiryDate.In(time.UTC).Before(now) {
					want = append(want, w.ID)
				}
			}
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, ids(expired))
			assert.Len(t, active, len(ws)-len(expired))
		})
	}
}

func TestExpired_UsesLocation(t *testing.T) {
	east := time.FixedZone("east", 10*3600)
	w := warranty("w", timex.NewDate(2024, time.May, 2))
	// 2024-05-01T15:00Z is already past midnight of May 2 in UTC+10.
	now := time.Date(2024, time.May, 1, 15, 0, 0, 0, time.UTC)

	assert.Empty(t, Expired([]models.Warranty{w}, now, time.UTC))
	assert.Len(t, Expired([]models.Warranty{w}, now, east), 1)
}

func TestSearch(t *testing.T) {
	ws := []models.Warranty{
		{ID: "1", ProductName: "iPhone 13 Pro", Brand: "Apple"},
		{ID: "2", ProductName: "Dishwasher", Brand: "Bosch", Notes: models.Ptr("bought with the iPhone")},
		{ID: "3", ProductName: "Sofa", Brand: "IKEA"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lower", "iphone", []string{"1", "2"}},
		{"upper", "IPHONE", []string{"1", "2"}},
		{"brand", "bosch", []string{"2"}},
		{"no match", "laptop", []string{}},
		{"empty matches all", "", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Search(ws, tt.query)))
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	ws := []models.Warranty{
		{ID: "1", Category: "Electronics"},
		{ID: "2", Category: "electronics"},
		{ID: "3", Category: "Tools"},
		{ID: "4", Category: "Electronics"},
	}
	assert.Equal(t, []string{"1", "4"}, ids(FilterByCategory(ws, "Electronics")))
	assert.Empty(t, FilterByCategory(ws, "Toys"))
}

func TestStatusOfAndDaysRemaining(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry timex.Date
		status Status
		days   int
	}{
		{"expired", timex.NewDate(2024, time.June, 1), StatusExpired, -9},
		{"expired today", timex.NewDate(2024, time.June, 10), StatusExpired, 0},
		{"soon", timex.NewDate(2024, time.June, 20), StatusExpiringSoon, 10},
		{"active", timex.NewDate(2024, time.December, 1), StatusActive, 174},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := warranty(tt.name, tt.expiry)
			assert.Equal(t, tt.status, StatusOf(w, now, time.UTC))
			assert.Equal(t, tt.days, DaysRemaining(w, now, time.UTC))
		})
	}
	assert.Equal(t, "Expiring Soon", StatusExpiringSoon.String())
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	ws := []models.Warranty{
		warranty("old", timex.NewDate(2024, time.January, 1)),
		warranty("soon", timex.NewDate(2024, time.June, 30)),
		warranty("later", timex.NewDate(2025, time.June, 30)),
		warranty("much-later", timex.NewDate(2026, time.June, 30)),
	}

	got := Summarize(ws, now, time.UTC, Window{Days: 30})
	assert.Equal(t, Summary{Total: 4, Active: 3, ExpiringSoon: 1, Expired: 1, Health: 75}, got)

	assert.Equal(t, Summary{}, Summarize(nil, now, time.UTC, Window{Days: 30}))
}
