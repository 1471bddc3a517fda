package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltersMatches(t *testing.T) {
	v := Vehicle{
		Brand: "Toyota",
		Model: "Corolla",
		Year:  2022,
		Price: 120000,
		Km:    10000,
		Color: "Branco",
	}

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"empty filters match everything", Filters{}, true},
		{"brand exact match", Filters{Brand: "Toyota"}, true},
		{"brand mismatch", Filters{Brand: "Honda"}, false},
		{"model exact match", Filters{Model: "Corolla"}, true},
		{"model mismatch", Filters{Model: "Civic"}, false},
		{"color mismatch", Filters{Color: "Azul"}, false},
		{"year inside range", Filters{MinYear: 2020, MaxYear: 2023}, true},
		{"year below min", Filters{MinYear: 2023}, false},
		{"year above max", Filters{MaxYear: 2021}, false},
		{"km bounds inclusive", Filters{MinKm: 10000, MaxKm: 10000}, true},
		{"km above max", Filters{MaxKm: 9999}, false},
		{"price bounds inclusive", Filters{MinPrice: 120000, MaxPrice: 120000}, true},
		{"price below min", Filters{MinPrice: 120001}, false},
		{"combined criteria all match", Filters{Brand: "Toyota", MinYear: 2022, MaxPrice: 150000}, true},
		{"combined criteria one fails", Filters{Brand: "Toyota", MinYear: 2023}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Matches(&v))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusAvailable.Terminal())
	assert.True(t, StatusSold.Terminal())
	assert.True(t, StatusExchanged.Terminal())
	assert.True(t, StatusDeleted.Terminal())
	assert.False(t, Status("junk").Terminal())
}

func TestUpdateInputApply(t *testing.T) {
	v := Vehicle{Brand: "Toyota", Model: "Corolla", Price: 120000, Featured: false}

	price := 110000.0
	featured := true
	in := UpdateInput{Price: &price, Featured: &featured}
	in.Apply(&v)

	assert.Equal(t, 110000.0, v.Price)
	assert.True(t, v.Featured)
	assert.Equal(t, "Toyota", v.Brand)
	assert.Equal(t, "Corolla", v.Model)
}
