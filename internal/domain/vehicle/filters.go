package vehicle

// Filters is the AND-combined search criteria of the public listing.
// Zero values mean "no constraint on that field"; string fields match by
// exact equality, numeric bounds are inclusive.
type Filters struct {
	Brand    string  `json:"brand" form:"brand"`
	Model    string  `json:"model" form:"model"`
	Color    string  `json:"color" form:"color"`
	MinYear  int     `json:"min_year" form:"min_year"`
	MaxYear  int     `json:"max_year" form:"max_year"`
	MinKm    int     `json:"min_km" form:"min_km"`
	MaxKm    int     `json:"max_km" form:"max_km"`
	MinPrice float64 `json:"min_price" form:"min_price"`
	MaxPrice float64 `json:"max_price" form:"max_price"`
}

// IsZero reports whether no criterion is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Matches reports whether v satisfies every populated criterion. Lifecycle
// status is checked separately by the caller: only available vehicles are
// customer-facing regardless of criteria.
func (f Filters) Matches(v *Vehicle) bool {
	if f.Brand != "" && v.Brand != f.Brand {
		return false
	}
	if f.Model != "" && v.Model != f.Model {
		return false
	}
	if f.Color != "" && v.Color != f.Color {
		return false
	}
	if f.MinYear != 0 && v.Year < f.MinYear {
		return false
	}
	if f.MaxYear != 0 && v.Year > f.MaxYear {
		return false
	}
	if f.MinKm != 0 && v.Km < f.MinKm {
		return false
	}
	if f.MaxKm != 0 && v.Km > f.MaxKm {
		return false
	}
	if f.MinPrice != 0 && v.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice != 0 && v.Price > f.MaxPrice {
		return false
	}
	return true
}
