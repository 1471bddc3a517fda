package vehicle

import (
	"time"

	"github.com/lib/pq"
)

// Status is the lifecycle state of a vehicle listing. A vehicle starts as
// StatusAvailable; the other three states are terminal.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusExchanged Status = "exchanged"
	StatusDeleted   Status = "deleted"
)

// Terminal reports whether s is one of the closed states.
func (s Status) Terminal() bool {
	return s == StatusSold || s == StatusExchanged || s == StatusDeleted
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusExchanged, StatusDeleted:
		return true
	}
	return false
}

// Vehicle is a unit of sellable inventory.
type Vehicle struct {
	ID          string         `json:"id"`
	Brand       string         `json:"brand"`
	Model       string         `json:"model"`
	Year        int            `json:"year"`
	Price       float64        `json:"price"`
	Km          int            `json:"km"`
	Color       string         `json:"color"`
	Description string         `json:"description"`
	Images      pq.StringArray `json:"images"`
	Featured    bool           `json:"featured"`
	Status      Status         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Version increases on every local mutation and every applied remote
	// update. Inbound feed events carrying a version at or below the local
	// one are stale and must not overwrite local state.
	Version int64 `json:"version"`
}

// NewVehicleInput carries the caller-supplied fields of a new listing.
// ID, status, timestamps and version are assigned by the store.
type NewVehicleInput struct {
	Brand       string   `json:"brand" binding:"required"`
	Model       string   `json:"model" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Price       float64  `json:"price" binding:"required"`
	Km          int      `json:"km"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Featured    bool     `json:"featured"`
}

// UpdateInput is an explicit fields-changed structure: nil means "leave the
// field as it is". Status and timestamps are not updatable through it.
type UpdateInput struct {
	Brand       *string   `json:"brand"`
	Model       *string   `json:"model"`
	Year        *int      `json:"year"`
	Price       *float64  `json:"price"`
	Km          *int      `json:"km"`
	Color       *string   `json:"color"`
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`
	Featured    *bool     `json:"featured"`
}

// Apply merges the populated fields of in into v.
func (in *UpdateInput) Apply(v *Vehicle) {
	if in.Brand != nil {
		v.Brand = *in.Brand
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Year != nil {
		v.Year = *in.Year
	}
	if in.Price != nil {
		v.Price = *in.Price
	}
	if in.Km != nil {
		v.Km = *in.Km
	}
	if in.Color != nil {
		v.Color = *in.Color
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
	if in.Images != nil {
		v.Images = pq.StringArray(*in.Images)
	}
	if in.Featured != nil {
		v.Featured = *in.Featured
	}
}
