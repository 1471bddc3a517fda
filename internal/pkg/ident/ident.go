// Package ident generates the record identifiers used across the
// inventory: a short type prefix followed by a ULID, so ids sort by
// creation time while staying collision-free.
package ident

import "github.com/oklog/ulid/v2"

const (
	vehiclePrefix     = "car-"
	transactionPrefix = "txn-"
)

// NewVehicleID returns a fresh vehicle identifier.
func NewVehicleID() string {
	return vehiclePrefix + ulid.Make().String()
}

// NewTransactionID returns a fresh transaction identifier.
func NewTransactionID() string {
	return transactionPrefix + ulid.Make().String()
}
