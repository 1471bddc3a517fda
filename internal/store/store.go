// Package store holds the local mirror: the in-memory vehicle and
// transaction collections backing every page, persisted to on-disk JSON
// snapshots on each mutation. The remote store, when configured, may
// supersede this state wholesale at reconciliation time.
package store

import (
	"sync"
	"time"

	"autolot-service/internal/domain/transaction"
	"autolot-service/internal/domain/vehicle"
	xerrors "autolot-service/internal/pkg/errors"
	"autolot-service/internal/pkg/ident"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	mu           sync.RWMutex
	vehicles     []vehicle.Vehicle
	transactions []transaction.Transaction
	filters      vehicle.Filters

	snapshots *Snapshots
	logger    *zap.Logger
}

func New(snapshots *Snapshots, logger *zap.Logger) *Store {
	return &Store{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Load initializes the collections from the on-disk snapshots, falling
// back to the built-in seed inventory on a fresh install.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var vehicles []vehicle.Vehicle
	ok, err := s.snapshots.Read(vehiclesFile, &vehicles)
	if err != nil {
		return err
	}
	if !ok {
		vehicles = seedVehicles()
	}
	s.vehicles = vehicles

	var txns []transaction.Transaction
	ok, err = s.snapshots.Read(transactionsFile, &txns)
	if err != nil {
		return err
	}
	if !ok {
		txns = []transaction.Transaction{}
	}
	s.transactions = txns

	return nil
}

// persistVehicles rewrites the vehicle snapshot. Called with s.mu held.
// Snapshot failures are logged, never fatal: the in-memory state stands.
func (s *Store) persistVehicles() {
	if err := s.snapshots.Write(vehiclesFile, s.vehicles); err != nil {
		s.logger.Error("failed to persist vehicles snapshot", zap.Error(err))
	}
}

func (s *Store) persistTransactions() {
	if err := s.snapshots.Write(transactionsFile, s.transactions); err != nil {
		s.logger.Error("failed to persist transactions snapshot", zap.Error(err))
	}
}

// ---------- local mutations ----------

// AddVehicle appends a new available listing with a fresh identifier and
// matching creation/update timestamps.
func (s *Store) AddVehicle(in *vehicle.NewVehicleInput) vehicle.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	v := vehicle.Vehicle{
		ID:          ident.NewVehicleID(),
		Brand:       in.Brand,
		Model:       in.Model,
		Year:        in.Year,
		Price:       in.Price,
		Km:          in.Km,
		Color:       in.Color,
		Description: in.Description,
		Images:      pq.StringArray(in.Images),
		Featured:    in.Featured,
		Status:      vehicle.StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	s.vehicles = append(s.vehicles, v)
	s.persistVehicles()
	return v
}

// UpdateVehicle merges the populated fields into the matching record and
// bumps its update timestamp and version. Unknown ids are a no-op; the
// second return value tells the caller whether anything was touched.
func (s *Store) UpdateVehicle(id string, in *vehicle.UpdateInput) (vehicle.Vehicle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vehicles {
		if s.vehicles[i].ID != id {
			continue
		}
		in.Apply(&s.vehicles[i])
		s.vehicles[i].UpdatedAt = time.Now().UTC()
		s.vehicles[i].Version++
		s.persistVehicles()
		return s.vehicles[i], true
	}
	return vehicle.Vehicle{}, false
}

// CloseOut transitions a vehicle out of the inventory. For sold and
// exchanged outcomes with a positive amount it records exactly one
// transaction. The current status is not checked first: re-closing an
// already closed vehicle transitions it again and records another
// transaction, matching the panel's historical behavior.
func (s *Store) CloseOut(id string, outcome vehicle.Status, amount float64, notes string) (vehicle.Vehicle, *transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return vehicle.Vehicle{}, nil, xerrors.ErrNotFound
	}

	s.vehicles[idx].Status = outcome
	s.vehicles[idx].UpdatedAt = time.Now().UTC()
	s.vehicles[idx].Version++
	s.persistVehicles()

	var txn *transaction.Transaction
	if outcome != vehicle.StatusDeleted && amount > 0 {
		txnType := transaction.TypeSale
		if outcome == vehicle.StatusExchanged {
			txnType = transaction.TypeExchange
		}
		t := transaction.Transaction{
			ID:        ident.NewTransactionID(),
			VehicleID: id,
			Type:      txnType,
			Amount:    amount,
			Date:      time.Now().UTC(),
			Notes:     notes,
		}
		s.transactions = append(s.transactions, t)
		s.persistTransactions()
		txn = &t
	}

	return s.vehicles[idx], txn, nil
}

// ---------- filters ----------

func (s *Store) SetFilters(f vehicle.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
}

func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = vehicle.Filters{}
}

func (s *Store) Filters() vehicle.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// FilteredVehicles derives the customer-facing listing: available vehicles
// matching every populated criterion, in insertion order.
func (s *Store) FilteredVehicles() []vehicle.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterVehicles(s.vehicles, s.filters)
}

// VehiclesMatching derives a listing for a one-off criteria set without
// touching the stored filters.
func (s *Store) VehiclesMatching(f vehicle.Filters) []vehicle.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterVehicles(s.vehicles, f)
}

func filterVehicles(vehicles []vehicle.Vehicle, f vehicle.Filters) []vehicle.Vehicle {
	out := []vehicle.Vehicle{}
	for i := range vehicles {
		if vehicles[i].Status != vehicle.StatusAvailable {
			continue
		}
		if !f.Matches(&vehicles[i]) {
			continue
		}
		out = append(out, vehicles[i])
	}
	return out
}

// ---------- reads ----------

func (s *Store) GetVehicleByID(id string) (vehicle.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			return s.vehicles[i], true
		}
	}
	return vehicle.Vehicle{}, false
}

// Vehicles returns a copy of the full collection, all statuses included.
func (s *Store) Vehicles() []vehicle.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]vehicle.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

func (s *Store) Transactions() []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]transaction.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// ---------- remote apply primitives ----------
//
// Used by the synchronizer when the remote store supersedes local state.

// ReplaceAllVehicles swaps the whole collection for the remote's version.
// Local-only records are lost; the remote is authoritative here.
func (s *Store) ReplaceAllVehicles(vehicles []vehicle.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = vehicles
	s.persistVehicles()
}

func (s *Store) ReplaceAllTransactions(txns []transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = txns
	s.persistTransactions()
}

// ApplyVehicleInsert appends a remotely inserted vehicle. Duplicate
// delivery of the same id is ignored.
func (s *Store) ApplyVehicleInsert(v vehicle.Vehicle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vehicles {
		if s.vehicles[i].ID == v.ID {
			return false
		}
	}
	s.vehicles = append(s.vehicles, v)
	s.persistVehicles()
	return true
}

// ApplyVehicleUpdate replaces the matching record wholesale, unless the
// incoming version is not newer than the local one, in which case the
// event is stale and dropped. Unknown ids are a no-op.
func (s *Store) ApplyVehicleUpdate(v vehicle.Vehicle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vehicles {
		if s.vehicles[i].ID != v.ID {
			continue
		}
		if v.Version <= s.vehicles[i].Version {
			return false
		}
		s.vehicles[i] = v
		s.persistVehicles()
		return true
	}
	return false
}

// ApplyVehicleDelete removes the matching record. Unknown ids are a no-op.
func (s *Store) ApplyVehicleDelete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vehicles {
		if s.vehicles[i].ID != id {
			continue
		}
		s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
		s.persistVehicles()
		return true
	}
	return false
}

// ApplyTransactionInsert appends a remotely inserted transaction,
// ignoring duplicate delivery.
func (s *Store) ApplyTransactionInsert(t transaction.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			return false
		}
	}
	s.transactions = append(s.transactions, t)
	s.persistTransactions()
	return true
}
