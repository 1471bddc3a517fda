// Package sync keeps the local mirror aligned with the remote store on a
// best-effort basis: a wholesale pull-or-push reconciliation at startup,
// then incremental patching from the change feed. Every remote call is
// individually wrapped so one failure never aborts the wider pass.
package sync

import (
	"context"

	domainfeed "autolot-service/internal/domain/feed"
	"autolot-service/internal/domain/transaction"
	"autolot-service/internal/domain/vehicle"
	"autolot-service/internal/pkg/notify"
	"autolot-service/internal/store"

	"go.uber.org/zap"
)

// VehicleRemote is the slice of the remote vehicle table the synchronizer
// needs. Satisfied by postgres.VehicleRepository.
type VehicleRemote interface {
	List(ctx context.Context) ([]vehicle.Vehicle, error)
	Upsert(ctx context.Context, v *vehicle.Vehicle) error
}

// TransactionRemote is the transaction-table counterpart.
type TransactionRemote interface {
	List(ctx context.Context) ([]transaction.Transaction, error)
	Upsert(ctx context.Context, t *transaction.Transaction) error
}

type Synchronizer struct {
	store    *store.Store
	vehicles VehicleRemote
	txns     TransactionRemote
	notifier notify.Notifier
	logger   *zap.Logger
}

func New(st *store.Store, vehicles VehicleRemote, txns TransactionRemote, notifier notify.Notifier, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		store:    st,
		vehicles: vehicles,
		txns:     txns,
		notifier: notifier,
		logger:   logger,
	}
}

// Reconcile resolves local and remote state at startup, each collection
// independently. A remote with data supersedes local state wholesale; an
// empty remote gets every local record pushed up one at a time, with
// per-record failures logged and skipped.
func (s *Synchronizer) Reconcile(ctx context.Context) {
	s.reconcileVehicles(ctx)
	s.reconcileTransactions(ctx)
}

func (s *Synchronizer) reconcileVehicles(ctx context.Context) {
	remote, err := s.vehicles.List(ctx)
	if err != nil {
		s.logger.Error("failed to pull remote vehicles, keeping local state", zap.Error(err))
		return
	}

	if len(remote) > 0 {
		s.store.ReplaceAllVehicles(remote)
		s.logger.Info("replaced local vehicles with remote state", zap.Int("count", len(remote)))
		return
	}

	local := s.store.Vehicles()
	pushed := 0
	for i := range local {
		if err := s.vehicles.Upsert(ctx, &local[i]); err != nil {
			s.logger.Error("failed to push vehicle upstream",
				zap.String("id", local[i].ID), zap.Error(err))
			continue
		}
		pushed++
	}
	s.logger.Info("pushed local vehicles to empty remote",
		zap.Int("pushed", pushed), zap.Int("total", len(local)))
}

func (s *Synchronizer) reconcileTransactions(ctx context.Context) {
	remote, err := s.txns.List(ctx)
	if err != nil {
		s.logger.Error("failed to pull remote transactions, keeping local state", zap.Error(err))
		return
	}

	if len(remote) > 0 {
		s.store.ReplaceAllTransactions(remote)
		s.logger.Info("replaced local transactions with remote state", zap.Int("count", len(remote)))
		return
	}

	local := s.store.Transactions()
	pushed := 0
	for i := range local {
		if err := s.txns.Upsert(ctx, &local[i]); err != nil {
			s.logger.Error("failed to push transaction upstream",
				zap.String("id", local[i].ID), zap.Error(err))
			continue
		}
		pushed++
	}
	if len(local) > 0 {
		s.logger.Info("pushed local transactions to empty remote",
			zap.Int("pushed", pushed), zap.Int("total", len(local)))
	}
}

// Apply patches the local mirror from one change-feed event. Events from
// this session loop back through the feed; the mirror's apply primitives
// make that harmless (duplicate inserts ignored, stale versions dropped,
// missing deletes no-ops). Returns whether local state changed.
func (s *Synchronizer) Apply(ev *domainfeed.Event) bool {
	switch ev.Table {
	case domainfeed.TableVehicles:
		return s.applyVehicle(ev)
	case domainfeed.TableTransactions:
		return s.applyTransaction(ev)
	default:
		s.logger.Warn("feed event for unknown table", zap.String("table", string(ev.Table)))
		return false
	}
}

func (s *Synchronizer) applyVehicle(ev *domainfeed.Event) bool {
	switch ev.Op {
	case domainfeed.OpInsert:
		var v vehicle.Vehicle
		if err := ev.Decode(&v); err != nil {
			s.logger.Error("failed to decode vehicle insert event", zap.Error(err))
			return false
		}
		if !s.store.ApplyVehicleInsert(v) {
			return false
		}
		s.notifier.Notify("Novo anúncio", v.Brand+" "+v.Model+" chegou ao estoque.")
		return true

	case domainfeed.OpUpdate:
		var v vehicle.Vehicle
		if err := ev.Decode(&v); err != nil {
			s.logger.Error("failed to decode vehicle update event", zap.Error(err))
			return false
		}
		return s.store.ApplyVehicleUpdate(v)

	case domainfeed.OpDelete:
		return s.store.ApplyVehicleDelete(ev.RecordID)
	}

	s.logger.Warn("feed event with unknown op", zap.String("op", string(ev.Op)))
	return false
}

func (s *Synchronizer) applyTransaction(ev *domainfeed.Event) bool {
	// The transaction log is append-only; update and delete events are
	// not expected and ignored.
	if ev.Op != domainfeed.OpInsert {
		return false
	}
	var t transaction.Transaction
	if err := ev.Decode(&t); err != nil {
		s.logger.Error("failed to decode transaction insert event", zap.Error(err))
		return false
	}
	return s.store.ApplyTransactionInsert(t)
}
