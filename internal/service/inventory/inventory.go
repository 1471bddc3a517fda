// Package inventory coordinates the local mirror, the optional remote
// store and the change feed behind the contract the pages consume. Every
// mutation lands locally first and always succeeds from the caller's
// point of view; the matching remote write happens in the background and
// a failure there only raises a "sync failed" notification.
package inventory

import (
	"context"
	"fmt"

	domainfeed "autolot-service/internal/domain/feed"
	"autolot-service/internal/domain/transaction"
	"autolot-service/internal/domain/vehicle"
	xerrors "autolot-service/internal/pkg/errors"
	"autolot-service/internal/pkg/notify"
	"autolot-service/internal/store"

	"go.uber.org/zap"
)

// VehicleRemote is the slice of the remote vehicle table this service
// writes to. Nil when the application runs local-only.
type VehicleRemote interface {
	Insert(ctx context.Context, v *vehicle.Vehicle) error
	Update(ctx context.Context, v *vehicle.Vehicle) error
}

// TransactionRemote is the transaction-table counterpart.
type TransactionRemote interface {
	Insert(ctx context.Context, t *transaction.Transaction) error
}

// EventPublisher pushes change events onto the realtime feed. Nil when the
// feed is not configured.
type EventPublisher interface {
	Publish(ctx context.Context, ev *domainfeed.Event) error
}

type Service struct {
	store     *store.Store
	vehicles  VehicleRemote
	txns      TransactionRemote
	publisher EventPublisher
	notifier  notify.Notifier
	logger    *zap.Logger
}

func NewService(
	st *store.Store,
	vehicles VehicleRemote,
	txns TransactionRemote,
	publisher EventPublisher,
	notifier notify.Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:     st,
		vehicles:  vehicles,
		txns:      txns,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}
}

// ---------- mutations ----------

// AddVehicle creates a new available listing. The local add always stands;
// the remote insert runs in the background.
func (s *Service) AddVehicle(ctx context.Context, in *vehicle.NewVehicleInput) vehicle.Vehicle {
	v := s.store.AddVehicle(in)
	s.notifier.Notify("Anúncio adicionado", fmt.Sprintf("%s %s foi adicionado ao estoque.", v.Brand, v.Model))

	if s.vehicles != nil {
		go s.remoteWrite(domainfeed.OpInsert, v, func(ctx context.Context) error {
			return s.vehicles.Insert(ctx, &v)
		})
	}
	return v
}

// UpdateVehicle merges the populated fields into the listing.
func (s *Service) UpdateVehicle(ctx context.Context, id string, in *vehicle.UpdateInput) (vehicle.Vehicle, error) {
	v, ok := s.store.UpdateVehicle(id, in)
	if !ok {
		return vehicle.Vehicle{}, xerrors.ErrNotFound
	}
	s.notifier.Notify("Anúncio atualizado", "As alterações foram salvas.")

	if s.vehicles != nil {
		go s.remoteWrite(domainfeed.OpUpdate, v, func(ctx context.Context) error {
			return s.vehicles.Update(ctx, &v)
		})
	}
	return v, nil
}

// CloseOutVehicle transitions a listing to sold, exchanged or deleted. For
// sold and exchanged with a positive amount exactly one transaction is
// recorded alongside.
func (s *Service) CloseOutVehicle(ctx context.Context, id string, outcome vehicle.Status, amount float64, notes string) (vehicle.Vehicle, *transaction.Transaction, error) {
	if !outcome.Terminal() {
		return vehicle.Vehicle{}, nil, fmt.Errorf("%w: invalid close-out outcome %q", xerrors.ErrInvalidInput, outcome)
	}

	v, txn, err := s.store.CloseOut(id, outcome, amount, notes)
	if err != nil {
		return vehicle.Vehicle{}, nil, err
	}

	switch outcome {
	case vehicle.StatusDeleted:
		s.notifier.Notify("Anúncio excluído", fmt.Sprintf("%s %s foi removido do estoque.", v.Brand, v.Model))
	case vehicle.StatusSold:
		s.notifier.Notify("Carro vendido", fmt.Sprintf("%s %s foi vendido por R$ %.2f.", v.Brand, v.Model, amount))
	case vehicle.StatusExchanged:
		s.notifier.Notify("Carro trocado", fmt.Sprintf("%s %s foi trocado por R$ %.2f.", v.Brand, v.Model, amount))
	}

	if s.vehicles != nil {
		go s.remoteWrite(domainfeed.OpUpdate, v, func(ctx context.Context) error {
			return s.vehicles.Update(ctx, &v)
		})
	}
	if txn != nil && s.txns != nil {
		t := *txn
		go s.remoteTransactionInsert(t)
	}

	return v, txn, nil
}

// remoteWrite performs one background remote vehicle write and, when it
// succeeds, publishes the matching feed event. There is no cancellation:
// the write carries its own context and outlives the HTTP request.
func (s *Service) remoteWrite(op domainfeed.Op, v vehicle.Vehicle, write func(ctx context.Context) error) {
	ctx := context.Background()

	if err := write(ctx); err != nil {
		s.logger.Error("remote vehicle write failed",
			zap.String("op", string(op)), zap.String("id", v.ID), zap.Error(err))
		s.notifier.Notify("Sincronização falhou", "A alteração foi salva localmente, mas não no servidor.")
		return
	}

	s.publish(ctx, op, domainfeed.TableVehicles, v.ID, v)
}

func (s *Service) remoteTransactionInsert(t transaction.Transaction) {
	ctx := context.Background()

	if err := s.txns.Insert(ctx, &t); err != nil {
		s.logger.Error("remote transaction write failed",
			zap.String("id", t.ID), zap.Error(err))
		s.notifier.Notify("Sincronização falhou", "A transação foi salva localmente, mas não no servidor.")
		return
	}

	s.publish(ctx, domainfeed.OpInsert, domainfeed.TableTransactions, t.ID, t)
}

func (s *Service) publish(ctx context.Context, op domainfeed.Op, table domainfeed.Table, id string, record any) {
	if s.publisher == nil {
		return
	}
	ev, err := domainfeed.NewEvent(op, table, id, record)
	if err != nil {
		s.logger.Error("failed to build feed event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Error("failed to publish feed event",
			zap.String("op", string(op)), zap.String("id", id), zap.Error(err))
	}
}

// ---------- filters and reads ----------

func (s *Service) SetFilters(f vehicle.Filters) {
	s.store.SetFilters(f)
}

func (s *Service) ClearFilters() {
	s.store.ClearFilters()
}

func (s *Service) FilteredVehicles() []vehicle.Vehicle {
	return s.store.FilteredVehicles()
}

func (s *Service) VehiclesMatching(f vehicle.Filters) []vehicle.Vehicle {
	return s.store.VehiclesMatching(f)
}

func (s *Service) GetVehicleByID(id string) (vehicle.Vehicle, bool) {
	return s.store.GetVehicleByID(id)
}

func (s *Service) Vehicles() []vehicle.Vehicle {
	return s.store.Vehicles()
}

func (s *Service) Transactions() []transaction.Transaction {
	return s.store.Transactions()
}

// FeaturedVehicles returns the available listings highlighted on the home
// page.
func (s *Service) FeaturedVehicles() []vehicle.Vehicle {
	out := []vehicle.Vehicle{}
	for _, v := range s.store.VehiclesMatching(vehicle.Filters{}) {
		if v.Featured {
			out = append(out, v)
		}
	}
	return out
}

// FilterOptions are the distinct values the search form offers.
type FilterOptions struct {
	Brands []string `json:"brands"`
	Colors []string `json:"colors"`
}

// Options collects distinct brands and colors across available listings,
// in first-seen order.
func (s *Service) Options() FilterOptions {
	opts := FilterOptions{Brands: []string{}, Colors: []string{}}
	seenBrand := map[string]bool{}
	seenColor := map[string]bool{}
	for _, v := range s.store.VehiclesMatching(vehicle.Filters{}) {
		if v.Brand != "" && !seenBrand[v.Brand] {
			seenBrand[v.Brand] = true
			opts.Brands = append(opts.Brands, v.Brand)
		}
		if v.Color != "" && !seenColor[v.Color] {
			seenColor[v.Color] = true
			opts.Colors = append(opts.Colors, v.Color)
		}
	}
	return opts
}

// Summary aggregates the transaction log for the dashboard.
func (s *Service) Summary() transaction.Summary {
	return transaction.Summarize(s.store.Transactions())
}
