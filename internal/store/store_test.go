package store

import (
	"testing"

	"autolot-service/internal/domain/transaction"
	"autolot-service/internal/domain/vehicle"
	xerrors "autolot-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	snapshots, err := NewSnapshots(t.TempDir())
	require.NoError(t, err)
	s := New(snapshots, zap.NewNop())
	require.NoError(t, s.Load())
	return s
}

func newInput(brand, model string, price float64) *vehicle.NewVehicleInput {
	return &vehicle.NewVehicleInput{
		Brand: brand,
		Model: model,
		Year:  2023,
		Price: price,
		Km:    1000,
		Color: "Preto",
	}
}

func TestLoadSeedsFreshInstall(t *testing.T) {
	s := newTestStore(t)

	assert.Len(t, s.Vehicles(), 3)
	assert.Empty(t, s.Transactions())
	for _, v := range s.Vehicles() {
		assert.Equal(t, vehicle.StatusAvailable, v.Status)
	}
}

func TestLoadReadsBackPersistedState(t *testing.T) {
	dir := t.TempDir()
	snapshots, err := NewSnapshots(dir)
	require.NoError(t, err)

	s := New(snapshots, zap.NewNop())
	require.NoError(t, s.Load())
	added := s.AddVehicle(newInput("Honda", "Civic", 95000))
	_, _, err = s.CloseOut(added.ID, vehicle.StatusSold, 95000, "")
	require.NoError(t, err)

	reopened := New(snapshots, zap.NewNop())
	require.NoError(t, reopened.Load())

	got, ok := reopened.GetVehicleByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, vehicle.StatusSold, got.Status)
	assert.Len(t, reopened.Transactions(), 1)
}

func TestAddVehicle(t *testing.T) {
	s := newTestStore(t)

	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	got, ok := s.GetVehicleByID(v.ID)
	require.True(t, ok)
	assert.Equal(t, vehicle.StatusAvailable, got.Status)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.Equal(t, int64(1), got.Version)
	assert.NotEmpty(t, got.ID)
}

func TestUpdateVehicle(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	newPrice := 89000.0
	updated, ok := s.UpdateVehicle(v.ID, &vehicle.UpdateInput{Price: &newPrice})
	require.True(t, ok)

	assert.Equal(t, 89000.0, updated.Price)
	assert.Equal(t, "Honda", updated.Brand)
	assert.Equal(t, int64(2), updated.Version)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestUpdateVehicleUnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	before := s.Vehicles()

	brand := "Fiat"
	_, ok := s.UpdateVehicle("car-missing", &vehicle.UpdateInput{Brand: &brand})

	assert.False(t, ok)
	assert.Equal(t, before, s.Vehicles())
}

func TestCloseOutSoldRecordsOneSaleTransaction(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	closed, txn, err := s.CloseOut(v.ID, vehicle.StatusSold, 92000, "à vista")
	require.NoError(t, err)
	require.NotNil(t, txn)

	assert.Equal(t, vehicle.StatusSold, closed.Status)
	assert.Equal(t, transaction.TypeSale, txn.Type)
	assert.Equal(t, 92000.0, txn.Amount)
	assert.Equal(t, v.ID, txn.VehicleID)
	assert.Equal(t, "à vista", txn.Notes)

	txns := s.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)
}

func TestCloseOutExchangedRecordsExchangeTransaction(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	_, txn, err := s.CloseOut(v.ID, vehicle.StatusExchanged, 80000, "")
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, transaction.TypeExchange, txn.Type)
}

func TestCloseOutDeletedRecordsNoTransaction(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	closed, txn, err := s.CloseOut(v.ID, vehicle.StatusDeleted, 95000, "")
	require.NoError(t, err)

	assert.Nil(t, txn)
	assert.Equal(t, vehicle.StatusDeleted, closed.Status)
	assert.Empty(t, s.Transactions())
}

func TestCloseOutZeroAmountRecordsNoTransaction(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	_, txn, err := s.CloseOut(v.ID, vehicle.StatusSold, 0, "")
	require.NoError(t, err)

	assert.Nil(t, txn)
	assert.Empty(t, s.Transactions())
}

func TestCloseOutUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.CloseOut("car-missing", vehicle.StatusSold, 10000, "")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

// Re-closing an already closed vehicle is not guarded: the status
// transitions again and a second transaction is recorded. The panel has
// always behaved this way.
func TestCloseOutTwiceRecordsTwoTransactions(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	_, _, err := s.CloseOut(v.ID, vehicle.StatusSold, 92000, "")
	require.NoError(t, err)
	_, _, err = s.CloseOut(v.ID, vehicle.StatusExchanged, 90000, "")
	require.NoError(t, err)

	assert.Len(t, s.Transactions(), 2)
	got, _ := s.GetVehicleByID(v.ID)
	assert.Equal(t, vehicle.StatusExchanged, got.Status)
}

func TestFilteredVehiclesExcludesClosedListings(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))
	_, _, err := s.CloseOut(v.ID, vehicle.StatusSold, 95000, "")
	require.NoError(t, err)

	s.ClearFilters()
	for _, got := range s.FilteredVehicles() {
		assert.Equal(t, vehicle.StatusAvailable, got.Status)
		assert.NotEqual(t, v.ID, got.ID)
	}
}

func TestFilteredVehiclesPriceRange(t *testing.T) {
	snapshots, err := NewSnapshots(t.TempDir())
	require.NoError(t, err)
	s := New(snapshots, zap.NewNop())
	require.NoError(t, s.Load())
	s.ReplaceAllVehicles(nil)

	s.AddVehicle(newInput("Fiat", "Argo", 50000))
	mid := s.AddVehicle(newInput("Honda", "Civic", 90000))
	s.AddVehicle(newInput("Bmw", "320i", 150000))

	s.SetFilters(vehicle.Filters{MinPrice: 60000, MaxPrice: 100000})
	got := s.FilteredVehicles()

	require.Len(t, got, 1)
	assert.Equal(t, mid.ID, got[0].ID)
}

func TestSetAndClearFilters(t *testing.T) {
	s := newTestStore(t)

	s.SetFilters(vehicle.Filters{Brand: "Toyota"})
	for _, v := range s.FilteredVehicles() {
		assert.Equal(t, "Toyota", v.Brand)
	}

	s.ClearFilters()
	assert.True(t, s.Filters().IsZero())
	assert.Len(t, s.FilteredVehicles(), 3)
}

func TestApplyVehicleInsertIgnoresDuplicateDelivery(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	assert.False(t, s.ApplyVehicleInsert(v))
	assert.Len(t, s.Vehicles(), 4)

	incoming := v
	incoming.ID = "car-remote"
	assert.True(t, s.ApplyVehicleInsert(incoming))
	assert.Len(t, s.Vehicles(), 5)
}

func TestApplyVehicleUpdateDropsStaleVersions(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	newPrice := 89000.0
	local, ok := s.UpdateVehicle(v.ID, &vehicle.UpdateInput{Price: &newPrice})
	require.True(t, ok)
	require.Equal(t, int64(2), local.Version)

	stale := v
	stale.Price = 999999
	stale.Version = 1
	assert.False(t, s.ApplyVehicleUpdate(stale))

	got, _ := s.GetVehicleByID(v.ID)
	assert.Equal(t, 89000.0, got.Price)

	newer := local
	newer.Price = 87000
	newer.Version = 3
	assert.True(t, s.ApplyVehicleUpdate(newer))
	got, _ = s.GetVehicleByID(v.ID)
	assert.Equal(t, 87000.0, got.Price)
}

func TestApplyVehicleUpdateUnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)

	ghost := vehicle.Vehicle{ID: "car-missing", Version: 99}
	assert.False(t, s.ApplyVehicleUpdate(ghost))
	assert.Len(t, s.Vehicles(), 3)
}

func TestApplyVehicleDeleteUnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	before := len(s.Vehicles())

	assert.False(t, s.ApplyVehicleDelete("car-missing"))
	assert.Len(t, s.Vehicles(), before)
}

func TestApplyVehicleDelete(t *testing.T) {
	s := newTestStore(t)
	v := s.AddVehicle(newInput("Honda", "Civic", 95000))

	assert.True(t, s.ApplyVehicleDelete(v.ID))
	_, ok := s.GetVehicleByID(v.ID)
	assert.False(t, ok)
}

func TestApplyTransactionInsertIgnoresDuplicates(t *testing.T) {
	s := newTestStore(t)

	txn := transaction.Transaction{ID: "txn-1", VehicleID: "car-1", Type: transaction.TypeSale, Amount: 100}
	assert.True(t, s.ApplyTransactionInsert(txn))
	assert.False(t, s.ApplyTransactionInsert(txn))
	assert.Len(t, s.Transactions(), 1)
}
