package sync

import (
	"context"
	"errors"
	"testing"

	domainfeed "autolot-service/internal/domain/feed"
	"autolot-service/internal/domain/transaction"
	"autolot-service/internal/domain/vehicle"
	"autolot-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- fakes ---

type fakeVehicleRemote struct {
	listOut []vehicle.Vehicle
	listErr error

	upserts   []string
	upsertErr map[string]error
}

func (f *fakeVehicleRemote) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeVehicleRemote) Upsert(ctx context.Context, v *vehicle.Vehicle) error {
	if err := f.upsertErr[v.ID]; err != nil {
		return err
	}
	f.upserts = append(f.upserts, v.ID)
	return nil
}

type fakeTransactionRemote struct {
	listOut []transaction.Transaction
	listErr error
	upserts []string
}

func (f *fakeTransactionRemote) List(ctx context.Context) ([]transaction.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTransactionRemote) Upsert(ctx context.Context, t *transaction.Transaction) error {
	f.upserts = append(f.upserts, t.ID)
	return nil
}

type fakeNotifier struct {
	titles []string
}

func (f *fakeNotifier) Notify(title, message string) {
	f.titles = append(f.titles, title)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	snapshots, err := store.NewSnapshots(t.TempDir())
	require.NoError(t, err)
	s := store.New(snapshots, zap.NewNop())
	require.NoError(t, s.Load())
	return s
}

func newSynchronizer(t *testing.T, st *store.Store, vr *fakeVehicleRemote, tr *fakeTransactionRemote) (*Synchronizer, *fakeNotifier) {
	t.Helper()
	n := &fakeNotifier{}
	return New(st, vr, tr, n, zap.NewNop()), n
}

func remoteVehicle(id string, version int64) vehicle.Vehicle {
	return vehicle.Vehicle{
		ID:      id,
		Brand:   "Honda",
		Model:   "Civic",
		Year:    2023,
		Price:   95000,
		Status:  vehicle.StatusAvailable,
		Version: version,
	}
}

// --- reconciliation ---

func TestReconcileRemoteDataReplacesLocalWholesale(t *testing.T) {
	st := newTestStore(t)
	require.Len(t, st.Vehicles(), 3)

	vr := &fakeVehicleRemote{listOut: []vehicle.Vehicle{remoteVehicle("car-r1", 1)}}
	tr := &fakeTransactionRemote{}
	s, _ := newSynchronizer(t, st, vr, tr)

	s.Reconcile(context.Background())

	got := st.Vehicles()
	require.Len(t, got, 1)
	assert.Equal(t, "car-r1", got[0].ID)
	assert.Empty(t, vr.upserts)
}

func TestReconcileEmptyRemotePushesEveryLocalRecord(t *testing.T) {
	st := newTestStore(t)
	local := st.Vehicles()
	require.Len(t, local, 3)

	vr := &fakeVehicleRemote{}
	tr := &fakeTransactionRemote{}
	s, _ := newSynchronizer(t, st, vr, tr)

	s.Reconcile(context.Background())

	assert.Len(t, vr.upserts, 3)
	assert.Len(t, st.Vehicles(), 3)
}

func TestReconcileSkipsFailedUpsertsWithoutAborting(t *testing.T) {
	st := newTestStore(t)
	ids := st.Vehicles()

	vr := &fakeVehicleRemote{upsertErr: map[string]error{ids[1].ID: errors.New("boom")}}
	tr := &fakeTransactionRemote{}
	s, _ := newSynchronizer(t, st, vr, tr)

	s.Reconcile(context.Background())

	assert.Len(t, vr.upserts, 2)
	assert.Len(t, st.Vehicles(), 3)
}

func TestReconcilePullFailureKeepsLocalState(t *testing.T) {
	st := newTestStore(t)

	vr := &fakeVehicleRemote{listErr: errors.New("unreachable")}
	tr := &fakeTransactionRemote{listErr: errors.New("unreachable")}
	s, _ := newSynchronizer(t, st, vr, tr)

	s.Reconcile(context.Background())

	assert.Len(t, st.Vehicles(), 3)
	assert.Empty(t, vr.upserts)
}

func TestReconcileTransactionsIndependently(t *testing.T) {
	st := newTestStore(t)
	remoteTxns := []transaction.Transaction{
		{ID: "txn-r1", VehicleID: "car-r1", Type: transaction.TypeSale, Amount: 100},
	}

	vr := &fakeVehicleRemote{listErr: errors.New("unreachable")}
	tr := &fakeTransactionRemote{listOut: remoteTxns}
	s, _ := newSynchronizer(t, st, vr, tr)

	s.Reconcile(context.Background())

	require.Len(t, st.Transactions(), 1)
	assert.Equal(t, "txn-r1", st.Transactions()[0].ID)
}

// --- change-feed application ---

func mustEvent(t *testing.T, op domainfeed.Op, table domainfeed.Table, id string, record any) *domainfeed.Event {
	t.Helper()
	ev, err := domainfeed.NewEvent(op, table, id, record)
	require.NoError(t, err)
	return ev
}

func TestApplyInsertAppendsAndNotifies(t *testing.T) {
	st := newTestStore(t)
	s, n := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})

	v := remoteVehicle("car-r1", 1)
	applied := s.Apply(mustEvent(t, domainfeed.OpInsert, domainfeed.TableVehicles, v.ID, v))

	assert.True(t, applied)
	assert.Len(t, st.Vehicles(), 4)
	require.Len(t, n.titles, 1)
	assert.Equal(t, "Novo anúncio", n.titles[0])
}

func TestApplyInsertDuplicateDeliveryIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	s, n := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})

	v := remoteVehicle("car-r1", 1)
	ev := mustEvent(t, domainfeed.OpInsert, domainfeed.TableVehicles, v.ID, v)

	assert.True(t, s.Apply(ev))
	assert.False(t, s.Apply(ev))
	assert.Len(t, st.Vehicles(), 4)
	assert.Len(t, n.titles, 1)
}

func TestApplyUpdateReplacesRecord(t *testing.T) {
	st := newTestStore(t)
	s, _ := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})

	local, ok := st.GetVehicleByID("car-1")
	require.True(t, ok)

	updated := local
	updated.Price = 110000
	updated.Version = local.Version + 1
	applied := s.Apply(mustEvent(t, domainfeed.OpUpdate, domainfeed.TableVehicles, updated.ID, updated))

	assert.True(t, applied)
	got, _ := st.GetVehicleByID("car-1")
	assert.Equal(t, 110000.0, got.Price)
}

func TestApplyUpdateAbsentIDIsNoOp(t *testing.T) {
	st := newTestStore(t)
	s, _ := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})

	ghost := remoteVehicle("car-missing", 5)
	applied := s.Apply(mustEvent(t, domainfeed.OpUpdate, domainfeed.TableVehicles, ghost.ID, ghost))

	assert.False(t, applied)
	assert.Len(t, st.Vehicles(), 3)
}

func TestApplyDeleteAbsentIDIsNoOp(t *testing.T) {
	st := newTestStore(t)
	s, _ := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})
	before := len(st.Vehicles())

	applied := s.Apply(&domainfeed.Event{
		Op:       domainfeed.OpDelete,
		Table:    domainfeed.TableVehicles,
		RecordID: "car-missing",
	})

	assert.False(t, applied)
	assert.Len(t, st.Vehicles(), before)
}

func TestApplyDeleteRemovesRecord(t *testing.T) {
	st := newTestStore(t)
	s, _ := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})

	applied := s.Apply(&domainfeed.Event{
		Op:       domainfeed.OpDelete,
		Table:    domainfeed.TableVehicles,
		RecordID: "car-1",
	})

	assert.True(t, applied)
	_, ok := st.GetVehicleByID("car-1")
	assert.False(t, ok)
}

func TestApplyTransactionInsert(t *testing.T) {
	st := newTestStore(t)
	s, _ := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})

	txn := transaction.Transaction{ID: "txn-r1", VehicleID: "car-1", Type: transaction.TypeSale, Amount: 100}
	ev := mustEvent(t, domainfeed.OpInsert, domainfeed.TableTransactions, txn.ID, txn)

	assert.True(t, s.Apply(ev))
	assert.False(t, s.Apply(ev))
	assert.Len(t, st.Transactions(), 1)
}

func TestApplyUnknownTableIsIgnored(t *testing.T) {
	st := newTestStore(t)
	s, _ := newSynchronizer(t, st, &fakeVehicleRemote{}, &fakeTransactionRemote{})

	applied := s.Apply(&domainfeed.Event{Op: domainfeed.OpInsert, Table: "mystery"})
	assert.False(t, applied)
}
