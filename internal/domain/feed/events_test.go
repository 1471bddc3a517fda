package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableChannels(t *testing.T) {
	assert.Equal(t, "cars-channel", TableVehicles.Channel())
	assert.Equal(t, "transactions-channel", TableTransactions.Channel())
}

func TestEventRoundTrip(t *testing.T) {
	type record struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}

	ev, err := NewEvent(OpUpdate, TableVehicles, "car-1", record{ID: "car-1", Price: 120000})
	require.NoError(t, err)

	var got record
	require.NoError(t, ev.Decode(&got))
	assert.Equal(t, "car-1", got.ID)
	assert.Equal(t, 120000.0, got.Price)
}

func TestDecodeWithoutPayload(t *testing.T) {
	ev := &Event{Op: OpDelete, Table: TableVehicles, RecordID: "car-1"}

	var out struct{}
	assert.Error(t, ev.Decode(&out))
}
