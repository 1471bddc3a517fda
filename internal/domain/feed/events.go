package feed

import (
	"encoding/json"
	"fmt"
)

// Op is the kind of change carried by a feed event.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Table names the remote collection an event belongs to. One pub/sub
// channel exists per table.
type Table string

const (
	TableVehicles     Table = "vehicles"
	TableTransactions Table = "transactions"
)

// Channel returns the pub/sub channel name for t.
func (t Table) Channel() string {
	switch t {
	case TableVehicles:
		return "cars-channel"
	case TableTransactions:
		return "transactions-channel"
	}
	return string(t)
}

// Event is one change notification. Record holds the full row for insert
// and update; delete events carry only RecordID.
type Event struct {
	Op       Op              `json:"op"`
	Table    Table           `json:"table"`
	RecordID string          `json:"record_id"`
	Record   json.RawMessage `json:"record,omitempty"`
}

// NewEvent marshals record into an Event payload.
func NewEvent(op Op, table Table, recordID string, record any) (*Event, error) {
	ev := &Event{Op: op, Table: table, RecordID: recordID}
	if record != nil {
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal feed record: %w", err)
		}
		ev.Record = raw
	}
	return ev, nil
}

// Decode unmarshals the carried record into out.
func (e *Event) Decode(out any) error {
	if len(e.Record) == 0 {
		return fmt.Errorf("feed event %s/%s has no record payload", e.Table, e.Op)
	}
	return json.Unmarshal(e.Record, out)
}
