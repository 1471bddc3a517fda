package postgres

import (
	"context"
	"fmt"

	"autolot-service/internal/domain/transaction"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List retrieves the full remote transaction log ordered by date.
func (r *TransactionRepository) List(ctx context.Context) ([]transaction.Transaction, error) {
	query := `
		SELECT id, vehicle_id, type, amount, date, notes
		FROM transactions
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []transaction.Transaction{}
	for rows.Next() {
		var t transaction.Transaction
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.Type, &t.Amount, &t.Date, &t.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}

	return txns, rows.Err()
}

// Insert records a new remote transaction row. Transactions are immutable,
// so there is no update counterpart.
func (r *TransactionRepository) Insert(ctx context.Context, t *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, vehicle_id, type, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query, t.ID, t.VehicleID, t.Type, t.Amount, t.Date, t.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
	}
	return nil
}

// Upsert inserts the row, replacing any stale copy by identifier. Used by
// the push half of reconciliation.
func (r *TransactionRepository) Upsert(ctx context.Context, t *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, vehicle_id, type, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET vehicle_id = EXCLUDED.vehicle_id, type = EXCLUDED.type,
		    amount = EXCLUDED.amount, date = EXCLUDED.date, notes = EXCLUDED.notes
	`

	_, err := r.db.Exec(ctx, query, t.ID, t.VehicleID, t.Type, t.Amount, t.Date, t.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction %s: %w", t.ID, err)
	}
	return nil
}
