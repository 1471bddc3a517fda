package transaction

import "time"

// Type distinguishes how a vehicle left the inventory.
type Type string

const (
	TypeSale     Type = "sale"
	TypeExchange Type = "exchange"
)

// Transaction is an immutable log entry recorded when a vehicle is sold or
// exchanged. It is created exactly once and never mutated afterward.
type Transaction struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Type      Type      `json:"type"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
}

// Summary aggregates the transaction log for the dashboard front page.
type Summary struct {
	TotalSales      int     `json:"total_sales"`
	TotalExchanges  int     `json:"total_exchanges"`
	SalesRevenue    float64 `json:"sales_revenue"`
	ExchangeRevenue float64 `json:"exchange_revenue"`
}

// Summarize builds a Summary over txns.
func Summarize(txns []Transaction) Summary {
	var s Summary
	for _, t := range txns {
		switch t.Type {
		case TypeSale:
			s.TotalSales++
			s.SalesRevenue += t.Amount
		case TypeExchange:
			s.TotalExchanges++
			s.ExchangeRevenue += t.Amount
		}
	}
	return s
}
