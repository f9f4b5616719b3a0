package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

const tolerance = 1e-6

var baseTime = time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

func pipEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(PolicyPipAccurate)
	require.NoError(t, err)
	return e
}

func simpleEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(PolicySimple)
	require.NoError(t, err)
	return e
}

func f64(v float64) *float64 {
	return &v
}

func str(v string) *string {
	return &v
}

// eurusdBuy is a one lot EURUSD plan risking 50 pips for 100.
func eurusdBuy() domain.Trade {
	return domain.Trade{
		ID:                "t-buy",
		UserID:            "u1",
		AccountID:         "a1",
		Instrument:        "EURUSD",
		Side:              domain.SideBuy,
		PlannedEntryPrice: 1.2000,
		PlannedStopLoss:   1.1950,
		PlannedTakeProfit: 1.2100,
		Size:              1,
		ExecutionStyle:    domain.ExecutionMarket,
		Status:            domain.TradeStatusPending,
		CreatedAt:         baseTime,
		UpdatedAt:         baseTime,
	}
}

// eurusdSell mirrors eurusdBuy around the entry.
func eurusdSell() domain.Trade {
	t := eurusdBuy()
	t.ID = "t-sell"
	t.Side = domain.SideSell
	t.PlannedStopLoss = 1.2050
	t.PlannedTakeProfit = 1.1900
	return t
}

func closed(t domain.Trade, entry, exit float64, at time.Time) domain.Trade {
	t.ExecutedEntryPrice = f64(entry)
	t.ExitPrice = f64(exit)
	t.Closed = true
	t.Status = domain.TradeStatusClosed
	t.UpdatedAt = at
	t.ProjectedOutcome = InferProjectedOutcome(t)
	return t
}
