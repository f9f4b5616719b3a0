package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// Detail collects the derived fields shown on a single trade's page.
func (e *Engine) Detail(t domain.Trade) domain.TradeDetail {
	detail := domain.TradeDetail{
		Trade:       t,
		PipSize:     PipSize(t.Instrument),
		RiskInPips:  RiskInPips(t),
		RiskPips:    RiskPips(t),
		RiskAmount:  e.RiskAmount(t),
		ProjectedRR: ProjectedRR(t),
		Outcome:     ClassifyOutcome(t),
	}
	if rr, ok := ActualRR(t); ok {
		detail.ActualRR = &rr
	}
	if ladder, ok := e.Ladder(t); ok {
		detail.Ladder = ladder
	}
	return detail
}

// Ladder lays the planned path (entry, stop, target) beside the actual one
// (entry, exit) in money and R. It is only available once the trade has both
// an executed entry and an exit.
func (e *Engine) Ladder(t domain.Trade) (*domain.TradeLadder, bool) {
	if t.ExecutedEntryPrice == nil || t.ExitPrice == nil {
		return nil, false
	}

	riskMoney := e.riskMoney(t)
	projectedMoney := e.pnlBetween(t, t.PlannedEntryPrice, t.PlannedTakeProfit)
	actualMoney := e.pnlBetween(t, *t.ExecutedEntryPrice, *t.ExitPrice)

	risk := riskMoney.InexactFloat64()
	projectedPnL := projectedMoney.InexactFloat64()
	actualPnL := actualMoney.InexactFloat64()
	projectedR := ratio(projectedMoney, riskMoney).InexactFloat64()
	actualR := ratio(actualMoney, riskMoney).InexactFloat64()

	levels := []domain.LadderLevel{
		{
			Label:        "Entry",
			PlannedPrice: floatPtr(t.PlannedEntryPrice),
			ActualPrice:  floatPtr(*t.ExecutedEntryPrice),
			PlannedPnL:   floatPtr(0),
			ActualPnL:    floatPtr(0),
			PlannedR:     floatPtr(0),
			ActualR:      floatPtr(0),
		},
		{
			Label:        "Stop Loss",
			PlannedPrice: floatPtr(t.PlannedStopLoss),
			PlannedPnL:   floatPtr(-risk),
			PlannedR:     floatPtr(-1),
		},
		{
			Label:        "Take Profit",
			PlannedPrice: floatPtr(t.PlannedTakeProfit),
			PlannedPnL:   floatPtr(projectedPnL),
			PlannedR:     floatPtr(projectedR),
		},
		{
			Label:       "Exit",
			ActualPrice: floatPtr(*t.ExitPrice),
			ActualPnL:   floatPtr(actualPnL),
			ActualR:     floatPtr(actualR),
		},
	}

	return &domain.TradeLadder{
		Levels: levels,
		Summary: domain.LadderSummary{
			RiskAmount:   risk,
			ProjectedPnL: projectedPnL,
			ActualPnL:    actualPnL,
			ProjectedRR:  projectedR,
			ActualRR:     actualR,
			Difference:   projectedMoney.Sub(actualMoney).InexactFloat64(),
		},
	}, true
}

// pnlBetween values a move from one price to another, positive when the move
// favours the trade's side.
func (e *Engine) pnlBetween(t domain.Trade, from, to float64) decimal.Decimal {
	move := finiteDecimal(to).Sub(finiteDecimal(from))
	if t.Side == domain.SideSell {
		move = move.Neg()
	}
	return e.priceToMoney(t, move)
}

func floatPtr(v float64) *float64 {
	return &v
}
