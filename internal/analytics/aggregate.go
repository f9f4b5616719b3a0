package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// Overview combines a user's accounts into one portfolio view. Balances and
// PnL are summed, ROI and winrate are plain means over accounts, and the chart
// data is each account's series appended in account order. No accounts gives a
// zeroed overview with an empty chart.
func (e *Engine) Overview(accounts []domain.Account, trades []domain.Trade) domain.PortfolioOverview {
	balance := decimal.Zero
	pnl := decimal.Zero
	roi := decimal.Zero
	winrate := decimal.Zero
	chart := make([]domain.ChartPoint, 0)

	for _, acc := range accounts {
		balance = balance.Add(finiteDecimal(acc.CurrentBalance))
		pnl = pnl.Add(finiteDecimal(acc.PnL))
		roi = roi.Add(finiteDecimal(acc.ROI))
		winrate = winrate.Add(finiteDecimal(acc.Winrate))
		chart = append(chart, e.BuildSeriesForAccount(trades, acc.ID)...)
	}

	overview := domain.PortfolioOverview{
		CurrentBalance: balance.InexactFloat64(),
		PnL:            pnl.InexactFloat64(),
		ChartData:      chart,
	}
	if n := len(accounts); n > 0 {
		count := decimal.NewFromInt(int64(n))
		overview.ROI = roi.Div(count).InexactFloat64()
		overview.Winrate = winrate.Div(count).InexactFloat64()
	}
	return overview
}

func finiteDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
