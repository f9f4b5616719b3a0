package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// BuildSeries maps each trade to a chart point, in input order. Actual is the
// realized result scaled to the trade's risk amount; Projected is what holding
// to the inferred target would have produced. Both stay 0 until the trade is
// closed. Points are keyed by UpdatedAt, the time of the trade's last action.
func (e *Engine) BuildSeries(trades []domain.Trade) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, len(trades))
	for _, t := range trades {
		points = append(points, e.chartPoint(t))
	}
	return points
}

// BuildSeriesForAccount is BuildSeries over the account's trades only.
func (e *Engine) BuildSeriesForAccount(trades []domain.Trade, accountID string) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0)
	for _, t := range trades {
		if t.AccountID != accountID {
			continue
		}
		points = append(points, e.chartPoint(t))
	}
	return points
}

func (e *Engine) chartPoint(t domain.Trade) domain.ChartPoint {
	risk := e.riskMoney(t)

	// Scaling the result by risk over planned distance reduces to valuing
	// the result directly; a zero planned distance keeps it at zero.
	actual := decimal.Zero
	if t.Closed && t.ExitPrice != nil && t.ExecutedEntryPrice != nil && !risk.IsZero() {
		actual = e.priceToMoney(t, signedResult(t))
	}

	projected := decimal.Zero
	if t.Closed && !risk.IsZero() {
		switch t.ProjectedOutcome {
		case domain.ProjectedTP:
			projected = e.priceToMoney(t, plannedReward(t))
		case domain.ProjectedSL:
			projected = risk.Neg()
		}
	}

	return domain.ChartPoint{
		ID:        t.ID,
		X:         t.UpdatedAt,
		Actual:    actual.InexactFloat64(),
		Projected: projected.InexactFloat64(),
	}
}

// CumulativeSeries sorts points by time, keeping the relative order of equal
// timestamps, and accumulates actual and projected values from zero. The input
// slice is not reordered.
func CumulativeSeries(points []domain.ChartPoint) []domain.CumulativePoint {
	sorted := make([]domain.ChartPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X.Before(sorted[j].X)
	})

	out := make([]domain.CumulativePoint, 0, len(sorted))
	var cumulative, projected float64
	for _, p := range sorted {
		cumulative += p.Actual
		projected += p.Projected
		out = append(out, domain.CumulativePoint{
			X:                   p.X,
			Cumulative:          cumulative,
			ProjectedCumulative: projected,
		})
	}
	return out
}

// GroupByTimeFrame totals points per UTC day, week (starting Monday) or month,
// sorted by period.
func GroupByTimeFrame(points []domain.ChartPoint, tf domain.TimeFrame) ([]domain.PeriodSummary, error) {
	if !tf.Valid() {
		return nil, fmt.Errorf("%w: unknown timeframe %q", domain.ErrInvalidInput, tf)
	}

	index := make(map[string]int)
	out := make([]domain.PeriodSummary, 0)
	for _, p := range points {
		key := periodKey(p.X, tf)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, domain.PeriodSummary{Period: key})
		}
		out[i].TotalActual += p.Actual
		out[i].TotalProjected += p.Projected
		out[i].TradeCount++
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Period < out[j].Period
	})
	return out, nil
}

func periodKey(ts time.Time, tf domain.TimeFrame) string {
	ts = ts.UTC()
	switch tf {
	case domain.TimeFrameWeek:
		offset := (int(ts.Weekday()) + 6) % 7
		start := time.Date(ts.Year(), ts.Month(), ts.Day()-offset, 0, 0, 0, 0, time.UTC)
		return start.Format("2006-01-02")
	case domain.TimeFrameMonth:
		return ts.Format("2006-01")
	default:
		return ts.Format("2006-01-02")
	}
}
