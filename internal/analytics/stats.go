package analytics

import (
	"math"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// Summarize computes the headline statistics for a set of trades. Money values
// come from the actual chart series, so they follow the engine's risk policy.
// Win rate is taken over decided trades (wins and losses), breakevens excluded.
func (e *Engine) Summarize(trades []domain.Trade) domain.SeriesStats {
	stats := domain.SeriesStats{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return stats
	}

	points := e.BuildSeries(trades)

	var sumWin, sumLoss float64
	var rTotal float64
	var rCount int
	best := math.Inf(-1)
	worst := math.Inf(1)
	realized := make([]domain.ChartPoint, 0, len(points))

	for i, t := range trades {
		if t.Closed {
			stats.ClosedTrades++
		}
		stats.NetProjected += points[i].Projected

		outcome := ClassifyOutcome(t)
		if outcome == domain.OutcomePending {
			continue
		}

		value := points[i].Actual
		switch outcome {
		case domain.OutcomeWin:
			stats.Wins++
			sumWin += value
		case domain.OutcomeLoss:
			stats.Losses++
			sumLoss += value
		default:
			stats.Breakevens++
		}

		if t.Closed {
			if value > best {
				best = value
			}
			if value < worst {
				worst = value
			}
			realized = append(realized, points[i])
		}

		if rr, ok := ActualRR(t); ok && RiskInPips(t) > 0 {
			rTotal += rr
			rCount++
		}
	}

	decided := stats.Wins + stats.Losses
	stats.WinRate = safeDivide(float64(stats.Wins), float64(decided))
	stats.AverageWin = safeDivide(sumWin, float64(stats.Wins))
	stats.AverageLoss = safeDivide(sumLoss, float64(stats.Losses))
	stats.ProfitFactor = safeDivide(sumWin, math.Abs(sumLoss))
	if decided > 0 {
		stats.Expectancy = stats.WinRate*stats.AverageWin + (1-stats.WinRate)*stats.AverageLoss
	}
	stats.AverageR = safeDivide(rTotal, float64(rCount))

	if len(realized) > 0 {
		stats.BestTrade = best
		stats.WorstTrade = worst
	}

	curve := CumulativeSeries(realized)
	stats.MaxDrawdown = maxDrawdown(curve)
	if n := len(curve); n > 0 {
		stats.NetActual = curve[n-1].Cumulative
	}
	return stats
}

// maxDrawdown is the largest fall of the cumulative curve from a previous
// peak. The curve starts from a flat 0.
func maxDrawdown(curve []domain.CumulativePoint) float64 {
	var peak, drawdown float64
	for _, p := range curve {
		if p.Cumulative > peak {
			peak = p.Cumulative
		}
		if dd := peak - p.Cumulative; dd > drawdown {
			drawdown = dd
		}
	}
	return drawdown
}
