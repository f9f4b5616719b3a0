package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// ProjectedRR returns the planned reward to risk ratio. A plan whose stop sits
// on the entry has no defined ratio and yields 0.
func ProjectedRR(t domain.Trade) float64 {
	return ratio(plannedReward(t), riskDistance(t)).InexactFloat64()
}

// plannedReward is the entry to target distance in price units.
func plannedReward(t domain.Trade) decimal.Decimal {
	return finiteDecimal(t.PlannedTakeProfit).Sub(finiteDecimal(t.PlannedEntryPrice)).Abs()
}

// ActualRR returns the realized result as a multiple of the planned risk. ok is
// false until both the executed entry and the exit are known.
func ActualRR(t domain.Trade) (rr float64, ok bool) {
	if t.ExecutedEntryPrice == nil || t.ExitPrice == nil {
		return 0, false
	}
	return ratio(signedResult(t), riskDistance(t)).InexactFloat64(), true
}

// ClassifyOutcome compares the exit with the executed entry from the side's
// point of view.
func ClassifyOutcome(t domain.Trade) domain.Outcome {
	if t.ExecutedEntryPrice == nil || t.ExitPrice == nil {
		return domain.OutcomePending
	}

	entry, exit := *t.ExecutedEntryPrice, *t.ExitPrice
	if t.Side == domain.SideBuy {
		switch {
		case exit > entry:
			return domain.OutcomeWin
		case exit < entry:
			return domain.OutcomeLoss
		}
		return domain.OutcomeBreakeven
	}

	switch {
	case exit < entry:
		return domain.OutcomeWin
	case exit > entry:
		return domain.OutcomeLoss
	}
	return domain.OutcomeBreakeven
}

// InferProjectedOutcome labels a closed trade TP or SL by whichever planned
// level the exit landed closer to. Equal distances count as SL. The comparison
// is the same for both sides.
func InferProjectedOutcome(t domain.Trade) domain.ProjectedOutcome {
	if !t.Closed || t.ExitPrice == nil || t.ExecutedEntryPrice == nil {
		return domain.ProjectedNone
	}

	exit := finiteDecimal(*t.ExitPrice)
	distanceToTP := exit.Sub(finiteDecimal(t.PlannedTakeProfit)).Abs()
	distanceToSL := exit.Sub(finiteDecimal(t.PlannedStopLoss)).Abs()
	if distanceToTP.LessThan(distanceToSL) {
		return domain.ProjectedTP
	}
	return domain.ProjectedSL
}

// signedResult is the exit minus the executed entry, positive when the trade
// made money. Callers check both prices are present.
func signedResult(t domain.Trade) decimal.Decimal {
	entry, exit := finiteDecimal(*t.ExecutedEntryPrice), finiteDecimal(*t.ExitPrice)
	if t.Side == domain.SideBuy {
		return exit.Sub(entry)
	}
	return entry.Sub(exit)
}
