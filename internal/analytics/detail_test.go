package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

func TestDetailForPendingTrade(t *testing.T) {
	e := pipEngine(t)

	detail := e.Detail(eurusdBuy())

	assert.Equal(t, 0.0001, detail.PipSize)
	assert.Equal(t, 0.005, detail.RiskInPips)
	assert.Equal(t, 50.0, detail.RiskPips)
	assert.Equal(t, 500.0, detail.RiskAmount)
	assert.Equal(t, 2.0, detail.ProjectedRR)
	assert.Nil(t, detail.ActualRR)
	assert.Equal(t, domain.OutcomePending, detail.Outcome)
	assert.Nil(t, detail.Ladder)
}

func TestDetailForClosedTrade(t *testing.T) {
	e := pipEngine(t)
	trade := closed(eurusdBuy(), 1.2000, 1.2075, baseTime)

	detail := e.Detail(trade)

	require.NotNil(t, detail.ActualRR)
	assert.Equal(t, 1.5, *detail.ActualRR)
	assert.Equal(t, domain.OutcomeWin, detail.Outcome)
	require.NotNil(t, detail.Ladder)
}

func TestLadderRequiresExecution(t *testing.T) {
	e := pipEngine(t)
	trade := eurusdBuy()
	trade.ExecutedEntryPrice = f64(1.2)

	ladder, ok := e.Ladder(trade)
	assert.False(t, ok)
	assert.Nil(t, ladder)
}

func TestLadderBuy(t *testing.T) {
	e := pipEngine(t)
	trade := closed(eurusdBuy(), 1.2000, 1.2075, baseTime)

	ladder, ok := e.Ladder(trade)
	require.True(t, ok)
	require.Len(t, ladder.Levels, 4)

	entry, stop, target, exit := ladder.Levels[0], ladder.Levels[1], ladder.Levels[2], ladder.Levels[3]
	assert.Equal(t, "Entry", entry.Label)
	assert.Equal(t, 0.0, *entry.PlannedPnL)
	assert.Equal(t, 0.0, *entry.ActualR)

	assert.Equal(t, "Stop Loss", stop.Label)
	assert.Equal(t, -500.0, *stop.PlannedPnL)
	assert.Equal(t, -1.0, *stop.PlannedR)
	assert.Nil(t, stop.ActualPrice)
	assert.Nil(t, stop.ActualPnL)

	assert.Equal(t, "Take Profit", target.Label)
	assert.Equal(t, 1000.0, *target.PlannedPnL)
	assert.Equal(t, 2.0, *target.PlannedR)

	assert.Equal(t, "Exit", exit.Label)
	assert.Nil(t, exit.PlannedPrice)
	assert.Equal(t, 1.2075, *exit.ActualPrice)
	assert.Equal(t, 750.0, *exit.ActualPnL)
	assert.Equal(t, 1.5, *exit.ActualR)

	assert.Equal(t, 500.0, ladder.Summary.RiskAmount)
	assert.Equal(t, 1000.0, ladder.Summary.ProjectedPnL)
	assert.Equal(t, 750.0, ladder.Summary.ActualPnL)
	assert.Equal(t, 2.0, ladder.Summary.ProjectedRR)
	assert.Equal(t, 1.5, ladder.Summary.ActualRR)
	assert.Equal(t, 250.0, ladder.Summary.Difference)
}

func TestLadderSellLoss(t *testing.T) {
	e := pipEngine(t)
	trade := closed(eurusdSell(), 1.2000, 1.2030, baseTime)

	ladder, ok := e.Ladder(trade)
	require.True(t, ok)

	assert.Equal(t, 1000.0, ladder.Summary.ProjectedPnL)
	assert.Equal(t, -300.0, ladder.Summary.ActualPnL)
	assert.Equal(t, -0.6, ladder.Summary.ActualRR)
	assert.Equal(t, 1300.0, ladder.Summary.Difference)
}

func TestLadderFollowsEnginePolicy(t *testing.T) {
	e := simpleEngine(t)
	trade := closed(eurusdBuy(), 1.2000, 1.2075, baseTime)

	ladder, ok := e.Ladder(trade)
	require.True(t, ok)
	assert.Equal(t, e.RiskAmount(trade), ladder.Summary.RiskAmount)
	assert.Equal(t, 0.0075, ladder.Summary.ActualPnL)
	assert.Equal(t, 1.5, ladder.Summary.ActualRR)
}

func TestLadderZeroRisk(t *testing.T) {
	e := pipEngine(t)
	trade := eurusdBuy()
	trade.PlannedStopLoss = trade.PlannedEntryPrice
	trade = closed(trade, 1.2, 1.2, baseTime)

	ladder, ok := e.Ladder(trade)
	require.True(t, ok)
	assert.Equal(t, 0.0, ladder.Summary.ActualRR)
	assert.Equal(t, 0.0, ladder.Summary.ProjectedRR)
	assert.Equal(t, 0.0, ladder.Summary.ActualPnL)
}
