package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nateight8/trading-mongoparl/internal/analytics"
	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

type memoryStore struct {
	mu        sync.Mutex
	trades    map[string]domain.TradeRecord
	order     []string
	accounts  map[string]domain.AccountRecord
	snapshots []domain.PortfolioSnapshot
	failList  error
	failAdd   map[string]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		trades:   make(map[string]domain.TradeRecord),
		accounts: make(map[string]domain.AccountRecord),
		failAdd:  make(map[string]error),
	}
}

func (m *memoryStore) SaveTrade(_ context.Context, trade domain.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trades[trade.ID]; !ok {
		m.order = append(m.order, trade.ID)
	}
	m.trades[trade.ID] = trade
	return nil
}

func (m *memoryStore) GetTrade(_ context.Context, userID, tradeID string) (domain.TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.trades[tradeID]
	if !ok || rec.UserID != userID {
		return domain.TradeRecord{}, fmt.Errorf("trade %s: %w", tradeID, domain.ErrNotFound)
	}
	return rec, nil
}

func (m *memoryStore) ListTrades(_ context.Context, userID string) ([]domain.TradeRecord, error) {
	return m.listTrades(func(r domain.TradeRecord) bool { return r.UserID == userID })
}

func (m *memoryStore) ListAccountTrades(_ context.Context, userID, accountID string) ([]domain.TradeRecord, error) {
	return m.listTrades(func(r domain.TradeRecord) bool { return r.UserID == userID && r.AccountID == accountID })
}

func (m *memoryStore) listTrades(keep func(domain.TradeRecord) bool) ([]domain.TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	out := make([]domain.TradeRecord, 0)
	for _, id := range m.order {
		if rec := m.trades[id]; keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryStore) SaveAccount(_ context.Context, account domain.AccountRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *memoryStore) GetAccount(_ context.Context, userID, accountID string) (domain.AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[accountID]
	if !ok || acc.UserID != userID {
		return domain.AccountRecord{}, fmt.Errorf("account %s: %w", accountID, domain.ErrNotFound)
	}
	return acc, nil
}

func (m *memoryStore) ListAccounts(_ context.Context, userID string) ([]domain.AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AccountRecord, 0)
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) ListAccountOwners(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var owners []string
	for _, acc := range m.accounts {
		if !seen[acc.UserID] {
			seen[acc.UserID] = true
			owners = append(owners, acc.UserID)
		}
	}
	sort.Strings(owners)
	return owners, nil
}

func (m *memoryStore) AddSnapshot(_ context.Context, snapshot domain.PortfolioSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failAdd[snapshot.UserID]; err != nil {
		return err
	}
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *memoryStore) ListSnapshots(_ context.Context, userID string, limit int) ([]domain.PortfolioSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PortfolioSnapshot, 0)
	for i := len(m.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		if m.snapshots[i].UserID == userID {
			out = append(out, m.snapshots[i])
		}
	}
	return out, nil
}

type countingMetrics struct {
	normalized  int
	failures    map[string]int
	transitions map[string]int
	snapshots   int
	snapErrors  int
	overviews   int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{failures: map[string]int{}, transitions: map[string]int{}}
}

func (c *countingMetrics) RecordNormalized(n int)                  { c.normalized += n }
func (c *countingMetrics) RecordNormalizationFailure(field string) { c.failures[field]++ }
func (c *countingMetrics) ObserveOverview(time.Duration)           { c.overviews++ }
func (c *countingMetrics) RecordTransition(action string)          { c.transitions[action]++ }
func (c *countingMetrics) RecordSnapshot(err error) {
	if err != nil {
		c.snapErrors++
		return
	}
	c.snapshots++
}

var serviceNow = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*JournalService, *memoryStore, *countingMetrics) {
	t.Helper()
	engine, err := analytics.NewEngine(analytics.PolicyPipAccurate)
	require.NoError(t, err)

	store := newMemoryStore()
	metrics := newCountingMetrics()
	svc, err := NewJournalService(store, store, store, engine, zerolog.Nop(), metrics)
	require.NoError(t, err)

	clock := serviceNow
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return svc, store, metrics
}

func openTestAccount(t *testing.T, svc *JournalService, userID string) domain.Account {
	t.Helper()
	acc, err := svc.CreateAccount(context.Background(), userID, domain.NewAccount{
		Name:        "Main",
		Broker:      "Oanda",
		Currency:    "USD",
		AccountSize: 10000,
	})
	require.NoError(t, err)
	return acc
}

func eurusdPlan(accountID string) domain.TradePlan {
	return domain.TradePlan{
		AccountID:         accountID,
		Instrument:        "EURUSD",
		Side:              "buy",
		PlannedEntryPrice: 1.2,
		PlannedStopLoss:   1.195,
		PlannedTakeProfit: 1.21,
		Size:              1,
	}
}

func TestNewJournalServiceRequiresDependencies(t *testing.T) {
	engine, err := analytics.NewEngine(analytics.PolicySimple)
	require.NoError(t, err)
	store := newMemoryStore()

	_, err = NewJournalService(nil, store, store, engine, zerolog.Nop(), nil)
	assert.Error(t, err)
	_, err = NewJournalService(store, nil, store, engine, zerolog.Nop(), nil)
	assert.Error(t, err)
	_, err = NewJournalService(store, store, nil, engine, zerolog.Nop(), nil)
	assert.Error(t, err)
	_, err = NewJournalService(store, store, store, nil, zerolog.Nop(), nil)
	assert.Error(t, err)

	svc, err := NewJournalService(store, store, store, engine, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.NotNil(t, svc.metrics)
}

func TestTradeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store, metrics := newTestService(t)
	acc := openTestAccount(t, svc, "u1")

	trade, err := svc.LogTrade(ctx, "u1", eurusdPlan(acc.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusPending, trade.Status)

	_, err = svc.CloseTrade(ctx, "u1", trade.ID, domain.TradeExit{ExitPrice: 1.21})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	trade, err = svc.ExecuteTrade(ctx, "u1", trade.ID, domain.TradeExecution{ExecutedEntryPrice: 1.2})
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusOpen, trade.Status)

	trade, err = svc.CloseTrade(ctx, "u1", trade.ID, domain.TradeExit{ExitPrice: 1.21})
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusClosed, trade.Status)
	assert.True(t, trade.Closed)
	assert.Equal(t, domain.ProjectedTP, trade.ProjectedOutcome)

	_, err = svc.CancelTrade(ctx, "u1", trade.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	stored := store.trades[trade.ID]
	assert.Equal(t, "true", *stored.Closed)
	assert.Equal(t, "CLOSED", stored.Status)

	assert.Equal(t, 1, metrics.transitions["log"])
	assert.Equal(t, 1, metrics.transitions["execute"])
	assert.Equal(t, 1, metrics.transitions["close"])
}

func TestLogTradeRequiresOwnedAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	acc := openTestAccount(t, svc, "u1")

	_, err := svc.LogTrade(ctx, "u2", eurusdPlan(acc.ID))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.LogTrade(ctx, "u1", eurusdPlan(""))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	plan := eurusdPlan(acc.ID)
	plan.Size = 0
	_, err = svc.LogTrade(ctx, "u1", plan)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCancelPendingTrade(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	acc := openTestAccount(t, svc, "u1")

	trade, err := svc.LogTrade(ctx, "u1", eurusdPlan(acc.ID))
	require.NoError(t, err)

	trade, err = svc.CancelTrade(ctx, "u1", trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusCancelled, trade.Status)

	_, err = svc.CancelTrade(ctx, "u1", "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserTradeDataSkipsMalformedTrades(t *testing.T) {
	ctx := context.Background()
	svc, store, metrics := newTestService(t)
	acc := openTestAccount(t, svc, "u1")

	trade, err := svc.LogTrade(ctx, "u1", eurusdPlan(acc.ID))
	require.NoError(t, err)
	_, err = svc.ExecuteTrade(ctx, "u1", trade.ID, domain.TradeExecution{ExecutedEntryPrice: 1.2})
	require.NoError(t, err)
	_, err = svc.CloseTrade(ctx, "u1", trade.ID, domain.TradeExit{ExitPrice: 1.21})
	require.NoError(t, err)

	broken := store.trades[trade.ID]
	broken.ID = "broken"
	broken.PlannedStopLoss = "1,195"
	require.NoError(t, store.SaveTrade(ctx, broken))

	data, err := svc.UserTradeData(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, data.Overview.ChartData, 1)
	assert.InDelta(t, 1000, data.Overview.ChartData[0].Actual, 1e-6)
	assert.Equal(t, 10000.0, data.Overview.CurrentBalance)
	require.Len(t, data.CumulativeChartData, 1)
	assert.InDelta(t, 1000, data.CumulativeChartData[0].Cumulative, 1e-6)

	require.Len(t, data.Accounts, 1)
	assert.Equal(t, acc.ID, data.Accounts[0].Account.ID)
	assert.Equal(t, 1, data.Accounts[0].Stats.Wins)
	require.Len(t, data.Accounts[0].ChartData, 1)

	require.Len(t, data.Failures, 1)
	assert.Equal(t, "broken", data.Failures[0].TradeID)
	assert.Equal(t, "plannedStopLoss", data.Failures[0].Field)
	assert.Equal(t, 1, metrics.failures["plannedStopLoss"])
	assert.Equal(t, 1, metrics.overviews)

	_, err = svc.TradeDetail(ctx, "u1", "broken")
	assert.True(t, errors.Is(err, analytics.ErrMalformedRecord))
}

func TestUserTradeDataWithoutAccounts(t *testing.T) {
	svc, _, _ := newTestService(t)

	data, err := svc.UserTradeData(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0.0, data.Overview.ROI)
	assert.Empty(t, data.Overview.ChartData)
	assert.Empty(t, data.CumulativeChartData)
	assert.Empty(t, data.Accounts)
}

func TestUserTradeDataPropagatesStoreErrors(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.failList = errors.New("connection reset")

	_, err := svc.UserTradeData(context.Background(), "u1")
	assert.ErrorContains(t, err, "connection reset")
}

func TestAccountChartAndPeriods(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	acc := openTestAccount(t, svc, "u1")

	for _, exit := range []float64{1.21, 1.195} {
		trade, err := svc.LogTrade(ctx, "u1", eurusdPlan(acc.ID))
		require.NoError(t, err)
		_, err = svc.ExecuteTrade(ctx, "u1", trade.ID, domain.TradeExecution{ExecutedEntryPrice: 1.2})
		require.NoError(t, err)
		_, err = svc.CloseTrade(ctx, "u1", trade.ID, domain.TradeExit{ExitPrice: exit})
		require.NoError(t, err)
	}

	chart, err := svc.AccountChart(ctx, "u1", acc.ID, false)
	require.NoError(t, err)
	require.Len(t, chart.Points, 2)
	assert.Nil(t, chart.Cumulative)

	chart, err = svc.AccountChart(ctx, "u1", acc.ID, true)
	require.NoError(t, err)
	require.Len(t, chart.Cumulative, 2)
	assert.InDelta(t, 500, chart.Cumulative[1].Cumulative, 1e-6)

	periods, err := svc.Periods(ctx, "u1", acc.ID, "")
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "2024-03-04", periods[0].Period)
	assert.Equal(t, 2, periods[0].TradeCount)

	_, err = svc.Periods(ctx, "u1", acc.ID, "fortnight")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.AccountChart(ctx, "u2", acc.ID, false)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTradeDetail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	acc := openTestAccount(t, svc, "u1")

	trade, err := svc.LogTrade(ctx, "u1", eurusdPlan(acc.ID))
	require.NoError(t, err)

	detail, err := svc.TradeDetail(ctx, "u1", trade.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, detail.RiskAmount)
	assert.Equal(t, domain.OutcomePending, detail.Outcome)
	assert.Nil(t, detail.Ladder)
}

func TestSnapshotPortfolios(t *testing.T) {
	ctx := context.Background()
	svc, store, metrics := newTestService(t)
	openTestAccount(t, svc, "u1")
	openTestAccount(t, svc, "u2")
	openTestAccount(t, svc, "u3")
	store.failAdd["u2"] = errors.New("disk full")

	written, err := svc.SnapshotPortfolios(ctx)
	assert.Equal(t, 2, written)
	require.Error(t, err)
	assert.ErrorContains(t, err, "user u2")
	assert.Equal(t, 2, metrics.snapshots)
	assert.Equal(t, 1, metrics.snapErrors)

	snaps, err := svc.ListSnapshots(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "u1", snaps[0].UserID)
	assert.Equal(t, 10000.0, snaps[0].Overview.CurrentBalance)
}
