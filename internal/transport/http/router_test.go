package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nateight8/trading-mongoparl/internal/analytics"
	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

type fakeJournal struct {
	err error

	gotUser       string
	gotAccount    string
	gotTrade      string
	gotCumulative bool
	gotTimeframe  string
	gotLimit      int
	gotPlan       domain.TradePlan
	gotExec       domain.TradeExecution
	gotExit       domain.TradeExit
	gotAccountIn  domain.NewAccount
}

func (f *fakeJournal) UserTradeData(_ context.Context, userID string) (domain.UserTradeData, error) {
	f.gotUser = userID
	return domain.UserTradeData{Overview: domain.PortfolioOverview{CurrentBalance: 1050, PnL: 50}}, f.err
}

func (f *fakeJournal) AccountChart(_ context.Context, userID, accountID string, cumulative bool) (domain.AccountChart, error) {
	f.gotUser, f.gotAccount, f.gotCumulative = userID, accountID, cumulative
	return domain.AccountChart{AccountID: accountID}, f.err
}

func (f *fakeJournal) Periods(_ context.Context, userID, accountID, timeframe string) ([]domain.PeriodSummary, error) {
	f.gotUser, f.gotAccount, f.gotTimeframe = userID, accountID, timeframe
	return []domain.PeriodSummary{{Period: "2024-03-04", TotalActual: 10, TradeCount: 1}}, f.err
}

func (f *fakeJournal) TradeDetail(_ context.Context, userID, tradeID string) (domain.TradeDetail, error) {
	f.gotUser, f.gotTrade = userID, tradeID
	return domain.TradeDetail{Trade: domain.Trade{ID: tradeID}, PipSize: 0.0001}, f.err
}

func (f *fakeJournal) ListSnapshots(_ context.Context, userID string, limit int) ([]domain.PortfolioSnapshot, error) {
	f.gotUser, f.gotLimit = userID, limit
	return []domain.PortfolioSnapshot{}, f.err
}

func (f *fakeJournal) CreateAccount(_ context.Context, userID string, in domain.NewAccount) (domain.Account, error) {
	f.gotUser, f.gotAccountIn = userID, in
	return domain.Account{ID: "a-1", UserID: userID, Name: in.Name}, f.err
}

func (f *fakeJournal) LogTrade(_ context.Context, userID string, plan domain.TradePlan) (domain.Trade, error) {
	f.gotUser, f.gotPlan = userID, plan
	return domain.Trade{ID: "t-1", UserID: userID, Status: domain.TradeStatusPending}, f.err
}

func (f *fakeJournal) ExecuteTrade(_ context.Context, userID, tradeID string, exec domain.TradeExecution) (domain.Trade, error) {
	f.gotUser, f.gotTrade, f.gotExec = userID, tradeID, exec
	return domain.Trade{ID: tradeID, Status: domain.TradeStatusOpen}, f.err
}

func (f *fakeJournal) CloseTrade(_ context.Context, userID, tradeID string, exit domain.TradeExit) (domain.Trade, error) {
	f.gotUser, f.gotTrade, f.gotExit = userID, tradeID, exit
	return domain.Trade{ID: tradeID, Status: domain.TradeStatusClosed, Closed: true}, f.err
}

func (f *fakeJournal) CancelTrade(_ context.Context, userID, tradeID string) (domain.Trade, error) {
	f.gotUser, f.gotTrade = userID, tradeID
	return domain.Trade{ID: tradeID, Status: domain.TradeStatusCancelled}, f.err
}

func do(t *testing.T, r *Router, method, target, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.App().Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	r := New(&fakeJournal{}, nil)
	status, body := do(t, r, nethttp.MethodGet, "/health", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestGetTradeData(t *testing.T) {
	journal := &fakeJournal{}
	r := New(journal, nil)

	status, body := do(t, r, nethttp.MethodGet, "/api/v1/users/u1/trade-data", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "u1", journal.gotUser)

	overview, ok := body["overview"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1050.0, overview["currentBalance"])
}

func TestGetAccountChartParsesCumulative(t *testing.T) {
	journal := &fakeJournal{}
	r := New(journal, nil)

	status, body := do(t, r, nethttp.MethodGet, "/api/v1/users/u1/accounts/a1/chart?cumulative=true", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "a1", journal.gotAccount)
	assert.True(t, journal.gotCumulative)
	assert.Equal(t, "a1", body["accountId"])

	status, _ = do(t, r, nethttp.MethodGet, "/api/v1/users/u1/accounts/a1/chart?cumulative=maybe", "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
}

func TestGetAccountPeriodsPassesTimeframe(t *testing.T) {
	journal := &fakeJournal{}
	r := New(journal, nil)

	status, _ := do(t, r, nethttp.MethodGet, "/api/v1/users/u1/accounts/a1/periods?timeframe=week", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "week", journal.gotTimeframe)
}

func TestListSnapshotsIgnoresBadLimit(t *testing.T) {
	journal := &fakeJournal{}
	r := New(journal, nil)

	status, _ := do(t, r, nethttp.MethodGet, "/api/v1/users/u1/snapshots?limit=abc", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, 0, journal.gotLimit)

	status, _ = do(t, r, nethttp.MethodGet, "/api/v1/users/u1/snapshots?limit=5", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, 5, journal.gotLimit)
}

func TestCreateAccount(t *testing.T) {
	journal := &fakeJournal{}
	r := New(journal, nil)

	status, body := do(t, r, nethttp.MethodPost, "/api/v1/users/u1/accounts",
		`{"accountName":"Funded","broker":"FTMO","accountCurrency":"USD","accountSize":10000}`)
	require.Equal(t, nethttp.StatusCreated, status)
	assert.Equal(t, "Funded", journal.gotAccountIn.Name)
	assert.Equal(t, 10000.0, journal.gotAccountIn.AccountSize)
	assert.Equal(t, "a-1", body["id"])
}

func TestLogTradeDecodesPlan(t *testing.T) {
	journal := &fakeJournal{}
	r := New(journal, nil)

	status, body := do(t, r, nethttp.MethodPost, "/api/v1/users/u1/trades",
		`{"accountId":"a1","instrument":"EURUSD","side":"buy","plannedEntryPrice":1.2,"plannedStopLoss":1.195,"plannedTakeProfit":1.21,"size":1,"tags":["london"]}`)
	require.Equal(t, nethttp.StatusCreated, status)
	assert.Equal(t, "a1", journal.gotPlan.AccountID)
	assert.Equal(t, 1.195, journal.gotPlan.PlannedStopLoss)
	assert.Equal(t, []string{"london"}, journal.gotPlan.Tags)
	assert.Equal(t, "t-1", body["id"])
}

func TestLogTradeRejectsMalformedBody(t *testing.T) {
	r := New(&fakeJournal{}, nil)
	status, body := do(t, r, nethttp.MethodPost, "/api/v1/users/u1/trades", `{"size":`)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "invalid payload", body["error"])
}

func TestTradeTransitions(t *testing.T) {
	journal := &fakeJournal{}
	r := New(journal, nil)

	status, body := do(t, r, nethttp.MethodPost, "/api/v1/users/u1/trades/t-9/execute", `{"executedEntryPrice":1.2001}`)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "t-9", journal.gotTrade)
	assert.Equal(t, 1.2001, journal.gotExec.ExecutedEntryPrice)
	assert.Equal(t, string(domain.TradeStatusOpen), body["status"])

	status, body = do(t, r, nethttp.MethodPost, "/api/v1/users/u1/trades/t-9/close", `{"exitPrice":1.21}`)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, 1.21, journal.gotExit.ExitPrice)
	assert.Equal(t, true, body["closed"])

	status, _ = do(t, r, nethttp.MethodPost, "/api/v1/users/u1/trades/t-9/cancel", "")
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("trade t-1: %w", domain.ErrNotFound), nethttp.StatusNotFound},
		{"transition", fmt.Errorf("%w: cannot close PENDING trade", domain.ErrInvalidTransition), nethttp.StatusConflict},
		{"input", fmt.Errorf("%w: size must be positive", domain.ErrInvalidInput), nethttp.StatusBadRequest},
		{"malformed", &analytics.FieldError{TradeID: "t-1", Field: "size", Value: "x", Err: fmt.Errorf("not a number")}, nethttp.StatusUnprocessableEntity},
		{"other", fmt.Errorf("connection reset"), nethttp.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := New(&fakeJournal{err: tc.err}, nil)
			status, body := do(t, r, nethttp.MethodGet, "/api/v1/users/u1/trades/t-1", "")
			assert.Equal(t, tc.want, status)
			assert.Equal(t, tc.err.Error(), body["error"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = io.WriteString(w, "journal_trades_normalized_total 3\n")
	})
	r := New(&fakeJournal{}, metrics)

	req := httptest.NewRequest(nethttp.MethodGet, "/metrics", nil)
	resp, err := r.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "journal_trades_normalized_total 3")

	status, _ := do(t, New(&fakeJournal{}, nil), nethttp.MethodGet, "/metrics", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
}
