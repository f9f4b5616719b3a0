package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Nateight8/trading-mongoparl/internal/analytics"
	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

const (
	defaultSnapshotLimit = 30
	maxSnapshotLimit     = 500
)

// MetricsRecorder receives counters from the journal. A nil recorder is
// allowed and records nothing.
type MetricsRecorder interface {
	RecordNormalized(count int)
	RecordNormalizationFailure(field string)
	ObserveOverview(d time.Duration)
	RecordTransition(action string)
	RecordSnapshot(err error)
}

type JournalService struct {
	trades    domain.TradeRepository
	accounts  domain.AccountRepository
	snapshots domain.SnapshotRepository
	engine    *analytics.Engine
	log       zerolog.Logger
	metrics   MetricsRecorder

	now   func() time.Time
	newID func() string
}

func NewJournalService(
	trades domain.TradeRepository,
	accounts domain.AccountRepository,
	snapshots domain.SnapshotRepository,
	engine *analytics.Engine,
	log zerolog.Logger,
	metrics MetricsRecorder,
) (*JournalService, error) {
	if trades == nil {
		return nil, errors.New("trade repository required")
	}
	if accounts == nil {
		return nil, errors.New("account repository required")
	}
	if snapshots == nil {
		return nil, errors.New("snapshot repository required")
	}
	if engine == nil {
		return nil, errors.New("analytics engine required")
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &JournalService{
		trades:    trades,
		accounts:  accounts,
		snapshots: snapshots,
		engine:    engine,
		log:       log.With().Str("component", "journal").Logger(),
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}, nil
}

// UserTradeData builds the dashboard view for a user: the portfolio overview,
// its cumulative curve and per-account series with stats. Trades that cannot be
// read are left out and listed in Failures.
func (s *JournalService) UserTradeData(ctx context.Context, userID string) (domain.UserTradeData, error) {
	accountRecs, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return domain.UserTradeData{}, fmt.Errorf("list accounts: %w", err)
	}
	tradeRecs, err := s.trades.ListTrades(ctx, userID)
	if err != nil {
		return domain.UserTradeData{}, fmt.Errorf("list trades: %w", err)
	}

	accounts := analytics.NormalizeAccounts(accountRecs)
	trades, failures := s.normalize(userID, tradeRecs)

	start := time.Now()
	overview := s.engine.Overview(accounts, trades)
	s.metrics.ObserveOverview(time.Since(start))

	performance := make([]domain.AccountPerformance, 0, len(accounts))
	for _, acc := range accounts {
		accountTrades := tradesForAccount(trades, acc.ID)
		performance = append(performance, domain.AccountPerformance{
			Account:   acc,
			ChartData: s.engine.BuildSeries(accountTrades),
			Stats:     s.engine.Summarize(accountTrades),
		})
	}

	return domain.UserTradeData{
		Overview:            overview,
		CumulativeChartData: analytics.CumulativeSeries(overview.ChartData),
		Accounts:            performance,
		Failures:            failures,
	}, nil
}

// AccountChart returns one account's chart points, and the running totals when
// cumulative is set.
func (s *JournalService) AccountChart(ctx context.Context, userID, accountID string, cumulative bool) (domain.AccountChart, error) {
	trades, failures, err := s.accountTrades(ctx, userID, accountID)
	if err != nil {
		return domain.AccountChart{}, err
	}

	chart := domain.AccountChart{
		AccountID: accountID,
		Points:    s.engine.BuildSeries(trades),
		Failures:  failures,
	}
	if cumulative {
		chart.Cumulative = analytics.CumulativeSeries(chart.Points)
	}
	return chart, nil
}

// Periods totals an account's results per day, week or month. An empty
// timeframe means day.
func (s *JournalService) Periods(ctx context.Context, userID, accountID, timeframe string) ([]domain.PeriodSummary, error) {
	tf := domain.TimeFrame(strings.ToLower(strings.TrimSpace(timeframe)))
	if tf == "" {
		tf = domain.TimeFrameDay
	}
	if !tf.Valid() {
		return nil, fmt.Errorf("%w: timeframe must be day, week or month", domain.ErrInvalidInput)
	}

	trades, _, err := s.accountTrades(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return analytics.GroupByTimeFrame(s.engine.BuildSeries(trades), tf)
}

func (s *JournalService) TradeDetail(ctx context.Context, userID, tradeID string) (domain.TradeDetail, error) {
	trade, err := s.loadTrade(ctx, userID, tradeID)
	if err != nil {
		return domain.TradeDetail{}, err
	}
	return s.engine.Detail(trade), nil
}

func (s *JournalService) CreateAccount(ctx context.Context, userID string, in domain.NewAccount) (domain.Account, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Account{}, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}

	rec, err := domain.OpenAccount(s.newID(), userID, in, s.now())
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.accounts.SaveAccount(ctx, rec); err != nil {
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("account_id", rec.ID).Msg("account opened")
	return analytics.NormalizeAccount(rec), nil
}

// LogTrade records a new trade plan against one of the user's accounts.
func (s *JournalService) LogTrade(ctx context.Context, userID string, plan domain.TradePlan) (domain.Trade, error) {
	if strings.TrimSpace(plan.AccountID) == "" {
		return domain.Trade{}, fmt.Errorf("%w: account id required", domain.ErrInvalidInput)
	}
	if _, err := s.accounts.GetAccount(ctx, userID, plan.AccountID); err != nil {
		return domain.Trade{}, err
	}

	trade, err := domain.NewTradePlan(s.newID(), userID, plan, s.now())
	if err != nil {
		return domain.Trade{}, err
	}
	if err := s.trades.SaveTrade(ctx, trade.Record()); err != nil {
		return domain.Trade{}, fmt.Errorf("save trade: %w", err)
	}

	s.metrics.RecordTransition("log")
	s.log.Info().Str("user_id", userID).Str("trade_id", trade.ID).Str("instrument", trade.Instrument).Msg("trade logged")
	return trade, nil
}

func (s *JournalService) ExecuteTrade(ctx context.Context, userID, tradeID string, exec domain.TradeExecution) (domain.Trade, error) {
	return s.transition(ctx, userID, tradeID, "execute", func(t domain.Trade, now time.Time) (domain.Trade, error) {
		return t.Execute(exec, now)
	})
}

func (s *JournalService) CloseTrade(ctx context.Context, userID, tradeID string, exit domain.TradeExit) (domain.Trade, error) {
	return s.transition(ctx, userID, tradeID, "close", func(t domain.Trade, now time.Time) (domain.Trade, error) {
		return t.Close(exit, now)
	})
}

func (s *JournalService) CancelTrade(ctx context.Context, userID, tradeID string) (domain.Trade, error) {
	return s.transition(ctx, userID, tradeID, "cancel", func(t domain.Trade, now time.Time) (domain.Trade, error) {
		return t.Cancel(now)
	})
}

// SnapshotPortfolios stores the current overview of every user with an
// account. One user's failure does not stop the others; all errors are
// returned together.
func (s *JournalService) SnapshotPortfolios(ctx context.Context) (int, error) {
	owners, err := s.accounts.ListAccountOwners(ctx)
	if err != nil {
		return 0, fmt.Errorf("list account owners: %w", err)
	}

	var errs []error
	written := 0
	for _, userID := range owners {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		err := s.snapshotUser(ctx, userID)
		s.metrics.RecordSnapshot(err)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("portfolio snapshot failed")
			errs = append(errs, fmt.Errorf("user %s: %w", userID, err))
			continue
		}
		written++
	}

	return written, errors.Join(errs...)
}

func (s *JournalService) ListSnapshots(ctx context.Context, userID string, limit int) ([]domain.PortfolioSnapshot, error) {
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}
	if limit > maxSnapshotLimit {
		limit = maxSnapshotLimit
	}
	return s.snapshots.ListSnapshots(ctx, userID, limit)
}

func (s *JournalService) snapshotUser(ctx context.Context, userID string) error {
	data, err := s.UserTradeData(ctx, userID)
	if err != nil {
		return err
	}
	return s.snapshots.AddSnapshot(ctx, domain.PortfolioSnapshot{
		ID:         s.newID(),
		UserID:     userID,
		TakenAt:    s.now(),
		Overview:   data.Overview,
		Cumulative: data.CumulativeChartData,
	})
}

type transitionFunc func(domain.Trade, time.Time) (domain.Trade, error)

func (s *JournalService) transition(ctx context.Context, userID, tradeID, action string, apply transitionFunc) (domain.Trade, error) {
	trade, err := s.loadTrade(ctx, userID, tradeID)
	if err != nil {
		return domain.Trade{}, err
	}

	updated, err := apply(trade, s.now())
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade %s: %w", tradeID, err)
	}
	updated.ProjectedOutcome = analytics.InferProjectedOutcome(updated)

	if err := s.trades.SaveTrade(ctx, updated.Record()); err != nil {
		return domain.Trade{}, fmt.Errorf("save trade: %w", err)
	}

	s.metrics.RecordTransition(action)
	s.log.Info().
		Str("user_id", userID).
		Str("trade_id", tradeID).
		Str("action", action).
		Str("status", string(updated.Status)).
		Msg("trade updated")
	return updated, nil
}

func (s *JournalService) loadTrade(ctx context.Context, userID, tradeID string) (domain.Trade, error) {
	rec, err := s.trades.GetTrade(ctx, userID, tradeID)
	if err != nil {
		return domain.Trade{}, err
	}
	trade, err := analytics.NormalizeTrade(rec)
	if err != nil {
		s.reportFailure(userID, analytics.FailureFromError(rec.ID, err))
		return domain.Trade{}, err
	}
	s.metrics.RecordNormalized(1)
	return trade, nil
}

func (s *JournalService) accountTrades(ctx context.Context, userID, accountID string) ([]domain.Trade, []domain.TradeFailure, error) {
	if _, err := s.accounts.GetAccount(ctx, userID, accountID); err != nil {
		return nil, nil, err
	}
	recs, err := s.trades.ListAccountTrades(ctx, userID, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("list account trades: %w", err)
	}
	trades, failures := s.normalize(userID, recs)
	return trades, failures, nil
}

func (s *JournalService) normalize(userID string, recs []domain.TradeRecord) ([]domain.Trade, []domain.TradeFailure) {
	trades, failures := analytics.NormalizeTrades(recs)
	s.metrics.RecordNormalized(len(trades))
	for _, failure := range failures {
		s.reportFailure(userID, failure)
	}
	return trades, failures
}

func (s *JournalService) reportFailure(userID string, failure domain.TradeFailure) {
	s.metrics.RecordNormalizationFailure(failure.Field)
	s.log.Warn().
		Str("user_id", userID).
		Str("trade_id", failure.TradeID).
		Str("field", failure.Field).
		Str("value", failure.Value).
		Msg(failure.Message)
}

func tradesForAccount(trades []domain.Trade, accountID string) []domain.Trade {
	out := make([]domain.Trade, 0)
	for _, t := range trades {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

type noopMetrics struct{}

func (noopMetrics) RecordNormalized(int)              {}
func (noopMetrics) RecordNormalizationFailure(string) {}
func (noopMetrics) ObserveOverview(time.Duration)     {}
func (noopMetrics) RecordTransition(string)           {}
func (noopMetrics) RecordSnapshot(error)              {}
