package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// Timestamps are owned by the domain, so gorm's automatic create/update times
// are switched off on every model.

type TradeModel struct {
	ID                 string              `gorm:"column:id;primaryKey"`
	UserID             string              `gorm:"column:user_id;not null;index"`
	AccountID          string              `gorm:"column:account_id;not null;index"`
	Instrument         string              `gorm:"column:instrument;not null"`
	Side               string              `gorm:"column:side;not null"`
	PlannedEntryPrice  decimal.Decimal     `gorm:"column:planned_entry_price;type:numeric(20,8);not null"`
	PlannedStopLoss    decimal.Decimal     `gorm:"column:planned_stop_loss;type:numeric(20,8);not null"`
	PlannedTakeProfit  decimal.Decimal     `gorm:"column:planned_take_profit;type:numeric(20,8);not null"`
	Size               decimal.Decimal     `gorm:"column:size;type:numeric(20,8);not null"`
	ExecutedEntryPrice decimal.NullDecimal `gorm:"column:executed_entry_price;type:numeric(20,8)"`
	ExecutedStopLoss   decimal.NullDecimal `gorm:"column:executed_stop_loss;type:numeric(20,8)"`
	ExecutionNotes     *string             `gorm:"column:execution_notes"`
	ExitPrice          decimal.NullDecimal `gorm:"column:exit_price;type:numeric(20,8)"`
	Closed             *string             `gorm:"column:closed"`
	ExecutionStyle     string              `gorm:"column:execution_style;not null"`
	Status             string              `gorm:"column:status;not null;index"`
	SetupType          *string             `gorm:"column:setup_type"`
	Timeframe          *string             `gorm:"column:timeframe"`
	Notes              *string             `gorm:"column:notes"`
	Tags               datatypes.JSON      `gorm:"column:tags;not null"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (TradeModel) TableName() string {
	return "trades"
}

func toTradeModel(rec domain.TradeRecord) (TradeModel, error) {
	model := TradeModel{
		ID:             rec.ID,
		UserID:         rec.UserID,
		AccountID:      rec.AccountID,
		Instrument:     rec.Instrument,
		Side:           rec.Side,
		ExecutionNotes: copyString(rec.ExecutionNotes),
		Closed:         copyString(rec.Closed),
		ExecutionStyle: rec.ExecutionStyle,
		Status:         rec.Status,
		SetupType:      copyString(rec.SetupType),
		Timeframe:      copyString(rec.Timeframe),
		Notes:          copyString(rec.Notes),
		Tags:           jsonOrNull(rec.Tags),
	}

	var err error
	if model.PlannedEntryPrice, err = parseDecimal("planned_entry_price", rec.PlannedEntryPrice); err != nil {
		return TradeModel{}, err
	}
	if model.PlannedStopLoss, err = parseDecimal("planned_stop_loss", rec.PlannedStopLoss); err != nil {
		return TradeModel{}, err
	}
	if model.PlannedTakeProfit, err = parseDecimal("planned_take_profit", rec.PlannedTakeProfit); err != nil {
		return TradeModel{}, err
	}
	if model.Size, err = parseDecimal("size", rec.Size); err != nil {
		return TradeModel{}, err
	}
	if model.ExecutedEntryPrice, err = parseNullDecimal("executed_entry_price", rec.ExecutedEntryPrice); err != nil {
		return TradeModel{}, err
	}
	if model.ExecutedStopLoss, err = parseNullDecimal("executed_stop_loss", rec.ExecutedStopLoss); err != nil {
		return TradeModel{}, err
	}
	if model.ExitPrice, err = parseNullDecimal("exit_price", rec.ExitPrice); err != nil {
		return TradeModel{}, err
	}
	if model.CreatedAt, err = parseTimestamp("created_at", rec.CreatedAt); err != nil {
		return TradeModel{}, err
	}
	if model.UpdatedAt, err = parseTimestamp("updated_at", rec.UpdatedAt); err != nil {
		return TradeModel{}, err
	}

	return model, nil
}

// toRecord hands the row back in stored form; numbers stay decimal text.
func (m TradeModel) toRecord() domain.TradeRecord {
	return domain.TradeRecord{
		ID:                 m.ID,
		UserID:             m.UserID,
		AccountID:          m.AccountID,
		Instrument:         m.Instrument,
		Side:               m.Side,
		PlannedEntryPrice:  m.PlannedEntryPrice.String(),
		PlannedStopLoss:    m.PlannedStopLoss.String(),
		PlannedTakeProfit:  m.PlannedTakeProfit.String(),
		Size:               m.Size.String(),
		ExecutedEntryPrice: nullDecimalString(m.ExecutedEntryPrice),
		ExecutedStopLoss:   nullDecimalString(m.ExecutedStopLoss),
		ExecutionNotes:     copyString(m.ExecutionNotes),
		ExitPrice:          nullDecimalString(m.ExitPrice),
		Closed:             copyString(m.Closed),
		ExecutionStyle:     m.ExecutionStyle,
		Status:             m.Status,
		SetupType:          copyString(m.SetupType),
		Timeframe:          copyString(m.Timeframe),
		Notes:              copyString(m.Notes),
		Tags:               copyJSON(m.Tags),
		CreatedAt:          formatTimestamp(m.CreatedAt),
		UpdatedAt:          formatTimestamp(m.UpdatedAt),
	}
}

type AccountModel struct {
	ID               string          `gorm:"column:id;primaryKey"`
	UserID           string          `gorm:"column:user_id;not null;index"`
	Name             string          `gorm:"column:account_name;not null"`
	Broker           string          `gorm:"column:broker;not null"`
	Currency         string          `gorm:"column:account_currency;not null"`
	AccountSize      decimal.Decimal `gorm:"column:account_size;type:numeric(20,8);not null"`
	CurrentBalance   decimal.Decimal `gorm:"column:current_balance;type:numeric(20,8);not null"`
	PnL              decimal.Decimal `gorm:"column:pnl;type:numeric(20,8);not null"`
	ROI              decimal.Decimal `gorm:"column:roi;type:numeric(20,8);not null"`
	Winrate          decimal.Decimal `gorm:"column:winrate;type:numeric(20,8);not null"`
	MaxDailyDrawdown decimal.Decimal `gorm:"column:max_daily_drawdown;type:numeric(20,8)"`
	MaxTotalDrawdown decimal.Decimal `gorm:"column:max_total_drawdown;type:numeric(20,8)"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

func toAccountModel(rec domain.AccountRecord) AccountModel {
	return AccountModel{
		ID:               rec.ID,
		UserID:           rec.UserID,
		Name:             rec.Name,
		Broker:           rec.Broker,
		Currency:         rec.Currency,
		AccountSize:      decimalOrZero(rec.AccountSize),
		CurrentBalance:   decimalOrZero(rec.CurrentBalance),
		PnL:              decimalOrZero(rec.PnL),
		ROI:              decimalOrZero(rec.ROI),
		Winrate:          decimalOrZero(rec.Winrate),
		MaxDailyDrawdown: decimalOrZero(rec.MaxDailyDrawdown),
		MaxTotalDrawdown: decimalOrZero(rec.MaxTotalDrawdown),
		CreatedAt:        rec.CreatedAt.UTC(),
		UpdatedAt:        rec.UpdatedAt.UTC(),
	}
}

func (m AccountModel) toRecord() domain.AccountRecord {
	return domain.AccountRecord{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		Broker:           m.Broker,
		Currency:         m.Currency,
		AccountSize:      m.AccountSize.String(),
		CurrentBalance:   m.CurrentBalance.String(),
		PnL:              m.PnL.String(),
		ROI:              m.ROI.String(),
		Winrate:          m.Winrate.String(),
		MaxDailyDrawdown: m.MaxDailyDrawdown.String(),
		MaxTotalDrawdown: m.MaxTotalDrawdown.String(),
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type PortfolioSnapshotModel struct {
	ID         string         `gorm:"column:id;primaryKey"`
	UserID     string         `gorm:"column:user_id;not null;index"`
	TakenAt    time.Time      `gorm:"column:taken_at;not null;index"`
	Overview   datatypes.JSON `gorm:"column:overview;not null"`
	Cumulative datatypes.JSON `gorm:"column:cumulative;not null"`
}

func (PortfolioSnapshotModel) TableName() string {
	return "portfolio_snapshots"
}

func toPortfolioSnapshotModel(snapshot domain.PortfolioSnapshot) (PortfolioSnapshotModel, error) {
	overview, err := json.Marshal(snapshot.Overview)
	if err != nil {
		return PortfolioSnapshotModel{}, fmt.Errorf("encode overview: %w", err)
	}
	cumulative := snapshot.Cumulative
	if cumulative == nil {
		cumulative = []domain.CumulativePoint{}
	}
	curve, err := json.Marshal(cumulative)
	if err != nil {
		return PortfolioSnapshotModel{}, fmt.Errorf("encode cumulative curve: %w", err)
	}

	return PortfolioSnapshotModel{
		ID:         snapshot.ID,
		UserID:     snapshot.UserID,
		TakenAt:    snapshot.TakenAt.UTC(),
		Overview:   datatypes.JSON(overview),
		Cumulative: datatypes.JSON(curve),
	}, nil
}

func (m PortfolioSnapshotModel) toDomain() (domain.PortfolioSnapshot, error) {
	snapshot := domain.PortfolioSnapshot{
		ID:      m.ID,
		UserID:  m.UserID,
		TakenAt: m.TakenAt.UTC(),
	}
	if err := json.Unmarshal(m.Overview, &snapshot.Overview); err != nil {
		return domain.PortfolioSnapshot{}, fmt.Errorf("decode snapshot %s overview: %w", m.ID, err)
	}
	if err := json.Unmarshal(m.Cumulative, &snapshot.Cumulative); err != nil {
		return domain.PortfolioSnapshot{}, fmt.Errorf("decode snapshot %s cumulative curve: %w", m.ID, err)
	}
	return snapshot, nil
}

func parseDecimal(column, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, column, err)
	}
	return d, nil
}

func parseNullDecimal(column string, raw *string) (decimal.NullDecimal, error) {
	if raw == nil || *raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseDecimal(column, *raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func nullDecimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func decimalOrZero(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseTimestamp(column, raw string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, column, err)
	}
	return ts.UTC(), nil
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

func copyString(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

// jsonOrNull stores a missing document as JSON null so the column never holds
// SQL NULL.
func jsonOrNull(data []byte) datatypes.JSON {
	if len(data) == 0 {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(append([]byte(nil), data...))
}

func copyJSON(data datatypes.JSON) []byte {
	if len(data) == 0 {
		return nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy
}
