package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "PENDING"
	TradeStatusOpen      TradeStatus = "OPEN"
	TradeStatusClosed    TradeStatus = "CLOSED"
	TradeStatusCancelled TradeStatus = "CANCELLED"
)

func (s TradeStatus) Valid() bool {
	switch s {
	case TradeStatusPending, TradeStatusOpen, TradeStatusClosed, TradeStatusCancelled:
		return true
	}
	return false
}

type ExecutionStyle string

const (
	ExecutionMarket    ExecutionStyle = "MARKET"
	ExecutionLimit     ExecutionStyle = "LIMIT"
	ExecutionBuyLimit  ExecutionStyle = "BUY_LIMIT"
	ExecutionSellLimit ExecutionStyle = "SELL_LIMIT"
	ExecutionBuyStop   ExecutionStyle = "BUY_STOP"
	ExecutionSellStop  ExecutionStyle = "SELL_STOP"
)

// ParseExecutionStyle accepts any casing and falls back to MARKET for empty or
// unknown values.
func ParseExecutionStyle(raw string) ExecutionStyle {
	style := ExecutionStyle(strings.ToUpper(strings.TrimSpace(raw)))
	switch style {
	case ExecutionMarket, ExecutionLimit, ExecutionBuyLimit, ExecutionSellLimit, ExecutionBuyStop, ExecutionSellStop:
		return style
	default:
		return ExecutionMarket
	}
}

type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLoss      Outcome = "LOSS"
	OutcomeBreakeven Outcome = "BE"
	OutcomePending   Outcome = "PENDING"
)

// ProjectedOutcome labels a closed trade by the planned level its exit landed
// nearest to. The zero value means no label.
type ProjectedOutcome string

const (
	ProjectedNone ProjectedOutcome = ""
	ProjectedTP   ProjectedOutcome = "TP"
	ProjectedSL   ProjectedOutcome = "SL"
)

// TradeRecord is a trade as the store hands it over: decimals as text, the
// closed flag as "true"/"false", tags as raw JSON and timestamps as RFC 3339.
type TradeRecord struct {
	ID                 string
	UserID             string
	AccountID          string
	Instrument         string
	Side               string
	PlannedEntryPrice  string
	PlannedStopLoss    string
	PlannedTakeProfit  string
	Size               string
	ExecutedEntryPrice *string
	ExecutedStopLoss   *string
	ExecutionNotes     *string
	ExitPrice          *string
	Closed             *string
	ExecutionStyle     string
	Status             string
	SetupType          *string
	Timeframe          *string
	Notes              *string
	Tags               []byte
	CreatedAt          string
	UpdatedAt          string
}

// Trade is a normalized trade. Optional values are nil until recorded.
type Trade struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"userId"`
	AccountID          string           `json:"accountId"`
	Instrument         string           `json:"instrument"`
	Side               Side             `json:"side"`
	PlannedEntryPrice  float64          `json:"plannedEntryPrice"`
	PlannedStopLoss    float64          `json:"plannedStopLoss"`
	PlannedTakeProfit  float64          `json:"plannedTakeProfit"`
	Size               float64          `json:"size"`
	ExecutedEntryPrice *float64         `json:"executedEntryPrice,omitempty"`
	ExecutedStopLoss   *float64         `json:"executedStopLoss,omitempty"`
	ExecutionNotes     *string          `json:"executionNotes,omitempty"`
	ExitPrice          *float64         `json:"exitPrice,omitempty"`
	Closed             bool             `json:"closed"`
	ExecutionStyle     ExecutionStyle   `json:"executionStyle"`
	Status             TradeStatus      `json:"status"`
	SetupType          *string          `json:"setupType,omitempty"`
	Timeframe          *string          `json:"timeframe,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	Tags               []string         `json:"tags,omitempty"`
	ProjectedOutcome   ProjectedOutcome `json:"projectedOutcome,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// Record converts the trade back into its stored form. Decimals are written
// with the shortest representation that parses back to the same value.
func (t Trade) Record() TradeRecord {
	rec := TradeRecord{
		ID:                 t.ID,
		UserID:             t.UserID,
		AccountID:          t.AccountID,
		Instrument:         t.Instrument,
		Side:               string(t.Side),
		PlannedEntryPrice:  formatDecimal(t.PlannedEntryPrice),
		PlannedStopLoss:    formatDecimal(t.PlannedStopLoss),
		PlannedTakeProfit:  formatDecimal(t.PlannedTakeProfit),
		Size:               formatDecimal(t.Size),
		ExecutedEntryPrice: formatOptionalDecimal(t.ExecutedEntryPrice),
		ExecutedStopLoss:   formatOptionalDecimal(t.ExecutedStopLoss),
		ExecutionNotes:     copyString(t.ExecutionNotes),
		ExitPrice:          formatOptionalDecimal(t.ExitPrice),
		Closed:             stringPointer(strconv.FormatBool(t.Closed)),
		ExecutionStyle:     string(t.ExecutionStyle),
		Status:             string(t.Status),
		SetupType:          copyString(t.SetupType),
		Timeframe:          copyString(t.Timeframe),
		Notes:              copyString(t.Notes),
		CreatedAt:          formatTimestamp(t.CreatedAt),
		UpdatedAt:          formatTimestamp(t.UpdatedAt),
	}
	if t.Tags != nil {
		rec.Tags, _ = json.Marshal(t.Tags)
	}
	return rec
}

// TradePlan is the input for logging a new trade.
type TradePlan struct {
	AccountID         string   `json:"accountId"`
	Instrument        string   `json:"instrument"`
	Side              string   `json:"side"`
	PlannedEntryPrice float64  `json:"plannedEntryPrice"`
	PlannedStopLoss   float64  `json:"plannedStopLoss"`
	PlannedTakeProfit float64  `json:"plannedTakeProfit"`
	Size              float64  `json:"size"`
	ExecutionStyle    string   `json:"executionStyle"`
	SetupType         string   `json:"setupType"`
	Timeframe         string   `json:"timeframe"`
	Notes             string   `json:"notes"`
	Tags              []string `json:"tags"`
}

// NewTradePlan validates a plan and builds a PENDING trade from it.
func NewTradePlan(id, userID string, plan TradePlan, now time.Time) (Trade, error) {
	if strings.TrimSpace(plan.AccountID) == "" {
		return Trade{}, fmt.Errorf("%w: account id required", ErrInvalidInput)
	}
	instrument := strings.ToUpper(strings.TrimSpace(plan.Instrument))
	if instrument == "" {
		return Trade{}, fmt.Errorf("%w: instrument required", ErrInvalidInput)
	}
	side := Side(strings.ToLower(strings.TrimSpace(plan.Side)))
	if !side.Valid() {
		return Trade{}, fmt.Errorf("%w: side must be buy or sell, got %q", ErrInvalidInput, plan.Side)
	}
	for name, v := range map[string]float64{
		"plannedEntryPrice": plan.PlannedEntryPrice,
		"plannedStopLoss":   plan.PlannedStopLoss,
		"plannedTakeProfit": plan.PlannedTakeProfit,
		"size":              plan.Size,
	} {
		if !(v > 0) {
			return Trade{}, fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
		}
	}

	now = now.UTC()
	return Trade{
		ID:                id,
		UserID:            userID,
		AccountID:         strings.TrimSpace(plan.AccountID),
		Instrument:        instrument,
		Side:              side,
		PlannedEntryPrice: plan.PlannedEntryPrice,
		PlannedStopLoss:   plan.PlannedStopLoss,
		PlannedTakeProfit: plan.PlannedTakeProfit,
		Size:              plan.Size,
		ExecutionStyle:    ParseExecutionStyle(plan.ExecutionStyle),
		Status:            TradeStatusPending,
		SetupType:         stringPointerOrNil(plan.SetupType),
		Timeframe:         stringPointerOrNil(plan.Timeframe),
		Notes:             stringPointerOrNil(plan.Notes),
		Tags:              plan.Tags,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

type TradeExecution struct {
	ExecutedEntryPrice float64 `json:"executedEntryPrice"`
	ExecutedStopLoss   float64 `json:"executedStopLoss"`
	ExecutionNotes     string  `json:"executionNotes"`
}

type TradeExit struct {
	ExitPrice      float64 `json:"exitPrice"`
	ExecutionStyle string  `json:"executionStyle"`
}

// Execute moves a PENDING trade to OPEN.
func (t Trade) Execute(exec TradeExecution, now time.Time) (Trade, error) {
	if t.Status != TradeStatusPending {
		return Trade{}, fmt.Errorf("%w: cannot execute %s trade", ErrInvalidTransition, t.Status)
	}
	if !(exec.ExecutedEntryPrice > 0) {
		return Trade{}, fmt.Errorf("%w: executedEntryPrice must be positive", ErrInvalidInput)
	}

	entry := exec.ExecutedEntryPrice
	t.ExecutedEntryPrice = &entry
	if exec.ExecutedStopLoss > 0 {
		stop := exec.ExecutedStopLoss
		t.ExecutedStopLoss = &stop
	}
	t.ExecutionNotes = stringPointerOrNil(exec.ExecutionNotes)
	t.Status = TradeStatusOpen
	t.UpdatedAt = now.UTC()
	return t, nil
}

// Close records the exit of an OPEN trade. CLOSED is terminal.
func (t Trade) Close(exit TradeExit, now time.Time) (Trade, error) {
	if t.Status != TradeStatusOpen {
		return Trade{}, fmt.Errorf("%w: cannot close %s trade", ErrInvalidTransition, t.Status)
	}
	if !(exit.ExitPrice > 0) {
		return Trade{}, fmt.Errorf("%w: exitPrice must be positive", ErrInvalidInput)
	}

	price := exit.ExitPrice
	t.ExitPrice = &price
	t.Closed = true
	if exit.ExecutionStyle != "" {
		t.ExecutionStyle = ParseExecutionStyle(exit.ExecutionStyle)
	}
	t.Status = TradeStatusClosed
	t.UpdatedAt = now.UTC()
	return t, nil
}

// Cancel abandons a plan that was never executed.
func (t Trade) Cancel(now time.Time) (Trade, error) {
	if t.Status != TradeStatusPending {
		return Trade{}, fmt.Errorf("%w: cannot cancel %s trade", ErrInvalidTransition, t.Status)
	}
	t.Status = TradeStatusCancelled
	t.UpdatedAt = now.UTC()
	return t, nil
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptionalDecimal(v *float64) *string {
	if v == nil {
		return nil
	}
	s := formatDecimal(*v)
	return &s
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func stringPointer(value string) *string {
	return &value
}

func stringPointerOrNil(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func copyString(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
