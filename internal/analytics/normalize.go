package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// ErrMalformedRecord matches every FieldError.
var ErrMalformedRecord = errors.New("malformed trade record")

// FieldError names the stored field that could not be read.
type FieldError struct {
	TradeID string
	Field   string
	Value   string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("trade %s: field %s (%q): %v", e.TradeID, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMalformedRecord
}

var (
	errValueRequired = errors.New("value required")
	errOutOfRange    = errors.New("value out of range")
)

// NormalizeTrade turns a stored trade into a typed one. The record is left
// untouched. Closed trades get their projected outcome.
func NormalizeTrade(rec domain.TradeRecord) (domain.Trade, error) {
	p := recordParser{id: rec.ID}

	t := domain.Trade{
		ID:                 rec.ID,
		UserID:             rec.UserID,
		AccountID:          rec.AccountID,
		Instrument:         p.instrument(rec.Instrument),
		Side:               p.side(rec.Side),
		PlannedEntryPrice:  p.required("plannedEntryPrice", rec.PlannedEntryPrice),
		PlannedStopLoss:    p.required("plannedStopLoss", rec.PlannedStopLoss),
		PlannedTakeProfit:  p.required("plannedTakeProfit", rec.PlannedTakeProfit),
		Size:               p.required("size", rec.Size),
		ExecutedEntryPrice: p.optional("executedEntryPrice", rec.ExecutedEntryPrice),
		ExecutedStopLoss:   p.optional("executedStopLoss", rec.ExecutedStopLoss),
		ExecutionNotes:     optionalText(rec.ExecutionNotes),
		ExitPrice:          p.optional("exitPrice", rec.ExitPrice),
		Closed:             p.flag("closed", rec.Closed),
		ExecutionStyle:     domain.ParseExecutionStyle(rec.ExecutionStyle),
		Status:             p.status(rec.Status),
		SetupType:          optionalText(rec.SetupType),
		Timeframe:          optionalText(rec.Timeframe),
		Notes:              optionalText(rec.Notes),
		Tags:               parseTags(rec.Tags),
		CreatedAt:          p.timestamp("createdAt", rec.CreatedAt),
		UpdatedAt:          p.timestamp("updatedAt", rec.UpdatedAt),
	}
	if p.err != nil {
		return domain.Trade{}, p.err
	}

	t.ProjectedOutcome = InferProjectedOutcome(t)
	return t, nil
}

// NormalizeTrades normalizes every record it can. Malformed records are left
// out of the result and reported instead; the order of the rest is kept.
func NormalizeTrades(recs []domain.TradeRecord) ([]domain.Trade, []domain.TradeFailure) {
	trades := make([]domain.Trade, 0, len(recs))
	var failures []domain.TradeFailure

	for _, rec := range recs {
		t, err := NormalizeTrade(rec)
		if err != nil {
			failures = append(failures, FailureFromError(rec.ID, err))
			continue
		}
		trades = append(trades, t)
	}
	return trades, failures
}

// FailureFromError describes a normalization error for the caller.
func FailureFromError(tradeID string, err error) domain.TradeFailure {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return domain.TradeFailure{
			TradeID: tradeID,
			Field:   fieldErr.Field,
			Value:   fieldErr.Value,
			Message: fieldErr.Err.Error(),
		}
	}
	return domain.TradeFailure{TradeID: tradeID, Message: err.Error()}
}

// NormalizeAccount reads an account's cached stats. Missing or non-numeric
// values count as 0.
func NormalizeAccount(rec domain.AccountRecord) domain.Account {
	return domain.Account{
		ID:               rec.ID,
		UserID:           rec.UserID,
		Name:             rec.Name,
		Broker:           rec.Broker,
		Currency:         rec.Currency,
		AccountSize:      lenientDecimal(rec.AccountSize),
		CurrentBalance:   lenientDecimal(rec.CurrentBalance),
		PnL:              lenientDecimal(rec.PnL),
		ROI:              lenientDecimal(rec.ROI),
		Winrate:          lenientDecimal(rec.Winrate),
		MaxDailyDrawdown: lenientDecimal(rec.MaxDailyDrawdown),
		MaxTotalDrawdown: lenientDecimal(rec.MaxTotalDrawdown),
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

func NormalizeAccounts(recs []domain.AccountRecord) []domain.Account {
	accounts := make([]domain.Account, len(recs))
	for i, rec := range recs {
		accounts[i] = NormalizeAccount(rec)
	}
	return accounts
}

// recordParser keeps the first error so a record can be read field by field.
type recordParser struct {
	id  string
	err error
}

func (p *recordParser) fail(field, value string, err error) {
	if p.err == nil {
		p.err = &FieldError{TradeID: p.id, Field: field, Value: value, Err: err}
	}
}

func (p *recordParser) required(field, raw string) float64 {
	v, ok := p.number(field, raw)
	if !ok {
		return 0
	}
	return v
}

func (p *recordParser) optional(field string, raw *string) *float64 {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	v, ok := p.number(field, *raw)
	if !ok {
		return nil
	}
	return &v
}

func (p *recordParser) number(field, raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		p.fail(field, raw, errValueRequired)
		return 0, false
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		p.fail(field, raw, err)
		return 0, false
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		p.fail(field, raw, errOutOfRange)
		return 0, false
	}
	return v, true
}

func (p *recordParser) flag(field string, raw *string) bool {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(*raw))
	if err != nil {
		p.fail(field, *raw, err)
		return false
	}
	return v
}

func (p *recordParser) instrument(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		p.fail("instrument", raw, errValueRequired)
	}
	return trimmed
}

func (p *recordParser) side(raw string) domain.Side {
	side := domain.Side(strings.ToLower(strings.TrimSpace(raw)))
	if !side.Valid() {
		p.fail("side", raw, errors.New("side must be buy or sell"))
	}
	return side
}

func (p *recordParser) status(raw string) domain.TradeStatus {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.TradeStatusPending
	}
	status := domain.TradeStatus(strings.ToUpper(trimmed))
	if !status.Valid() {
		p.fail("status", raw, errors.New("unknown trade status"))
	}
	return status
}

func (p *recordParser) timestamp(field, raw string) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		p.fail(field, raw, errValueRequired)
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, trimmed)
	if err == nil {
		return ts.UTC()
	}
	for _, layout := range zonelessLayouts {
		if local, localErr := time.Parse(layout, trimmed); localErr == nil {
			return local.UTC()
		}
	}
	p.fail(field, raw, err)
	return time.Time{}
}

// zonelessLayouts are ISO 8601 forms without an offset. They are read as UTC.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func optionalText(raw *string) *string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	cpy := *raw
	return &cpy
}

// parseTags accepts a JSON array of strings; anything else means no tags.
func parseTags(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}

func lenientDecimal(raw string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
