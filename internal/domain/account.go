package domain

import (
	"fmt"
	"strings"
	"time"
)

// AccountRecord is a trading account as stored. Cached stats are kept as
// decimal text and are never recomputed from trades here.
type AccountRecord struct {
	ID               string
	UserID           string
	Name             string
	Broker           string
	Currency         string
	AccountSize      string
	CurrentBalance   string
	PnL              string
	ROI              string
	Winrate          string
	MaxDailyDrawdown string
	MaxTotalDrawdown string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Account struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Name             string    `json:"accountName"`
	Broker           string    `json:"broker"`
	Currency         string    `json:"accountCurrency"`
	AccountSize      float64   `json:"accountSize"`
	CurrentBalance   float64   `json:"currentBalance"`
	PnL              float64   `json:"pnl"`
	ROI              float64   `json:"roi"`
	Winrate          float64   `json:"winrate"`
	MaxDailyDrawdown float64   `json:"maxDailyDrawdown"`
	MaxTotalDrawdown float64   `json:"maxTotalDrawdown"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewAccount is the input for opening a trading account.
type NewAccount struct {
	Name             string  `json:"accountName"`
	Broker           string  `json:"broker"`
	Currency         string  `json:"accountCurrency"`
	AccountSize      float64 `json:"accountSize"`
	MaxDailyDrawdown float64 `json:"maxDailyDrawdown"`
	MaxTotalDrawdown float64 `json:"maxTotalDrawdown"`
}

// OpenAccount validates the input and builds an account whose balance starts at
// the account size with zeroed stats.
func OpenAccount(id, userID string, in NewAccount, now time.Time) (AccountRecord, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return AccountRecord{}, fmt.Errorf("%w: account name required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Broker) == "" {
		return AccountRecord{}, fmt.Errorf("%w: broker required", ErrInvalidInput)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		return AccountRecord{}, fmt.Errorf("%w: account currency required", ErrInvalidInput)
	}
	if !(in.AccountSize > 0) {
		return AccountRecord{}, fmt.Errorf("%w: account size must be positive", ErrInvalidInput)
	}
	if in.MaxDailyDrawdown < 0 || in.MaxTotalDrawdown < 0 {
		return AccountRecord{}, fmt.Errorf("%w: drawdown limits must not be negative", ErrInvalidInput)
	}

	now = now.UTC()
	size := formatDecimal(in.AccountSize)
	return AccountRecord{
		ID:               id,
		UserID:           userID,
		Name:             name,
		Broker:           strings.TrimSpace(in.Broker),
		Currency:         currency,
		AccountSize:      size,
		CurrentBalance:   size,
		PnL:              "0",
		ROI:              "0",
		Winrate:          "0",
		MaxDailyDrawdown: formatDecimal(in.MaxDailyDrawdown),
		MaxTotalDrawdown: formatDecimal(in.MaxTotalDrawdown),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}
