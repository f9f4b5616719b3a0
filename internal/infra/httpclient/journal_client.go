package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// JournalClient reads the journal API of a running server.
type JournalClient struct {
	client  *resty.Client
	baseURL string
}

type apiError struct {
	Error string `json:"error"`
}

// StatusError is returned when the server answers with a 4xx or 5xx status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("journal responded with status %d", e.Status)
	}
	return fmt.Sprintf("journal responded with status %d: %s", e.Status, e.Message)
}

func NewJournalClient(baseURL string, opts ...func(*resty.Client)) (*JournalClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	for _, opt := range opts {
		opt(client)
	}

	return &JournalClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
	}, nil
}

func (c *JournalClient) TradeData(ctx context.Context, userID string) (domain.UserTradeData, error) {
	var out domain.UserTradeData
	err := c.get(ctx, &out, nil, "users", userID, "trade-data")
	return out, err
}

func (c *JournalClient) AccountChart(ctx context.Context, userID, accountID string, cumulative bool) (domain.AccountChart, error) {
	var out domain.AccountChart
	query := map[string]string{"cumulative": strconv.FormatBool(cumulative)}
	err := c.get(ctx, &out, query, "users", userID, "accounts", accountID, "chart")
	return out, err
}

func (c *JournalClient) Periods(ctx context.Context, userID, accountID, timeframe string) ([]domain.PeriodSummary, error) {
	var out []domain.PeriodSummary
	query := map[string]string{}
	if timeframe != "" {
		query["timeframe"] = timeframe
	}
	err := c.get(ctx, &out, query, "users", userID, "accounts", accountID, "periods")
	return out, err
}

func (c *JournalClient) TradeDetail(ctx context.Context, userID, tradeID string) (domain.TradeDetail, error) {
	var out domain.TradeDetail
	err := c.get(ctx, &out, nil, "users", userID, "trades", tradeID)
	return out, err
}

func (c *JournalClient) Snapshots(ctx context.Context, userID string, limit int) ([]domain.PortfolioSnapshot, error) {
	var out []domain.PortfolioSnapshot
	query := map[string]string{}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}
	err := c.get(ctx, &out, query, "users", userID, "snapshots")
	return out, err
}

func (c *JournalClient) get(ctx context.Context, result any, query map[string]string, segments ...string) error {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: empty path segment", domain.ErrInvalidInput)
		}
		escaped = append(escaped, url.PathEscape(s))
	}
	endpoint := c.baseURL + "/" + strings.Join(escaped, "/")

	var failure apiError
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(result).
		SetError(&failure).
		Get(endpoint)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}

	if resp.StatusCode() >= 400 {
		return &StatusError{Status: resp.StatusCode(), Message: failure.Error}
	}
	return nil
}
