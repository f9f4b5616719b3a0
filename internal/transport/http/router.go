package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/Nateight8/trading-mongoparl/internal/analytics"
	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

type JournalService interface {
	UserTradeData(ctx context.Context, userID string) (domain.UserTradeData, error)
	AccountChart(ctx context.Context, userID, accountID string, cumulative bool) (domain.AccountChart, error)
	Periods(ctx context.Context, userID, accountID, timeframe string) ([]domain.PeriodSummary, error)
	TradeDetail(ctx context.Context, userID, tradeID string) (domain.TradeDetail, error)
	ListSnapshots(ctx context.Context, userID string, limit int) ([]domain.PortfolioSnapshot, error)
	CreateAccount(ctx context.Context, userID string, in domain.NewAccount) (domain.Account, error)
	LogTrade(ctx context.Context, userID string, plan domain.TradePlan) (domain.Trade, error)
	ExecuteTrade(ctx context.Context, userID, tradeID string, exec domain.TradeExecution) (domain.Trade, error)
	CloseTrade(ctx context.Context, userID, tradeID string, exit domain.TradeExit) (domain.Trade, error)
	CancelTrade(ctx context.Context, userID, tradeID string) (domain.Trade, error)
}

type Router struct {
	app     *fiber.App
	journal JournalService
}

// New builds the API. metrics may be nil, in which case /metrics is not
// mounted.
func New(journal JournalService, metrics nethttp.Handler) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())

	r := &Router{
		app:     app,
		journal: journal,
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	users := v1.Group("/users/:user_id")
	users.Get("/trade-data", r.getTradeData)
	users.Get("/snapshots", r.listSnapshots)
	users.Post("/accounts", r.createAccount)
	users.Get("/accounts/:account_id/chart", r.getAccountChart)
	users.Get("/accounts/:account_id/periods", r.getAccountPeriods)

	users.Post("/trades", r.logTrade)
	users.Get("/trades/:trade_id", r.getTradeDetail)
	users.Post("/trades/:trade_id/execute", r.executeTrade)
	users.Post("/trades/:trade_id/close", r.closeTrade)
	users.Post("/trades/:trade_id/cancel", r.cancelTrade)

	app.Get("/swagger/*", swagger.HandlerDefault)

	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return r
}

func (r *Router) App() *fiber.App {
	return r.app
}

// getTradeData godoc
// @Summary Portfolio overview and per-account performance for a user
// @Tags performance
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.UserTradeData
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{user_id}/trade-data [get]
func (r *Router) getTradeData(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id required")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	data, err := r.journal.UserTradeData(ctx, userID)
	if err != nil {
		return statusError(err)
	}

	return c.JSON(data)
}

// getAccountChart godoc
// @Summary Chart points for one account
// @Tags performance
// @Produce json
// @Param user_id path string true "User ID"
// @Param account_id path string true "Account ID"
// @Param cumulative query bool false "Include running totals"
// @Success 200 {object} domain.AccountChart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{user_id}/accounts/{account_id}/chart [get]
func (r *Router) getAccountChart(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	accountID := c.Params("account_id")
	if userID == "" || accountID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id and account_id required")
	}

	cumulative := false
	if v := c.Query("cumulative"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cumulative must be a boolean")
		}
		cumulative = parsed
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	chart, err := r.journal.AccountChart(ctx, userID, accountID, cumulative)
	if err != nil {
		return statusError(err)
	}

	return c.JSON(chart)
}

// getAccountPeriods godoc
// @Summary Per-period totals for one account
// @Tags performance
// @Produce json
// @Param user_id path string true "User ID"
// @Param account_id path string true "Account ID"
// @Param timeframe query string false "day, week or month" default(day)
// @Success 200 {array} domain.PeriodSummary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{user_id}/accounts/{account_id}/periods [get]
func (r *Router) getAccountPeriods(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	accountID := c.Params("account_id")
	if userID == "" || accountID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id and account_id required")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	periods, err := r.journal.Periods(ctx, userID, accountID, c.Query("timeframe"))
	if err != nil {
		return statusError(err)
	}

	return c.JSON(periods)
}

// getTradeDetail godoc
// @Summary Risk metrics and price ladder for one trade
// @Tags trades
// @Produce json
// @Param user_id path string true "User ID"
// @Param trade_id path string true "Trade ID"
// @Success 200 {object} domain.TradeDetail
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{user_id}/trades/{trade_id} [get]
func (r *Router) getTradeDetail(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	detail, err := r.journal.TradeDetail(ctx, c.Params("user_id"), c.Params("trade_id"))
	if err != nil {
		return statusError(err)
	}

	return c.JSON(detail)
}

// listSnapshots godoc
// @Summary Stored portfolio snapshots, newest first
// @Tags performance
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Maximum number of snapshots"
// @Success 200 {array} domain.PortfolioSnapshot
// @Failure 500 {object} map[string]string
// @Router /users/{user_id}/snapshots [get]
func (r *Router) listSnapshots(c *fiber.Ctx) error {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	snapshots, err := r.journal.ListSnapshots(ctx, c.Params("user_id"), limit)
	if err != nil {
		return statusError(err)
	}

	return c.JSON(snapshots)
}

// createAccount godoc
// @Summary Open a trading account
// @Tags accounts
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body domain.NewAccount true "Account payload"
// @Success 201 {object} domain.Account
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{user_id}/accounts [post]
func (r *Router) createAccount(c *fiber.Ctx) error {
	var in domain.NewAccount
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	account, err := r.journal.CreateAccount(ctx, c.Params("user_id"), in)
	if err != nil {
		return statusError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// logTrade godoc
// @Summary Log a planned trade
// @Tags trades
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body domain.TradePlan true "Trade plan"
// @Success 201 {object} domain.Trade
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{user_id}/trades [post]
func (r *Router) logTrade(c *fiber.Ctx) error {
	var plan domain.TradePlan
	if err := c.BodyParser(&plan); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	trade, err := r.journal.LogTrade(ctx, c.Params("user_id"), plan)
	if err != nil {
		return statusError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(trade)
}

// executeTrade godoc
// @Summary Record the fill of a pending trade
// @Tags trades
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param trade_id path string true "Trade ID"
// @Param request body domain.TradeExecution true "Execution details"
// @Success 200 {object} domain.Trade
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/{user_id}/trades/{trade_id}/execute [post]
func (r *Router) executeTrade(c *fiber.Ctx) error {
	var exec domain.TradeExecution
	if err := c.BodyParser(&exec); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	trade, err := r.journal.ExecuteTrade(ctx, c.Params("user_id"), c.Params("trade_id"), exec)
	if err != nil {
		return statusError(err)
	}

	return c.JSON(trade)
}

// closeTrade godoc
// @Summary Close an open trade at its exit price
// @Tags trades
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param trade_id path string true "Trade ID"
// @Param request body domain.TradeExit true "Exit details"
// @Success 200 {object} domain.Trade
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/{user_id}/trades/{trade_id}/close [post]
func (r *Router) closeTrade(c *fiber.Ctx) error {
	var exit domain.TradeExit
	if err := c.BodyParser(&exit); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	trade, err := r.journal.CloseTrade(ctx, c.Params("user_id"), c.Params("trade_id"), exit)
	if err != nil {
		return statusError(err)
	}

	return c.JSON(trade)
}

// cancelTrade godoc
// @Summary Cancel a pending trade
// @Tags trades
// @Produce json
// @Param user_id path string true "User ID"
// @Param trade_id path string true "Trade ID"
// @Success 200 {object} domain.Trade
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/{user_id}/trades/{trade_id}/cancel [post]
func (r *Router) cancelTrade(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	trade, err := r.journal.CancelTrade(ctx, c.Params("user_id"), c.Params("trade_id"))
	if err != nil {
		return statusError(err)
	}

	return c.JSON(trade)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// statusError maps journal errors onto HTTP statuses.
func statusError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, analytics.ErrMalformedRecord):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
