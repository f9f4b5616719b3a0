package domain

import "time"

// ChartPoint is one trade's contribution to a performance chart, keyed by the
// trade's last update time.
type ChartPoint struct {
	ID        string    `json:"id"`
	X         time.Time `json:"x"`
	Actual    float64   `json:"actual"`
	Projected float64   `json:"projected"`
}

type CumulativePoint struct {
	X                   time.Time `json:"x"`
	Cumulative          float64   `json:"cumulative"`
	ProjectedCumulative float64   `json:"projectedCumulative"`
}

type TimeFrame string

const (
	TimeFrameDay   TimeFrame = "day"
	TimeFrameWeek  TimeFrame = "week"
	TimeFrameMonth TimeFrame = "month"
)

func (tf TimeFrame) Valid() bool {
	return tf == TimeFrameDay || tf == TimeFrameWeek || tf == TimeFrameMonth
}

type PeriodSummary struct {
	Period         string  `json:"period"`
	TotalActual    float64 `json:"totalActual"`
	TotalProjected float64 `json:"totalProjected"`
	TradeCount     int     `json:"tradeCount"`
}

type PortfolioOverview struct {
	CurrentBalance float64      `json:"currentBalance"`
	ROI            float64      `json:"roi"`
	PnL            float64      `json:"pnl"`
	Winrate        float64      `json:"winrate"`
	ChartData      []ChartPoint `json:"chartData"`
}

// TradeFailure reports a trade that could not be normalized and was left out
// of the derived data.
type TradeFailure struct {
	TradeID string `json:"tradeId"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type SeriesStats struct {
	TotalTrades  int     `json:"totalTrades"`
	ClosedTrades int     `json:"closedTrades"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Breakevens   int     `json:"breakevens"`
	WinRate      float64 `json:"winRate"`
	AverageWin   float64 `json:"averageWin"`
	AverageLoss  float64 `json:"averageLoss"`
	ProfitFactor float64 `json:"profitFactor"`
	Expectancy   float64 `json:"expectancy"`
	AverageR     float64 `json:"averageR"`
	BestTrade    float64 `json:"bestTrade"`
	WorstTrade   float64 `json:"worstTrade"`
	MaxDrawdown  float64 `json:"maxDrawdown"`
	NetActual    float64 `json:"netActual"`
	NetProjected float64 `json:"netProjected"`
}

type AccountPerformance struct {
	Account   Account      `json:"account"`
	ChartData []ChartPoint `json:"chartData"`
	Stats     SeriesStats  `json:"stats"`
}

type UserTradeData struct {
	Overview            PortfolioOverview    `json:"overview"`
	CumulativeChartData []CumulativePoint    `json:"cumulativeChartData"`
	Accounts            []AccountPerformance `json:"accounts"`
	Failures            []TradeFailure       `json:"failures,omitempty"`
}

type AccountChart struct {
	AccountID  string            `json:"accountId"`
	Points     []ChartPoint      `json:"points"`
	Cumulative []CumulativePoint `json:"cumulative,omitempty"`
	Failures   []TradeFailure    `json:"failures,omitempty"`
}

// LadderLevel is one price checkpoint of a trade's planned or actual path. Nil
// fields do not apply to the level.
type LadderLevel struct {
	Label        string   `json:"label"`
	PlannedPrice *float64 `json:"plannedPrice"`
	ActualPrice  *float64 `json:"actualPrice"`
	PlannedPnL   *float64 `json:"plannedPnL"`
	ActualPnL    *float64 `json:"actualPnL"`
	PlannedR     *float64 `json:"plannedR"`
	ActualR      *float64 `json:"actualR"`
}

type LadderSummary struct {
	RiskAmount   float64 `json:"riskAmount"`
	ProjectedPnL float64 `json:"projectedPnL"`
	ActualPnL    float64 `json:"actualPnL"`
	ProjectedRR  float64 `json:"projectedRR"`
	ActualRR     float64 `json:"actualRR"`
	Difference   float64 `json:"difference"`
}

type TradeLadder struct {
	Levels  []LadderLevel `json:"levels"`
	Summary LadderSummary `json:"summary"`
}

type TradeDetail struct {
	Trade       Trade        `json:"trade"`
	PipSize     float64      `json:"pipSize"`
	RiskInPips  float64      `json:"riskInPips"`
	RiskPips    float64      `json:"riskPips"`
	RiskAmount  float64      `json:"riskAmount"`
	ProjectedRR float64      `json:"projectedRR"`
	ActualRR    *float64     `json:"actualRR"`
	Outcome     Outcome      `json:"outcome"`
	Ladder      *TradeLadder `json:"ladder,omitempty"`
}

type PortfolioSnapshot struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	TakenAt    time.Time         `json:"takenAt"`
	Overview   PortfolioOverview `json:"overview"`
	Cumulative []CumulativePoint `json:"cumulative"`
}
