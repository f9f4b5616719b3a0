// Package analytics derives risk, reward, outcomes and performance series from
// journal trades. Every function is a pure transform of its inputs.
package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

// RiskPolicy selects how a price distance is turned into money.
type RiskPolicy string

const (
	// PolicySimple multiplies the price distance by the size.
	PolicySimple RiskPolicy = "simple"
	// PolicyPipAccurate converts the distance to pips and values each pip for
	// size lots of StandardLotSize units.
	PolicyPipAccurate RiskPolicy = "pip"
)

func ParseRiskPolicy(raw string) (RiskPolicy, error) {
	switch RiskPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case PolicySimple:
		return PolicySimple, nil
	case PolicyPipAccurate, "":
		return PolicyPipAccurate, nil
	default:
		return "", fmt.Errorf("unknown risk policy %q", raw)
	}
}

// Engine applies one risk policy to every monetary computation so that a
// trade's risk amount is the same in series, details and stats.
type Engine struct {
	policy RiskPolicy
}

func NewEngine(policy RiskPolicy) (*Engine, error) {
	if policy != PolicySimple && policy != PolicyPipAccurate {
		return nil, fmt.Errorf("unknown risk policy %q", policy)
	}
	return &Engine{policy: policy}, nil
}

func (e *Engine) Policy() RiskPolicy {
	return e.policy
}

// RiskInPips returns the planned entry to stop distance in price units.
func RiskInPips(t domain.Trade) float64 {
	return riskDistance(t).InexactFloat64()
}

// RiskPips returns the planned risk as a count of pips.
func RiskPips(t domain.Trade) float64 {
	return riskDistance(t).Div(finiteDecimal(PipSize(t.Instrument))).InexactFloat64()
}

// RiskAmount returns the money at risk between planned entry and stop. It is
// never negative and is zero when entry equals stop.
func (e *Engine) RiskAmount(t domain.Trade) float64 {
	return e.riskMoney(t).InexactFloat64()
}

func (e *Engine) riskMoney(t domain.Trade) decimal.Decimal {
	return e.priceToMoney(t, riskDistance(t))
}

func riskDistance(t domain.Trade) decimal.Decimal {
	return finiteDecimal(t.PlannedEntryPrice).Sub(finiteDecimal(t.PlannedStopLoss)).Abs()
}

// priceToMoney values a signed price distance for the trade's size.
func (e *Engine) priceToMoney(t domain.Trade, distance decimal.Decimal) decimal.Decimal {
	size := finiteDecimal(t.Size).Abs()
	if e.policy == PolicySimple {
		return distance.Mul(size)
	}
	pip := finiteDecimal(PipSize(t.Instrument))
	pipValue := size.Mul(decimal.NewFromInt(StandardLotSize)).Mul(pip)
	return distance.Div(pip).Mul(pipValue)
}

// ratio is a / b, or zero when b is zero.
func ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

func safeDivide(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	if math.Abs(b) < 1e-12 {
		return 0
	}
	return a / b
}
