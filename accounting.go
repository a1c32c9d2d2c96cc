package microcap

import "math"

// riskFreeAnnual is the annualized risk-free rate used for Sharpe and
// Sortino ratios, as published in the original experiment.
const riskFreeAnnual = 0.045

const tradingDaysPerYear = 252

// Metrics are statistical aggregates over the journal's equity series.
// Unlike ledger amounts these are inherently inexact, so they are plain
// floats.
type Metrics struct {
	TradingDays int
	TotalReturn Percent // from the first to the last equity point
	Volatility  float64 // annualized standard deviation of daily returns
	Sharpe      float64
	Sortino     float64
	MaxDrawdown Percent // most negative peak-to-trough move
}

// ComputeMetrics derives the portfolio metrics from an equity series.
// It needs at least two points; with fewer it returns zero metrics.
func ComputeMetrics(series []EquityPoint) Metrics {
	m := Metrics{TradingDays: len(series)}
	if len(series) < 2 {
		return m
	}

	equity := make([]float64, len(series))
	for i, p := range series {
		equity[i] = p.Equity.AsFloat()
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] != 0 {
			returns = append(returns, equity[i]/equity[i-1]-1)
		}
	}

	totalReturn := 0.0
	if equity[0] != 0 {
		totalReturn = (equity[len(equity)-1] - equity[0]) / equity[0]
	}
	m.TotalReturn = Percent(totalReturn * 100)

	n := float64(len(returns))
	std := stddev(returns)
	m.Volatility = std * math.Sqrt(tradingDaysPerYear)

	// Risk-free return compounded over the observed period.
	rfPeriod := math.Pow(1+riskFreeAnnual, n/tradingDaysPerYear) - 1
	if std > 0 {
		m.Sharpe = (totalReturn - rfPeriod) / (std * math.Sqrt(n))
	}
	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if downside := stddev(negative); downside > 0 {
		m.Sortino = (totalReturn - rfPeriod) / (downside * math.Sqrt(n))
	}

	peak := equity[0]
	maxDrawdown := 0.0
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		if peak != 0 {
			if dd := (e - peak) / peak; dd < maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	m.MaxDrawdown = Percent(maxDrawdown * 100)

	return m
}

// stddev returns the sample standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	variance := 0.0
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	variance /= float64(len(xs) - 1)
	return math.Sqrt(variance)
}

// Rebase scales a close-price history so that it starts at the given
// stake, producing the "$100 invested in the index" series.
func Rebase(candles []Candle, stake Money) []EquityPoint {
	if len(candles) == 0 {
		return nil
	}
	first := candles[0].Close
	if first.IsZero() {
		return nil
	}
	points := make([]EquityPoint, len(candles))
	for i, c := range candles {
		points[i] = EquityPoint{
			Date:   c.Date,
			Equity: c.Close.Mul(stake.DivPrice(first)),
		}
	}
	return points
}
