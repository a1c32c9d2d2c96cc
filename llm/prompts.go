package llm

import (
	"fmt"
	"strings"

	"github.com/etnz/microcap"
)

// This file builds the prompts sent to the providers. The wording
// deliberately targets micro-cap investing: higher volatility, limited
// liquidity, catalyst-driven moves.

// AnalysisPrompt asks for a portfolio performance analysis.
func AnalysisPrompt(r *microcap.DailyReport, stake microcap.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a professional portfolio analyst, analyze the following micro-cap portfolio performance:\n\n")
	fmt.Fprintf(&b, "Portfolio Summary:\n")
	fmt.Fprintf(&b, "- Initial Investment: %s\n", stake)
	fmt.Fprintf(&b, "- Current Value: %s\n", r.Equity)
	fmt.Fprintf(&b, "- Total Return: %s\n", r.Metrics.TotalReturn)
	fmt.Fprintf(&b, "- Cash Balance: %s\n\n", r.Cash)
	fmt.Fprintf(&b, "Individual Stock Performance:\n%s\n", formatPositions(r.Positions))
	b.WriteString(`
Please provide:
1. Overall portfolio assessment
2. Risk analysis
3. Recommendations for position management
4. Market outlook considerations
5. Potential catalysts to watch

Keep the analysis concise but insightful, focusing on actionable insights for micro-cap investing.
`)
	return b.String()
}

// ResearchPrompt asks for an equity research note on one ticker.
func ResearchPrompt(ticker string, price microcap.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a professional equity research analyst, provide a comprehensive analysis of %s:\n\n", ticker)
	if !price.IsZero() {
		fmt.Fprintf(&b, "Current Price: %s\n\n", price)
	}
	b.WriteString(`Please analyze:
1. Business model and competitive position
2. Recent financial performance and key metrics
3. Upcoming catalysts and events to watch
4. Risk factors and potential headwinds
5. Valuation assessment
6. Investment thesis (bull/bear cases)

Focus on micro-cap specific considerations such as:
- Liquidity concerns
- Institutional ownership
- Regulatory risks
- Growth potential vs. execution risk

Provide a balanced, data-driven analysis suitable for investment decision-making.
`)
	return b.String()
}

// StrategyPrompt asks for trading strategy recommendations.
func StrategyPrompt(positions []microcap.PositionReport, marketConditions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a professional portfolio strategist specializing in micro-cap stocks, develop a trading strategy based on:\n\n")
	fmt.Fprintf(&b, "Current Portfolio Status:\n%s\n", formatPositions(positions))
	fmt.Fprintf(&b, "\nMarket Conditions: %s\n", marketConditions)
	b.WriteString(`
Provide strategic recommendations for:
1. Position sizing and risk management
2. Entry/exit criteria for current holdings
3. Potential new opportunities in micro-cap space
4. Stop-loss and profit-taking levels
5. Portfolio rebalancing considerations

Consider the unique characteristics of micro-cap investing:
- Higher volatility and risk
- Limited liquidity
- Greater potential for asymmetric returns
- Importance of catalyst-driven events

Provide specific, actionable recommendations with clear rationale.
`)
	return b.String()
}

// PerformancePrompt asks for an analysis of the portfolio against the benchmark.
func PerformancePrompt(r *microcap.PerformanceReport) string {
	var b strings.Builder
	b.WriteString("Analyze this micro-cap portfolio performance:\n\n")
	fmt.Fprintf(&b, "Portfolio Return: %s\n", r.Return)
	fmt.Fprintf(&b, "Benchmark (%s) Return: %s\n", r.BenchmarkTicker, r.BenchmarkReturn)
	fmt.Fprintf(&b, "Outperformance: %s\n\n", r.Outperformance.SignedString())
	fmt.Fprintf(&b, "Trading Period: %d days\n", r.Metrics.TradingDays)
	fmt.Fprintf(&b, "Final Portfolio Value: %s\n", r.FinalEquity)
	b.WriteString(`
Provide insights on:
1. Risk-adjusted performance assessment
2. Key factors driving outperformance/underperformance
3. Portfolio construction effectiveness
4. Recommendations for improvement
`)
	return b.String()
}

func formatPositions(positions []microcap.PositionReport) string {
	if len(positions) == 0 {
		return "No individual stock positions"
	}
	var b strings.Builder
	for _, p := range positions {
		fmt.Fprintf(&b, "- %s: %s shares @ %s, P&L: %s\n", p.Ticker, p.Shares, p.CurrentPrice, p.PnL)
	}
	return b.String()
}
