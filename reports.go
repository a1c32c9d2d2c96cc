package microcap

// This file defines the report structures produced by the commands and
// consumed by the renderer package.

// PositionReport is one position valued at the day's close.
type PositionReport struct {
	Ticker       string
	Shares       Quantity
	BuyPrice     Money
	StopLoss     Money
	CurrentPrice Money
	Change       Percent
	Value        Money
	PnL          Money
	Action       Action
}

// BenchmarkQuote is a benchmark index or ETF quoted for context.
type BenchmarkQuote struct {
	Ticker string
	Price  Money
	Change Percent
}

// DailyReport is the result of processing one day.
type DailyReport struct {
	Date       Date
	Positions  []PositionReport
	Triggers   []StopTrigger
	Benchmarks []BenchmarkQuote

	TotalValue Money // market value of the remaining holdings
	TotalPnL   Money // unrealized PnL of the remaining holdings
	Cash       Money
	Equity     Money

	Metrics Metrics

	// Optional AI sections, empty when no provider answered.
	Provider string
	Analysis string
	Strategy string
}

// PerformanceReport compares the portfolio against the benchmark index,
// both rebased to the initial stake.
type PerformanceReport struct {
	Date    Date
	Stake   Money
	Metrics Metrics

	FinalEquity     Money
	BenchmarkTicker string
	BenchmarkValue  Money // stake invested in the benchmark instead
	Return          Percent
	BenchmarkReturn Percent
	Outperformance  Percent

	Provider string
	Analysis string
}

// ResearchReport is an LLM research note on one ticker.
type ResearchReport struct {
	Date     Date
	Ticker   string
	Price    Money // zero when no quote was available
	Provider string
	Notes    string
}

// ProviderStatus is the availability of one configured provider.
type ProviderStatus struct {
	Name      string
	Available bool
	Detail    string
}

// StatusReport lists the configured providers and the auto-selected one.
type StatusReport struct {
	Providers  []ProviderStatus
	Preferred  string
	MarketData ProviderStatus
}
