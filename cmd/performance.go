package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/etnz/microcap"
	"github.com/etnz/microcap/llm"
	"github.com/etnz/microcap/renderer"
	"github.com/google/subcommands"
)

type performanceCmd struct {
	ai   string
	noAI bool
}

func (*performanceCmd) Name() string { return "performance" }
func (*performanceCmd) Synopsis() string {
	return "compute portfolio metrics and compare against the benchmark index"
}
func (*performanceCmd) Usage() string {
	return `performance [-ai <provider>] [-no-ai]:

  Computes return, volatility, Sharpe, Sortino, and max drawdown from
  the journal's equity history, and compares the portfolio against the
  same stake invested in the benchmark index.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ai, "ai", "auto", "AI provider: ollama, gemini, or auto")
	f.BoolVar(&c.noAI, "no-ai", false, "skip the AI analysis section")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, journal, _, err := loadState()
	if err != nil {
		return fail(err)
	}
	series := journal.EquitySeries()
	if len(series) == 0 {
		return fail(errors.New("no journal history yet, run 'mcj daily' first"))
	}
	last := series[len(series)-1]

	report := &microcap.PerformanceReport{
		Date:            last.Date,
		Stake:           stake(),
		Metrics:         microcap.ComputeMetrics(series),
		FinalEquity:     last.Equity,
		BenchmarkTicker: microcap.ComparisonTicker,
		Return:          last.Equity.Sub(stake()).Ratio(stake()),
	}

	// The benchmark comparison is best effort, the metrics above stand
	// on their own when market data is unreachable.
	r := microcap.NewRange(series[0].Date, last.Date)
	candles, err := newQuoteProvider().History(ctx, microcap.ComparisonTicker, r)
	if err != nil {
		log.Printf("no benchmark history: %v", err)
	} else if points := microcap.Rebase(candles, stake()); len(points) > 0 {
		final := points[len(points)-1].Equity
		report.BenchmarkValue = final
		report.BenchmarkReturn = final.Sub(stake()).Ratio(stake())
		report.Outperformance = report.Return - report.BenchmarkReturn
	}

	if !c.noAI {
		if provider, err := newLLM(ctx, c.ai); err != nil {
			log.Printf("skipping AI analysis: %v", err)
		} else if text, err := provider.Generate(ctx, llm.PerformancePrompt(report)); err != nil {
			log.Printf("analysis failed: %v", err)
		} else {
			report.Analysis = text
			report.Provider = provider.Name()
		}
	}

	md := renderer.PerformanceMarkdown(report)
	printMarkdown(md)
	path, err := saveReport(fmt.Sprintf("performance_%s.md", report.Date), []byte(md))
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Report saved to %s\n", path)
	return subcommands.ExitSuccess
}
