package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/etnz/microcap"
	"github.com/etnz/microcap/llm"
	"github.com/etnz/microcap/renderer"
	"github.com/google/subcommands"
)

type dailyCmd struct {
	date string
	ai   string
	noAI bool
}

func (*dailyCmd) Name() string { return "daily" }
func (*dailyCmd) Synopsis() string {
	return "process one trading day: quotes, stop-losses, journal, report"
}
func (*dailyCmd) Usage() string {
	return `daily [-d <date>] [-ai <provider>] [-no-ai]:

  Fetches the closing price of every holding and benchmark, executes
  stop-loss sells, updates the journal, and prints the daily report.
  Re-running for the same day replaces that day's journal rows.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "day to process, e.g. 2025-08-29 (default today)")
	f.StringVar(&c.ai, "ai", "auto", "AI provider: ollama, gemini, or auto")
	f.BoolVar(&c.noAI, "no-ai", false, "skip the AI analysis sections")
}

func (c *dailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	pf, journal, tradeLog, err := loadState()
	if err != nil {
		return fail(err)
	}

	report, err := microcap.RunDaily(ctx, newQuoteProvider(), pf, journal, tradeLog, on)
	if err != nil {
		return fail(err)
	}
	if err := saveState(pf, journal, tradeLog); err != nil {
		return fail(err)
	}

	if !c.noAI {
		c.analyze(ctx, report)
	}

	md := renderer.DailyMarkdown(report)
	printMarkdown(md)
	path, err := saveReport(fmt.Sprintf("daily_%s.md", on), []byte(md))
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Report saved to %s\n", path)
	return subcommands.ExitSuccess
}

// analyze fills the report's AI sections. AI failures never fail the
// daily run, the journal update is the part that matters.
func (c *dailyCmd) analyze(ctx context.Context, report *microcap.DailyReport) {
	provider, err := newLLM(ctx, c.ai)
	if err != nil {
		log.Printf("skipping AI analysis: %v", err)
		return
	}
	if text, err := provider.Generate(ctx, llm.AnalysisPrompt(report, stake())); err != nil {
		log.Printf("analysis failed: %v", err)
	} else {
		report.Analysis = text
	}
	if text, err := provider.Generate(ctx, llm.StrategyPrompt(report.Positions, marketConditions(report))); err != nil {
		log.Printf("strategy failed: %v", err)
	} else {
		report.Strategy = text
	}
	report.Provider = provider.Name()
}

// marketConditions summarizes the benchmark moves for the strategy prompt.
func marketConditions(report *microcap.DailyReport) string {
	if len(report.Benchmarks) == 0 {
		return "No benchmark data available"
	}
	parts := make([]string, 0, len(report.Benchmarks))
	for _, b := range report.Benchmarks {
		parts = append(parts, fmt.Sprintf("%s %s", b.Ticker, b.Change.SignedString()))
	}
	return strings.Join(parts, ", ")
}
