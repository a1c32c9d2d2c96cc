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

type researchCmd struct {
	ai string
}

func (*researchCmd) Name() string     { return "research" }
func (*researchCmd) Synopsis() string { return "generate an AI research note on one ticker" }
func (*researchCmd) Usage() string {
	return `research [-ai <provider>] <TICKER>:

  Asks the AI provider for an equity research note on the ticker,
  including the current price when market data is reachable.
`
}

func (c *researchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ai, "ai", "auto", "AI provider: ollama, gemini, or auto")
}

func (c *researchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("research expects exactly one ticker, got %d arguments", f.NArg()))
	}
	ticker := strings.ToUpper(f.Arg(0))

	report := &microcap.ResearchReport{Date: microcap.Today(), Ticker: ticker}

	// Price is context for the prompt, not a requirement.
	if q, err := newQuoteProvider().DailyQuote(ctx, ticker); err != nil {
		log.Printf("no quote for %s: %v", ticker, err)
	} else {
		report.Price = q.Price
	}

	provider, err := newLLM(ctx, c.ai)
	if err != nil {
		return fail(err)
	}
	notes, err := provider.Generate(ctx, llm.ResearchPrompt(ticker, report.Price))
	if err != nil {
		return fail(err)
	}
	report.Notes = notes
	report.Provider = provider.Name()

	md := renderer.ResearchMarkdown(report)
	printMarkdown(md)
	path, err := saveReport(fmt.Sprintf("research_%s_%s.md", ticker, report.Date), []byte(md))
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Report saved to %s\n", path)
	return subcommands.ExitSuccess
}
