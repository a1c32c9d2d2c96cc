package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/microcap"
	"github.com/etnz/microcap/chart"
	"github.com/google/subcommands"
)

type graphCmd struct {
	benchmark string
	output    string
}

func (*graphCmd) Name() string     { return "graph" }
func (*graphCmd) Synopsis() string { return "render the portfolio vs benchmark comparison chart" }
func (*graphCmd) Usage() string {
	return `graph [-benchmark <ticker>] [-o <file>]:

  Plots the journal's equity history against the same stake invested in
  the benchmark index, as a PNG under the reports directory.
`
}

func (c *graphCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", microcap.ComparisonTicker, "benchmark ticker to compare against")
	f.StringVar(&c.output, "o", "", "output file name (default comparison_<date>.png)")
}

func (c *graphCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, journal, _, err := loadState()
	if err != nil {
		return fail(err)
	}
	series := journal.EquitySeries()
	if len(series) < 2 {
		return fail(fmt.Errorf("need at least 2 journal days to plot, got %d", len(series)))
	}
	first, last := series[0], series[len(series)-1]

	r := microcap.NewRange(first.Date, last.Date)
	candles, err := newQuoteProvider().History(ctx, c.benchmark, r)
	if err != nil {
		return fail(fmt.Errorf("no history for %s: %w", c.benchmark, err))
	}

	png, err := chart.Render(chart.Comparison{
		Title:         fmt.Sprintf("%s invested: portfolio vs %s", stake(), c.benchmark),
		PortfolioName: "Portfolio",
		BenchmarkName: c.benchmark,
		Portfolio:     series,
		Benchmark:     microcap.Rebase(candles, stake()),
	})
	if err != nil {
		return fail(err)
	}

	name := c.output
	if name == "" {
		name = fmt.Sprintf("comparison_%s.png", last.Date)
	}
	path, err := saveReport(name, png)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Chart saved to %s\n", path)
	return subcommands.ExitSuccess
}
