package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/microcap"
	"github.com/etnz/microcap/llm"
	"github.com/etnz/microcap/renderer"
	"github.com/google/subcommands"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show which AI and market-data providers are available" }
func (*statusCmd) Usage() string {
	return `status:

  Probes the configured AI providers and reports which one auto-selection
  would pick, along with the market-data configuration.
`
}

func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (*statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statuses, preferred := llm.Statuses(ctx, llm.ConfigFromEnv())

	report := &microcap.StatusReport{Preferred: preferred}
	for _, s := range statuses {
		report.Providers = append(report.Providers, microcap.ProviderStatus{
			Name: s.Name, Available: s.Available, Detail: s.Detail,
		})
	}

	report.MarketData = microcap.ProviderStatus{Name: "eodhd", Available: true, Detail: "with stooq fallback"}
	if os.Getenv("EODHD_API_KEY") == "" {
		report.MarketData = microcap.ProviderStatus{
			Name: "stooq", Available: true,
			Detail: "EODHD_API_KEY not set, using the keyless fallback only",
		}
	}

	printMarkdown(renderer.StatusMarkdown(report))
	return subcommands.ExitSuccess
}
