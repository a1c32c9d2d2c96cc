// Package cmd implements the CLI application to manage the journal.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/microcap"
	"github.com/etnz/microcap/eodhd"
	"github.com/etnz/microcap/llm"
	"github.com/etnz/microcap/stooq"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok
// to use global variables.

var (
	dataDir     = flag.String("C", ".", "Path to the data directory holding the CSV files")
	initialCash = flag.Float64("cash", 100, "Initial cash balance for a fresh journal")
	Verbose     = flag.Bool("v", false, "Enable verbose logging")
)

// commands is the list of registered subcommands, also used for shell
// completion and the extension fallback.
var commands = []subcommands.Command{
	&dailyCmd{},
	&performanceCmd{},
	&researchCmd{},
	&statusCmd{},
	&buyCmd{},
	&sellCmd{},
	&graphCmd{},
	&topicCmd{},
}

// Register the subcommands. A main package calls Register() and then
// Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	for _, cmd := range commands {
		c.Register(cmd, "journal")
	}
}

// Names returns the registered subcommand names.
func Names() []string {
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}
	return names
}

// Setup loads the .env file from the data directory and silences the
// diagnostic log unless -v was given. Must be called after flag.Parse.
func Setup() {
	if err := godotenv.Load(filepath.Join(*dataDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: could not load .env: %v", err)
	}
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

func portfolioPath() string { return filepath.Join(*dataDir, "portfolio.csv") }
func journalPath() string   { return filepath.Join(*dataDir, "journal.csv") }
func tradeLogPath() string  { return filepath.Join(*dataDir, "tradelog.csv") }
func reportsDir() string    { return filepath.Join(*dataDir, "reports") }

// loadState loads the portfolio, journal, and trade log, restoring the
// cash balance from the journal's latest TOTAL row (or the -cash flag on
// a fresh journal).
func loadState() (*microcap.Portfolio, *microcap.Journal, *microcap.TradeLog, error) {
	pf, err := microcap.LoadPortfolio(portfolioPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load portfolio: %w", err)
	}
	journal, err := microcap.LoadJournal(journalPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load journal: %w", err)
	}
	tradeLog, err := microcap.LoadTradeLog(tradeLogPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load trade log: %w", err)
	}

	if total, ok := journal.LatestTotal(); ok {
		pf.SetCash(total.CashBalance)
	} else {
		pf.SetCash(stake())
	}
	return pf, journal, tradeLog, nil
}

// saveState persists the three files.
func saveState(pf *microcap.Portfolio, journal *microcap.Journal, tradeLog *microcap.TradeLog) error {
	if err := microcap.SavePortfolio(portfolioPath(), pf); err != nil {
		return fmt.Errorf("could not save portfolio: %w", err)
	}
	if err := microcap.SaveJournal(journalPath(), journal); err != nil {
		return fmt.Errorf("could not save journal: %w", err)
	}
	if err := microcap.SaveTradeLog(tradeLogPath(), tradeLog); err != nil {
		return fmt.Errorf("could not save trade log: %w", err)
	}
	return nil
}

// stake returns the initial investment of the experiment.
func stake() microcap.Money { return microcap.M(*initialCash) }

// newQuoteProvider builds the market-data chain: EODHD when a key is
// configured, with the keyless stooq endpoint as fallback.
func newQuoteProvider() microcap.QuoteProvider {
	var chain microcap.ProviderChain
	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		chain = append(chain, eodhd.NewClient(key))
	}
	chain = append(chain, stooq.NewClient())
	return chain
}

// newLLM builds the AI provider named by the -ai flag ("auto" selects
// and chains the available ones).
func newLLM(ctx context.Context, name string) (llm.Provider, error) {
	return llm.New(ctx, name, llm.ConfigFromEnv())
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// saveReport writes a generated report under the reports directory and
// returns its path.
func saveReport(name string, content []byte) (string, error) {
	if err := os.MkdirAll(reportsDir(), 0755); err != nil {
		return "", err
	}
	path := filepath.Join(reportsDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// parseDateFlag parses a -d flag value, defaulting to today.
func parseDateFlag(s string) (microcap.Date, error) {
	if s == "" {
		return microcap.Today(), nil
	}
	return microcap.ParseDate(s)
}
