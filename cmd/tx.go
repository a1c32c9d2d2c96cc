package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/microcap"
	"github.com/google/subcommands"
)

// This file implements the manual trading commands. Stop-loss sells are
// automated by the daily command; buy and sell record the decisions the
// AI (or the human running the experiment) made.

type buyCmd struct {
	ticker string
	shares float64
	price  float64
	stop   float64
	date   string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of a ticker" }
func (*buyCmd) Usage() string {
	return `buy -t <ticker> -s <shares> -p <price> [-stop <price>] [-d <date>]:

  Adds the position to the portfolio, debits the cash balance, and logs
  the trade. Buying a ticker already held averages the buy price.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "ticker to buy")
	f.Float64Var(&c.shares, "s", 0, "number of shares")
	f.Float64Var(&c.price, "p", 0, "price per share")
	f.Float64Var(&c.stop, "stop", 0, "stop-loss price (0 disables the automated sell)")
	f.StringVar(&c.date, "d", "", "trade date (default today)")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	pf, journal, tradeLog, err := loadState()
	if err != nil {
		return fail(err)
	}

	ticker := normalizeTicker(c.ticker)
	shares := microcap.Q(c.shares)
	price := microcap.M(c.price)
	if err := pf.Buy(ticker, shares, price, microcap.M(c.stop)); err != nil {
		return fail(err)
	}
	tradeLog.Append(microcap.Trade{
		Date: on, Ticker: ticker,
		SharesBought: shares, BuyPrice: price,
		CostBasis: price.Mul(shares),
		Reason:    microcap.ReasonManualBuy,
	})
	recordCash(journal, pf, on)

	if err := saveState(pf, journal, tradeLog); err != nil {
		return fail(err)
	}
	fmt.Printf("Bought %s %s @ %s, cash balance %s\n", shares, ticker, price, pf.Cash())
	return subcommands.ExitSuccess
}

type sellCmd struct {
	ticker string
	shares float64
	price  float64
	reason string
	date   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares of a ticker" }
func (*sellCmd) Usage() string {
	return `sell -t <ticker> -s <shares> -p <price> [-reason <text>] [-d <date>]:

  Removes shares from the portfolio, credits the cash balance, and logs
  the trade with the realized PnL.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "ticker to sell")
	f.Float64Var(&c.shares, "s", 0, "number of shares")
	f.Float64Var(&c.price, "p", 0, "price per share")
	f.StringVar(&c.reason, "reason", "Rebalancing", "why the position is sold")
	f.StringVar(&c.date, "d", "", "trade date (default today)")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	pf, journal, tradeLog, err := loadState()
	if err != nil {
		return fail(err)
	}

	ticker := normalizeTicker(c.ticker)
	shares := microcap.Q(c.shares)
	price := microcap.M(c.price)

	pos := pf.Position(ticker)
	if pos == nil {
		return fail(fmt.Errorf("sell %s: not found in portfolio", ticker))
	}
	costBasis := pos.BuyPrice.Mul(shares)

	pnl, err := pf.Sell(ticker, shares, price)
	if err != nil {
		return fail(err)
	}
	tradeLog.Append(microcap.Trade{
		Date: on, Ticker: ticker,
		SharesSold: shares, SellPrice: price,
		CostBasis: costBasis, PnL: pnl,
		Reason: "MANUAL SELL - " + c.reason,
	})
	recordCash(journal, pf, on)

	if err := saveState(pf, journal, tradeLog); err != nil {
		return fail(err)
	}
	fmt.Printf("Sold %s %s @ %s, PnL %s, cash balance %s\n", shares, ticker, price, pnl.SignedString(), pf.Cash())
	return subcommands.ExitSuccess
}

// normalizeTicker uppercases the ticker the way the data files store it.
func normalizeTicker(t string) string { return strings.ToUpper(strings.TrimSpace(t)) }

// recordCash persists the new cash balance in the day's TOTAL row so
// the next command restores it. Holdings are marked at cost until the
// next daily run replaces the row with real closes.
func recordCash(journal *microcap.Journal, pf *microcap.Portfolio, on microcap.Date) {
	var value, pnl microcap.Money
	if total, ok := journal.Total(on); ok {
		value, pnl = total.TotalValue, total.PnL
	} else {
		for pos := range pf.Positions() {
			value = value.Add(pos.CostBasis())
		}
	}
	journal.SetTotal(on, value, pnl, pf.Cash(), value.Add(pf.Cash()))
}
