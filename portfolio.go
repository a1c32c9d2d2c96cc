package microcap

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"
)

// Position is a single holding in the portfolio.
type Position struct {
	Ticker   string
	Shares   Quantity
	BuyPrice Money // average price paid per share
	StopLoss Money // automatic sell trigger, 0 disables it
}

// CostBasis returns shares times buy price.
func (p Position) CostBasis() Money { return p.BuyPrice.Mul(p.Shares) }

// Portfolio holds the current positions and the cash balance.
//
// Positions are persisted in portfolio.csv; cash travels through the
// journal's TOTAL rows and is set by the caller after loading.
type Portfolio struct {
	positions []Position
	cash      Money
}

// NewPortfolio creates an empty portfolio with the given cash balance.
func NewPortfolio(cash Money) *Portfolio {
	return &Portfolio{cash: cash}
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// SetCash overrides the cash balance, typically restored from the journal.
func (p *Portfolio) SetCash(cash Money) { p.cash = cash }

// Position returns the position for this ticker, or nil if not held.
func (p *Portfolio) Position(ticker string) *Position {
	for i := range p.positions {
		if p.positions[i].Ticker == ticker {
			return &p.positions[i]
		}
	}
	return nil
}

// Positions iterates over the positions sorted by ticker.
func (p *Portfolio) Positions() iter.Seq[Position] {
	sorted := slices.Clone(p.positions)
	slices.SortFunc(sorted, func(a, b Position) int { return strings.Compare(a.Ticker, b.Ticker) })
	return func(yield func(Position) bool) {
		for _, pos := range sorted {
			if !yield(pos) {
				return
			}
		}
	}
}

// Tickers returns the sorted list of held tickers.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.positions))
	for _, pos := range p.positions {
		tickers = append(tickers, pos.Ticker)
	}
	slices.Sort(tickers)
	return tickers
}

// Len returns the number of open positions.
func (p *Portfolio) Len() int { return len(p.positions) }

// Buy adds shares of a ticker at the given price, debiting the cash balance.
// Buying a ticker already held averages the buy price over all shares.
func (p *Portfolio) Buy(ticker string, shares Quantity, price, stop Money) error {
	if ticker == "" || ticker == TotalTicker {
		return fmt.Errorf("invalid ticker %q", ticker)
	}
	if !shares.IsPositive() {
		return fmt.Errorf("buy %s: shares must be positive, got %s", ticker, shares)
	}
	if !price.IsPositive() {
		return fmt.Errorf("buy %s: price must be positive, got %s", ticker, price)
	}
	cost := price.Mul(shares)
	if cost.GreaterThan(p.cash) {
		return fmt.Errorf("buy %s: cost %s exceeds cash balance %s", ticker, cost, p.cash)
	}

	p.cash = p.cash.Sub(cost)
	if pos := p.Position(ticker); pos != nil {
		newShares := pos.Shares.Add(shares)
		pos.BuyPrice = pos.CostBasis().Add(cost).Div(newShares)
		pos.Shares = newShares
		if !stop.IsZero() {
			pos.StopLoss = stop
		}
		return nil
	}
	p.positions = append(p.positions, Position{Ticker: ticker, Shares: shares, BuyPrice: price, StopLoss: stop})
	return nil
}

// Sell removes shares of a ticker at the given price, crediting the cash
// balance, and returns the realized PnL against the average buy price.
// The ticker must already be held with at least that many shares.
func (p *Portfolio) Sell(ticker string, shares Quantity, price Money) (pnl Money, err error) {
	pos := p.Position(ticker)
	if pos == nil {
		return Money{}, fmt.Errorf("sell %s: not found in portfolio", ticker)
	}
	if !shares.IsPositive() {
		return Money{}, fmt.Errorf("sell %s: shares must be positive, got %s", ticker, shares)
	}
	if shares.GreaterThan(pos.Shares) {
		return Money{}, fmt.Errorf("sell %s: trying to sell %s but only %s held", ticker, shares, pos.Shares)
	}

	proceeds := price.Mul(shares)
	pnl = proceeds.Sub(pos.BuyPrice.Mul(shares))
	p.cash = p.cash.Add(proceeds)

	pos.Shares = pos.Shares.Sub(shares)
	if pos.Shares.IsZero() {
		p.positions = slices.DeleteFunc(p.positions, func(q Position) bool { return q.Ticker == ticker })
	}
	return pnl, nil
}

// portfolio.csv columns.
var portfolioHeader = []string{"ticker", "shares", "buy_price", "stop_loss"}

// EncodePortfolio writes the positions as CSV.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(portfolioHeader); err != nil {
		return err
	}
	for pos := range p.Positions() {
		record := []string{pos.Ticker, pos.Shares.String(), pos.BuyPrice.Decimal(), pos.StopLoss.Decimal()}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodePortfolio reads positions from CSV. Cash is left at zero, the
// caller restores it from the journal.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio csv: %w", err)
	}
	p := &Portfolio{}
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		if len(record) != len(portfolioHeader) {
			return nil, fmt.Errorf("portfolio row %d: got %d columns, want %d", i, len(record), len(portfolioHeader))
		}
		shares, err := ParseQuantity(record[1])
		if err != nil {
			return nil, fmt.Errorf("portfolio row %d: %w", i, err)
		}
		buy, err := ParseMoney(record[2])
		if err != nil {
			return nil, fmt.Errorf("portfolio row %d: %w", i, err)
		}
		stop, err := ParseMoney(record[3])
		if err != nil {
			return nil, fmt.Errorf("portfolio row %d: %w", i, err)
		}
		p.positions = append(p.positions, Position{Ticker: record[0], Shares: shares, BuyPrice: buy, StopLoss: stop})
	}
	return p, nil
}

// LoadPortfolio reads the portfolio file. A missing file yields an empty
// portfolio: the experiment starts from cash only.
func LoadPortfolio(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Portfolio{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePortfolio(f)
}

// SavePortfolio rewrites the portfolio file.
func SavePortfolio(path string, p *Portfolio) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodePortfolio(f, p)
}
