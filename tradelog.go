package microcap

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Standard trade reasons. Manual sells carry a free-form reason prefixed
// with "MANUAL SELL - ".
const (
	ReasonStopLoss  = "AUTOMATED SELL - STOPLOSS TRIGGERED"
	ReasonManualBuy = "MANUAL BUY - New position"
)

// Trade is one line of the trade log. A buy fills SharesBought/BuyPrice,
// a sell fills SharesSold/SellPrice.
type Trade struct {
	Date         Date
	Ticker       string
	SharesBought Quantity
	BuyPrice     Money
	SharesSold   Quantity
	SellPrice    Money
	CostBasis    Money
	PnL          Money
	Reason       string
}

// IsSell reports whether this trade disposed of shares.
func (t Trade) IsSell() bool { return !t.SharesSold.IsZero() }

// tradelog.csv columns.
var tradeLogHeader = []string{
	"Date", "Ticker", "Shares Bought", "Buy Price", "Shares Sold", "Sell Price",
	"Cost Basis", "PnL", "Reason",
}

// TradeLog is the append-only record of all trades.
type TradeLog struct {
	trades []Trade
}

// NewTradeLog creates an empty trade log.
func NewTradeLog() *TradeLog { return &TradeLog{} }

// Trades returns all trades in the order they were logged.
func (l *TradeLog) Trades() []Trade { return l.trades }

// Append adds trades to the log.
func (l *TradeLog) Append(trades ...Trade) { l.trades = append(l.trades, trades...) }

// EncodeTradeLog writes the trade log as CSV.
func EncodeTradeLog(w io.Writer, l *TradeLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradeLogHeader); err != nil {
		return err
	}
	for _, t := range l.trades {
		record := []string{
			t.Date.String(), t.Ticker,
			quantityOrEmpty(t.SharesBought), moneyOrEmpty(t.BuyPrice),
			quantityOrEmpty(t.SharesSold), moneyOrEmpty(t.SellPrice),
			t.CostBasis.Decimal(), t.PnL.Decimal(), t.Reason,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func quantityOrEmpty(q Quantity) string {
	if q.IsZero() {
		return ""
	}
	return q.String()
}

func moneyOrEmpty(m Money) string {
	if m.IsZero() {
		return ""
	}
	return m.Decimal()
}

// DecodeTradeLog reads a trade log from CSV.
func DecodeTradeLog(r io.Reader) (*TradeLog, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid trade log csv: %w", err)
	}
	l := NewTradeLog()
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		if len(record) != len(tradeLogHeader) {
			return nil, fmt.Errorf("trade log row %d: got %d columns, want %d", i, len(record), len(tradeLogHeader))
		}
		t := Trade{Ticker: record[1], Reason: record[8]}
		if t.Date, err = ParseDate(record[0]); err != nil {
			return nil, fmt.Errorf("trade log row %d: %w", i, err)
		}
		if t.SharesBought, err = ParseQuantity(record[2]); err != nil {
			return nil, fmt.Errorf("trade log row %d: %w", i, err)
		}
		if t.BuyPrice, err = ParseMoney(record[3]); err != nil {
			return nil, fmt.Errorf("trade log row %d: %w", i, err)
		}
		if t.SharesSold, err = ParseQuantity(record[4]); err != nil {
			return nil, fmt.Errorf("trade log row %d: %w", i, err)
		}
		if t.SellPrice, err = ParseMoney(record[5]); err != nil {
			return nil, fmt.Errorf("trade log row %d: %w", i, err)
		}
		if t.CostBasis, err = ParseMoney(record[6]); err != nil {
			return nil, fmt.Errorf("trade log row %d: %w", i, err)
		}
		if t.PnL, err = ParseMoney(record[7]); err != nil {
			return nil, fmt.Errorf("trade log row %d: %w", i, err)
		}
		l.trades = append(l.trades, t)
	}
	return l, nil
}

// LoadTradeLog reads the trade log file. A missing file yields an empty log.
func LoadTradeLog(path string) (*TradeLog, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewTradeLog(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeTradeLog(f)
}

// SaveTradeLog rewrites the trade log file.
func SaveTradeLog(path string, l *TradeLog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeTradeLog(f, l)
}
