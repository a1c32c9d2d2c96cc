package microcap

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
)

// TotalTicker is the pseudo ticker of the daily summary row. It carries
// the cash balance and total equity for the day.
const TotalTicker = "TOTAL"

// JournalRow is one line of the daily valuation history. Position rows
// leave CashBalance and TotalEquity empty; the TOTAL row leaves the
// per-position columns empty.
type JournalRow struct {
	Date         Date
	Ticker       string
	Shares       Quantity
	CostBasis    Money
	StopLoss     Money
	CurrentPrice Money
	TotalValue   Money
	PnL          Money
	Action       Action
	CashBalance  Money
	TotalEquity  Money
}

// IsTotal reports whether this is the daily summary row.
func (r JournalRow) IsTotal() bool { return r.Ticker == TotalTicker }

// Journal is the daily valuation history, in chronological order.
// Rows for one day are contiguous and end with the TOTAL row.
type Journal struct {
	rows []JournalRow
}

// NewJournal creates an empty journal.
func NewJournal() *Journal { return &Journal{} }

// Rows returns all rows in chronological order.
func (j *Journal) Rows() []JournalRow { return j.rows }

// ReplaceDay removes any existing rows for the given day and appends the
// new ones. Re-running a day must not duplicate its history.
func (j *Journal) ReplaceDay(on Date, rows []JournalRow) {
	j.rows = slices.DeleteFunc(j.rows, func(r JournalRow) bool { return r.Date == on })
	j.rows = append(j.rows, rows...)
	j.sort()
}

// sort orders rows chronologically, keeping the insertion order within
// a day so the TOTAL row stays last.
func (j *Journal) sort() {
	slices.SortStableFunc(j.rows, func(a, b JournalRow) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
}

// Total returns the TOTAL row for the given day, if any.
func (j *Journal) Total(on Date) (JournalRow, bool) {
	for _, r := range j.rows {
		if r.Date == on && r.IsTotal() {
			return r, true
		}
	}
	return JournalRow{}, false
}

// SetTotal replaces the TOTAL row for the given day, keeping any
// position rows. Buy and sell use it to persist the cash balance
// between daily runs.
func (j *Journal) SetTotal(on Date, totalValue, pnl, cash, equity Money) {
	j.rows = slices.DeleteFunc(j.rows, func(r JournalRow) bool { return r.Date == on && r.IsTotal() })
	j.rows = append(j.rows, JournalRow{
		Date: on, Ticker: TotalTicker,
		TotalValue: totalValue, PnL: pnl,
		CashBalance: cash, TotalEquity: equity,
	})
	j.sort()
}

// LatestTotal returns the most recent TOTAL row, if any.
func (j *Journal) LatestTotal() (JournalRow, bool) {
	for i := len(j.rows) - 1; i >= 0; i-- {
		if j.rows[i].IsTotal() {
			return j.rows[i], true
		}
	}
	return JournalRow{}, false
}

// EquityPoint is the total equity at the close of one day.
type EquityPoint struct {
	Date   Date
	Equity Money
}

// EquitySeries extracts the equity history from the TOTAL rows, in
// chronological order.
func (j *Journal) EquitySeries() []EquityPoint {
	var series []EquityPoint
	for _, r := range j.rows {
		if r.IsTotal() {
			series = append(series, EquityPoint{Date: r.Date, Equity: r.TotalEquity})
		}
	}
	return series
}

// journal.csv columns, in the order the original experiment published them.
var journalHeader = []string{
	"Date", "Ticker", "Shares", "Cost Basis", "Stop Loss", "Current Price",
	"Total Value", "PnL", "Action", "Cash Balance", "Total Equity",
}

// EncodeJournal writes the full journal as CSV.
func EncodeJournal(w io.Writer, j *Journal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(journalHeader); err != nil {
		return err
	}
	for _, r := range j.rows {
		if err := cw.Write(encodeJournalRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeJournalRow(r JournalRow) []string {
	// Empty strings mark the columns that do not apply to this row kind,
	// matching the published CSV.
	if r.IsTotal() {
		return []string{
			r.Date.String(), r.Ticker, "", "", "", "",
			r.TotalValue.Decimal(), r.PnL.Decimal(), string(r.Action),
			r.CashBalance.Decimal(), r.TotalEquity.Decimal(),
		}
	}
	if r.Action == ActionNoData {
		return []string{
			r.Date.String(), r.Ticker, r.Shares.String(),
			r.CostBasis.Decimal(), r.StopLoss.Decimal(),
			"", "", "", string(r.Action), "", "",
		}
	}
	return []string{
		r.Date.String(), r.Ticker, r.Shares.String(),
		r.CostBasis.Decimal(), r.StopLoss.Decimal(), r.CurrentPrice.Decimal(),
		r.TotalValue.Decimal(), r.PnL.Decimal(), string(r.Action), "", "",
	}
}

// DecodeJournal reads a journal from CSV.
func DecodeJournal(r io.Reader) (*Journal, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid journal csv: %w", err)
	}
	j := NewJournal()
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		row, err := decodeJournalRow(record)
		if err != nil {
			return nil, fmt.Errorf("journal row %d: %w", i, err)
		}
		j.rows = append(j.rows, row)
	}
	return j, nil
}

func decodeJournalRow(record []string) (JournalRow, error) {
	if len(record) != len(journalHeader) {
		return JournalRow{}, fmt.Errorf("got %d columns, want %d", len(record), len(journalHeader))
	}
	on, err := ParseDate(record[0])
	if err != nil {
		return JournalRow{}, err
	}
	row := JournalRow{Date: on, Ticker: record[1], Action: Action(record[8])}
	if row.Shares, err = ParseQuantity(record[2]); err != nil {
		return JournalRow{}, err
	}
	fields := []struct {
		dst *Money
		src string
	}{
		{&row.CostBasis, record[3]},
		{&row.StopLoss, record[4]},
		{&row.CurrentPrice, record[5]},
		{&row.TotalValue, record[6]},
		{&row.PnL, record[7]},
		{&row.CashBalance, record[9]},
		{&row.TotalEquity, record[10]},
	}
	for _, f := range fields {
		if *f.dst, err = ParseMoney(f.src); err != nil {
			return JournalRow{}, err
		}
	}
	return row, nil
}

// LoadJournal reads the journal file. A missing file yields an empty journal.
func LoadJournal(path string) (*Journal, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewJournal(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeJournal(f)
}

// SaveJournal rewrites the journal file.
func SaveJournal(path string, j *Journal) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeJournal(f, j)
}
