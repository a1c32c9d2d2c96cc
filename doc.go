// Package microcap provides the functions and types behind a daily
// micro-cap trading journal. It is designed to be local-first and
// auditable: every holding, trade, and daily valuation lives in plain
// CSV files that can be inspected, diffed, and version-controlled.
//
// The core functionalities include:
//   - Portfolio Management: Tracking current holdings (ticker, shares,
//     buy price, stop-loss) and the cash balance.
//   - Daily Journal: An append-only history of daily valuations, one row
//     per position per day plus a TOTAL row carrying cash and equity.
//   - Trade Log: An append-only record of every buy and sell, manual or
//     triggered by a stop-loss rule.
//   - Market Data Integration: Fetching daily quotes and close-price
//     history from pluggable providers with fallback.
//   - Accounting: Stateless metrics computed from the journal's equity
//     series (total return, Sharpe, Sortino, max drawdown) and benchmark
//     comparison rebased to the initial stake.
//
// This package serves as the foundational logic for the `mcj`
// command-line tool, ensuring that all operations are consistent and
// based on a single source of truth.
package microcap
