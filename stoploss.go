package microcap

// Action is the outcome recorded for a position on a given day.
type Action string

const (
	ActionHold     Action = "HOLD"
	ActionSellStop Action = "SELL - Stop Loss Triggered"
	ActionNoData   Action = "NO DATA"
)

// StopTriggered reports whether the stop-loss rule fires for this
// position at the given price. A zero stop-loss never triggers.
func (p Position) StopTriggered(price Money) bool {
	if p.StopLoss.IsZero() {
		return false
	}
	return price.LessThanOrEqual(p.StopLoss)
}

// StopTrigger describes a position whose stop-loss fired.
type StopTrigger struct {
	Ticker       string
	Shares       Quantity
	CurrentPrice Money
	StopLoss     Money
}

// CheckStopLosses returns the positions whose stop-loss fires at the
// given quotes. Positions with no quote are skipped.
func CheckStopLosses(p *Portfolio, quotes map[string]Quote) []StopTrigger {
	var triggers []StopTrigger
	for pos := range p.Positions() {
		q, ok := quotes[pos.Ticker]
		if !ok {
			continue
		}
		if pos.StopTriggered(q.Price) {
			triggers = append(triggers, StopTrigger{
				Ticker:       pos.Ticker,
				Shares:       pos.Shares,
				CurrentPrice: q.Price,
				StopLoss:     pos.StopLoss,
			})
		}
	}
	return triggers
}
