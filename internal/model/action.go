package model

// Action is a human-friendly label for a ladder step.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

func ActionFromAmount(amount float64) Action {
	if amount > 0 {
		return ActionSell
	}
	return ActionHold
}
