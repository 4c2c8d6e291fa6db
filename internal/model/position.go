package model

import "errors"

// PositionParams defines the holding being scaled out.
// Units:
// - Quantity, MinLotSize: asset units
// - FeeRate: fraction of gross proceeds, 0..1
type PositionParams struct {
	Symbol     string
	Quantity   float64
	MinLotSize float64
	FeeRate    float64
}

// PositionState captures mutable state.
type PositionState struct {
	// Remaining is the unsold quantity in asset units.
	Remaining float64
}

// Position is a convenience wrapper bundling params + state.
type Position struct {
	Params PositionParams
	State  PositionState
}

func NewPosition(params PositionParams) (*Position, error) {
	p := &Position{
		Params: params,
		State:  PositionState{Remaining: params.Quantity},
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Position) Validate() error {
	params := p.Params
	if params.Quantity <= 0 {
		return errors.New("Quantity must be > 0")
	}
	if params.MinLotSize < 0 {
		return errors.New("MinLotSize must be >= 0")
	}
	if params.MinLotSize > params.Quantity {
		return errors.New("MinLotSize must not exceed Quantity")
	}
	if params.FeeRate < 0 || params.FeeRate >= 1 {
		return errors.New("FeeRate must be in [0, 1)")
	}
	if p.State.Remaining < 0 || p.State.Remaining > params.Quantity {
		return errors.New("Remaining must be within [0, Quantity]")
	}
	return nil
}

// SaleResult captures what happened at one step of the ladder.
type SaleResult struct {
	AmountSold      float64 // realized amount (may be clipped)
	GrossProceeds   float64 // price * AmountSold
	Fee             float64 // FeeRate * GrossProceeds
	NetProceeds     float64 // GrossProceeds - Fee
	RemainingBefore float64
	RemainingAfter  float64
}

// ApplySale sells up to amount at the given price, enforcing:
// - remaining quantity (requests are clipped, never overdrawn)
// - MinLotSize (a clipped request below the minimum lot sells nothing)
func (p *Position) ApplySale(price float64, amount float64) (SaleResult, error) {
	if price <= 0 {
		return SaleResult{}, errors.New("price must be > 0")
	}
	if amount < 0 {
		return SaleResult{}, errors.New("amount must be >= 0")
	}

	res := SaleResult{RemainingBefore: p.State.Remaining}

	sold := amount
	if sold > p.State.Remaining {
		sold = p.State.Remaining
	}
	if sold < p.Params.MinLotSize {
		sold = 0
	}

	p.State.Remaining -= sold

	res.AmountSold = sold
	res.GrossProceeds = price * sold
	res.Fee = p.Params.FeeRate * res.GrossProceeds
	res.NetProceeds = res.GrossProceeds - res.Fee
	res.RemainingAfter = p.State.Remaining
	return res, nil
}
