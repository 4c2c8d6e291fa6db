package model

import "testing"

func TestNewPositionValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  PositionParams
		wantErr bool
	}{
		{"valid", PositionParams{Symbol: "BTC", Quantity: 1.5, FeeRate: 0.001}, false},
		{"valid with lot size", PositionParams{Symbol: "ETH", Quantity: 10, MinLotSize: 0.1}, false},
		{"zero quantity", PositionParams{Symbol: "BTC", Quantity: 0}, true},
		{"negative quantity", PositionParams{Symbol: "BTC", Quantity: -1}, true},
		{"lot exceeds quantity", PositionParams{Symbol: "BTC", Quantity: 1, MinLotSize: 2}, true},
		{"negative lot", PositionParams{Symbol: "BTC", Quantity: 1, MinLotSize: -0.1}, true},
		{"fee rate 1", PositionParams{Symbol: "BTC", Quantity: 1, FeeRate: 1}, true},
		{"negative fee", PositionParams{Symbol: "BTC", Quantity: 1, FeeRate: -0.01}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPosition(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPosition(%+v) error=%v, wantErr=%v", tt.params, err, tt.wantErr)
			}
		})
	}
}

func TestApplySaleClipsAtRemaining(t *testing.T) {
	pos, err := NewPosition(PositionParams{Symbol: "BTC", Quantity: 1.0})
	if err != nil {
		t.Fatal(err)
	}

	res, err := pos.ApplySale(100, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if res.AmountSold != 0.75 {
		t.Fatalf("AmountSold=%v, want 0.75", res.AmountSold)
	}
	if res.GrossProceeds != 75 {
		t.Fatalf("GrossProceeds=%v, want 75", res.GrossProceeds)
	}

	// Second sale requests more than remains; it must be clipped.
	res, err = pos.ApplySale(120, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if res.AmountSold != 0.25 {
		t.Fatalf("clipped AmountSold=%v, want 0.25", res.AmountSold)
	}
	if res.RemainingAfter != 0 {
		t.Fatalf("RemainingAfter=%v, want 0", res.RemainingAfter)
	}
}

func TestApplySaleMinLotSize(t *testing.T) {
	pos, err := NewPosition(PositionParams{Symbol: "ETH", Quantity: 10, MinLotSize: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	res, err := pos.ApplySale(50, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if res.AmountSold != 0 {
		t.Fatalf("sub-lot sale sold %v, want 0", res.AmountSold)
	}
	if res.RemainingAfter != 10 {
		t.Fatalf("RemainingAfter=%v, want 10", res.RemainingAfter)
	}
}

func TestApplySaleFees(t *testing.T) {
	pos, err := NewPosition(PositionParams{Symbol: "BTC", Quantity: 2, FeeRate: 0.01})
	if err != nil {
		t.Fatal(err)
	}

	res, err := pos.ApplySale(100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Fee != 1 {
		t.Fatalf("Fee=%v, want 1", res.Fee)
	}
	if res.NetProceeds != 99 {
		t.Fatalf("NetProceeds=%v, want 99", res.NetProceeds)
	}
}

func TestApplySaleRejectsBadInputs(t *testing.T) {
	pos, err := NewPosition(PositionParams{Symbol: "BTC", Quantity: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pos.ApplySale(0, 0.5); err == nil {
		t.Fatal("expected error for zero price")
	}
	if _, err := pos.ApplySale(100, -0.5); err == nil {
		t.Fatal("expected error for negative amount")
	}
}
