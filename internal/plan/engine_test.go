package plan

import (
	"math"
	"testing"

	"scaleout-planner/internal/model"
	"scaleout-planner/internal/strategy"
)

func TestRunLinearThreeSteps(t *testing.T) {
	res, err := New().Run(Params{Quantity: 1.0, Steps: 3, StartPrice: 80, EndPrice: 150}, strategy.Linear{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Schedule) != 3 {
		t.Fatalf("got %d rows, want 3", len(res.Schedule))
	}

	wantPrices := []float64{80, 115, 150}
	third := 1.0 / 3
	for i, row := range res.Schedule {
		if row.Price != wantPrices[i] {
			t.Fatalf("row %d price=%v, want %v", i, row.Price, wantPrices[i])
		}
		if row.AmountToSell != third {
			t.Fatalf("row %d amount=%v, want %v", i, row.AmountToSell, third)
		}
		// The profit column must be the exact product, not a re-derivation.
		if row.Proceeds != row.AmountToSell*row.Price {
			t.Fatalf("row %d proceeds=%v, want amount*price=%v", i, row.Proceeds, row.AmountToSell*row.Price)
		}
	}

	if math.Abs(res.Schedule[0].Proceeds-26.6667) > 1e-3 {
		t.Fatalf("step 0 proceeds=%v, want ~26.67", res.Schedule[0].Proceeds)
	}
	if math.Abs(res.Schedule[2].Proceeds-50.0) > 1e-9 {
		t.Fatalf("step 2 proceeds=%v, want 50.0", res.Schedule[2].Proceeds)
	}
	if math.Abs(res.TotalQuantity-1.0) > 1e-9 {
		t.Fatalf("TotalQuantity=%v, want 1.0", res.TotalQuantity)
	}
}

func TestRunSingleStep(t *testing.T) {
	for _, name := range strategy.Names() {
		s, err := strategy.ForName(name)
		if err != nil {
			t.Fatal(err)
		}
		res, err := New().Run(Params{Quantity: 7.5, Steps: 1, StartPrice: 100, EndPrice: 200}, s)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(res.Schedule) != 1 {
			t.Fatalf("%s: got %d rows, want 1", name, len(res.Schedule))
		}
		row := res.Schedule[0]
		if math.Abs(row.AmountToSell-7.5) > 1e-12 {
			t.Fatalf("%s: amount=%v, want 7.5", name, row.AmountToSell)
		}
		// A one-step ladder starts (and ends) at the start price.
		if row.Price != 100 {
			t.Fatalf("%s: price=%v, want 100", name, row.Price)
		}
	}
}

func TestRunCumulativeSeries(t *testing.T) {
	res, err := New().Run(Params{Quantity: 10, Steps: 5, StartPrice: 50, EndPrice: 100}, strategy.Exponential{})
	if err != nil {
		t.Fatal(err)
	}

	cumSold := 0.0
	cumProceeds := 0.0
	for i, row := range res.Schedule {
		cumSold += row.AmountToSell
		cumProceeds += row.Proceeds
		if math.Abs(row.CumSold-cumSold) > 1e-9 {
			t.Fatalf("row %d CumSold=%v, want %v", i, row.CumSold, cumSold)
		}
		if math.Abs(row.CumProceeds-cumProceeds) > 1e-9 {
			t.Fatalf("row %d CumProceeds=%v, want %v", i, row.CumProceeds, cumProceeds)
		}
		if math.Abs(row.RemainingAfter-(10-cumSold)) > 1e-9 {
			t.Fatalf("row %d RemainingAfter=%v, want %v", i, row.RemainingAfter, 10-cumSold)
		}
	}
	if math.Abs(res.TotalProceeds-cumProceeds) > 1e-9 {
		t.Fatalf("TotalProceeds=%v, want %v", res.TotalProceeds, cumProceeds)
	}
}

func TestRunRejectsBadParams(t *testing.T) {
	e := New()
	cases := []Params{
		{Quantity: 0, Steps: 3, StartPrice: 80, EndPrice: 150},
		{Quantity: 1, Steps: 0, StartPrice: 80, EndPrice: 150},
		{Quantity: 1, Steps: 3, StartPrice: 0, EndPrice: 150},
		{Quantity: 1, Steps: 3, StartPrice: 80, EndPrice: -1},
	}
	for _, p := range cases {
		if _, err := e.Run(p, strategy.Linear{}); err == nil {
			t.Fatalf("expected error for params %+v", p)
		}
	}
	if _, err := e.Run(Params{Quantity: 1, Steps: 3, StartPrice: 80, EndPrice: 150}, nil); err == nil {
		t.Fatal("expected error for nil strategy")
	}
}

func TestRunPositionClipsAtRemaining(t *testing.T) {
	// Position holds less than the plan quantity; later steps get clipped
	// and the schedule never oversells.
	pos, err := model.NewPosition(model.PositionParams{Symbol: "BTC", Quantity: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	res, err := New().RunPosition(Params{Quantity: 1.0, Steps: 4, StartPrice: 100, EndPrice: 130}, strategy.Linear{}, pos)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(res.TotalQuantity-0.5) > 1e-9 {
		t.Fatalf("TotalQuantity=%v, want 0.5", res.TotalQuantity)
	}
	last := res.Schedule[len(res.Schedule)-1]
	if last.RemainingAfter != 0 {
		t.Fatalf("RemainingAfter=%v, want 0", last.RemainingAfter)
	}
	if last.Action != model.ActionHold {
		t.Fatalf("exhausted step action=%s, want HOLD", last.Action)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(80, 150, 3)
	want := []float64{80, 115, 150}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Linspace(80,150,3)[%d]=%v, want %v", i, got[i], want[i])
		}
	}

	if got := Linspace(42, 99, 1); len(got) != 1 || got[0] != 42 {
		t.Fatalf("Linspace(42,99,1)=%v, want [42]", got)
	}

	// Descending ladders are allowed.
	desc := Linspace(100, 50, 3)
	if desc[0] != 100 || desc[1] != 75 || desc[2] != 50 {
		t.Fatalf("Linspace(100,50,3)=%v", desc)
	}

	if Linspace(1, 2, 0) != nil {
		t.Fatal("Linspace with n=0 should return nil")
	}

	// The endpoint is pinned exactly even for awkward step sizes.
	end := Linspace(0.1, 0.9, 7)
	if end[6] != 0.9 {
		t.Fatalf("endpoint=%v, want exactly 0.9", end[6])
	}
}
