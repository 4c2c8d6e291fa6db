package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plan.yaml", `
position:
  symbol: BTC
  quantity: 1.5
  fee_rate: 0.001
plan:
  steps: 5
  start_price: 80
  end_price: 150
strategy:
  name: exponential
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Position.Symbol != "BTC" {
		t.Fatalf("Symbol=%q", cfg.Position.Symbol)
	}
	// plan.quantity defaults to the position quantity.
	if cfg.Plan.Quantity != 1.5 {
		t.Fatalf("Plan.Quantity=%v, want 1.5", cfg.Plan.Quantity)
	}
	if cfg.Strategy.Name != "exponential" {
		t.Fatalf("Strategy.Name=%q", cfg.Strategy.Name)
	}
}

func TestLoadMergesPositionFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "btc.yaml", `
position:
  name: Main BTC holding
  symbol: BTC
  quantity: 2.0
  fee_rate: 0.001
`)
	path := writeFile(t, dir, "plan.yaml", `
position_file: btc.yaml
position:
  quantity: 0.5
plan:
  steps: 10
  start_price: 90
  end_price: 140
strategy:
  name: linear
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// Override wins over the file.
	if cfg.Position.Quantity != 0.5 {
		t.Fatalf("Quantity=%v, want 0.5", cfg.Position.Quantity)
	}
	// Untouched fields come from the file.
	if cfg.Position.Symbol != "BTC" || cfg.Position.FeeRate != 0.001 {
		t.Fatalf("merged position = %+v", cfg.Position)
	}
	if cfg.Position.Name != "Main BTC holding" {
		t.Fatalf("Name=%q", cfg.Position.Name)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		yaml string
	}{
		{"missing strategy", `
position: {symbol: BTC, quantity: 1}
plan: {steps: 5, start_price: 80, end_price: 150}
`},
		{"unknown strategy", `
position: {symbol: BTC, quantity: 1}
plan: {steps: 5, start_price: 80, end_price: 150}
strategy: {name: martingale}
`},
		{"steps below minimum", `
position: {symbol: BTC, quantity: 1}
plan: {steps: 2, start_price: 80, end_price: 150}
strategy: {name: linear}
`},
		{"steps above maximum", `
position: {symbol: BTC, quantity: 1}
plan: {steps: 31, start_price: 80, end_price: 150}
strategy: {name: linear}
`},
		{"zero start price", `
position: {symbol: BTC, quantity: 1}
plan: {steps: 5, start_price: 0, end_price: 150}
strategy: {name: linear}
`},
		{"zero quantity", `
position: {symbol: BTC, quantity: 0}
plan: {steps: 5, start_price: 80, end_price: 150}
strategy: {name: linear}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad_"+tt.name+".yaml", tt.yaml)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestMergePosition(t *testing.T) {
	base := PositionConfig{Name: "base", Symbol: "ETH", Quantity: 10, MinLotSize: 0.1, FeeRate: 0.002}
	override := PositionConfig{Quantity: 4}

	got := MergePosition(base, override)
	if got.Quantity != 4 {
		t.Fatalf("Quantity=%v, want 4", got.Quantity)
	}
	if got.Symbol != "ETH" || got.MinLotSize != 0.1 || got.FeeRate != 0.002 || got.Name != "base" {
		t.Fatalf("merged = %+v", got)
	}
}
