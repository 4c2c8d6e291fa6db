package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"scaleout-planner/internal/model"
	"scaleout-planner/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Bounds enforced on plan configuration. The engine itself accepts any
// steps >= 1; these are the limits exposed to config files and the API.
const (
	MinSteps = 3
	MaxSteps = 30
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load position parameters from a separate YAML
	// (e.g. examples/positions/*.yaml). If both PositionFile and Position
	// are provided, Position overrides PositionFile.
	PositionFile string         `yaml:"position_file"`
	Position     PositionConfig `yaml:"position"`
	Plan         PlanConfig     `yaml:"plan"`
	Strategy     StrategyConfig `yaml:"strategy"`
}

type PositionConfig struct {
	Name       string  `yaml:"name"`
	Symbol     string  `yaml:"symbol"`
	Quantity   float64 `yaml:"quantity"`
	MinLotSize float64 `yaml:"min_lot_size"`
	FeeRate    float64 `yaml:"fee_rate"`
}

type PlanConfig struct {
	// Quantity defaults to the position quantity when omitted.
	Quantity   float64 `yaml:"quantity"`
	Steps      int     `yaml:"steps"`
	StartPrice float64 `yaml:"start_price"`
	EndPrice   float64 `yaml:"end_price"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// If plan.quantity is not provided, default it to the position quantity.
	// This keeps configs concise: most plans sell the whole holding.
	if c.Plan.Quantity == 0 {
		c.Plan.Quantity = c.Position.Quantity
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If position_file is set, load it and merge in any explicit overrides
	// from c.Position.
	if c.PositionFile != "" {
		positionPath := c.PositionFile
		if !filepath.IsAbs(positionPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, but fall back to the provided path (relative to cwd)
			// if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), positionPath)
			if _, err := os.Stat(cand); err == nil {
				positionPath = cand
			}
		}
		loaded, err := loadPositionFile(positionPath)
		if err != nil {
			return nil, err
		}
		c.Position = MergePosition(loaded, c.Position)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	if _, err := strategy.ForName(c.Strategy.Name); err != nil {
		return err
	}
	if c.Plan.Steps < MinSteps || c.Plan.Steps > MaxSteps {
		return fmt.Errorf("plan.steps must be in [%d, %d], got %d", MinSteps, MaxSteps, c.Plan.Steps)
	}
	if c.Plan.Quantity <= 0 {
		return errors.New("plan.quantity must be > 0")
	}
	if c.Plan.StartPrice <= 0 || c.Plan.EndPrice <= 0 {
		return errors.New("plan.start_price and plan.end_price must be > 0")
	}
	// Validate position params by constructing a model.Position.
	if _, err := model.NewPosition(c.Position.ToModelParams()); err != nil {
		return fmt.Errorf("position config invalid: %w", err)
	}
	return nil
}

func (p PositionConfig) ToModelParams() model.PositionParams {
	return model.PositionParams{
		Symbol:     p.Symbol,
		Quantity:   p.Quantity,
		MinLotSize: p.MinLotSize,
		FeeRate:    p.FeeRate,
	}
}

type positionFileWrapper struct {
	Position PositionConfig `yaml:"position"`
}

func loadPositionFile(path string) (PositionConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PositionConfig{}, err
	}
	var w positionFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PositionConfig{}, err
	}
	return w.Position, nil
}

// MergePosition overlays non-zero fields from override onto base.
// This is used when loading a position file and then applying overrides
// from the config or the request.
func MergePosition(base, override PositionConfig) PositionConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Symbol != "" {
		out.Symbol = override.Symbol
	}
	if override.Quantity != 0 {
		out.Quantity = override.Quantity
	}
	if override.MinLotSize != 0 {
		out.MinLotSize = override.MinLotSize
	}
	if override.FeeRate != 0 {
		out.FeeRate = override.FeeRate
	}
	return out
}
