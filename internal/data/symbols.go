package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Symbol represents one tradable symbol known to the price API.
type Symbol struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Market   string `json:"market"` // e.g., "spot"
}

// SymbolList represents a collection of symbols.
type SymbolList struct {
	Market    string   `json:"market"`
	UpdatedAt string   `json:"updated_at"` // ISO 8601 timestamp
	Symbols   []Symbol `json:"symbols"`
}

// LoadSymbols loads symbols from a JSON file.
func LoadSymbols(filePath string) (*SymbolList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}

	var list SymbolList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse symbols file: %w", err)
	}

	return &list, nil
}

// SaveSymbols saves symbols to a JSON file.
func SaveSymbols(list *SymbolList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal symbols: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write symbols file: %w", err)
	}

	return nil
}

// GetDefaultSymbolsPath returns the default path for the symbols file.
func GetDefaultSymbolsPath() string {
	if path := os.Getenv("SYMBOLS_FILE"); path != "" {
		return path
	}
	return "./data/symbols.json"
}
