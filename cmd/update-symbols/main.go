package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"scaleout-planner/internal/data"
)

func main() {
	var (
		market     = flag.String("market", "spot", "Market to update symbols for")
		outputPath = flag.String("output", "", "Output file path (default: ./data/symbols.json)")
		seedFile   = flag.String("seed", "", "Path to existing symbols file to use as seed")
		days       = flag.Int("days", 7, "Number of days to look back for symbol discovery")
	)
	flag.Parse()

	apiKey := os.Getenv("PRICE_API_KEY")
	if apiKey == "" {
		log.Fatal("PRICE_API_KEY environment variable is required")
	}

	if *outputPath == "" {
		*outputPath = data.GetDefaultSymbolsPath()
	}

	client := data.NewPriceClient(apiKey, "")

	fmt.Printf("Updating symbols for market: %s\n", *market)

	// Load existing symbols as seed if provided
	var existingSymbols []data.Symbol
	if *seedFile != "" {
		if list, err := data.LoadSymbols(*seedFile); err == nil {
			existingSymbols = list.Symbols
			fmt.Printf("Loaded %d existing symbols from seed file\n", len(existingSymbols))
		}
	} else {
		// Try to load from default path
		if list, err := data.LoadSymbols(data.GetDefaultSymbolsPath()); err == nil {
			existingSymbols = list.Symbols
			fmt.Printf("Loaded %d existing symbols from default file\n", len(existingSymbols))
		}
	}

	// Query known symbols to update their metadata
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -*days)

	fmt.Printf("Querying symbols from %s to %s to update metadata...\n",
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	symbols, err := updateSymbolsFromAPI(client, *market, startDate, endDate, existingSymbols)
	if err != nil {
		log.Fatalf("Failed to update symbols: %v", err)
	}

	fmt.Printf("Found %d total symbols\n", len(symbols))

	// Create symbol list
	list := &data.SymbolList{
		Market:    *market,
		UpdatedAt: time.Now().Format(time.RFC3339),
		Symbols:   symbols,
	}

	// Save to file
	if err := data.SaveSymbols(list, *outputPath); err != nil {
		log.Fatalf("Failed to save symbols: %v", err)
	}

	fmt.Printf("Saved %d symbols to %s\n", len(symbols), *outputPath)
}

// updateSymbolsFromAPI updates symbol metadata by querying known symbols.
// The price API requires a symbol to query, so we maintain a seed list and
// refresh metadata for those symbols. New symbols can be added manually.
func updateSymbolsFromAPI(client *data.PriceClient, market string, startDate, endDate time.Time, seedSymbols []data.Symbol) ([]data.Symbol, error) {
	// Default seed symbols if none provided
	if len(seedSymbols) == 0 {
		seedSymbols = []data.Symbol{
			{ID: "BTC-USD", Name: "Bitcoin", Exchange: "coinbase", Market: market},
			{ID: "ETH-USD", Name: "Ethereum", Exchange: "coinbase", Market: market},
		}
	}

	symbolMap := make(map[string]data.Symbol)

	// Start with seed symbols
	for _, s := range seedSymbols {
		s.Market = market // Ensure market is set
		symbolMap[s.ID] = s
	}

	// Query each known symbol to update metadata
	fmt.Printf("Querying %d known symbols...\n", len(seedSymbols))
	successCount := 0

	for _, s := range seedSymbols {
		resp, err := client.QuerySymbol(data.QuerySymbolParams{
			Market:    market,
			Symbol:    s.ID,
			StartTime: startDate,
			EndTime:   endDate,
			Download:  false,
		})
		if err != nil {
			fmt.Printf("  warning: failed to query symbol %s: %v\n", s.ID, err)
			// Keep the existing symbol data even if the query fails
			continue
		}

		if len(resp.Data) > 0 {
			first := resp.Data[0]
			// Update symbol with fresh metadata
			symbolMap[first.Symbol] = data.Symbol{
				ID:       first.Symbol,
				Name:     inferSymbolName(first.Symbol, s.Name),
				Exchange: first.Exchange,
				Market:   first.Market,
			}
			successCount++
			fmt.Printf("  updated: %s (%s)\n", first.Symbol, symbolMap[first.Symbol].Name)
		} else {
			fmt.Printf("  no data for symbol %s in date range\n", s.ID)
		}
	}

	fmt.Printf("Successfully updated %d/%d symbols\n", successCount, len(seedSymbols))

	// Convert map to slice
	symbols := make([]data.Symbol, 0, len(symbolMap))
	for _, s := range symbolMap {
		symbols = append(symbols, s)
	}

	return symbols, nil
}

// inferSymbolName attempts to infer a human-readable name from a symbol ID.
// If existingName is provided and not empty, it's used.
func inferSymbolName(symbolID, existingName string) string {
	if existingName != "" {
		return existingName
	}

	nameMap := map[string]string{
		"BTC-USD": "Bitcoin",
		"ETH-USD": "Ethereum",
	}

	if mapped, ok := nameMap[symbolID]; ok {
		return mapped
	}

	return symbolID
}
