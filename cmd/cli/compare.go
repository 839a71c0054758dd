package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cropyield/advisor-service/internal/engine"
)

var (
	compareLocation string
	compareYield    float64
	compareOutput   string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <crop>",
	Short: "Compare market prices for a crop",
	Long: `Compare the markets quoting a crop near a location. Each market's quoted
price is reduced by the transport cost for its distance; markets are ranked by
the resulting net price. The output includes a selling strategy, timing advice
and risk factors.`,
	Example: `  advisor compare Wheat --location "Ludhiana, Punjab" --yield 50
  advisor compare Tomato --location Nashik --yield 120 --output json
  advisor compare Rice --catalog-file ./prices.csv --location Kolkata --yield 80`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareLocation, "location", "", "Farm location (required)")
	compareCmd.Flags().Float64Var(&compareYield, "yield", 0, "Expected yield in quintals (required)")
	compareCmd.Flags().StringVar(&compareOutput, "output", "table", "Output format: table or json")
	compareCmd.MarkFlagRequired("location")
	compareCmd.MarkFlagRequired("yield")
}

func runCompare(cmd *cobra.Command, args []string) error {
	crop := args[0]
	ctx := cmd.Context()

	source, closeSource, err := buildSource(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	quotes, err := source.QuotesFor(ctx, crop, compareLocation)
	if err != nil {
		return fmt.Errorf("failed to fetch market quotes: %w", err)
	}

	result, err := buildEngine().Compare(ctx, &engine.ComparisonRequest{
		CropType:      crop,
		Location:      compareLocation,
		ExpectedYield: compareYield,
		YieldUnit:     "quintals",
		Quotes:        quotes,
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if compareOutput == "json" {
		return printJSON(result)
	}

	printComparisonTable(result)
	return nil
}

func printComparisonTable(result *engine.ComparisonResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MARKET\tPRICE/Q\tDIST KM\tTRANSPORT\tNET PRICE")
	for _, q := range result.RankedMarkets {
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%.2f\t%.2f\n",
			q.MarketName, q.PricePerUnit, q.DistanceKm, q.TransportCost, q.NetPrice)
	}
	w.Flush()

	fmt.Printf("\nBest market:      %s (net %.2f)\n", result.BestMarket.MarketName, result.BestMarket.NetPrice)
	fmt.Printf("Revenue at best:  %.2f\n", result.RevenuePotential.BestMarket)
	fmt.Printf("Revenue average:  %.2f\n", result.RevenuePotential.AverageMarket)
	fmt.Printf("\nStrategy: %s\n", result.StrategyText)
	fmt.Printf("Timing:   %s\n", result.TimingText)
	if len(result.RiskFactors) > 0 {
		fmt.Println("\nRisks:")
		for _, r := range result.RiskFactors {
			fmt.Printf("  - %s\n", r)
		}
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
