package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cropyield/advisor-service/internal/agronomy"
)

var (
	yieldLocation   string
	yieldFarmSize   float64
	yieldInvestment float64
	yieldOutput     string
)

// yieldCmd represents the yield command
var yieldCmd = &cobra.Command{
	Use:   "yield <crop>",
	Short: "Estimate harvest and optionally profit for a farm",
	Long: `Estimate the expected harvest for a crop and farm size, adjusted for the
region's agro-climatic zone. With --investment the command also estimates
revenue, profit and return on investment.`,
	Example: `  advisor yield Wheat --location "Ludhiana, Punjab" --size 3
  advisor yield Rice --location Kolkata --size 2 --investment 60000`,
	Args: cobra.ExactArgs(1),
	RunE: runYield,
}

func init() {
	rootCmd.AddCommand(yieldCmd)

	yieldCmd.Flags().StringVar(&yieldLocation, "location", "", "Farm location")
	yieldCmd.Flags().Float64Var(&yieldFarmSize, "size", 0, "Farm size in acres (required)")
	yieldCmd.Flags().Float64Var(&yieldInvestment, "investment", 0, "Total investment; adds a profit estimate")
	yieldCmd.Flags().StringVar(&yieldOutput, "output", "table", "Output format: table or json")
	yieldCmd.MarkFlagRequired("size")
}

func runYield(cmd *cobra.Command, args []string) error {
	crop := args[0]

	yield, err := agronomy.EstimateYield(crop, yieldFarmSize, yieldLocation)
	if err != nil {
		return err
	}

	var profit *agronomy.ProfitEstimate
	if yieldInvestment > 0 {
		p, err := agronomy.EstimateProfit(crop, yieldInvestment, yield, yieldLocation)
		if err != nil {
			return err
		}
		profit = &p
	}

	if yieldOutput == "json" {
		return printJSON(map[string]any{"yield": yield, "profit": profit})
	}

	fmt.Printf("Expected yield: %.1f %s\n", yield.Amount, yield.Unit)
	if yield.ConfidenceNote != "" {
		fmt.Printf("Note: %s\n", yield.ConfidenceNote)
	}

	if profit != nil {
		fmt.Printf("\nRevenue:  %.2f\n", profit.Revenue)
		fmt.Printf("Profit:   %.2f\n", profit.Profit)
		fmt.Printf("ROI:      %.1f%%\n", profit.ROI)
		if len(profit.Risks) > 0 {
			fmt.Println("\nRisks:")
			for _, r := range profit.Risks {
				fmt.Printf("  - %s\n", r)
			}
		}
	}
	return nil
}
