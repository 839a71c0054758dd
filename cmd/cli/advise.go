package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropyield/advisor-service/internal/advisory"
)

var (
	adviseLocation   string
	adviseFarmSize   float64
	adviseInvestment float64
	adviseExperience string
	adviseOutput     string
)

// adviseCmd represents the advise command
var adviseCmd = &cobra.Command{
	Use:   "advise <crop>",
	Short: "Produce a full advisory report for a farm",
	Long: `Run the full advisory: suitability check, yield and profit estimation,
market price comparison, and narrative growing advice. The narrative needs an
OPENROUTER_API_KEY; without one the rest of the report is still produced. A
failed branch is reported alongside the branches that succeeded.`,
	Example: `  advisor advise Wheat --location "Ludhiana, Punjab" --size 3 --investment 50000
  advisor advise Tomato --location Nashik --size 2 --investment 80000 --experience expert`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)

	adviseCmd.Flags().StringVar(&adviseLocation, "location", "", "Farm location (required)")
	adviseCmd.Flags().Float64Var(&adviseFarmSize, "size", 0, "Farm size in acres (required)")
	adviseCmd.Flags().Float64Var(&adviseInvestment, "investment", 0, "Total investment (required)")
	adviseCmd.Flags().StringVar(&adviseExperience, "experience", "beginner", "Farmer experience: beginner, intermediate or expert")
	adviseCmd.Flags().StringVar(&adviseOutput, "output", "table", "Output format: table or json")
	adviseCmd.MarkFlagRequired("location")
	adviseCmd.MarkFlagRequired("size")
	adviseCmd.MarkFlagRequired("investment")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	crop := args[0]
	ctx := cmd.Context()

	source, closeSource, err := buildSource(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	orchestrator := advisory.NewOrchestrator(buildEngine(), source, buildNarrative(), advisory.DefaultOrchestratorConfig())

	report := orchestrator.Advise(ctx, advisory.AdviseRequest{
		Crop:          crop,
		Location:      adviseLocation,
		Investment:    adviseInvestment,
		FarmSizeAcres: adviseFarmSize,
		Experience:    adviseExperience,
	})

	if adviseOutput == "json" {
		return printJSON(report)
	}

	printReport(report)
	return nil
}

func printReport(report *advisory.Report) {
	if !report.Suitability.Suitable {
		fmt.Printf("NOT SUITABLE: %s\n", report.Suitability.Message)
		if report.Suitability.Reason != "" {
			fmt.Printf("Reason: %s\n", report.Suitability.Reason)
		}
		if len(report.Suitability.Alternatives) > 0 {
			fmt.Printf("Alternatives: %s\n", strings.Join(report.Suitability.Alternatives, ", "))
		}
		return
	}

	fmt.Printf("%s\n\n", report.Suitability.Message)

	if report.Yield.OK() {
		fmt.Printf("Expected yield: %.1f %s\n", report.Yield.Value.Amount, report.Yield.Value.Unit)
	} else {
		fmt.Printf("Yield estimate unavailable: %s\n", report.Yield.Err.Reason)
	}

	if report.Profit.OK() {
		fmt.Printf("Revenue: %.2f  Profit: %.2f  ROI: %.1f%%\n",
			report.Profit.Value.Revenue, report.Profit.Value.Profit, report.Profit.Value.ROI)
	} else {
		fmt.Printf("Profit estimate unavailable: %s\n", report.Profit.Err.Reason)
	}

	fmt.Println()
	if report.Comparison.OK() {
		printComparisonTable(report.Comparison.Value)
	} else {
		fmt.Printf("Market comparison unavailable: %s\n", report.Comparison.Err.Reason)
	}

	fmt.Println()
	if report.Advice.OK() {
		printSection("GROWING TIPS", report.Advice.Value.GrowingTips)
		printSection("PROFIT TIPS", report.Advice.Value.ProfitTips)
		printSection("WEATHER ADVICE", report.Advice.Value.WeatherAdvice)
		printSection("BEST PRACTICES", report.Advice.Value.BestPractices)
	} else {
		fmt.Printf("Narrative advice unavailable: %s\n", report.Advice.Err.Reason)
	}
}

func printSection(title, body string) {
	if body == "" {
		return
	}
	fmt.Printf("%s\n%s\n\n", title, body)
}
