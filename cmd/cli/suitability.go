package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropyield/advisor-service/internal/crops"
	"github.com/cropyield/advisor-service/internal/suitability"
)

var (
	suitabilityLocation string
	suitabilityOutput   string
)

// suitabilityCmd represents the suitability command
var suitabilityCmd = &cobra.Command{
	Use:   "suitability <crop>",
	Short: "Check whether a crop suits a region's climate",
	Long: `Check a crop against the agro-climatic zone of a region. An unsuitable
crop gets the reason plus alternative crops that do grow there.`,
	Example: `  advisor suitability Wheat --location "Ludhiana, Punjab"
  advisor suitability Coffee --location Delhi`,
	Args: cobra.ExactArgs(1),
	RunE: runSuitability,
}

func init() {
	rootCmd.AddCommand(suitabilityCmd)

	suitabilityCmd.Flags().StringVar(&suitabilityLocation, "location", "", "Farm location (required)")
	suitabilityCmd.Flags().StringVar(&suitabilityOutput, "output", "table", "Output format: table or json")
	suitabilityCmd.MarkFlagRequired("location")
}

func runSuitability(cmd *cobra.Command, args []string) error {
	crop := args[0]

	if _, ok := crops.Parse(crop); !ok {
		names := make([]string, 0, len(crops.All()))
		for _, c := range crops.All() {
			names = append(names, c.DisplayName())
		}
		fmt.Printf("Unknown crop %q.\nSupported crops: %s\n", crop, strings.Join(names, ", "))
	}

	verdict := suitability.Check(crop, suitabilityLocation)

	if suitabilityOutput == "json" {
		return printJSON(verdict)
	}

	if verdict.Suitable {
		fmt.Printf("SUITABLE: %s\n", verdict.Message)
		if verdict.OptimalConditions != "" {
			fmt.Printf("Optimal conditions: %s\n", verdict.OptimalConditions)
		}
		if verdict.Reason != "" {
			fmt.Printf("Note: %s\n", verdict.Reason)
		}
	} else {
		fmt.Printf("NOT SUITABLE: %s\n", verdict.Message)
		if verdict.Reason != "" {
			fmt.Printf("Reason: %s\n", verdict.Reason)
		}
		if len(verdict.Alternatives) > 0 {
			fmt.Printf("Alternatives: %s\n", strings.Join(verdict.Alternatives, ", "))
		}
	}
	return nil
}
