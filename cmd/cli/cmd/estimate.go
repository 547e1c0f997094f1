// Package cmd - estimate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trade-cost/core/engine"
	"trade-cost/core/rates"
	"trade-cost/core/types"
	"trade-cost/internal/logging"
)

var outputFormat string

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <input.json>",
	Short: "Compute the landed cost for a shipment",
	Long: `Compute the landed cost for the shipment described in the input file.

The input file is a JSON LandedCostInput, for example:

  {
    "product_name": "Office chair",
    "hs_code": "9403.60",
    "base_cost": "10000",
    "incoterm": "FOB",
    "quantity": 1000,
    "currency": "USD",
    "origin_country": "CN",
    "destination_country": "US",
    "shipping_method": "sea_fcl",
    "container_type": "40ft"
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	input := &types.LandedCostInput{}
	if err := json.Unmarshal(data, input); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	if input.Currency == "" {
		input.Currency = types.Currency(cfg.Engine.DefaultCurrency)
	}

	eng := engine.New(rates.DefaultSnapshot(), engine.Config{
		DefaultInsuranceRate:      cfg.Engine.InsuranceRate(),
		OriginInlandEstimate:      cfg.Engine.OriginEstimate(),
		DestinationInlandEstimate: cfg.Engine.DestinationEstimate(),
	})

	result, err := eng.Calculate(cmd.Context(), input)
	if err != nil {
		logging.Error("landed cost calculation failed", zap.Error(err))
		return err
	}

	if outputFormat == "json" {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printResult(input, result)
	return nil
}

func printResult(input *types.LandedCostInput, result *types.LandedCostResult) {
	fmt.Printf("Landed cost for %s (%s -> %s via %s)\n",
		input.ProductName, input.OriginCountry, input.DestinationCountry, input.ShippingMethod)
	fmt.Printf("Calculation %s, version %s, rate data as of %s\n\n",
		result.CalculationID, result.CalculationVersion,
		result.DataSnapshotTimestamp.Format("2006-01-02"))

	fmt.Printf("%-32s %14s %10s %14s\n", "COMPONENT", "AMOUNT", "PCT", "CUMULATIVE")
	for _, item := range result.Breakdown {
		fmt.Printf("%-32s %14s %9s%% %14s\n",
			item.Component, item.Amount, item.Percentage.Round(2), item.CumulativeAmount)
	}

	fmt.Printf("\n%-32s %14s %s\n", "TOTAL LANDED COST",
		result.Totals.TotalLandedCost, result.Totals.Currency)
	fmt.Printf("%-32s %14s %s (x%d units)\n", "COST PER UNIT",
		result.Totals.CostPerUnit, result.Totals.Currency, input.Quantity)

	var warnings []types.CalculationNote
	for _, n := range result.Notes {
		if n.Category == types.NoteWarning {
			warnings = append(warnings, n)
		}
	}
	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  [%s] %s\n", w.Component, w.Message)
		}
	}
}
