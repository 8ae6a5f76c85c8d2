// Package output provides utilities for formatting and displaying
// simulation results.
package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"rendafixa-simulator/pkg/format"
	"rendafixa-simulator/pkg/simulation"
)

var bestBanner = color.New(color.FgGreen, color.Bold).SprintFunc()

// PrettyFormat renders the comparison table, the month-by-month balances,
// and the best-product banner in human-readable form.
func PrettyFormat(batch simulation.Batch) {
	tableData := pterm.TableData{
		{"Product", "Monthly rate", "Gross gain", "IR withheld", "Net final balance"},
	}
	for _, result := range batch.Results {
		tableData = append(tableData, []string{
			result.ProductName,
			format.Rate(result.MonthlyRate),
			format.Currency(result.GrossGain),
			format.Currency(result.TaxWithheld),
			format.Currency(result.FinalBalance),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		pterm.Error.Printfln("failed to render table: %v", err)
		return
	}

	for _, skipped := range batch.Skipped {
		pterm.Warning.Printfln("skipped %s: %v", skipped.ProductName, skipped.Err)
	}

	if batch.Best != nil {
		fmt.Println(bestBanner(fmt.Sprintf("BEST OPTION: %s - final balance %s",
			batch.Best.ProductName, format.Currency(batch.Best.FinalBalance))))
	}

	fmt.Println("Assumptions: constant CDI and IPCA over the horizon, regressive IR on taxable products, no IOF.")
}

// CsvFormat outputs the trajectory matrix in comma-separated value format.
func CsvFormat(batch simulation.Batch) {
	fmt.Print(CsvString(batch))
}

// CsvString builds the trajectory matrix as CSV: one row per month, one
// column per product, month 0 being the initial deposit.
func CsvString(batch simulation.Batch) string {
	var builder strings.Builder

	builder.WriteString(`"month"`)
	for _, result := range batch.Results {
		builder.WriteString(fmt.Sprintf(`,"%s"`, result.ProductName))
	}
	builder.WriteString("\n")

	months := 0
	for _, result := range batch.Results {
		if len(result.Trajectory) > months {
			months = len(result.Trajectory)
		}
	}

	for month := 0; month < months; month++ {
		builder.WriteString(fmt.Sprintf(`"%d"`, month))
		for _, result := range batch.Results {
			if month < len(result.Trajectory) {
				builder.WriteString(fmt.Sprintf(`,"%.2f"`, result.Trajectory[month]))
			} else {
				builder.WriteString(`,""`)
			}
		}
		builder.WriteString("\n")
	}

	return builder.String()
}
