// Package report exports simulation results to CSV, JSON, and PDF files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"rendafixa-simulator/pkg/format"
	"rendafixa-simulator/pkg/simulation"
)

// productRecord is the JSON shape of one exported product result.
type productRecord struct {
	Name         string    `json:"name"`
	MonthlyRate  float64   `json:"monthlyRate"`
	GrossGain    float64   `json:"grossGain"`
	TaxRate      float64   `json:"taxRate"`
	TaxWithheld  float64   `json:"taxWithheld"`
	NetGain      float64   `json:"netGain"`
	FinalBalance float64   `json:"finalBalance"`
	TaxExempt    bool      `json:"taxExempt"`
	Trajectory   []float64 `json:"trajectory"`
}

type reportDocument struct {
	GeneratedAt string          `json:"generatedAt"`
	Best        string          `json:"best,omitempty"`
	Products    []productRecord `json:"products"`
}

// WriteCSV writes the per-product summary followed by the trajectory matrix.
func WriteCSV(batch simulation.Batch, baseName, outputDir string) (string, error) {
	outputFilename, err := generateFilename(baseName, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"product", "monthly rate", "gross gain", "tax withheld", "net final balance"}); err != nil {
		return "", err
	}
	for _, result := range batch.Results {
		record := []string{
			result.ProductName,
			strconv.FormatFloat(result.MonthlyRate, 'f', 6, 64),
			fmt.Sprintf("%.2f", result.GrossGain),
			fmt.Sprintf("%.2f", result.TaxWithheld),
			fmt.Sprintf("%.2f", result.FinalBalance),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	// Month-by-month balances follow the summary rows.
	header := []string{"month"}
	for _, result := range batch.Results {
		header = append(header, result.ProductName)
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	months := 0
	for _, result := range batch.Results {
		if len(result.Trajectory) > months {
			months = len(result.Trajectory)
		}
	}
	for month := 0; month < months; month++ {
		row := []string{strconv.Itoa(month)}
		for _, result := range batch.Results {
			if month < len(result.Trajectory) {
				row = append(row, fmt.Sprintf("%.2f", result.Trajectory[month]))
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	return filepath.Abs(outputFilename)
}

// WriteJSON writes the full batch, trajectories included, as indented JSON.
func WriteJSON(batch simulation.Batch, baseName, outputDir string) (string, error) {
	outputFilename, err := generateFilename(baseName, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON report: %w", err)
	}
	defer file.Close()

	document := reportDocument{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Products:    make([]productRecord, 0, len(batch.Results)),
	}
	if batch.Best != nil {
		document.Best = batch.Best.ProductName
	}
	for _, result := range batch.Results {
		document.Products = append(document.Products, productRecord{
			Name:         result.ProductName,
			MonthlyRate:  result.MonthlyRate,
			GrossGain:    result.GrossGain,
			TaxRate:      result.TaxRate,
			TaxWithheld:  result.TaxWithheld,
			NetGain:      result.NetGain,
			FinalBalance: result.FinalBalance,
			TaxExempt:    result.TaxExempt,
			Trajectory:   result.Trajectory,
		})
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document); err != nil {
		return "", fmt.Errorf("error encoding JSON report: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// WritePDF writes a one-page-per-product summary report.
func WritePDF(batch simulation.Batch, baseName, outputDir string) (string, error) {
	outputFilename, err := generateFilename(baseName, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	writeLine := func(label, value string) {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(60, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}

	for _, result := range batch.Results {
		pdf.AddPage()

		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", result.ProductName)), "", 1, "L", true, 0, "")
		pdf.Ln(6)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		writeLine("Monthly rate", format.Rate(result.MonthlyRate))
		writeLine("Gross gain", format.Currency(result.GrossGain))
		if result.TaxExempt {
			writeLine("Income tax", "exempt")
		} else {
			writeLine("Income tax", fmt.Sprintf("%s (%s)", format.Currency(result.TaxWithheld), format.Percent(result.TaxRate)))
		}
		writeLine("Net gain", format.Currency(result.NetGain))
		writeLine("Net final balance", format.Currency(result.FinalBalance))

		if batch.Best != nil && batch.Best.ProductName == result.ProductName {
			pdf.Ln(4)
			pdf.SetFont("Arial", "B", 11)
			pdf.SetTextColor(0, 120, 0)
			pdf.CellFormat(0, 8, tr("Best option for this plan and scenario"), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF report: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(baseName, outputDir, extension string) (string, error) {
	if baseName == "" {
		baseName = fmt.Sprintf("rendafixa-%s", time.Now().Format("20060102-150405"))
	}
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating report directory: %w", err)
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s.%s", baseName, extension)), nil
}
