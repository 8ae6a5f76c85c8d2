// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"rendafixa-simulator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateReportTypes checks that every requested report type is supported.
func ValidateReportTypes(types []string) error {
	for _, reportType := range types {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case constants.ReportTypeCSV, constants.ReportTypeJSON, constants.ReportTypePDF:
		default:
			return fmt.Errorf("expected report type of %s, %s, or %s, got %s",
				constants.ReportTypeCSV, constants.ReportTypeJSON, constants.ReportTypePDF, reportType)
		}
	}
	return nil
}
