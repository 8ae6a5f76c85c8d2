// Package constants provides shared constants for the renda fixa simulator.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the fixed holding-period convention used by the
	// regressive IR schedule (not calendar-accurate)
	DaysPerMonth = 30

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Default economic scenario (annual rates as decimal fractions)
const (
	// DefaultCDIAnnual is the default annual CDI rate (13.75%)
	DefaultCDIAnnual = 0.1375

	// DefaultIPCAAnnual is the default annual IPCA rate (4.5%)
	DefaultIPCAAnnual = 0.045
)

// Default contribution plan
const (
	// DefaultInitialDeposit is the default initial deposit in BRL
	DefaultInitialDeposit = 1000.0

	// DefaultMonthlyContribution is the default monthly contribution in BRL
	DefaultMonthlyContribution = 500.0

	// DefaultHorizonMonths is the default simulation horizon
	DefaultHorizonMonths = 36
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Report type constants
const (
	ReportTypeCSV  = "csv"
	ReportTypeJSON = "json"
	ReportTypePDF  = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
