// Package constants provides shared constants for the emprestimos application.
package constants

// DateLayout is the format expected for dates in config files and is also the
// output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ClassificationHorizonMonths is the window after the base date within
	// which an installment counts as a current liability
	ClassificationHorizonMonths = 12
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX is the Excel spreadsheet output format
	OutputFormatXLSX = "xlsx"
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

	// DefaultMaxRequestSizeBytes is the default maximum request body size for
	// calculation requests (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024
)

// Input bounds enforced by the interactive form; the engine itself only
// requires positivity.
const (
	// MaxAnnualInterestRate is the upper bound on the annual rate accepted by
	// the form, in percent
	MaxAnnualInterestRate = 100.0

	// MaxTermMonths is the upper bound on the loan term accepted by the form
	MaxTermMonths = 360
)
