// Package constants provides shared constants for the invoice-roi application.
package constants

// Business constants governing the automation savings model. These are fixed
// and not user-configurable.
const (
	// AutomatedCostPerInvoice is the per-invoice cost of the automated system.
	AutomatedCostPerInvoice = 0.20

	// ErrorRateAuto is the residual error rate of the automated system (fraction).
	ErrorRateAuto = 0.001

	// MinROIBoostFactor is the multiplicative uplift applied to monthly savings.
	MinROIBoostFactor = 1.1

	// TimeSavedPerInvoiceMinutes is the staff time saved per invoice by automation.
	TimeSavedPerInvoiceMinutes = 7.073

	// ManualErrorRatePercent is the manual error rate, expressed in percent.
	ManualErrorRatePercent = 0.4

	// MinutesPerHour converts minutes saved into hours billed.
	MinutesPerHour = 60

	// PercentageMultiplier is used for percentage conversions.
	PercentageMultiplier = 100.0
)

// Default working inputs, used when no configuration or saved scenario
// overrides them.
const (
	DefaultMonthlyInvoiceVolume      = 2000
	DefaultNumAPStaff                = 3
	DefaultHourlyWage                = 30.0
	DefaultErrorCost                 = 100.0
	DefaultTimeHorizonMonths         = 36
	DefaultOneTimeImplementationCost = 50000.0
)

// Report constants
const (
	// UnsavedScenarioName is shown in place of an empty scenario name.
	UnsavedScenarioName = "Unsaved"

	// NotAvailable is shown for metrics whose value is unbounded.
	NotAvailable = "N/A"

	// ReportTitle is the heading of the rendered report document.
	ReportTitle = "ROI Calculator Report"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultDatabaseFile is the default scenario database file
	DefaultDatabaseFile = "scenarios.db"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "INVOICE_ROI"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
