// Package constants provides shared constants for the pisocalc application.
package constants

// Fiscal constants for the Spanish purchase model. These are the built-in
// values; the configuration file may override them per region.
const (
	// VATRate is the VAT applied on the agency commission (21%).
	VATRate = 0.21

	// TransferTaxRate is the ITP rate applied on the property price (5.4%).
	TransferTaxRate = 0.054

	// FixedFees covers appraisal plus notary costs.
	FixedFees = 2500.0
)

// Calculator defaults. These seed the CLI flags and the configuration file.
const (
	// DefaultCommissionRate is the default agency commission (3.5%).
	DefaultCommissionRate = 0.035

	// DefaultDownPayment is the default available down payment.
	DefaultDownPayment = 42000.0

	// DefaultLoanRate is the default annual nominal mortgage rate (2.5%).
	DefaultLoanRate = 0.025

	// DefaultLoanTermYears is the default mortgage term.
	DefaultLoanTermYears = 30
)

// DefaultFinancingTiers are the loan-to-cost fractions shown in the
// financing table, highest financing first.
var DefaultFinancingTiers = []float64{0.95, 0.90, 0.85, 0.80}

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// AffordabilityRatio caps the monthly payment at this share of net
	// monthly income when deriving the recommended income.
	AffordabilityRatio = 0.35
)

// Financing assessment thresholds, measured against the fraction of the
// total cost being financed.
const (
	// FinancingCapFraction is the fraction above which most lenders decline.
	FinancingCapFraction = 0.80

	// FinancingCautionFraction is the fraction above which lenders tend to
	// ask for additional guarantees.
	FinancingCautionFraction = 0.70
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// MaxReasonableTermYears triggers a configuration warning past this term.
const MaxReasonableTermYears = 40
