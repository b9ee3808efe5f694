// Package output provides utilities for formatting and displaying
// calculation results.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/happyhipo/pisocalc/internal/calculator"
	"github.com/happyhipo/pisocalc/pkg/format"
	"github.com/happyhipo/pisocalc/pkg/mathutil"
	"gopkg.in/yaml.v3"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(result *calculator.Result) {
	WritePretty(os.Stdout, result)
}

// CsvFormat outputs in comma-separated value format, including the full
// amortization schedule.
func CsvFormat(result *calculator.Result) {
	WriteCsv(os.Stdout, result)
}

// YamlFormat outputs a YAML summary of the calculation.
func YamlFormat(result *calculator.Result) error {
	return WriteYaml(os.Stdout, result)
}

// WritePretty renders the report to the given writer.
func WritePretty(w io.Writer, result *calculator.Result) {
	b := result.Breakdown

	fmt.Fprintf(w, "--- Desglose de costes ---\n")
	fmt.Fprintf(w, "Precio del piso        | %s\n", format.Currency(b.Price))
	fmt.Fprintf(w, "Comisión base          | %s\n", format.Currency(b.Commission))
	fmt.Fprintf(w, "IVA sobre comisión     | %s\n", format.Currency(b.CommissionVAT))
	fmt.Fprintf(w, "ITP                    | %s\n", format.Currency(b.TransferTax))
	fmt.Fprintf(w, "Tasación + notaría     | %s\n", format.Currency(b.FixedFees))
	fmt.Fprintf(w, "Costes adicionales     | %s (%s del precio)\n",
		format.Currency(b.TotalAdditional), format.Percent(b.AdditionalFraction))
	fmt.Fprintf(w, "COSTE TOTAL            | %s\n", format.Currency(b.TotalCost))

	f := result.Financing
	fmt.Fprintf(w, "\n--- Escenarios de financiación ---\n")
	fmt.Fprintf(w, "Financiación | Hipoteca        | Entrada necesaria\n")
	fmt.Fprintf(w, "____________ | ________        | _________________\n")
	for _, tier := range f.Tiers {
		fmt.Fprintf(w, "%s       | %s | %s\n",
			format.Percent(tier.Fraction),
			format.Currency(tier.FinancedAmount),
			format.Currency(tier.RequiredDownPayment))
	}
	fmt.Fprintf(w, "\nEntrada aportada: %s\n", format.Currency(f.DownPayment))
	fmt.Fprintf(w, "Cantidad a financiar: %s (%s del coste total)\n",
		format.Currency(f.AmountToFinance), format.Percent(f.CurrentFraction))
	fmt.Fprintf(w, "%s\n", assessmentNote(f.Assessment))

	l := result.Loan
	fmt.Fprintf(w, "\n--- Cuota mensual ---\n")
	fmt.Fprintf(w, "Cuota mensual      | %s durante %d años\n", format.Currency(l.MonthlyPayment), l.TermYears)
	fmt.Fprintf(w, "Nº de cuotas       | %d\n", l.TermMonths)
	fmt.Fprintf(w, "Total a pagar      | %s\n", format.Currency(l.TotalPaid))
	fmt.Fprintf(w, "Intereses totales  | %s\n", format.Currency(l.TotalInterest))
	fmt.Fprintf(w, "Ingresos recomendados: %s/mes (la cuota no debería superar el 35%% de tus ingresos)\n",
		format.Currency(l.RecommendedIncome))
}

func assessmentNote(a calculator.Assessment) string {
	switch a {
	case calculator.AssessmentExceedsCap:
		return "Atención: la mayoría de bancos no conceden hipotecas superiores al 80% del coste."
	case calculator.AssessmentCaution:
		return "El porcentaje de hipoteca está entre el 70% y el 80%; algunas entidades pueden requerir condiciones adicionales."
	default:
		return "El porcentaje de hipoteca es favorable (≤70%)."
	}
}

// WriteCsv renders the machine-readable report to the given writer.
func WriteCsv(w io.Writer, result *calculator.Result) {
	b := result.Breakdown
	fmt.Fprintf(w, "\"concepto\",\"importe\"\n")
	fmt.Fprintf(w, "\"precio\",\"%.2f\"\n", b.Price)
	fmt.Fprintf(w, "\"comision\",\"%.2f\"\n", b.Commission)
	fmt.Fprintf(w, "\"iva comision\",\"%.2f\"\n", b.CommissionVAT)
	fmt.Fprintf(w, "\"itp\",\"%.2f\"\n", b.TransferTax)
	fmt.Fprintf(w, "\"tasacion y notaria\",\"%.2f\"\n", b.FixedFees)
	fmt.Fprintf(w, "\"costes adicionales\",\"%.2f\"\n", b.TotalAdditional)
	fmt.Fprintf(w, "\"coste total\",\"%.2f\"\n", b.TotalCost)

	fmt.Fprintf(w, "\n\"financiacion\",\"hipoteca\",\"entrada necesaria\"\n")
	for _, tier := range result.Financing.Tiers {
		fmt.Fprintf(w, "\"%.0f%%\",\"%.2f\",\"%.2f\"\n",
			tier.Fraction*100, tier.FinancedAmount, tier.RequiredDownPayment)
	}

	fmt.Fprintf(w, "\n\"cuota\",\"pago\",\"interes\",\"amortizacion\",\"pendiente\"\n")
	for _, payment := range result.Loan.Schedule {
		fmt.Fprintf(w, "\"%d\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
			payment.Number, payment.Payment, payment.Interest, payment.Principal, payment.RemainingPrincipal)
	}
}

type yamlSummary struct {
	Inputs    yamlInputs    `yaml:"inputs"`
	Breakdown yamlBreakdown `yaml:"breakdown"`
	Financing yamlFinancing `yaml:"financing"`
	Loan      yamlLoan      `yaml:"loan"`
}

type yamlInputs struct {
	Price          float64 `yaml:"price"`
	CommissionRate float64 `yaml:"commissionRate"`
	DownPayment    float64 `yaml:"downPayment"`
	LoanRate       float64 `yaml:"loanRate"`
	LoanTermYears  int     `yaml:"loanTermYears"`
}

type yamlBreakdown struct {
	Commission      float64 `yaml:"commission"`
	CommissionVAT   float64 `yaml:"commissionVat"`
	TransferTax     float64 `yaml:"transferTax"`
	FixedFees       float64 `yaml:"fixedFees"`
	TotalAdditional float64 `yaml:"totalAdditional"`
	TotalCost       float64 `yaml:"totalCost"`
}

type yamlFinancing struct {
	Tiers           []yamlTier `yaml:"tiers"`
	AmountToFinance float64    `yaml:"amountToFinance"`
	CurrentFraction float64    `yaml:"currentFraction"`
	Assessment      string     `yaml:"assessment"`
}

type yamlTier struct {
	Fraction            float64 `yaml:"fraction"`
	FinancedAmount      float64 `yaml:"financedAmount"`
	RequiredDownPayment float64 `yaml:"requiredDownPayment"`
}

type yamlLoan struct {
	Principal         float64 `yaml:"principal"`
	MonthlyPayment    float64 `yaml:"monthlyPayment"`
	TermMonths        int     `yaml:"termMonths"`
	TotalPaid         float64 `yaml:"totalPaid"`
	TotalInterest     float64 `yaml:"totalInterest"`
	RecommendedIncome float64 `yaml:"recommendedIncome"`
}

// WriteYaml renders a YAML summary (without the amortization schedule) to
// the given writer. Currency amounts are rounded to two decimals.
func WriteYaml(w io.Writer, result *calculator.Result) error {
	summary := yamlSummary{
		Inputs: yamlInputs{
			Price:          result.Inputs.Price,
			CommissionRate: result.Inputs.CommissionRate,
			DownPayment:    result.Inputs.DownPayment,
			LoanRate:       result.Inputs.LoanRate,
			LoanTermYears:  result.Inputs.LoanTermYears,
		},
		Breakdown: yamlBreakdown{
			Commission:      mathutil.Round(result.Breakdown.Commission),
			CommissionVAT:   mathutil.Round(result.Breakdown.CommissionVAT),
			TransferTax:     mathutil.Round(result.Breakdown.TransferTax),
			FixedFees:       mathutil.Round(result.Breakdown.FixedFees),
			TotalAdditional: mathutil.Round(result.Breakdown.TotalAdditional),
			TotalCost:       mathutil.Round(result.Breakdown.TotalCost),
		},
		Financing: yamlFinancing{
			AmountToFinance: mathutil.Round(result.Financing.AmountToFinance),
			CurrentFraction: result.Financing.CurrentFraction,
			Assessment:      string(result.Financing.Assessment),
		},
		Loan: yamlLoan{
			Principal:         mathutil.Round(result.Loan.Principal),
			MonthlyPayment:    mathutil.Round(result.Loan.MonthlyPayment),
			TermMonths:        result.Loan.TermMonths,
			TotalPaid:         mathutil.Round(result.Loan.TotalPaid),
			TotalInterest:     mathutil.Round(result.Loan.TotalInterest),
			RecommendedIncome: mathutil.Round(result.Loan.RecommendedIncome),
		},
	}
	for _, tier := range result.Financing.Tiers {
		summary.Financing.Tiers = append(summary.Financing.Tiers, yamlTier{
			Fraction:            tier.Fraction,
			FinancedAmount:      mathutil.Round(tier.FinancedAmount),
			RequiredDownPayment: mathutil.Round(tier.RequiredDownPayment),
		})
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = w.Write(data)
	return err
}
