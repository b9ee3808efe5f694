// Package calculator defines the data structures for a purchase calculation
// and includes functions for computing the cost breakdown, financing table,
// and loan simulation.
package calculator

import (
	"errors"
	"fmt"

	"github.com/happyhipo/pisocalc/pkg/constants"
	"github.com/happyhipo/pisocalc/pkg/loans"
	"github.com/happyhipo/pisocalc/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrInvalidInput flags negative amounts or rates/terms for which the
// calculation is undefined.
var ErrInvalidInput = errors.New("invalid input")

// ErrDegenerateCase flags inputs that make a derived quantity undefined,
// such as a financing percentage over a zero total cost.
var ErrDegenerateCase = errors.New("degenerate input")

// PurchaseInputs holds the user-supplied parameters for one calculation.
type PurchaseInputs struct {
	Price          float64
	CommissionRate float64 // fraction, e.g. 0.035
	DownPayment    float64
	LoanRate       float64 // annual nominal fraction, e.g. 0.025
	LoanTermYears  int
}

// MarketParameters holds the fiscal constants of the purchase model. They
// default to the Spanish values but may be overridden via configuration.
type MarketParameters struct {
	VATRate         float64
	TransferTaxRate float64
	FixedFees       float64
	FinancingTiers  []float64
}

// DefaultMarket returns the built-in Spanish market parameters.
func DefaultMarket() MarketParameters {
	return MarketParameters{
		VATRate:         constants.VATRate,
		TransferTaxRate: constants.TransferTaxRate,
		FixedFees:       constants.FixedFees,
		FinancingTiers:  append([]float64(nil), constants.DefaultFinancingTiers...),
	}
}

// CostBreakdown itemizes everything the buyer pays on top of the price.
type CostBreakdown struct {
	Price           float64
	Commission      float64
	CommissionVAT   float64
	CommissionTotal float64
	TransferTax     float64
	FixedFees       float64
	TotalAdditional float64
	// AdditionalFraction is TotalAdditional relative to the price.
	AdditionalFraction float64
	TotalCost          float64
}

// BreakdownCosts computes the full acquisition cost for a given price and
// agency commission rate.
func BreakdownCosts(price, commissionRate float64, market MarketParameters) (CostBreakdown, error) {
	if price < 0 {
		return CostBreakdown{}, fmt.Errorf("%w: price must be non-negative, got %.2f", ErrInvalidInput, price)
	}
	if commissionRate < 0 || commissionRate > 1 {
		return CostBreakdown{}, fmt.Errorf("%w: commission rate must be within [0, 1], got %.4f", ErrInvalidInput, commissionRate)
	}

	var b CostBreakdown
	b.Price = price
	b.Commission = price * commissionRate
	b.CommissionVAT = b.Commission * market.VATRate
	b.CommissionTotal = b.Commission + b.CommissionVAT
	b.TransferTax = price * market.TransferTaxRate
	b.FixedFees = market.FixedFees
	b.TotalAdditional = b.CommissionTotal + b.TransferTax + b.FixedFees
	b.AdditionalFraction = mathutil.Fraction(b.TotalAdditional, price)
	b.TotalCost = price + b.TotalAdditional

	return b, nil
}

// Tier is one row of the financing table.
type Tier struct {
	Fraction            float64
	FinancedAmount      float64
	RequiredDownPayment float64
}

// Assessment qualifies the buyer's current financing fraction.
type Assessment string

const (
	// AssessmentFavorable means the financing fraction is at or below the
	// caution threshold.
	AssessmentFavorable Assessment = "favorable"

	// AssessmentCaution means the fraction sits between the caution
	// threshold and the lending cap.
	AssessmentCaution Assessment = "caution"

	// AssessmentExceedsCap means the fraction is above what most lenders
	// will finance.
	AssessmentExceedsCap Assessment = "exceeds-cap"
)

// FinancingTable maps the fixed financing tiers to the cash each requires,
// alongside the buyer's actual position.
type FinancingTable struct {
	Tiers           []Tier
	DownPayment     float64
	AmountToFinance float64
	// CurrentFraction is the share of the total cost the buyer would need
	// financed given their down payment.
	CurrentFraction float64
	Assessment      Assessment
}

// BuildFinancingTable computes the tier table for a total cost and the
// buyer's current financing position. A zero total cost leaves the financing
// fraction undefined and is rejected.
func BuildFinancingTable(totalCost, downPayment float64, tiers []float64) (FinancingTable, error) {
	if totalCost < 0 || downPayment < 0 {
		return FinancingTable{}, fmt.Errorf("%w: total cost and down payment must be non-negative", ErrInvalidInput)
	}
	if totalCost == 0 {
		return FinancingTable{}, fmt.Errorf("%w: financing percentage is undefined for a zero total cost", ErrDegenerateCase)
	}

	table := FinancingTable{
		Tiers:       make([]Tier, 0, len(tiers)),
		DownPayment: downPayment,
	}

	for _, fraction := range tiers {
		financed := totalCost * fraction
		table.Tiers = append(table.Tiers, Tier{
			Fraction:            fraction,
			FinancedAmount:      financed,
			RequiredDownPayment: totalCost - financed,
		})
	}

	table.AmountToFinance = totalCost - downPayment
	if table.AmountToFinance < 0 {
		table.AmountToFinance = 0
	}
	table.CurrentFraction = table.AmountToFinance / totalCost
	table.Assessment = AssessFinancing(table.CurrentFraction)

	return table, nil
}

// AssessFinancing buckets a financing fraction into the lender brackets.
func AssessFinancing(fraction float64) Assessment {
	switch {
	case fraction > constants.FinancingCapFraction:
		return AssessmentExceedsCap
	case fraction > constants.FinancingCautionFraction:
		return AssessmentCaution
	default:
		return AssessmentFavorable
	}
}

// LoanSimulation holds the fixed-rate mortgage figures for the financed
// amount.
type LoanSimulation struct {
	Principal         float64
	AnnualRate        float64
	TermYears         int
	TermMonths        int
	MonthlyPayment    float64
	TotalPaid         float64
	TotalInterest     float64
	RecommendedIncome float64
	Schedule          []loans.Payment
}

// SimulateLoan computes the French-amortization installment for a principal
// along with term totals and the recommended minimum net monthly income.
func SimulateLoan(logger *zap.Logger, principal, annualRate float64, termYears int) (LoanSimulation, error) {
	if principal < 0 {
		return LoanSimulation{}, fmt.Errorf("%w: principal must be non-negative, got %.2f", ErrInvalidInput, principal)
	}
	if annualRate < 0 {
		return LoanSimulation{}, fmt.Errorf("%w: loan rate must be non-negative, got %.4f", ErrInvalidInput, annualRate)
	}
	if termYears < 1 {
		return LoanSimulation{}, fmt.Errorf("%w: loan term must be at least one year, got %d", ErrInvalidInput, termYears)
	}

	sim := LoanSimulation{
		Principal:  principal,
		AnnualRate: annualRate,
		TermYears:  termYears,
		TermMonths: termYears * constants.MonthsPerYear,
	}

	sim.MonthlyPayment = loans.MonthlyPayment(principal, annualRate, sim.TermMonths)
	sim.TotalPaid = sim.MonthlyPayment * float64(sim.TermMonths)
	sim.TotalInterest = sim.TotalPaid - principal
	sim.RecommendedIncome = sim.MonthlyPayment / constants.AffordabilityRatio

	schedule, err := loans.NewScheduleGenerator(logger).GenerateSchedule(principal, annualRate, sim.TermMonths)
	if err != nil {
		return LoanSimulation{}, err
	}
	sim.Schedule = schedule

	return sim, nil
}

// Result bundles all outputs of one purchase calculation.
type Result struct {
	Inputs    PurchaseInputs
	Breakdown CostBreakdown
	Financing FinancingTable
	Loan      LoanSimulation
}

// Calculate is the single entry point for the presentation layer: it
// validates the inputs and produces the full cost breakdown, financing
// table, and loan simulation.
func Calculate(logger *zap.Logger, inputs PurchaseInputs, market MarketParameters) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if inputs.DownPayment < 0 {
		return nil, fmt.Errorf("%w: down payment must be non-negative, got %.2f", ErrInvalidInput, inputs.DownPayment)
	}

	breakdown, err := BreakdownCosts(inputs.Price, inputs.CommissionRate, market)
	if err != nil {
		return nil, err
	}

	financing, err := BuildFinancingTable(breakdown.TotalCost, inputs.DownPayment, market.FinancingTiers)
	if err != nil {
		return nil, err
	}

	loan, err := SimulateLoan(logger, financing.AmountToFinance, inputs.LoanRate, inputs.LoanTermYears)
	if err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("computed purchase for price %.2f with total cost %.2f", inputs.Price, breakdown.TotalCost),
		zap.String("op", "calculator.Calculate"),
		zap.Float64("monthlyPayment", loan.MonthlyPayment),
	)

	return &Result{
		Inputs:    inputs,
		Breakdown: breakdown,
		Financing: financing,
		Loan:      loan,
	}, nil
}
