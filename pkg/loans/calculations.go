// Package loans provides French-amortization loan calculations.
package loans

import (
	"fmt"
	"math"

	"github.com/happyhipo/pisocalc/pkg/constants"
	"github.com/happyhipo/pisocalc/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given installment.
type Payment struct {
	Number             int
	Payment            float64
	Interest           float64
	Principal          float64
	RemainingPrincipal float64
}

// MonthlyPayment calculates the constant installment for a loan using the
// standard French amortization formula. Rates are fractions (0.025 = 2.5%).
func MonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if principal == 0 {
		return 0
	}
	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor
}

// InterestPortion calculates the interest part of one installment against
// the remaining principal.
func InterestPortion(remainingPrincipal, annualRate float64) float64 {
	return remainingPrincipal * annualRate / constants.MonthsPerYear
}

// TotalInterest returns the interest paid over the whole term.
func TotalInterest(principal, annualRate float64, termMonths int) float64 {
	return MonthlyPayment(principal, annualRate, termMonths)*float64(termMonths) - principal
}

// ScheduleGenerator produces full amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the complete installment-by-installment schedule
// for a fixed-rate loan. The final installment absorbs the rounding residue
// so the balance lands exactly on zero.
func (g *ScheduleGenerator) GenerateSchedule(principal, annualRate float64, termMonths int) ([]Payment, error) {
	if principal < 0 {
		return nil, fmt.Errorf("principal must be non-negative, got %.2f", principal)
	}
	if termMonths < 1 {
		return nil, fmt.Errorf("term must be at least one month, got %d", termMonths)
	}
	if principal == 0 {
		return nil, nil
	}

	installment := MonthlyPayment(principal, annualRate, termMonths)
	schedule := make([]Payment, 0, termMonths)

	remaining := principal
	for month := 1; month <= termMonths; month++ {
		var current Payment
		current.Number = month
		current.Interest = InterestPortion(remaining, annualRate)
		current.Principal = installment - current.Interest
		current.Payment = installment

		if month == termMonths || mathutil.Round(remaining-current.Principal) <= 0 {
			// We will get machine error otherwise so just set to 0.
			current.Principal = remaining
			current.Payment = current.Principal + current.Interest
			current.RemainingPrincipal = 0.00
			schedule = append(schedule, current)
			break
		}

		remaining -= current.Principal
		current.RemainingPrincipal = remaining
		schedule = append(schedule, current)
	}

	g.logger.Debug(fmt.Sprintf("generated %d installments for principal %.2f", len(schedule), principal),
		zap.String("op", "loans.GenerateSchedule"),
	)

	return schedule, nil
}
