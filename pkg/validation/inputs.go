package validation

import (
	"fmt"

	"github.com/happyhipo/pisocalc/pkg/constants"
)

// HighLoanRateThreshold triggers a warning for rates that look like they were
// given as percentages instead of fractions (e.g. 2.5 instead of 0.025).
const HighLoanRateThreshold = 0.15

// ValidatePurchaseInputs checks the user-supplied inputs for values that are
// legal but suspicious and returns warnings. Hard input errors are signaled
// by the calculator itself.
func ValidatePurchaseInputs(price, commissionRate, downPayment, loanRate float64, termYears int) []string {
	var warnings []string

	if price == 0 {
		warnings = append(warnings, "price is zero; the financing table cannot be computed")
	}
	if loanRate > HighLoanRateThreshold {
		warnings = append(warnings, fmt.Sprintf("loan rate %.2f looks like a percentage; rates are fractions (e.g. 0.025 for 2.5%%)", loanRate))
	}
	if commissionRate > HighLoanRateThreshold {
		warnings = append(warnings, fmt.Sprintf("commission rate %.2f looks like a percentage; rates are fractions (e.g. 0.035 for 3.5%%)", commissionRate))
	}
	if price > 0 && downPayment > price {
		warnings = append(warnings, fmt.Sprintf("down payment %.2f exceeds the property price %.2f", downPayment, price))
	}
	if termYears > constants.MaxReasonableTermYears {
		warnings = append(warnings, fmt.Sprintf("loan term of %d years exceeds %d years", termYears, constants.MaxReasonableTermYears))
	}

	return warnings
}
