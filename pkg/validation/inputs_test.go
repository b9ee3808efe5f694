package validation

import (
	"testing"
)

func TestValidatePurchaseInputs(t *testing.T) {
	tests := []struct {
		name             string
		price            float64
		commissionRate   float64
		downPayment      float64
		loanRate         float64
		termYears        int
		expectedWarnings int
	}{
		{
			name:  "Reference inputs are clean",
			price: 200000, commissionRate: 0.035, downPayment: 42000, loanRate: 0.025, termYears: 30,
			expectedWarnings: 0,
		},
		{
			name:  "Zero price",
			price: 0, commissionRate: 0.035, downPayment: 0, loanRate: 0.025, termYears: 30,
			expectedWarnings: 1,
		},
		{
			name:  "Percentage-looking loan rate",
			price: 200000, commissionRate: 0.035, downPayment: 42000, loanRate: 2.5, termYears: 30,
			expectedWarnings: 1,
		},
		{
			name:  "Percentage-looking commission rate",
			price: 200000, commissionRate: 3.5, downPayment: 42000, loanRate: 0.025, termYears: 30,
			expectedWarnings: 1,
		},
		{
			name:  "Down payment above price",
			price: 200000, commissionRate: 0.035, downPayment: 250000, loanRate: 0.025, termYears: 30,
			expectedWarnings: 1,
		},
		{
			name:  "Excessive term",
			price: 200000, commissionRate: 0.035, downPayment: 42000, loanRate: 0.025, termYears: 45,
			expectedWarnings: 1,
		},
		{
			name:  "Multiple warnings accumulate",
			price: 0, commissionRate: 3.5, downPayment: 0, loanRate: 2.5, termYears: 45,
			expectedWarnings: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidatePurchaseInputs(tt.price, tt.commissionRate, tt.downPayment, tt.loanRate, tt.termYears)
			if len(warnings) != tt.expectedWarnings {
				t.Errorf("got %d warnings %v, expected %d", len(warnings), warnings, tt.expectedWarnings)
			}
		})
	}
}
