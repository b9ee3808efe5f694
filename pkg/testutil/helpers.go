// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/happyhipo/pisocalc/internal/calculator"
)

// ReferenceInputs returns the worked example used across package tests:
// price 200,000 with a 3.5% commission, 42,000 down payment, and a 2.5%
// mortgage over 30 years. Its total cost is 221,770.
func ReferenceInputs() calculator.PurchaseInputs {
	return calculator.PurchaseInputs{
		Price:          200000,
		CommissionRate: 0.035,
		DownPayment:    42000,
		LoanRate:       0.025,
		LoanTermYears:  30,
	}
}

// ReferenceTotalCost is the total cost implied by ReferenceInputs.
const ReferenceTotalCost = 221770.0
