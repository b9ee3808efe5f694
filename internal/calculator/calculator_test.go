package calculator

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestBreakdownCosts(t *testing.T) {
	market := DefaultMarket()

	tests := []struct {
		name           string
		price          float64
		commissionRate float64
		expected       CostBreakdown
	}{
		{
			name:           "Reference purchase",
			price:          200000,
			commissionRate: 0.035,
			expected: CostBreakdown{
				Price:           200000,
				Commission:      7000,
				CommissionVAT:   1470,
				CommissionTotal: 8470,
				TransferTax:     10800,
				FixedFees:       2500,
				TotalAdditional: 21770,
				TotalCost:       221770,
			},
		},
		{
			name:           "No commission",
			price:          100000,
			commissionRate: 0,
			expected: CostBreakdown{
				Price:           100000,
				Commission:      0,
				CommissionVAT:   0,
				CommissionTotal: 0,
				TransferTax:     5400,
				FixedFees:       2500,
				TotalAdditional: 7900,
				TotalCost:       107900,
			},
		},
		{
			name:           "Zero price still pays fixed fees",
			price:          0,
			commissionRate: 0.035,
			expected: CostBreakdown{
				Price:           0,
				Commission:      0,
				CommissionVAT:   0,
				CommissionTotal: 0,
				TransferTax:     0,
				FixedFees:       2500,
				TotalAdditional: 2500,
				TotalCost:       2500,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BreakdownCosts(tt.price, tt.commissionRate, market)
			if err != nil {
				t.Fatalf("BreakdownCosts() unexpected error: %v", err)
			}

			checks := []struct {
				field    string
				got      float64
				expected float64
			}{
				{"Commission", result.Commission, tt.expected.Commission},
				{"CommissionVAT", result.CommissionVAT, tt.expected.CommissionVAT},
				{"CommissionTotal", result.CommissionTotal, tt.expected.CommissionTotal},
				{"TransferTax", result.TransferTax, tt.expected.TransferTax},
				{"FixedFees", result.FixedFees, tt.expected.FixedFees},
				{"TotalAdditional", result.TotalAdditional, tt.expected.TotalAdditional},
				{"TotalCost", result.TotalCost, tt.expected.TotalCost},
			}
			for _, check := range checks {
				if math.Abs(check.got-check.expected) > 0.01 {
					t.Errorf("%s = %.2f, expected %.2f", check.field, check.got, check.expected)
				}
			}
		})
	}
}

func TestBreakdownCostsInvariant(t *testing.T) {
	market := DefaultMarket()

	// total cost = price + commission*(1+VAT) + transfer tax + fixed fees,
	// and total cost never drops below the price.
	for _, price := range []float64{0, 50000, 125000, 200000, 500000} {
		for _, rate := range []float64{0, 0.01, 0.035, 0.1, 1} {
			result, err := BreakdownCosts(price, rate, market)
			if err != nil {
				t.Fatalf("BreakdownCosts(%.0f, %.3f) unexpected error: %v", price, rate, err)
			}
			expected := price + price*rate*(1+market.VATRate) + price*market.TransferTaxRate + market.FixedFees
			if math.Abs(result.TotalCost-expected) > 0.01 {
				t.Errorf("TotalCost(%.0f, %.3f) = %.2f, expected %.2f", price, rate, result.TotalCost, expected)
			}
			if result.TotalCost < price {
				t.Errorf("TotalCost(%.0f, %.3f) = %.2f is below the price", price, rate, result.TotalCost)
			}
		}
	}
}

func TestBreakdownCostsInvalidInput(t *testing.T) {
	market := DefaultMarket()

	tests := []struct {
		name           string
		price          float64
		commissionRate float64
	}{
		{name: "Negative price", price: -1, commissionRate: 0.035},
		{name: "Negative commission rate", price: 200000, commissionRate: -0.01},
		{name: "Commission rate above one", price: 200000, commissionRate: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BreakdownCosts(tt.price, tt.commissionRate, market)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("BreakdownCosts() error = %v, expected ErrInvalidInput", err)
			}
		})
	}
}

func TestBuildFinancingTable(t *testing.T) {
	tiers := []float64{0.95, 0.90, 0.85, 0.80}
	table, err := BuildFinancingTable(221770, 42000, tiers)
	if err != nil {
		t.Fatalf("BuildFinancingTable() unexpected error: %v", err)
	}

	if len(table.Tiers) != len(tiers) {
		t.Fatalf("got %d tiers, expected %d", len(table.Tiers), len(tiers))
	}

	// Reference row from the worked example.
	row := table.Tiers[3]
	if math.Abs(row.FinancedAmount-177416) > 0.01 {
		t.Errorf("80%% tier financed amount = %.2f, expected 177416.00", row.FinancedAmount)
	}
	if math.Abs(row.RequiredDownPayment-44354) > 0.01 {
		t.Errorf("80%% tier required down payment = %.2f, expected 44354.00", row.RequiredDownPayment)
	}

	// Less financing needs more cash.
	for i := 1; i < len(table.Tiers); i++ {
		if table.Tiers[i].RequiredDownPayment < table.Tiers[i-1].RequiredDownPayment {
			t.Errorf("required down payment decreased from tier %.2f to %.2f",
				table.Tiers[i-1].Fraction, table.Tiers[i].Fraction)
		}
	}

	expectedFraction := 1 - 42000.0/221770.0
	if math.Abs(table.CurrentFraction-expectedFraction) > 1e-9 {
		t.Errorf("CurrentFraction = %.6f, expected %.6f", table.CurrentFraction, expectedFraction)
	}
	if table.Assessment != AssessmentExceedsCap {
		t.Errorf("Assessment = %q, expected %q", table.Assessment, AssessmentExceedsCap)
	}
}

func TestBuildFinancingTableEdgeCases(t *testing.T) {
	tiers := []float64{0.80}

	t.Run("Zero total cost is degenerate", func(t *testing.T) {
		_, err := BuildFinancingTable(0, 0, tiers)
		if !errors.Is(err, ErrDegenerateCase) {
			t.Errorf("error = %v, expected ErrDegenerateCase", err)
		}
	})

	t.Run("Negative total cost rejected", func(t *testing.T) {
		_, err := BuildFinancingTable(-1, 0, tiers)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, expected ErrInvalidInput", err)
		}
	})

	t.Run("Negative down payment rejected", func(t *testing.T) {
		_, err := BuildFinancingTable(221770, -1, tiers)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, expected ErrInvalidInput", err)
		}
	})

	t.Run("Down payment above total cost floors financing at zero", func(t *testing.T) {
		table, err := BuildFinancingTable(100000, 150000, tiers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.AmountToFinance != 0 {
			t.Errorf("AmountToFinance = %.2f, expected 0", table.AmountToFinance)
		}
		if table.CurrentFraction != 0 {
			t.Errorf("CurrentFraction = %.6f, expected 0", table.CurrentFraction)
		}
		if table.Assessment != AssessmentFavorable {
			t.Errorf("Assessment = %q, expected %q", table.Assessment, AssessmentFavorable)
		}
	})
}

func TestAssessFinancing(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		expected Assessment
	}{
		{name: "Above the cap", fraction: 0.81, expected: AssessmentExceedsCap},
		{name: "At the cap", fraction: 0.80, expected: AssessmentCaution},
		{name: "Within caution band", fraction: 0.75, expected: AssessmentCaution},
		{name: "At caution threshold", fraction: 0.70, expected: AssessmentFavorable},
		{name: "Favorable", fraction: 0.50, expected: AssessmentFavorable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := AssessFinancing(tt.fraction); result != tt.expected {
				t.Errorf("AssessFinancing(%.2f) = %q, expected %q", tt.fraction, result, tt.expected)
			}
		})
	}
}

func TestSimulateLoan(t *testing.T) {
	sim, err := SimulateLoan(zap.NewNop(), 150000, 0.025, 30)
	if err != nil {
		t.Fatalf("SimulateLoan() unexpected error: %v", err)
	}

	if sim.TermMonths != 360 {
		t.Errorf("TermMonths = %d, expected 360", sim.TermMonths)
	}
	// Expected within rounding tolerance of the reference 592.76.
	if sim.MonthlyPayment < 592 || sim.MonthlyPayment > 593 {
		t.Errorf("MonthlyPayment = %.2f, expected within [592, 593]", sim.MonthlyPayment)
	}
	expectedTotal := sim.MonthlyPayment * 360
	if math.Abs(sim.TotalPaid-expectedTotal) > 0.01 {
		t.Errorf("TotalPaid = %.2f, expected %.2f", sim.TotalPaid, expectedTotal)
	}
	if math.Abs(sim.TotalInterest-(sim.TotalPaid-150000)) > 0.01 {
		t.Errorf("TotalInterest = %.2f, expected TotalPaid - principal = %.2f",
			sim.TotalInterest, sim.TotalPaid-150000)
	}
	if sim.TotalInterest <= 0 {
		t.Errorf("TotalInterest = %.2f, expected positive for a positive rate", sim.TotalInterest)
	}
	expectedIncome := sim.MonthlyPayment / 0.35
	if math.Abs(sim.RecommendedIncome-expectedIncome) > 0.01 {
		t.Errorf("RecommendedIncome = %.2f, expected %.2f", sim.RecommendedIncome, expectedIncome)
	}
	if len(sim.Schedule) != 360 {
		t.Errorf("schedule has %d installments, expected 360", len(sim.Schedule))
	}
}

func TestSimulateLoanEdgeCases(t *testing.T) {
	t.Run("Zero rate divides evenly", func(t *testing.T) {
		sim, err := SimulateLoan(nil, 150000, 0, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := 150000.0 / 360.0
		if sim.MonthlyPayment != expected {
			t.Errorf("MonthlyPayment = %.6f, expected exactly %.6f", sim.MonthlyPayment, expected)
		}
		if math.Abs(sim.TotalInterest) > 0.01 {
			t.Errorf("TotalInterest = %.2f, expected 0 at zero rate", sim.TotalInterest)
		}
	})

	t.Run("Zero principal yields zero payment", func(t *testing.T) {
		sim, err := SimulateLoan(nil, 0, 0.025, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sim.MonthlyPayment != 0 {
			t.Errorf("MonthlyPayment = %.2f, expected 0", sim.MonthlyPayment)
		}
		if len(sim.Schedule) != 0 {
			t.Errorf("schedule has %d installments, expected none", len(sim.Schedule))
		}
	})

	t.Run("Negative principal rejected", func(t *testing.T) {
		if _, err := SimulateLoan(nil, -1, 0.025, 30); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, expected ErrInvalidInput", err)
		}
	})

	t.Run("Negative rate rejected", func(t *testing.T) {
		if _, err := SimulateLoan(nil, 150000, -0.01, 30); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, expected ErrInvalidInput", err)
		}
	})

	t.Run("Zero term rejected", func(t *testing.T) {
		if _, err := SimulateLoan(nil, 150000, 0.025, 0); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, expected ErrInvalidInput", err)
		}
	})
}

func TestCalculate(t *testing.T) {
	inputs := PurchaseInputs{
		Price:          200000,
		CommissionRate: 0.035,
		DownPayment:    42000,
		LoanRate:       0.025,
		LoanTermYears:  30,
	}

	result, err := Calculate(zap.NewNop(), inputs, DefaultMarket())
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}

	if math.Abs(result.Breakdown.TotalCost-221770) > 0.01 {
		t.Errorf("TotalCost = %.2f, expected 221770.00", result.Breakdown.TotalCost)
	}
	if math.Abs(result.Financing.AmountToFinance-179770) > 0.01 {
		t.Errorf("AmountToFinance = %.2f, expected 179770.00", result.Financing.AmountToFinance)
	}
	if result.Financing.Assessment != AssessmentExceedsCap {
		t.Errorf("Assessment = %q, expected %q", result.Financing.Assessment, AssessmentExceedsCap)
	}
	if result.Loan.Principal != result.Financing.AmountToFinance {
		t.Errorf("loan principal %.2f does not match amount to finance %.2f",
			result.Loan.Principal, result.Financing.AmountToFinance)
	}
	// 179,770 at 2.5% over 30 years lands around 710 a month.
	if result.Loan.MonthlyPayment < 705 || result.Loan.MonthlyPayment > 715 {
		t.Errorf("MonthlyPayment = %.2f, expected within [705, 715]", result.Loan.MonthlyPayment)
	}
}

func TestCalculateInvalidInputs(t *testing.T) {
	market := DefaultMarket()

	tests := []struct {
		name     string
		inputs   PurchaseInputs
		expected error
	}{
		{
			name: "Negative down payment",
			inputs: PurchaseInputs{
				Price: 200000, CommissionRate: 0.035, DownPayment: -1, LoanRate: 0.025, LoanTermYears: 30,
			},
			expected: ErrInvalidInput,
		},
		{
			name: "Negative price",
			inputs: PurchaseInputs{
				Price: -200000, CommissionRate: 0.035, DownPayment: 42000, LoanRate: 0.025, LoanTermYears: 30,
			},
			expected: ErrInvalidInput,
		},
		{
			name: "Zero term",
			inputs: PurchaseInputs{
				Price: 200000, CommissionRate: 0.035, DownPayment: 42000, LoanRate: 0.025, LoanTermYears: 0,
			},
			expected: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(nil, tt.inputs, market)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Calculate() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}
