package loan

import (
	"errors"
	"math"
	"testing"

	"github.com/Gms006/emprestimos/pkg/datetime"
	"github.com/Gms006/emprestimos/pkg/mathutil"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expected           float64
	}{
		{
			name:               "Reference three-year loan",
			principal:          100000,
			annualInterestRate: 12.0,
			termMonths:         36,
			expected:           3321.43, // periodicRate = 0.01
		},
		{
			name:               "Zero interest loan",
			principal:          12000,
			annualInterestRate: 0.0,
			termMonths:         12,
			expected:           1000.00,
		},
		{
			name:               "Thirty-year mortgage",
			principal:          300000,
			annualInterestRate: 6.0,
			termMonths:         360,
			expected:           1798.65,
		},
		{
			name:               "Single installment",
			principal:          1000,
			annualInterestRate: 12.0,
			termMonths:         1,
			expected:           1010.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)
			if err != nil {
				t.Fatalf("CalculateMonthlyPayment() unexpected error: %v", err)
			}
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestCalculateMonthlyPaymentInvalidInput(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		wantField          string
	}{
		{
			name:               "Zero principal",
			principal:          0,
			annualInterestRate: 12.0,
			termMonths:         36,
			wantField:          "principal",
		},
		{
			name:               "Negative principal",
			principal:          -100,
			annualInterestRate: 12.0,
			termMonths:         36,
			wantField:          "principal",
		},
		{
			name:               "Zero term",
			principal:          1000,
			annualInterestRate: 12.0,
			termMonths:         0,
			wantField:          "termMonths",
		},
		{
			name:               "Negative rate",
			principal:          1000,
			annualInterestRate: -1.0,
			termMonths:         12,
			wantField:          "annualInterestRate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("CalculateMonthlyPayment() error = %v, expected *InvalidInputError", err)
			}
			if invalid.Field != tt.wantField {
				t.Errorf("InvalidInputError.Field = %s, expected %s", invalid.Field, tt.wantField)
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingBalance   float64
		annualInterestRate float64
		expected           float64
	}{
		{
			name:               "Reference first installment",
			remainingBalance:   100000,
			annualInterestRate: 12.0,
			expected:           1000.0, // 100000 * 0.01
		},
		{
			name:               "Zero interest",
			remainingBalance:   10000,
			annualInterestRate: 0.0,
			expected:           0.0,
		},
		{
			name:               "Small balance",
			remainingBalance:   100,
			annualInterestRate: 6.0,
			expected:           0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingBalance, tt.annualInterestRate)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestBuildScheduleReferenceLoan(t *testing.T) {
	terms := Terms{
		Name:               "Reference",
		Principal:          100000,
		AnnualInterestRate: 12.0,
		TermMonths:         36,
		StartDate:          datetime.MustParseTime(datetime.DateLayout, "2024-01-01"),
	}

	schedule, err := BuildSchedule(terms)
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	if len(schedule) != terms.TermMonths {
		t.Fatalf("BuildSchedule() produced %d entries, expected %d", len(schedule), terms.TermMonths)
	}

	first := schedule[0]
	if first.Period != 1 {
		t.Errorf("first entry period = %d, expected 1", first.Period)
	}
	if got := first.DueDate.Format(datetime.DateLayout); got != "2024-02-01" {
		t.Errorf("first due date = %s, expected 2024-02-01", got)
	}
	if math.Abs(first.Interest-1000.00) > 0.01 {
		t.Errorf("first interest = %.2f, expected 1000.00", first.Interest)
	}
	if math.Abs(first.Principal-2321.43) > 0.01 {
		t.Errorf("first principal = %.2f, expected 2321.43", first.Principal)
	}
	if math.Abs(first.RemainingBalance-97678.57) > 0.01 {
		t.Errorf("first remaining balance = %.2f, expected 97678.57", first.RemainingBalance)
	}

	last := schedule[len(schedule)-1]
	if got := last.DueDate.Format(datetime.DateLayout); got != "2027-01-01" {
		t.Errorf("last due date = %s, expected 2027-01-01", got)
	}
	if last.RemainingBalance != 0 {
		t.Errorf("last remaining balance = %v, expected exactly 0", last.RemainingBalance)
	}
}

func TestBuildSchedulePrincipalSumsToLoanAmount(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
	}{
		{"Reference loan", 100000, 12.0, 36},
		{"Long mortgage", 350000, 5.75, 360},
		{"Zero interest", 12000, 0.0, 12},
		{"Awkward amounts", 98765.43, 13.37, 47},
		{"Single installment", 500, 24.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := Terms{
				Principal:          tt.principal,
				AnnualInterestRate: tt.annualInterestRate,
				TermMonths:         tt.termMonths,
				StartDate:          datetime.MustParseTime(datetime.DateLayout, "2024-01-01"),
			}

			schedule, err := BuildSchedule(terms)
			if err != nil {
				t.Fatalf("BuildSchedule() unexpected error: %v", err)
			}

			var principalSum float64
			for _, entry := range schedule {
				principalSum += entry.Principal
			}
			if !mathutil.WithinTolerance(principalSum, tt.principal, 1e-6) {
				t.Errorf("principal sum = %.8f, expected %.8f", principalSum, tt.principal)
			}
		})
	}
}

func TestBuildScheduleBalanceNonIncreasing(t *testing.T) {
	terms := Terms{
		Principal:          98765.43,
		AnnualInterestRate: 13.37,
		TermMonths:         47,
		StartDate:          datetime.MustParseTime(datetime.DateLayout, "2024-06-15"),
	}

	schedule, err := BuildSchedule(terms)
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	previous := terms.Principal
	for _, entry := range schedule {
		if entry.RemainingBalance > previous {
			t.Errorf("balance increased at period %d: %.8f > %.8f",
				entry.Period, entry.RemainingBalance, previous)
		}
		previous = entry.RemainingBalance
	}
	if final := schedule[len(schedule)-1].RemainingBalance; final != 0 {
		t.Errorf("final balance = %v, expected exactly 0", final)
	}
}

func TestBuildScheduleZeroInterest(t *testing.T) {
	terms := Terms{
		Principal:          12000,
		AnnualInterestRate: 0.0,
		TermMonths:         12,
		StartDate:          datetime.MustParseTime(datetime.DateLayout, "2024-01-01"),
	}

	schedule, err := BuildSchedule(terms)
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	for _, entry := range schedule {
		if math.Abs(entry.Payment-1000.00) > 1e-9 {
			t.Errorf("period %d payment = %.2f, expected 1000.00", entry.Period, entry.Payment)
		}
		if math.Abs(entry.Principal-1000.00) > 1e-6 {
			t.Errorf("period %d principal = %.2f, expected 1000.00", entry.Period, entry.Principal)
		}
		if entry.Interest != 0 {
			t.Errorf("period %d interest = %v, expected 0", entry.Period, entry.Interest)
		}
	}
}

func TestBuildScheduleMonthEndStartDate(t *testing.T) {
	terms := Terms{
		Principal:          10000,
		AnnualInterestRate: 10.0,
		TermMonths:         4,
		StartDate:          datetime.MustParseTime(datetime.DateLayout, "2024-01-31"),
	}

	schedule, err := BuildSchedule(terms)
	if err != nil {
		t.Fatalf("BuildSchedule() unexpected error: %v", err)
	}

	// Due dates clamp to the last valid day of short months.
	expected := []string{"2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31"}
	for i, entry := range schedule {
		if got := entry.DueDate.Format(datetime.DateLayout); got != expected[i] {
			t.Errorf("period %d due date = %s, expected %s", entry.Period, got, expected[i])
		}
	}
}

func TestBuildScheduleInvalidInput(t *testing.T) {
	terms := Terms{
		Principal:          -1,
		AnnualInterestRate: 12.0,
		TermMonths:         36,
		StartDate:          datetime.MustParseTime(datetime.DateLayout, "2024-01-01"),
	}

	schedule, err := BuildSchedule(terms)
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("BuildSchedule() error = %v, expected *InvalidInputError", err)
	}
	if schedule != nil {
		t.Errorf("BuildSchedule() produced %d entries despite invalid input", len(schedule))
	}
}

func TestSummarize(t *testing.T) {
	terms := Terms{
		Principal:          100000,
		AnnualInterestRate: 12.0,
		TermMonths:         36,
		StartDate:          datetime.MustParseTime(datetime.DateLayout, "2024-01-01"),
	}

	summary, err := Summarize(terms)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}

	if math.Abs(summary.MonthlyPayment-3321.43) > 0.01 {
		t.Errorf("MonthlyPayment = %.2f, expected 3321.43", summary.MonthlyPayment)
	}
	expectedTotal := summary.MonthlyPayment * 36
	if math.Abs(summary.TotalPaid-expectedTotal) > 0.01 {
		t.Errorf("TotalPaid = %.2f, expected %.2f", summary.TotalPaid, expectedTotal)
	}
	if math.Abs(summary.TotalInterest-(expectedTotal-100000)) > 0.01 {
		t.Errorf("TotalInterest = %.2f, expected %.2f", summary.TotalInterest, expectedTotal-100000)
	}
}
