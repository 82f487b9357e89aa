// Package loan implements fixed-rate amortization in the French (Price)
// system: a constant periodic payment whose interest and principal split
// shifts over the life of the loan.
package loan

import (
	"fmt"
	"math"
	"time"

	"github.com/Gms006/emprestimos/pkg/constants"
	"github.com/Gms006/emprestimos/pkg/datetime"
)

// Terms holds the parameters of one loan. Immutable once constructed.
type Terms struct {
	Name               string
	Principal          float64
	AnnualInterestRate float64 // percent per year; 0 means interest-free
	TermMonths         int
	StartDate          time.Time
}

// Entry holds the values for one installment of the amortization schedule.
type Entry struct {
	Period           int
	DueDate          time.Time
	Payment          float64
	Interest         float64
	Principal        float64
	RemainingBalance float64
}

// Summary aggregates the headline figures of a schedule.
type Summary struct {
	MonthlyPayment float64
	TotalPaid      float64
	TotalInterest  float64
}

// InvalidInputError indicates that a loan parameter violates its domain
// constraint. It is returned before any schedule rows are produced.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the domain constraints on the loan parameters.
func (t Terms) Validate() error {
	if t.Principal <= 0 {
		return &InvalidInputError{Field: "principal", Reason: fmt.Sprintf("must be positive, got %.2f", t.Principal)}
	}
	if t.TermMonths <= 0 {
		return &InvalidInputError{Field: "termMonths", Reason: fmt.Sprintf("must be positive, got %d", t.TermMonths)}
	}
	if t.AnnualInterestRate < 0 {
		return &InvalidInputError{Field: "annualInterestRate", Reason: fmt.Sprintf("must not be negative, got %.2f", t.AnnualInterestRate)}
	}
	return nil
}

// PeriodicRate converts the annual percentage rate to a monthly fraction.
func PeriodicRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the constant monthly payment for a loan
// using the standard annuity formula. No currency rounding is applied; the
// unrounded value is reused for every period's interest/principal split.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) (float64, error) {
	terms := Terms{Principal: principal, AnnualInterestRate: annualInterestRate, TermMonths: termMonths}
	if err := terms.Validate(); err != nil {
		return 0, err
	}

	periodicRate := PeriodicRate(annualInterestRate)
	if periodicRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths), nil
	}

	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor, nil
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingBalance, annualInterestRate float64) float64 {
	return remainingBalance * PeriodicRate(annualInterestRate)
}

// BuildSchedule produces the full ordered amortization schedule for the given
// terms: exactly TermMonths entries, due dates advanced month by month from
// the start date. The residual left by floating-point drift is absorbed into
// the final installment's principal so that the principal portions sum to the
// original principal exactly and the final balance is exactly zero.
func BuildSchedule(terms Terms) ([]Entry, error) {
	// Input validation is delegated to the payment calculation.
	payment, err := CalculateMonthlyPayment(terms.Principal, terms.AnnualInterestRate, terms.TermMonths)
	if err != nil {
		return nil, err
	}

	schedule := make([]Entry, 0, terms.TermMonths)
	balance := terms.Principal
	for period := 1; period <= terms.TermMonths; period++ {
		interest := CalculateInterestPayment(balance, terms.AnnualInterestRate)
		principal := payment - interest
		balance -= principal

		if period == terms.TermMonths {
			// Absorb any residual into the last installment.
			principal += balance
			balance = 0
		}

		schedule = append(schedule, Entry{
			Period:           period,
			DueDate:          datetime.AddMonths(terms.StartDate, period),
			Payment:          payment,
			Interest:         interest,
			Principal:        principal,
			RemainingBalance: balance,
		})
	}

	return schedule, nil
}

// Summarize computes the headline figures for a loan from its terms.
func Summarize(terms Terms) (Summary, error) {
	payment, err := CalculateMonthlyPayment(terms.Principal, terms.AnnualInterestRate, terms.TermMonths)
	if err != nil {
		return Summary{}, err
	}
	totalPaid := payment * float64(terms.TermMonths)
	return Summary{
		MonthlyPayment: payment,
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid - terms.Principal,
	}, nil
}
