// Package report renders a computed loan analysis for people: a summary
// block, the amortization table, the maturity classification totals, and the
// suggested accounting entries.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Gms006/emprestimos/pkg/datetime"
	"github.com/Gms006/emprestimos/pkg/format"
	"github.com/Gms006/emprestimos/pkg/loan"
	"github.com/Gms006/emprestimos/pkg/mathutil"
	"github.com/Gms006/emprestimos/pkg/maturity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Filter selects which installments appear in the schedule table.
type Filter string

const (
	// FilterAll shows every installment.
	FilterAll Filter = "all"

	// FilterCurrent shows only installments due within the 12-month window.
	FilterCurrent Filter = "current"

	// FilterNonCurrent shows only installments due beyond the window.
	FilterNonCurrent Filter = "non-current"
)

// Report bundles everything one calculation produced.
type Report struct {
	Terms          loan.Terms
	Summary        loan.Summary
	Schedule       []loan.Entry
	Classification maturity.Classification
}

// Build runs the engine and the classifier for the given terms and base date.
func Build(terms loan.Terms, baseDate time.Time) (Report, error) {
	schedule, err := loan.BuildSchedule(terms)
	if err != nil {
		return Report{}, err
	}
	summary, err := loan.Summarize(terms)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Terms:          terms,
		Summary:        summary,
		Schedule:       schedule,
		Classification: maturity.Classify(schedule, baseDate),
	}, nil
}

// Entries returns the installments selected by the filter.
func (r Report) Entries(filter Filter) []loan.Entry {
	switch filter {
	case FilterCurrent:
		return r.Classification.Current
	case FilterNonCurrent:
		return r.Classification.NonCurrent
	default:
		return r.Schedule
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(r Report, filter Filter) {
	fmt.Print(PrettyString(r, filter))
}

// PrettyString renders the human-readable report as a string.
func PrettyString(r Report, filter Filter) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	var b strings.Builder

	name := r.Terms.Name
	if name == "" {
		name = "loan"
	}
	fmt.Fprintf(&b, "--- Amortization analysis for %s ---\n", name)
	fmt.Fprintf(&b, "Principal:       %s\n", format.Currency(r.Terms.Principal, format.BRL))
	fmt.Fprintf(&b, "Interest rate:   %.2f%% p.a.\n", r.Terms.AnnualInterestRate)
	fmt.Fprintf(&b, "Term:            %d months\n", r.Terms.TermMonths)
	fmt.Fprintf(&b, "Monthly payment: %s\n", format.Currency(r.Summary.MonthlyPayment, format.BRL))
	fmt.Fprintf(&b, "Total paid:      %s\n", format.Currency(r.Summary.TotalPaid, format.BRL))
	fmt.Fprintf(&b, "Total interest:  %s\n", format.Currency(r.Summary.TotalInterest, format.BRL))
	fmt.Fprintf(&b, "\n")

	c := r.Classification
	fmt.Fprintf(&b, "--- Maturity classification (cutoff %s) ---\n", c.CutoffDate.Format(datetime.DateLayout))
	fmt.Fprintf(&b, "Current principal (circulating liability):     %s\n", format.Currency(c.CurrentPrincipal, format.BRL))
	fmt.Fprintf(&b, "Current interest:                              %s\n", format.Currency(c.CurrentInterest, format.BRL))
	fmt.Fprintf(&b, "Non-current principal (long-term liability):   %s\n", format.Currency(c.NonCurrentPrincipal, format.BRL))
	fmt.Fprintf(&b, "Non-current interest:                          %s\n", format.Currency(c.NonCurrentInterest, format.BRL))
	if len(c.NonCurrent) == 0 && mathutil.IsZero(c.NonCurrentPrincipal) {
		fmt.Fprintf(&b, "Every installment falls due within the 12-month window.\n")
	}
	if len(c.Current) == 0 && mathutil.IsZero(c.CurrentPrincipal) {
		fmt.Fprintf(&b, "No installment falls due within the 12-month window.\n")
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "Period | Due date   | Payment       | Interest      | Principal     | Balance\n")
	fmt.Fprintf(&b, "______ | ________   | _______       | ________      | _________     | _______\n")
	for _, entry := range r.Entries(filter) {
		_, _ = p.Fprintf(&b, "%6d | %s | %13.2f | %13.2f | %13.2f | %13.2f\n",
			entry.Period, entry.DueDate.Format(datetime.DateLayout),
			entry.Payment, entry.Interest, entry.Principal, entry.RemainingBalance)
	}

	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(r Report, filter Filter) {
	fmt.Print(CsvString(r, filter))
}

// CsvString renders the schedule as CSV, one row per installment.
func CsvString(r Report, filter Filter) string {
	var b strings.Builder
	b.WriteString(`"period","dueDate","payment","interest","principal","remainingBalance","classification"` + "\n")
	cutoff := r.Classification.CutoffDate
	for _, entry := range r.Entries(filter) {
		bucket := "current"
		if entry.DueDate.After(cutoff) {
			bucket = "non-current"
		}
		fmt.Fprintf(&b, `"%d","%s","%.2f","%.2f","%.2f","%.2f","%s"`+"\n",
			entry.Period, entry.DueDate.Format(datetime.DateLayout),
			entry.Payment, entry.Interest, entry.Principal, entry.RemainingBalance, bucket)
	}
	return b.String()
}

// JournalEntries renders the suggested accounting entries for booking the
// loan: initial recognition split by maturity, the recurring installment
// entry, and the year-end reclassification from long to short term.
func JournalEntries(r Report) string {
	c := r.Classification
	var b strings.Builder

	b.WriteString("--- Suggested accounting entries ---\n\n")
	b.WriteString("Initial recognition:\n")
	fmt.Fprintf(&b, "  Debit  Cash and banks                    %s\n", format.Currency(r.Terms.Principal, format.BRL))
	fmt.Fprintf(&b, "  Credit Loans payable (current)            %s\n", format.Currency(c.CurrentPrincipal, format.BRL))
	fmt.Fprintf(&b, "  Credit Loans payable (non-current)        %s\n", format.Currency(c.NonCurrentPrincipal, format.BRL))
	b.WriteString("\nMonthly installment:\n")
	b.WriteString("  Debit  Loans payable (current)            principal portion\n")
	b.WriteString("  Debit  Interest expense                   interest portion\n")
	fmt.Fprintf(&b, "  Credit Cash and banks                     %s\n", format.Currency(r.Summary.MonthlyPayment, format.BRL))
	b.WriteString("\nAt year-end closing:\n")
	b.WriteString("  Debit  Loans payable (non-current)        amounts maturing within the next 12 months\n")
	b.WriteString("  Credit Loans payable (current)            amounts maturing within the next 12 months\n")

	return b.String()
}
