// Package maturity partitions an amortization schedule into current and
// non-current liabilities for balance-sheet presentation: installments due
// within twelve months of the base date are current, the rest non-current.
package maturity

import (
	"time"

	"github.com/Gms006/emprestimos/pkg/constants"
	"github.com/Gms006/emprestimos/pkg/datetime"
	"github.com/Gms006/emprestimos/pkg/loan"
)

// Classification holds the two buckets and their aggregate totals. The
// buckets preserve ascending period order and together cover the full
// schedule with no overlap.
type Classification struct {
	CutoffDate time.Time

	Current    []loan.Entry
	NonCurrent []loan.Entry

	CurrentPrincipal    float64
	CurrentInterest     float64
	NonCurrentPrincipal float64
	NonCurrentInterest  float64
}

// Classify partitions the schedule against the base date. An entry due
// exactly on the cutoff (base date + 12 months) counts as current. Pure
// function; an empty schedule yields two empty buckets with zero totals.
func Classify(schedule []loan.Entry, baseDate time.Time) Classification {
	result := Classification{
		CutoffDate: datetime.AddMonths(baseDate, constants.ClassificationHorizonMonths),
	}

	for _, entry := range schedule {
		if entry.DueDate.After(result.CutoffDate) {
			result.NonCurrent = append(result.NonCurrent, entry)
			result.NonCurrentPrincipal += entry.Principal
			result.NonCurrentInterest += entry.Interest
		} else {
			result.Current = append(result.Current, entry)
			result.CurrentPrincipal += entry.Principal
			result.CurrentInterest += entry.Interest
		}
	}

	return result
}
