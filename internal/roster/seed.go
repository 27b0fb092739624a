package roster

import (
	"time"

	"github.com/google/uuid"

	"clubfin/internal/core"
)

// SeedSnapshot returns the demo roster used when no stored snapshot can be
// loaded: two long-standing members with their dues paid up to two months
// back, and one who joined today with nothing paid.
func SeedSnapshot(now time.Time) Snapshot {
	year := now.Year()

	// Months already settled for the veterans. One step behind the rotated
	// current-month index, matching the reporting lag.
	paidThrough := int(now.Month()) - 3
	if paidThrough < 0 {
		paidThrough = 0
	}

	dario := core.Player{
		ID:       uuid.NewString(),
		Name:     "Darío",
		JoinDate: core.NewDate(year, 2, 15),
		Payments: seedPaidUpTo(year, paidThrough),
	}
	lucas := core.Player{
		ID:       uuid.NewString(),
		Name:     "Lucas",
		JoinDate: core.NewDate(year, 4, 5),
		Payments: seedPaidUpTo(year, paidThrough),
	}
	juan := core.Player{
		ID:       uuid.NewString(),
		Name:     "Juan",
		JoinDate: core.DateOf(now),
		Payments: core.SeedPayments(year),
	}

	return Snapshot{Players: []core.Player{dario, lucas, juan}}
}

func seedPaidUpTo(year, n int) []core.Payment {
	payments := core.SeedPayments(year)
	for i := range payments {
		if i < n {
			payments[i].Paid = true
		}
	}
	return payments
}
