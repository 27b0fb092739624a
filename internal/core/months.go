package core

import (
	"strings"
	"time"
)

// Months is the fixed month calendar used for table columns and reports.
// The club's fiscal year starts in February, so the list is rotated one
// month past the calendar year.
var Months = [12]string{
	"Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio",
	"Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre", "Enero",
}

// referenceOffset is subtracted from the 1-based calendar month to get the
// reference index into Months: one step for the February rotation plus one
// step of reporting lag. The scenario tests pin the value down.
const referenceOffset = 2

// ReferenceMonthIndex returns the index into Months treated as "the current
// month" for reports and payment gating. When the offset lands before the
// start of the fiscal calendar (January), it clamps to the first month.
func ReferenceMonthIndex(now time.Time) int {
	idx := int(now.Month()) - referenceOffset
	if idx < 0 {
		return 0
	}
	return idx
}

// ReferenceMonthName returns the month name for ReferenceMonthIndex.
func ReferenceMonthName(now time.Time) string {
	return Months[ReferenceMonthIndex(now)]
}

// MonthIndex resolves a month name case-insensitively to its index in
// Months, or -1 when the name is not part of the fixed calendar.
func MonthIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, m := range Months {
		if strings.EqualFold(m, name) {
			return i
		}
	}
	return -1
}

// JoinMonthIndex returns the rotated index of the player's join month, used
// to gate which table columns apply. Players who joined in an earlier year
// are eligible from the first month (index -1 means "before everything").
func JoinMonthIndex(join Date, now time.Time) int {
	if join.Year() != now.Year() {
		return -1
	}
	return int(join.Month()) - referenceOffset
}

// CellState classifies one player-month table cell.
type CellState int

const (
	// CellNotApplicable marks months outside [join month, reference month]:
	// before the player joined or still in the future.
	CellNotApplicable CellState = iota
	CellUnpaid
	CellPaidCash
	CellPaidTransfer
	CellPaid // paid with method still unknown
)

// PaymentCell computes the display state for a player's column at monthIdx.
func PaymentCell(p Player, monthIdx int, now time.Time) CellState {
	joinIdx := JoinMonthIndex(p.JoinDate, now)
	refIdx := ReferenceMonthIndex(now)
	if monthIdx < joinIdx || monthIdx > refIdx {
		return CellNotApplicable
	}
	if monthIdx < 0 || monthIdx >= len(p.Payments) {
		return CellNotApplicable
	}
	pay := p.Payments[monthIdx]
	if !pay.Paid {
		return CellUnpaid
	}
	switch pay.Method {
	case Cash:
		return CellPaidCash
	case Transfer:
		return CellPaidTransfer
	default:
		return CellPaid
	}
}
