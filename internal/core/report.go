package core

import (
	"fmt"
	"strings"
)

// MonthlyReport renders the financial summary for one reference month:
// who paid (with method), who did not, and totals per payment method.
// Pure function of the player list and month name.
func MonthlyReport(players []Player, monthName string) string {
	var paid []string
	var unpaid []string
	var cashTotal, transferTotal int

	for i := range players {
		p := players[i]
		pay := p.PaymentFor(monthName)
		if pay != nil && pay.Paid {
			paid = append(paid, fmt.Sprintf("%s (%s)", p.Name, pay.Method))
			switch pay.Method {
			case Cash:
				cashTotal++
			case Transfer:
				transferTotal++
			}
		} else {
			unpaid = append(unpaid, p.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Informe de %s**\n\n", monthName)
	fmt.Fprintf(&b, "**Pagaron (%d):**\n%s\n\n", len(paid), joinOrNadie(paid))
	fmt.Fprintf(&b, "**No Pagaron (%d):**\n%s\n\n", len(unpaid), joinOrNadie(unpaid))
	b.WriteString("**Totales:**\n")
	fmt.Fprintf(&b, "- Efectivo: %d pagos\n", cashTotal)
	fmt.Fprintf(&b, "- Transferencia: %d pagos\n", transferTotal)
	return b.String()
}

func joinOrNadie(names []string) string {
	if len(names) == 0 {
		return "Nadie"
	}
	return strings.Join(names, "\n")
}

// RevenueStats aggregates the dashboard figures at a given monthly fee.
type RevenueStats struct {
	TotalPlayers int
	// MonthRevenue is fee × players paid for the reference month, in ARS.
	MonthRevenue int64
	// AnnualRevenue is fee × every paid record across all months, in ARS.
	AnnualRevenue int64
}

// ComputeRevenueStats derives the dashboard stat cards from the roster.
func ComputeRevenueStats(players []Player, monthName string, feeARS int64) RevenueStats {
	stats := RevenueStats{TotalPlayers: len(players)}
	for i := range players {
		p := players[i]
		if pay := p.PaymentFor(monthName); pay != nil && pay.Paid {
			stats.MonthRevenue += feeARS
		}
		for _, pay := range p.Payments {
			if pay.Paid {
				stats.AnnualRevenue += feeARS
			}
		}
	}
	return stats
}
