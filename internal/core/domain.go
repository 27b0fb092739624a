package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Cash     PaymentMethod = "efectivo"
	Transfer PaymentMethod = "transferencia"
	Unknown  PaymentMethod = "desconocido"
)

type (
	// PaymentMethod is how a monthly fee was settled. Unknown until a
	// payment is marked paid.
	PaymentMethod string

	Date struct {
		time.Time
	}

	// Payment is the dues record for one player and one fixed month.
	Payment struct {
		Month  string        `json:"month"`
		Year   int           `json:"year"`
		Method PaymentMethod `json:"method"`
		Paid   bool          `json:"paid"`
	}

	// Player is a club member. Payments always holds exactly one record
	// per fixed month, seeded unpaid at creation.
	Player struct {
		ID       string    `json:"id"`
		Name     string    `json:"name"`
		JoinDate Date      `json:"joinDate"`
		Payments []Payment `json:"payments"`
	}
)

var (
	ErrEmptyName     = errors.New("empty player name")
	ErrInvalidMonth  = errors.New("invalid month name")
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrNoPlayerNames = errors.New("no player names given")
)

// IsValid reports whether the method is one of the known values.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case Cash, Transfer, Unknown:
		return true
	default:
		return false
	}
}

// IsSettlement reports whether the method can settle a payment.
// Unknown is a placeholder and never settles anything.
func (m PaymentMethod) IsSettlement() bool {
	return m == Cash || m == Transfer
}

// ParseMethod resolves a payment method name case-insensitively.
func ParseMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Cash):
		return Cash, nil
	case string(Transfer):
		return Transfer, nil
	case string(Unknown):
		return Unknown, nil
	default:
		return "", ErrInvalidMethod
	}
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// MarshalJSON serializes the date as YYYY-MM-DD text.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON reconstructs a Date from its text form. Full RFC 3339
// timestamps are accepted for snapshots written by older builds.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	return errors.New("unparsable date: " + s)
}

// Validate checks the structural invariants of a player record.
func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Payments) != len(Months) {
		return errors.New("player must have one payment per fixed month")
	}
	for _, pay := range p.Payments {
		if !pay.Method.IsValid() {
			return ErrInvalidMethod
		}
		if MonthIndex(pay.Month) < 0 {
			return ErrInvalidMonth
		}
	}
	return nil
}

// NameEquals compares player names case-insensitively, the matching rule
// used everywhere names arrive from the assistant.
func (p Player) NameEquals(name string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name))
}

// PaymentFor returns a pointer to the payment record for the given month
// name (case-insensitive), or nil when the month matches no record.
func (p *Player) PaymentFor(month string) *Payment {
	for i := range p.Payments {
		if strings.EqualFold(p.Payments[i].Month, month) {
			return &p.Payments[i]
		}
	}
	return nil
}

// SeedPayments builds the full 12-record payment sequence for a new
// player: one record per fixed month, unpaid, method unknown.
func SeedPayments(year int) []Payment {
	payments := make([]Payment, len(Months))
	for i, month := range Months {
		payments[i] = Payment{Month: month, Year: year, Method: Unknown, Paid: false}
	}
	return payments
}
