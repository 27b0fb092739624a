package core

import (
	"encoding/json"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    PaymentMethod
		wantErr bool
	}{
		{"efectivo", Cash, false},
		{"Efectivo", Cash, false},
		{"  TRANSFERENCIA ", Transfer, false},
		{"desconocido", Unknown, false},
		{"tarjeta", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMethod(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMethod(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeedPayments(t *testing.T) {
	payments := SeedPayments(2025)
	if len(payments) != len(Months) {
		t.Fatalf("SeedPayments length = %d, want %d", len(payments), len(Months))
	}
	for i, p := range payments {
		if p.Month != Months[i] {
			t.Errorf("payment %d month = %q, want %q", i, p.Month, Months[i])
		}
		if p.Paid {
			t.Errorf("payment %d seeded as paid", i)
		}
		if p.Method != Unknown {
			t.Errorf("payment %d method = %q, want %q", i, p.Method, Unknown)
		}
		if p.Year != 2025 {
			t.Errorf("payment %d year = %d, want 2025", i, p.Year)
		}
	}
}

func TestPlayerValidate(t *testing.T) {
	good := Player{ID: "x", Name: "Ana", JoinDate: NewDate(2025, 3, 1), Payments: SeedPayments(2025)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Player)
	}{
		{"empty name", func(p *Player) { p.Name = "  " }},
		{"short payments", func(p *Player) { p.Payments = p.Payments[:5] }},
		{"bad method", func(p *Player) { p.Payments[0].Method = "cheque" }},
		{"bad month", func(p *Player) { p.Payments[2].Month = "Smarch" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Player{ID: "x", Name: "Ana", JoinDate: NewDate(2025, 3, 1), Payments: SeedPayments(2025)}
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPlayerPaymentForCaseInsensitive(t *testing.T) {
	p := Player{Payments: SeedPayments(2025)}
	if pay := p.PaymentFor("agosto"); pay == nil || pay.Month != "Agosto" {
		t.Fatalf("PaymentFor(agosto) = %+v, want Agosto record", pay)
	}
	if pay := p.PaymentFor("Smarch"); pay != nil {
		t.Fatalf("PaymentFor(Smarch) = %+v, want nil", pay)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, 8, 30)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2025-08-30"` {
		t.Errorf("marshal = %s, want \"2025-08-30\"", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDateJSONAcceptsTimestamps(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-04-05T10:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if d.Year() != 2025 || int(d.Month()) != 4 || d.Day() != 5 {
		t.Errorf("parsed %v, want 2025-04-05", d)
	}
}
