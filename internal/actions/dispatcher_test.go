package actions

import (
	"strings"
	"testing"
	"time"

	"clubfin/internal/core"
	"clubfin/internal/roster"
)

// Mid-August: reference month is Agosto.
var testNow = time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)

func testDispatcher() (*Dispatcher, *roster.Store) {
	store := roster.New()
	return NewDispatcher(store, func() time.Time { return testNow }), store
}

func TestDispatchAddPlayers(t *testing.T) {
	d, _ := testDispatcher()

	res := d.Dispatch(Intent{Kind: KindAddPlayers, AddPlayers: &AddPlayersArgs{PlayerNames: []string{"Ana", "Beto"}}})
	if !res.Mutated {
		t.Error("expected mutation")
	}
	if res.Confirmation != "Se agregaron 2 jugadores: Ana, Beto." {
		t.Errorf("confirmation = %q", res.Confirmation)
	}
	if len(res.Snapshot.Players) != 2 {
		t.Errorf("players = %d, want 2", len(res.Snapshot.Players))
	}
}

func TestDispatchRegisterPaymentsConfirmsRegardlessOfMatch(t *testing.T) {
	d, _ := testDispatcher()
	res := d.Dispatch(Intent{Kind: KindRegisterPayments, RegisterPayments: &RegisterPaymentsArgs{
		PlayerNames: []string{"Fantasma"},
		Month:       "Agosto",
		Method:      core.Cash,
	}})
	want := "Se registraron los pagos de Fantasma para Agosto por efectivo."
	if res.Confirmation != want {
		t.Errorf("confirmation = %q, want %q", res.Confirmation, want)
	}
	if len(res.Snapshot.Players) != 0 {
		t.Error("unmatched registration grew the roster")
	}
}

func TestDispatchDeletePlayerNotFound(t *testing.T) {
	d, _ := testDispatcher()
	res := d.Dispatch(Intent{Kind: KindDeletePlayer, DeletePlayer: &DeletePlayerArgs{PlayerName: "Beto"}})
	if res.Mutated {
		t.Error("not-found delete must not mutate")
	}
	if !strings.Contains(res.Confirmation, "No se encontró al jugador llamado") {
		t.Errorf("confirmation = %q", res.Confirmation)
	}
}

func TestDispatchUnknownKind(t *testing.T) {
	d, _ := testDispatcher()
	res := d.Dispatch(Intent{Kind: Kind("somethingElse")})
	if res.Confirmation != "Acción no reconocida." {
		t.Errorf("confirmation = %q", res.Confirmation)
	}
	if res.Mutated {
		t.Error("unknown intent must not mutate")
	}
}

// Full scenario: add two players, register one payment, report, delete twice.
func TestDispatchEndToEnd(t *testing.T) {
	d, _ := testDispatcher()
	month := core.ReferenceMonthName(testNow)

	res := d.Dispatch(Intent{Kind: KindAddPlayers, AddPlayers: &AddPlayersArgs{PlayerNames: []string{"Ana", "Beto"}}})
	if len(res.Snapshot.Players) != 2 {
		t.Fatalf("players after add = %d, want 2", len(res.Snapshot.Players))
	}
	for _, p := range res.Snapshot.Players {
		for _, pay := range p.Payments {
			if pay.Paid {
				t.Fatalf("%s %s paid after add", p.Name, pay.Month)
			}
		}
	}

	res = d.Dispatch(Intent{Kind: KindRegisterPayments, RegisterPayments: &RegisterPaymentsArgs{
		PlayerNames: []string{"Ana"}, Month: month, Method: core.Cash,
	}})
	ana := res.Snapshot.Players[0]
	if pay := ana.PaymentFor(month); pay == nil || !pay.Paid || pay.Method != core.Cash {
		t.Fatalf("Ana %s = %+v, want paid cash", month, pay)
	}
	beto := res.Snapshot.Players[1]
	if pay := beto.PaymentFor(month); pay.Paid {
		t.Fatal("Beto mutated by Ana's payment")
	}

	report := d.Dispatch(Intent{Kind: KindGenerateReport}).Confirmation
	for _, want := range []string{
		"Ana (efectivo)",
		"Beto",
		"- Efectivo: 1 pagos",
		"- Transferencia: 0 pagos",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	res = d.Dispatch(Intent{Kind: KindDeletePlayer, DeletePlayer: &DeletePlayerArgs{PlayerName: "Beto"}})
	if !res.Mutated || len(res.Snapshot.Players) != 1 {
		t.Fatalf("delete failed: mutated=%v players=%d", res.Mutated, len(res.Snapshot.Players))
	}
	if res.Snapshot.Players[0].Name != "Ana" {
		t.Errorf("remaining player = %q, want Ana", res.Snapshot.Players[0].Name)
	}

	res = d.Dispatch(Intent{Kind: KindDeletePlayer, DeletePlayer: &DeletePlayerArgs{PlayerName: "Beto"}})
	if res.Mutated || len(res.Snapshot.Players) != 1 {
		t.Errorf("second delete: mutated=%v players=%d", res.Mutated, len(res.Snapshot.Players))
	}
}

func TestDispatchReportIsReadOnly(t *testing.T) {
	d, store := testDispatcher()
	store.AddPlayers([]string{"Ana"}, testNow)

	before := store.Snapshot()
	first := d.Dispatch(Intent{Kind: KindGenerateReport})
	second := d.Dispatch(Intent{Kind: KindGenerateReport})

	if first.Mutated {
		t.Error("report marked as mutation")
	}
	if first.Confirmation != second.Confirmation {
		t.Error("back-to-back reports differ")
	}
	after := store.Snapshot()
	if len(after.Players) != len(before.Players) {
		t.Error("report changed the roster")
	}
}
