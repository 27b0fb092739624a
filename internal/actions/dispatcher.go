package actions

import (
	"fmt"
	"strings"
	"time"

	"clubfin/internal/core"
	"clubfin/internal/roster"
)

// Result describes the outcome of one dispatched intent. Confirmation is
// always set; the dispatch core never fails, it reports. Mutated tells the
// caller whether the snapshot needs persisting.
type Result struct {
	Kind         Kind
	Confirmation string
	Snapshot     roster.Snapshot
	Mutated      bool
}

// Dispatcher routes structured intents to roster mutations or to the report
// generator.
type Dispatcher struct {
	store *roster.Store
	now   func() time.Time
}

// NewDispatcher creates a dispatcher over the given store. A nil clock
// defaults to time.Now.
func NewDispatcher(store *roster.Store, now func() time.Time) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{store: store, now: now}
}

// Dispatch applies the intent and returns a human-readable confirmation.
// "Not found" and unrecognized intents are reportable outcomes, not errors.
func (d *Dispatcher) Dispatch(intent Intent) Result {
	switch intent.Kind {
	case KindAddPlayers:
		return d.addPlayers(intent.AddPlayers)
	case KindRegisterPayments:
		return d.registerPayments(intent.RegisterPayments)
	case KindGenerateReport:
		return d.generateReport()
	case KindDeletePlayer:
		return d.deletePlayer(intent.DeletePlayer)
	default:
		return Result{
			Kind:         intent.Kind,
			Confirmation: "Acción no reconocida.",
			Snapshot:     d.store.Snapshot(),
		}
	}
}

func (d *Dispatcher) addPlayers(args *AddPlayersArgs) Result {
	snap, added := d.store.AddPlayers(args.PlayerNames, d.now())
	return Result{
		Kind:         KindAddPlayers,
		Confirmation: fmt.Sprintf("Se agregaron %d jugadores: %s.", len(added), strings.Join(added, ", ")),
		Snapshot:     snap,
		Mutated:      true,
	}
}

func (d *Dispatcher) registerPayments(args *RegisterPaymentsArgs) Result {
	snap, _ := d.store.RegisterPayments(args.PlayerNames, args.Month, args.Method)
	// The confirmation lists what was requested, not what matched; names
	// with no matching player are skipped silently.
	return Result{
		Kind: KindRegisterPayments,
		Confirmation: fmt.Sprintf("Se registraron los pagos de %s para %s por %s.",
			strings.Join(args.PlayerNames, ", "), args.Month, args.Method),
		Snapshot: snap,
		Mutated:  true,
	}
}

func (d *Dispatcher) generateReport() Result {
	snap := d.store.Snapshot()
	month := core.ReferenceMonthName(d.now())
	return Result{
		Kind:         KindGenerateReport,
		Confirmation: core.MonthlyReport(snap.Players, month),
		Snapshot:     snap,
	}
}

func (d *Dispatcher) deletePlayer(args *DeletePlayerArgs) Result {
	snap, found := d.store.RemovePlayer(args.PlayerName)
	if !found {
		return Result{
			Kind:         KindDeletePlayer,
			Confirmation: fmt.Sprintf("No se encontró al jugador llamado %q. Intenta con un nombre de la lista.", args.PlayerName),
			Snapshot:     snap,
		}
	}
	return Result{
		Kind:         KindDeletePlayer,
		Confirmation: fmt.Sprintf("Se eliminó a %s del club.", args.PlayerName),
		Snapshot:     snap,
		Mutated:      true,
	}
}
