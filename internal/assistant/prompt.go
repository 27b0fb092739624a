package assistant

import (
	"encoding/json"
	"fmt"
	"time"

	"clubfin/internal/core"
	"clubfin/internal/roster"
)

// playerProjection is the per-player slice of state the model sees. The
// full payment matrix would blow up the instruction for no gain; the
// model only ever reasons about the reference month.
type playerProjection struct {
	Name             string `json:"name"`
	PaidCurrentMonth bool   `json:"paid_current_month"`
}

func projectPlayers(players []core.Player, monthName string) []playerProjection {
	out := make([]playerProjection, 0, len(players))
	for _, p := range players {
		paid := false
		if pay := p.PaymentFor(monthName); pay != nil {
			paid = pay.Paid
		}
		out = append(out, playerProjection{Name: p.Name, PaidCurrentMonth: paid})
	}
	return out
}

// buildSystemInstruction renders the Spanish policy preamble plus the
// current roster context. now decides the reference month.
func buildSystemInstruction(now time.Time, snap roster.Snapshot, feeARS int) string {
	monthName := core.ReferenceMonthName(now)

	projection := projectPlayers(snap.Players, monthName)
	state, err := json.MarshalIndent(projection, "        ", "  ")
	if err != nil {
		state = []byte("[]")
	}

	return fmt.Sprintf(`
        Eres un asistente experto en IA para la gestión financiera de un club de fútbol.
        Tu objetivo es comprender las solicitudes en lenguaje natural del usuario y traducirlas en una de las llamadas a funciones de herramienta disponibles.

        REGLAS ESTRICTAS:
        - Sé siempre amable y confirma las acciones que realizas o vas a realizar.
        - Si una solicitud es ambigua (por ejemplo, "marcar el pago de Juan" sin especificar el mes), pide una aclaración.
        - No inventes nombres de jugadores ni meses. Utiliza únicamente los datos proporcionados en el contexto.
        - El mes actual es %[1]s. Asume que cualquier mención de "este mes" o "el mes actual" se refiere a %[1]s.
        - La cuota mensual es de %[2]d ARS.
        - Si te preguntan "¿quién falta pagar?" o similar, utiliza el contexto de jugadores para responder de forma clara y concisa.
        - Si la solicitud del usuario no coincide con ninguna función, responde de forma conversacional y útil.

        CONTEXTO ACTUAL DEL SISTEMA:
        - Fecha de hoy: %[3]s
        - Mes actual de referencia: %[1]s
        - Estado de los jugadores:
        %[4]s
    `, monthName, feeARS, now.Format("2/1/2006"), state)
}
