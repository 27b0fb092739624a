package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"clubfin/internal/assistant"
	"clubfin/internal/core"
)

// chatErrorText is shown whenever the assistant call fails.
const chatErrorText = "Lo siento, ocurrió un error al procesar tu solicitud."

// cellView is one payment cell of the roster table.
type cellView struct {
	Symbol string
	Class  string
	Title  string
}

type playerRowView struct {
	Name  string
	Cells []cellView
}

type dashboardView struct {
	Year          int
	MonthName     string
	MonthsShort   []string
	Players       []playerRowView
	TotalPlayers  int
	MonthRevenue  string
	AnnualRevenue string
	Greeting      string
}

func (s *Server) dashboardData() dashboardView {
	now := s.now()
	snap := s.store.Snapshot()
	monthName := core.ReferenceMonthName(now)
	stats := core.ComputeRevenueStats(snap.Players, monthName, int64(s.feeARS))

	short := make([]string, len(core.Months))
	for i, m := range core.Months {
		short[i] = m[:3]
	}

	rows := make([]playerRowView, 0, len(snap.Players))
	for _, p := range snap.Players {
		row := playerRowView{Name: p.Name, Cells: make([]cellView, len(core.Months))}
		for i := range core.Months {
			row.Cells[i] = renderCell(core.PaymentCell(p, i, now))
		}
		rows = append(rows, row)
	}

	return dashboardView{
		Year:          now.Year(),
		MonthName:     monthName,
		MonthsShort:   short,
		Players:       rows,
		TotalPlayers:  stats.TotalPlayers,
		MonthRevenue:  formatARS(stats.MonthRevenue),
		AnnualRevenue: formatARS(stats.AnnualRevenue),
		Greeting:      "Hola! Soy tu asistente de IA. ¿En qué puedo ayudarte? Puedes pedirme que agregue jugadores, registre pagos o genere informes.",
	}
}

func renderCell(state core.CellState) cellView {
	switch state {
	case core.CellNotApplicable:
		return cellView{Symbol: "-", Class: "cell-na", Title: "No aplica"}
	case core.CellPaidCash:
		return cellView{Symbol: "✔", Class: "cell-cash", Title: "Pagado (Efectivo)"}
	case core.CellPaidTransfer:
		return cellView{Symbol: "✔", Class: "cell-transfer", Title: "Pagado (Transferencia)"}
	case core.CellPaid:
		return cellView{Symbol: "✔", Class: "cell-paid", Title: "Pagado"}
	default:
		return cellView{Symbol: "✘", Class: "cell-unpaid", Title: "Pendiente"}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", s.dashboardData()); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handlePlayerTable serves the roster table partial for refreshes after
// chat actions.
func (s *Server) handlePlayerTable(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "player_table.html", s.dashboardData()); err != nil {
		slog.ErrorContext(r.Context(), "Player table template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// chatMessageView is one rendered chat bubble. Sender is "user", "bot"
// or "system" (confirmations of executed actions).
type chatMessageView struct {
	Sender string
	Text   string
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		s.writeChatMessages(w, r, chatMessageView{Sender: "bot", Text: chatErrorText})
		return
	}

	prompt := sanitizeInput(r.Form.Get("message"))
	if prompt == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.writeChatMessages(w, r, chatMessageView{Sender: "bot", Text: "Escribe un comando primero."})
		return
	}

	messages := []chatMessageView{{Sender: "user", Text: prompt}}

	reply, err := s.assistant.Chat(r.Context(), prompt, s.store.Snapshot())
	switch {
	case errors.Is(err, assistant.ErrRequestInFlight):
		slog.WarnContext(r.Context(), "Chat request rejected, one already in flight")
		messages = append(messages, chatMessageView{Sender: "bot", Text: "Todavía estoy procesando tu solicitud anterior. Esperá un momento."})
	case err != nil:
		slog.ErrorContext(r.Context(), "Assistant call failed", "error", err)
		messages = append(messages, chatMessageView{Sender: "bot", Text: chatErrorText})
	case reply.IsAction():
		res := s.tracker.Handle(r.Context(), *reply.Intent)
		messages = append(messages, chatMessageView{Sender: "system", Text: res.Confirmation})
		if res.Mutated {
			// Tell the page to re-fetch the roster table.
			w.Header().Set("HX-Trigger", "roster-changed")
		}
	default:
		messages = append(messages, chatMessageView{Sender: "bot", Text: reply.Text})
	}

	s.writeChatMessages(w, r, messages...)
}

func (s *Server) writeChatMessages(w http.ResponseWriter, r *http.Request, messages ...chatMessageView) {
	if s.templates == nil {
		for _, m := range messages {
			_, _ = w.Write([]byte(template.HTMLEscapeString(m.Text)))
		}
		return
	}
	for _, m := range messages {
		if err := s.templates.ExecuteTemplate(w, "chat_message.html", m); err != nil {
			slog.ErrorContext(r.Context(), "Chat message template failed", "error", err)
			return
		}
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatARS": formatARS,
	}
}
