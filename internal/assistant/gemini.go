package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"clubfin/internal/actions"
	"clubfin/internal/core"
	"clubfin/internal/roster"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Gemini answers prompts with the Gemini API, exposing the roster
// operations as function declarations.
type Gemini struct {
	client *genai.Client
	model  string
	feeARS int
	now    func() time.Time
}

// NewGemini creates a Gemini assistant. model falls back to DefaultModel
// when empty, and now to time.Now when nil.
func NewGemini(ctx context.Context, apiKey, model string, feeARS int, now func() time.Time) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	if now == nil {
		now = time.Now
	}
	return &Gemini{client: client, model: model, feeARS: feeARS, now: now}, nil
}

// Chat sends the prompt with the roster context and returns either the
// model's text or the first tool call parsed into an Intent.
func (g *Gemini) Chat(ctx context.Context, prompt string, snap roster.Snapshot) (Reply, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(buildSystemInstruction(g.now(), snap, g.feeARS), genai.RoleUser),
		Tools:             []*genai.Tool{{FunctionDeclarations: toolDeclarations()}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to generate content: %w", err)
	}

	calls := resp.FunctionCalls()
	if len(calls) == 0 {
		return Reply{Text: resp.Text()}, nil
	}

	call := calls[0]
	slog.InfoContext(ctx, "Assistant requested tool call", "function", call.Name)

	intent, err := actions.ParseIntent(call.Name, call.Args)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to parse tool call %q: %w", call.Name, err)
	}
	return Reply{Intent: &intent}, nil
}

func toolDeclarations() []*genai.FunctionDeclaration {
	monthList := ""
	for i, m := range core.Months {
		if i > 0 {
			monthList += ", "
		}
		monthList += m
	}

	return []*genai.FunctionDeclaration{
		{
			Name:        string(actions.KindAddPlayers),
			Description: "Agrega uno o varios jugadores nuevos al club.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"playerNames": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Un array con los nombres de los jugadores a agregar.",
					},
				},
				Required: []string{"playerNames"},
			},
		},
		{
			Name:        string(actions.KindRegisterPayments),
			Description: "Registra el pago de la cuota mensual para uno o varios jugadores.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"playerNames": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Array con los nombres de los jugadores que pagaron. Deben existir en la lista de jugadores.",
					},
					"month": {
						Type:        genai.TypeString,
						Description: "El mes que se pagó. Debe ser uno de: " + monthList + ".",
					},
					"method": {
						Type:        genai.TypeString,
						Description: "El método de pago.",
						Enum:        []string{string(core.Cash), string(core.Transfer)},
					},
				},
				Required: []string{"playerNames", "month", "method"},
			},
		},
		{
			Name:        string(actions.KindGenerateReport),
			Description: "Genera un informe detallado del estado financiero del mes actual.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		},
		{
			Name:        string(actions.KindDeletePlayer),
			Description: "Elimina a un jugador del club de forma permanente. Esta acción no se puede deshacer.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"playerName": {
						Type:        genai.TypeString,
						Description: "El nombre exacto del jugador a eliminar. Debe existir en la lista de jugadores.",
					},
				},
				Required: []string{"playerName"},
			},
		},
	}
}
