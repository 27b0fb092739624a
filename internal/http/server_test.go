package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"clubfin/internal/actions"
	"clubfin/internal/assistant"
	"clubfin/internal/roster"
	"clubfin/internal/services"
)

type stubAssistant struct {
	reply assistant.Reply
	err   error
}

func (s *stubAssistant) Chat(ctx context.Context, prompt string, snap roster.Snapshot) (assistant.Reply, error) {
	return s.reply, s.err
}

func fixedNow() time.Time {
	return time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, asst assistant.Assistant) (*Server, *roster.Store) {
	t.Helper()
	store := roster.New()
	tracker := services.NewTrackerService(actions.NewDispatcher(store, fixedNow), nil, nil)
	srv := NewServer(":0", store, tracker, asst, 5000, fixedNow)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, store
}

func postChat(srv *Server, message string) *httptest.ResponseRecorder {
	form := url.Values{"message": {message}}
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersDashboard(t *testing.T) {
	srv, store := newTestServer(t, &stubAssistant{})
	store.AddPlayers([]string{"Ana"}, fixedNow())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Panel de Finanzas", "Recaudado Agosto", "Ana", "Estado de Pagos - 2025"} {
		if !strings.Contains(body, want) {
			t.Errorf("Index page missing %q", want)
		}
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("Expected X-Frame-Options DENY, got %q", got)
	}
}

func TestIndexRejectsUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t, &stubAssistant{})

	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestPlayerTablePartial(t *testing.T) {
	srv, store := newTestServer(t, &stubAssistant{})
	store.AddPlayers([]string{"Beto"}, fixedNow())

	req := httptest.NewRequest(http.MethodGet, "/ui/player-table", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Beto") {
		t.Error("Partial missing player name")
	}
}

func TestChatConversationalReply(t *testing.T) {
	srv, _ := newTestServer(t, &stubAssistant{reply: assistant.Reply{Text: "Todos pagaron este mes."}})

	rec := postChat(srv, "¿quién falta pagar?")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Todos pagaron este mes.") {
		t.Errorf("Missing bot reply in %q", body)
	}
	if !strings.Contains(body, "chat-bot") {
		t.Error("Conversational replies should render as bot bubbles")
	}
}

func TestChatActionExecutesAndTriggersRefresh(t *testing.T) {
	intent := actions.Intent{
		Kind:       actions.KindAddPlayers,
		AddPlayers: &actions.AddPlayersArgs{PlayerNames: []string{"Caro"}},
	}
	srv, store := newTestServer(t, &stubAssistant{reply: assistant.Reply{Intent: &intent}})

	rec := postChat(srv, "agregá a Caro")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Se agregaron 1 jugadores: Caro.") {
		t.Errorf("Missing confirmation in %q", body)
	}
	if !strings.Contains(body, "chat-system") {
		t.Error("Confirmations should render as system bubbles")
	}
	if got := rec.Header().Get("HX-Trigger"); got != "roster-changed" {
		t.Errorf("Expected roster-changed trigger, got %q", got)
	}
	if len(store.Snapshot().Players) != 1 {
		t.Error("Action should have mutated the roster")
	}
}

func TestChatAssistantFailureShowsApology(t *testing.T) {
	srv, _ := newTestServer(t, &stubAssistant{err: errors.New("model unavailable")})

	rec := postChat(srv, "hola")
	if !strings.Contains(rec.Body.String(), chatErrorText) {
		t.Errorf("Expected apology, got %q", rec.Body.String())
	}
}

func TestChatInFlightRejection(t *testing.T) {
	srv, _ := newTestServer(t, &stubAssistant{err: assistant.ErrRequestInFlight})

	rec := postChat(srv, "hola")
	if !strings.Contains(rec.Body.String(), "solicitud anterior") {
		t.Errorf("Expected busy message, got %q", rec.Body.String())
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv, _ := newTestServer(t, &stubAssistant{})

	rec := postChat(srv, "   ")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", rec.Code)
	}
}

func TestChatRejectsGet(t *testing.T) {
	srv, _ := newTestServer(t, &stubAssistant{})

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, &stubAssistant{})

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Server.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("Request 61 within a minute should be blocked")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("Other clients should not be affected")
	}
}
