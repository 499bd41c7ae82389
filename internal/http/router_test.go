package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"quadras/web/internal/backend"
	"quadras/web/internal/config"
	"quadras/web/internal/cooldown"
	"quadras/web/internal/domain/arena"
	"quadras/web/internal/domain/booking"
	"quadras/web/internal/domain/court"
	"quadras/web/internal/domain/opengame"
	"quadras/web/internal/domain/subscription"
	"quadras/web/internal/payment"
	"quadras/web/internal/recurrence"
	"quadras/web/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fakeBackend records every call and answers from per-route handlers.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	mux   *http.ServeMux
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{mux: http.NewServeMux()}
}

func (f *fakeBackend) handle(pattern string, status int, body string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeBackend) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

type testEnv struct {
	backend  *fakeBackend
	router   http.Handler
	verifier *session.JWTVerifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fb := newFakeBackend()
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL, 5*time.Second, nil)
	verifier := session.NewJWTVerifier(testSecret, time.Hour)

	cfg := config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		SessionCookie:  "session",
		SessionTTL:     time.Hour,
		LoginPath:      "/login",
		DeniedPath:     "/acesso-negado",
	}

	router := NewRouter(RouterDeps{
		Cfg:             cfg,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Verifier:        verifier,
		BookingSvc:      booking.NewService(client),
		CourtSvc:        court.NewService(client),
		ArenaSvc:        arena.NewService(client),
		OpenGameSvc:     opengame.NewService(client),
		SubscriptionSvc: subscription.NewService(client),
		PaymentSvc:      payment.NewService(client),
		AthleteActions:  client,
		ArenaActions:    client,
		Resender:        client,
		Cooldown:        cooldown.NewLimiter(cooldown.NewMemoryStore(), time.Minute),
	})
	return &testEnv{backend: fb, router: router, verifier: verifier}
}

func (e *testEnv) token(t *testing.T, p session.Principal) string {
	t.Helper()
	tok, err := e.verifier.Issue(p)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

var (
	athlete = session.Principal{UID: "u1", Role: session.RoleAthlete}
	owner   = session.Principal{UID: "o1", Role: session.RoleArena, ArenaID: "a1"}
)

const seriesJSON = `{
  "id": "s1", "quadraId": "c1", "quadraNome": "Quadra 1", "arenaId": "a1",
  "diaSemana": 2, "horaInicio": "19:00", "horaFim": "20:00",
  "agendamentos": [
    {"id": "b1", "data": "2025-06-03", "horaInicio": "19:00", "horaFim": "20:00", "status": "%s"},
    {"id": "b2", "data": "2025-06-10", "horaInicio": "19:00", "horaFim": "20:00", "status": "pendente"},
    {"id": "b3", "data": "2025-06-17", "horaInicio": "19:00", "horaFim": "20:00", "status": "pendente"}
  ]
}`

func series(firstStatus string) string {
	return strings.Replace(seriesJSON, "%s", firstStatus, 1)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestGuard(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/atleta/agendamentos", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/arena/a1/agendamentos", env.token(t, athlete), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/dashboard", "", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard", rec.Header().Get("Location"))

	rec = env.do(t, http.MethodGet, "/admin/arenas", env.token(t, owner), "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/acesso-negado", rec.Header().Get("Location"))
}

func TestArenaRoutesRefuseOtherArena(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/arena/a2/agendamentos", env.token(t, owner), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.backend.called("GET /agendamentos/arena"))
}

func TestAthleteBookingsDateRangeInclusive(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /agendamentos/atleta", 200, `{
	  "content": [
	    {"id": "b0", "data": "2025-05-31", "status": "pendente"},
	    {"id": "b1", "data": "2025-06-01", "status": "pendente"},
	    {"id": "b2", "data": "2025-06-30", "status": "aceito"},
	    {"id": "b3", "data": "2025-07-01", "status": "pendente"}
	  ],
	  "number": 0, "size": 10, "totalElements": 4, "totalPages": 1
	}`)

	rec := env.do(t, http.MethodGet, "/api/atleta/agendamentos?dataInicio=2025-06-01&dataFim=2025-06-30", env.token(t, athlete), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	page := decodeBody[struct {
		Items []booking.Card `json:"items"`
		State string         `json:"state"`
	}](t, rec)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b1", page.Items[0].ID)
	assert.Equal(t, "b2", page.Items[1].ID)
	assert.Equal(t, "ready", page.State)
	assert.Equal(t, []booking.Action{booking.ActionPay}, page.Items[1].Actions)
}

func TestInvalidFilterIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/atleta/agendamentos?dataInicio=2025-06-30&dataFim=2025-06-01", env.token(t, athlete), "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[APIError](t, rec)
	assert.Contains(t, body.Fields, "dataFim")
}

func TestCancelBookingNeedsConfirmation(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("PATCH /agendamentos/b1/cancelar", 204, "")
	tok := env.token(t, athlete)

	rec := env.do(t, http.MethodPost, "/api/atleta/agendamentos/b1/cancelar", tok, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, decodeBody[APIError](t, rec).Confirm)
	assert.False(t, env.backend.called("PATCH /agendamentos/b1/cancelar"))

	rec = env.do(t, http.MethodPost, "/api/atleta/agendamentos/b1/cancelar", tok, `{"confirm": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.backend.called("PATCH /agendamentos/b1/cancelar"))
}

func TestSeriesCancelAllPending(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /agendamentos/fixos/s1", 200, series("pendente"))
	env.backend.handle("PATCH /agendamentos/fixos/s1/cancelar", 204, "")
	tok := env.token(t, athlete)

	rec := env.do(t, http.MethodGet, "/api/atleta/agendamentos-fixos/s1", tok, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decodeBody[recurrence.PanelView](t, rec)
	assert.True(t, view.CanCancelSeries)
	assert.Equal(t, "Quadra 1 · Terça 19:00–20:00", view.Title)

	rec = env.do(t, http.MethodPost, "/api/atleta/agendamentos-fixos/s1/cancelar", tok, `{"confirm": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view = decodeBody[recurrence.PanelView](t, rec)
	assert.False(t, view.Open)
	for _, it := range view.Items {
		assert.Equal(t, booking.StatusCancelled, it.Status)
		assert.Empty(t, it.Actions)
	}
	require.Len(t, view.Notifications, 1)
	assert.Equal(t, recurrence.KindSuccess, view.Notifications[0].Kind)
}

func TestSeriesCancelLockedWhenOnePaid(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /agendamentos/fixos/s1", 200, series("pago"))

	rec := env.do(t, http.MethodPost, "/api/atleta/agendamentos-fixos/s1/cancelar", env.token(t, athlete), `{"confirm": true}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.False(t, env.backend.called("PATCH /agendamentos/fixos/s1/cancelar"))

	body := decodeBody[panelError](t, rec)
	assert.False(t, body.Panel.CanCancelSeries)
	assert.True(t, body.Panel.Open)
	require.Len(t, body.Panel.Items, 3)
	assert.Empty(t, body.Panel.Items[0].Actions)
	assert.Equal(t, []booking.Action{booking.ActionCancel}, body.Panel.Items[1].Actions)
	assert.Equal(t, []booking.Action{booking.ActionCancel}, body.Panel.Items[2].Actions)
}

func TestSeriesCancelBackendFailureLeavesPanel(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /agendamentos/fixos/s1", 200, series("pendente"))
	env.backend.handle("PATCH /agendamentos/fixos/s1/cancelar", 500, `{"message": "boom"}`)

	rec := env.do(t, http.MethodPost, "/api/atleta/agendamentos-fixos/s1/cancelar", env.token(t, athlete), `{"confirm": true}`)
	require.Equal(t, http.StatusBadGateway, rec.Code, rec.Body.String())

	body := decodeBody[panelError](t, rec)
	require.NotNil(t, body.Notification)
	assert.Equal(t, "error", body.Notification.Kind)
	assert.True(t, body.Panel.Open)
	for _, it := range body.Panel.Items {
		assert.Equal(t, booking.StatusPending, it.Status)
	}
	require.Len(t, body.Panel.Notifications, 1)
	assert.Equal(t, recurrence.KindError, body.Panel.Notifications[0].Kind)
}

func TestSeriesCancelOneOnlyChangesThatItem(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /agendamentos/fixos/s1", 200, series("pago"))
	env.backend.handle("PATCH /agendamentos/b2/cancelar", 204, "")

	rec := env.do(t, http.MethodPost, "/api/atleta/agendamentos-fixos/s1/itens/b2/cancelar", env.token(t, athlete), `{"confirm": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view := decodeBody[recurrence.PanelView](t, rec)
	require.Len(t, view.Items, 3)
	assert.Equal(t, booking.Status("pago"), view.Items[0].Status)
	assert.Equal(t, booking.StatusCancelled, view.Items[1].Status)
	assert.Equal(t, booking.StatusPending, view.Items[2].Status)
}

func TestArenaSeriesStatusChange(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /agendamentos/fixos/s1", 200, series("pendente"))
	env.backend.handle("PATCH /agendamentos/b1/status", 204, "")
	tok := env.token(t, owner)

	rec := env.do(t, http.MethodPost, "/api/arena/a1/agendamentos-fixos/s1/itens/b1/status", tok, `{"status": "PAGO"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view := decodeBody[recurrence.PanelView](t, rec)
	assert.Equal(t, booking.ArenaPaid, view.Items[0].Status)
	assert.False(t, view.CanCancelSeries)

	rec = env.do(t, http.MethodPost, "/api/arena/a1/agendamentos-fixos/s1/itens/b2/status", tok, `{"status": "AUSENTE"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, decodeBody[APIError](t, rec).Confirm)
}

func TestArenaSeriesOfAnotherArenaIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /agendamentos/fixos/s1", 200, series("pendente"))
	other := session.Principal{UID: "o2", Role: session.RoleArena, ArenaID: "a2"}

	rec := env.do(t, http.MethodGet, "/api/arena/a2/agendamentos-fixos/s1", env.token(t, other), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCourtRespectsPlanLimit(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /arenas/a1/assinatura", 200, `{"plano": "free", "status": "active", "quadrasCadastradas": 2}`)

	rec := env.do(t, http.MethodPost, "/api/arena/a1/quadras", env.token(t, owner),
		`{"nome": "Quadra 3", "esportes": ["padel"], "valorHora": 120}`)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code, rec.Body.String())
	assert.False(t, env.backend.called("POST /quadras"))
}

func TestResendCodeCooldown(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("POST /auth/reenviar-codigo", 204, "")

	rec := env.do(t, http.MethodPost, "/api/auth/reenviar-codigo", "", `{"email": "Ana@Example.com"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/auth/reenviar-codigo", "", `{"email": "ana@example.com"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Positive(t, decodeBody[APIError](t, rec).RetryAfter)
}

func TestResendCodeFailureReleasesCooldown(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("POST /auth/reenviar-codigo", 503, `{"message": "indisponível"}`)

	rec := env.do(t, http.MethodPost, "/api/auth/reenviar-codigo", "", `{"email": "ana@example.com"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/reenviar-codigo", "", `{"email": "ana@example.com"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSessionRefreshReturnsPrincipal(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/session/refresh", env.token(t, owner), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := decodeBody[session.Principal](t, rec)
	assert.Equal(t, "o1", p.UID)
	assert.Equal(t, session.RoleArena, p.Role)
	assert.Equal(t, "a1", p.ArenaID)
}

func TestUnknownAPIPathIsJSON404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/nada", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = env.do(t, http.MethodGet, "/login?callbackUrl=%2Fdashboard", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[pageDescriptor](t, rec)
	assert.Equal(t, "login", page.Page)
	assert.Equal(t, "/dashboard", page.CallbackURL)
}
