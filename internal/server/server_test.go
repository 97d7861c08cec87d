package server

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PackBattle_Go/internal/battle"
	"github.com/osse101/PackBattle_Go/internal/catalog"
	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/sse"
)

const testAPIKey = "test-key"

// fakeBattles implements only what the routing tests call
type fakeBattles struct {
	battle.Service
	startCaller uuid.UUID
}

func (f *fakeBattles) StartBattle(_ context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error) {
	f.startCaller = callerID
	return &domain.Battle{ID: battleID, Status: domain.BattleStatusFinished}, nil
}

func (f *fakeBattles) ListBattles(context.Context, domain.BattleStatus, int) ([]domain.Battle, error) {
	return []domain.Battle{}, nil
}

type fakeCatalog struct {
	catalog.Service
}

func (fakeCatalog) ListBoxes(context.Context) ([]domain.Box, error) { return nil, nil }

type fakePool struct{}

func (fakePool) Ping(context.Context) error { return nil }
func (fakePool) Close()                     {}

func newTestRouter(b *fakeBattles) http.Handler {
	return NewRouter(Options{
		APIKey:         testAPIKey,
		DBPool:         fakePool{},
		BattleService:  b,
		CatalogService: fakeCatalog{},
	})
}

func TestRouter_StartBattleCarriesCaller(t *testing.T) {
	battles := &fakeBattles{}
	r := newTestRouter(battles)
	caller := uuid.New()
	battleID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/battles/"+battleID.String()+"/start", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	req.Header.Set(HeaderUserID, caller.String())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, caller, battles.startCaller)
	assert.Contains(t, rec.Body.String(), battleID.String())
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(&fakeBattles{})

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"list battles", http.MethodGet, "/api/v1/battles", testAPIKey, http.StatusOK},
		{"list boxes", http.MethodGet, "/api/v1/boxes", testAPIKey, http.StatusOK},
		{"api needs key", http.MethodGet, "/api/v1/battles", "", http.StatusUnauthorized},
		{"start needs caller", http.MethodPost, "/api/v1/battles/" + uuid.NewString() + "/start", testAPIKey, http.StatusUnauthorized},
		{"healthz is public", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz is public", http.MethodGet, "/readyz", "", http.StatusOK},
		{"metrics is public", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nothing", testAPIKey, http.StatusNotFound},
		{"wrong method", http.MethodPut, "/api/v1/battles", testAPIKey, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_EventStreamFlushesThroughMiddleware(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(NewRouter(Options{
		APIKey:         testAPIKey,
		DBPool:         fakePool{},
		BattleService:  &fakeBattles{},
		CatalogService: fakeCatalog{},
		EventHub:       hub,
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "id: "), "first frame arrives before the stream ends")
}

func TestRouter_EventStreamDisabledWithoutHub(t *testing.T) {
	r := newTestRouter(&fakeBattles{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/battles", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")

	loggingMiddleware(okHandler()).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "TestAgent")
	assert.Contains(t, out, RedactedValue)
}

func TestLoggingMiddleware_SkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	rec := httptest.NewRecorder()
	loggingMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Empty(t, buf.String())
	assert.Empty(t, rec.Header().Get(HeaderRequestID))
}
