package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackconnect/cli/internal/config"
	"github.com/slackconnect/cli/internal/logging"
	"github.com/slackconnect/cli/internal/models"
	"github.com/slackconnect/cli/internal/scheduled"
)

// fakeBackend is a minimal in-memory Slack Connect backend used for
// end-to-end tests of the wired App.
type fakeBackend struct {
	mu        sync.Mutex
	validTok  string
	messages  map[string]models.ScheduledMessage
	nextID    int
	forbid401 bool // when set, every authenticated call starts returning 401
}

func (b *fakeBackend) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/auth/me", b.requireAuth(b.handleMe)).Methods(http.MethodGet)
	r.HandleFunc("/messages/schedule", b.requireAuth(b.handleSchedule)).Methods(http.MethodPost)
	r.HandleFunc("/messages/scheduled", b.requireAuth(b.handleList)).Methods(http.MethodGet)
	r.HandleFunc("/messages/scheduled/{id}", b.requireAuth(b.handleCancel)).Methods(http.MethodDelete)
	r.HandleFunc("/auth/logout", b.requireAuth(b.handleLogout)).Methods(http.MethodPost)
	return r
}

func writeJSON(w http.ResponseWriter, status int, env models.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func (b *fakeBackend) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		expired := b.forbid401
		valid := "Bearer " + b.validTok
		b.mu.Unlock()

		if expired || req.Header.Get("Authorization") != valid {
			writeJSON(w, http.StatusUnauthorized, models.Envelope{Success: false, Error: "invalid token"})
			return
		}
		next(w, req)
	}
}

func (b *fakeBackend) handleMe(w http.ResponseWriter, req *http.Request) {
	raw, _ := json.Marshal(models.User{ID: "u1", SlackUserID: "U123", TeamID: "T1", TokenValid: true})
	writeJSON(w, http.StatusOK, models.Envelope{Success: true, Data: raw})
}

func (b *fakeBackend) handleSchedule(w http.ResponseWriter, req *http.Request) {
	var in struct {
		ChannelID    string `json:"channel_id"`
		ChannelName  string `json:"channel_name"`
		Message      string `json:"message"`
		ScheduledFor int64  `json:"scheduled_for"`
	}
	_ = json.NewDecoder(req.Body).Decode(&in)

	b.mu.Lock()
	b.nextID++
	m := models.ScheduledMessage{
		ID:           fmt.Sprintf("m%d", b.nextID),
		ChannelID:    in.ChannelID,
		ChannelName:  in.ChannelName,
		Message:      in.Message,
		ScheduledFor: in.ScheduledFor,
		Status:       models.StatusPending,
		CreatedAt:    time.Now().Unix(),
	}
	b.messages[m.ID] = m
	b.mu.Unlock()

	raw, _ := json.Marshal(m)
	writeJSON(w, http.StatusOK, models.Envelope{Success: true, Data: raw})
}

func (b *fakeBackend) handleList(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	out := make([]models.ScheduledMessage, 0, len(b.messages))
	for _, m := range b.messages {
		out = append(out, m)
	}
	b.mu.Unlock()

	raw, _ := json.Marshal(out)
	writeJSON(w, http.StatusOK, models.Envelope{Success: true, Data: raw})
}

func (b *fakeBackend) handleCancel(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	b.mu.Lock()
	_, ok := b.messages[id]
	delete(b.messages, id)
	b.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, models.Envelope{Success: false, Error: "message not found"})
		return
	}
	writeJSON(w, http.StatusOK, models.Envelope{Success: true})
}

func (b *fakeBackend) handleLogout(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, models.Envelope{Success: true})
}

func newTestApp(t *testing.T) (*App, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{validTok: "good-token", messages: map[string]models.ScheduledMessage{}}
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = srv.URL
	cfg.NoPersist = true
	cfg.TokenCheckInterval = 0

	app, err := NewApp(cfg, logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return app, backend
}

func destinationC1() scheduled.Destination {
	return scheduled.Destination{ID: "C1", Name: "general"}
}

func TestApp_LoginScheduleCancelFlow(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	app.session.Bootstrap(ctx)
	assert.False(t, app.isLoggedIn())

	require.NoError(t, app.session.Login(ctx, "good-token"))
	assert.True(t, app.isLoggedIn())

	// Schedule "Ping" for now+120s on C1.
	at := time.Now().Add(120 * time.Second)
	dest := destinationC1()
	require.NoError(t, app.channels.Create(ctx, dest, "Ping", &at))

	items, err := app.channels.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.StatusPending, items[0].Status)
	assert.Equal(t, "Ping", items[0].Message)
	assert.Equal(t, at.Unix(), items[0].ScheduledFor)

	require.NoError(t, app.channels.Cancel(ctx, items[0].ID))

	items, err = app.channels.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestApp_SessionExpiryDuringList_ForcesLogout(t *testing.T) {
	app, backend := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.session.Login(ctx, "good-token"))

	at := time.Now().Add(2 * time.Minute)
	require.NoError(t, app.channels.Create(ctx, destinationC1(), "Ping", &at))

	backend.mu.Lock()
	backend.forbid401 = true
	backend.mu.Unlock()

	_, err := app.channels.List(ctx)
	require.Error(t, err)

	assert.False(t, app.session.IsAuthenticated(), "401 must force the session down")
	assert.False(t, app.gateway.HasCredential(), "stored credential must be cleared")
}

func TestApp_LoginWithBadToken_Rethrows(t *testing.T) {
	app, _ := newTestApp(t)

	err := app.session.Login(context.Background(), "wrong")
	require.Error(t, err)
	assert.False(t, app.isLoggedIn())
	assert.False(t, app.gateway.HasCredential())
}
