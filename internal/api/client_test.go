package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackconnect/cli/internal/credentials"
	"github.com/slackconnect/cli/internal/logging"
	"github.com/slackconnect/cli/internal/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeEnvelope(w http.ResponseWriter, status int, env models.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeData(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)
	writeEnvelope(w, http.StatusOK, models.Envelope{Success: true, Data: raw})
}

// newTestClient spins up a fake backend and returns a client pointed at it
// together with its credential repository.
func newTestClient(t *testing.T, r *mux.Router) (*Client, *credentials.MemoryRepository) {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	creds := credentials.NewMemoryRepository()
	c := New(srv.URL, 5*time.Second, creds, testLogger())
	return c, creds
}

func TestSend_AttachesBearerToken(t *testing.T) {
	var gotAuth string

	r := mux.NewRouter()
	r.HandleFunc("/auth/me", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		writeData(w, models.User{ID: "u1", SlackUserID: "U123", TeamID: "T1", TokenValid: true})
	}).Methods(http.MethodGet)

	c, _ := newTestClient(t, r)
	ctx := context.Background()
	require.NoError(t, c.SetCredential(ctx, "tok-abc"))

	user, err := c.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.TokenValid)
}

func TestSend_NoCredential_NoAuthorizationHeader(t *testing.T) {
	var gotAuth string

	r := mux.NewRouter()
	r.HandleFunc("/auth/slack", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		writeData(w, models.AuthURL{AuthURL: "https://slack.com/oauth", State: "s1"})
	}).Methods(http.MethodGet)

	c, _ := newTestClient(t, r)

	out, err := c.GetAuthURL(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "https://slack.com/oauth", out.AuthURL)
}

func TestSend_ApplicationError_Normalized(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/messages/send", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, models.Envelope{Success: false, Error: "message is required"})
	}).Methods(http.MethodPost)

	c, _ := newTestClient(t, r)

	err := c.SendMessage(context.Background(), "C1", "")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "message is required", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.RawBody)
}

func TestSend_SuccessFalseWithOKStatus_IsError(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/messages/send", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusOK, models.Envelope{Success: false, Message: "rejected"})
	}).Methods(http.MethodPost)

	c, _ := newTestClient(t, r)

	err := c.SendMessage(context.Background(), "C1", "hi")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "rejected", apiErr.Message)
}

func TestSend_TransportFailure_WrapsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second, credentials.NewMemoryRepository(), testLogger())

	err := c.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
}

func TestSend_Unauthorized_ClearsCredentialAndFiresHook(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/messages/scheduled", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, models.Envelope{Success: false, Error: "token expired"})
	}).Methods(http.MethodGet)

	c, creds := newTestClient(t, r)
	ctx := context.Background()
	require.NoError(t, c.SetCredential(ctx, "stale"))

	hookFired := 0
	c.OnSessionExpired(func() { hookFired++ })

	_, err := c.GetScheduledMessages(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)

	assert.Equal(t, 1, hookFired)
	assert.False(t, c.HasCredential())
	tok, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestScheduleMessage_DecodesCreatedRecord(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/messages/schedule", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "C1", body["channel_id"])
		assert.Equal(t, "general", body["channel_name"])

		writeData(w, models.ScheduledMessage{
			ID:           "m1",
			ChannelID:    "C1",
			ChannelName:  "general",
			Message:      body["message"].(string),
			ScheduledFor: int64(body["scheduled_for"].(float64)),
			Status:       models.StatusPending,
		})
	}).Methods(http.MethodPost)

	c, _ := newTestClient(t, r)

	msg, err := c.ScheduleMessage(context.Background(), "C1", "general", "Ping", 1_700_000_000)
	require.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, models.StatusPending, msg.Status)
	assert.EqualValues(t, 1_700_000_000, msg.ScheduledFor)
}

func TestUpdateScheduledMessage_OmitsUnsetFields(t *testing.T) {
	var gotBody map[string]any

	r := mux.NewRouter()
	r.HandleFunc("/messages/scheduled/{id}", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))
		writeData(w, models.ScheduledMessage{ID: mux.Vars(req)["id"], Message: "new body", Status: models.StatusPending})
	}).Methods(http.MethodPut)

	c, _ := newTestClient(t, r)

	body := "new body"
	msg, err := c.UpdateScheduledMessage(context.Background(), "m7", &body, nil)
	require.NoError(t, err)
	assert.Equal(t, "m7", msg.ID)

	assert.Contains(t, gotBody, "message")
	assert.NotContains(t, gotBody, "scheduled_for")
}

func TestWebhookEndpoints_RoundTrip(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/messages/webhook/send", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusOK, models.Envelope{Success: true, Message: "sent"})
	}).Methods(http.MethodPost)
	r.HandleFunc("/messages/webhook/scheduled", func(w http.ResponseWriter, req *http.Request) {
		writeData(w, []models.ScheduledMessage{{ID: "w1", Status: models.StatusPending}})
	}).Methods(http.MethodGet)
	r.HandleFunc("/messages/webhook/scheduled/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusOK, models.Envelope{Success: true})
	}).Methods(http.MethodDelete)
	r.HandleFunc("/test/webhook", func(w http.ResponseWriter, req *http.Request) {
		var body testWebhookRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "https://hooks.slack.com/services/x", body.WebhookURL)
		writeEnvelope(w, http.StatusOK, models.Envelope{Success: true})
	}).Methods(http.MethodPost)

	c, _ := newTestClient(t, r)
	ctx := context.Background()

	require.NoError(t, c.SendWebhookMessage(ctx, "hello"))

	msgs, err := c.GetWebhookScheduledMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "w1", msgs[0].ID)

	require.NoError(t, c.CancelWebhookScheduledMessage(ctx, "w1"))
	require.NoError(t, c.TestWebhook(ctx, "https://hooks.slack.com/services/x", "ping"))
}

func TestError_Format(t *testing.T) {
	e := &Error{Message: "boom", StatusCode: 500}
	assert.Equal(t, "boom (status 500)", e.Error())

	e = &Error{Message: "connection refused"}
	assert.Equal(t, "connection refused", e.Error())
}

func TestFailureMessage_Fallbacks(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		status   int
		expected string
	}{
		{"error field wins", `{"success":false,"error":"bad input","message":"ignored"}`, 400, "bad input"},
		{"message field next", `{"success":false,"message":"try later"}`, 503, "try later"},
		{"status text fallback", `not json`, 502, "Bad Gateway"},
		{"generic fallback", `not json`, 0, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failureMessage([]byte(tt.raw), tt.status))
		})
	}
}

func TestLoadCredential_PrimesCache(t *testing.T) {
	creds := credentials.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, creds.Set(ctx, "persisted"))

	c := New("http://localhost:0", time.Second, creds, testLogger())
	assert.False(t, c.HasCredential())

	require.NoError(t, c.LoadCredential(ctx))
	assert.True(t, c.HasCredential())
}
