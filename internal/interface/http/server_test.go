package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seal-hub/seal-progress-hub/internal/application/command"
	"github.com/seal-hub/seal-progress-hub/internal/application/query"
	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/notification"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/infrastructure/persistence/memory"
	httpiface "github.com/seal-hub/seal-progress-hub/internal/interface/http"
)

const (
	sealGoID = "11111111-1111-4111-8111-111111111111"
	objHello = "aaaaaaa1-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	objVars  = "bbbbbbb2-bbbb-4bbb-bbbb-bbbbbbbbbbbb"
)

// newTestServer wires the full stack over in-memory stores.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	catalogRepo := memory.NewCatalogRepository(
		[]catalog.Seal{
			{ID: shared.SealID(sealGoID), Slug: "go-basics", Name: "Go Basics", CreatedAt: base},
		},
		[]catalog.Objective{
			{ID: shared.ObjectiveID(objHello), SealID: shared.SealID(sealGoID), Title: "Hello", SortOrder: 1, CreatedAt: base},
			{ID: shared.ObjectiveID(objVars), SealID: shared.SealID(sealGoID), Title: "Variables", SortOrder: 2, CreatedAt: base},
		},
	)
	progressRepo := memory.NewProgressRepository()
	profileRepo := memory.NewProfileRepository()
	sessions := memory.NewSessionStore()
	gate := notification.NewGate(memory.NewFlagStore(), false)

	server := httpiface.NewServer(httpiface.DefaultConfig(), httpiface.Dependencies{
		RegisterUser:       command.NewRegisterUserHandler(profileRepo, sessions),
		LoginUser:          command.NewLoginUserHandler(profileRepo, sessions),
		CompleteObjective:  command.NewCompleteObjectiveHandler(catalogRepo, progressRepo, nil),
		ConsumeEarnedNotif: command.NewConsumeEarnedNotificationHandler(catalogRepo, progressRepo, gate),
		ListSeals:          query.NewListSealsHandler(catalogRepo, progressRepo),
		GetSeal:            query.NewGetSealHandler(catalogRepo, progressRepo),
		GetUserStats:       query.NewGetUserStatsHandler(catalogRepo, progressRepo, profileRepo),
		GetLeaderboard:     query.NewGetLeaderboardHandler(catalogRepo, progressRepo, profileRepo, nil),
		Sessions:           sessions,
	})

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any, out any) *nethttp.Response {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := nethttp.NewRequestWithContext(context.Background(), method, ts.URL+path, &payload)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func signup(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	var result struct {
		Token string `json:"token"`
	}
	resp := doJSON(t, ts, nethttp.MethodPost, "/api/signup", "", map[string]string{
		"username": username,
		"password": "secret-pass",
	}, &result)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestAPI_RequiresAuthentication(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, ts, nethttp.MethodGet, "/api/seals", "", nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, ts, nethttp.MethodGet, "/api/seals", "bogus-token", nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CompleteObjectiveFlow(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "alice")

	var completed struct {
		AlreadyCompleted bool      `json:"already_completed"`
		CompletedAt      time.Time `json:"completed_at"`
		Earned           bool      `json:"earned"`
		Done             int       `json:"done"`
	}
	path := fmt.Sprintf("/api/objectives/%s/complete", objHello)

	resp := doJSON(t, ts, nethttp.MethodPost, path, token, nil, &completed)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.False(t, completed.AlreadyCompleted)
	assert.False(t, completed.Earned)
	first := completed.CompletedAt

	// Retry: 200 with the original timestamp.
	resp = doJSON(t, ts, nethttp.MethodPost, path, token, nil, &completed)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.True(t, completed.AlreadyCompleted)
	assert.True(t, completed.CompletedAt.Equal(first))

	resp = doJSON(t, ts, nethttp.MethodPost, fmt.Sprintf("/api/objectives/%s/complete", objVars), token, nil, &completed)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.True(t, completed.Earned)
	assert.Equal(t, 2, completed.Done)
}

func TestAPI_DowngradeRequestIsRejected(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "alice")
	path := fmt.Sprintf("/api/objectives/%s/complete", objHello)

	// An explicit "completed": true body behaves like no body at all.
	resp := doJSON(t, ts, nethttp.MethodPost, path, token, map[string]bool{"completed": true}, nil)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	resp = doJSON(t, ts, nethttp.MethodPost, path, token, map[string]bool{"completed": false}, &body)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	assert.Equal(t, "invalid_transition", body.Error)

	// The completed record is untouched.
	var seal struct {
		Done int `json:"done"`
	}
	resp = doJSON(t, ts, nethttp.MethodGet, "/api/seals/go-basics", token, nil, &seal)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, seal.Done)
}

func TestAPI_Health(t *testing.T) {
	ts := newTestServer(t)

	var health struct {
		Status  string `json:"status"`
		Running bool   `json:"running"`
		Uptime  string `json:"uptime"`
	}
	resp := doJSON(t, ts, nethttp.MethodGet, "/healthz", "", nil, &health)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health.Status)
	// The running flag tracks Start/Shutdown; the test harness serves the
	// handler directly, so it reports false here.
	assert.False(t, health.Running)
	assert.NotEmpty(t, health.Uptime)
}

func TestAPI_UnknownObjectiveIs404(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "alice")

	resp := doJSON(t, ts, nethttp.MethodPost, "/api/objectives/ffffffff-ffff-4fff-8fff-ffffffffffff/complete", token, nil, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}

func TestAPI_NotificationFiresOnce(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "alice")

	for _, id := range []string{objHello, objVars} {
		resp := doJSON(t, ts, nethttp.MethodPost, fmt.Sprintf("/api/objectives/%s/complete", id), token, nil, nil)
		require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	}

	var result struct {
		Earned bool `json:"earned"`
		Notify bool `json:"notify"`
	}
	resp := doJSON(t, ts, nethttp.MethodPost, "/api/seals/go-basics/notification", token, nil, &result)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.True(t, result.Earned)
	assert.True(t, result.Notify)

	resp = doJSON(t, ts, nethttp.MethodPost, "/api/seals/go-basics/notification", token, nil, &result)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.True(t, result.Earned)
	assert.False(t, result.Notify)
}

func TestAPI_LeaderboardAndStats(t *testing.T) {
	ts := newTestServer(t)
	alice := signup(t, ts, "alice")
	_ = signup(t, ts, "bob")

	resp := doJSON(t, ts, nethttp.MethodPost, fmt.Sprintf("/api/objectives/%s/complete", objHello), alice, nil, nil)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	var board struct {
		Rows []struct {
			Username            string `json:"username"`
			Rank                int    `json:"rank"`
			ObjectivesCompleted int    `json:"objectives_completed"`
		} `json:"rows"`
		TotalCount int `json:"total_count"`
	}
	resp = doJSON(t, ts, nethttp.MethodGet, "/api/leaderboard", alice, nil, &board)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Len(t, board.Rows, 2)
	assert.Equal(t, "alice", board.Rows[0].Username)
	assert.Equal(t, 1, board.Rows[0].ObjectivesCompleted)
	assert.Equal(t, "bob", board.Rows[1].Username)

	var stats struct {
		Username string `json:"username"`
		Rank     int    `json:"rank"`
	}
	resp = doJSON(t, ts, nethttp.MethodGet, "/api/me/stats", alice, nil, &stats)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, 1, stats.Rank)
}

func TestAPI_Logout(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "alice")

	resp := doJSON(t, ts, nethttp.MethodPost, "/api/logout", token, nil, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = doJSON(t, ts, nethttp.MethodGet, "/api/seals", token, nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_SignupValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, ts, nethttp.MethodPost, "/api/signup", "", map[string]string{
		"username": "a",
		"password": "secret-pass",
	}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	// Duplicate username conflicts.
	_ = signup(t, ts, "alice")
	resp = doJSON(t, ts, nethttp.MethodPost, "/api/signup", "", map[string]string{
		"username": "alice",
		"password": "secret-pass",
	}, nil)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
}
