package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
)

// setupTestServer starts an httptest server backed by a temp SQLite database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-api-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := New(
		service.NewAuthService(authenticator, tokens),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
		tokens,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func registerUser(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/register", "", map[string]string{
		"email":        email,
		"display_name": "Test User",
		"password":     "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestAPI_AuthFlow(t *testing.T) {
	ts := setupTestServer(t)

	token := registerUser(t, ts, "alice@example.com")
	assert.NotEmpty(t, token)

	// Duplicate registration conflicts.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/register", "", map[string]string{
		"email":        "alice@example.com",
		"display_name": "Alice Again",
		"password":     "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login with good and bad credentials.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_GroupsRequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/groups", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/groups", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ExpenseToBalancesFlow(t *testing.T) {
	ts := setupTestServer(t)
	token := registerUser(t, ts, "alice@example.com")

	// Create a group.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/groups", token, map[string]any{
		"name":    "Ski Trip",
		"members": []string{"alice", "bob", "carol"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var group struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &group)
	require.NotEmpty(t, group.ID)
	base := fmt.Sprintf("%s/api/v1/groups/%s", ts.URL, group.ID)

	// alice fronts 90: everyone owes 30, alice nets +60.
	resp = doJSON(t, http.MethodPost, base+"/expenses", token, map[string]any{
		"payer_id":    "alice",
		"description": "Cabin",
		"amount":      90,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// bob settles half his share.
	resp = doJSON(t, http.MethodPost, base+"/settlements", token, map[string]any{
		"from_member_id": "bob",
		"to_member_id":   "alice",
		"amount":         15,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/balances", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		TotalSpent float64 `json:"total_spent"`
		Balances   []struct {
			MemberID string  `json:"member_id"`
			Balance  float64 `json:"balance"`
		} `json:"balances"`
		Payments []struct {
			FromID string  `json:"from_id"`
			ToID   string  `json:"to_id"`
			Amount float64 `json:"amount"`
		} `json:"suggested_payments"`
	}
	decodeBody(t, resp, &report)

	assert.InDelta(t, 90, report.TotalSpent, 0.01)
	require.Len(t, report.Balances, 3)
	assert.Equal(t, "alice", report.Balances[0].MemberID)
	assert.InDelta(t, 45, report.Balances[0].Balance, 0.01)

	// carol owes 30, bob owes the remaining 15.
	require.Len(t, report.Payments, 2)
	assert.Equal(t, "carol", report.Payments[0].FromID)
	assert.Equal(t, "alice", report.Payments[0].ToID)
	assert.InDelta(t, 30, report.Payments[0].Amount, 0.01)
	assert.Equal(t, "bob", report.Payments[1].FromID)
	assert.InDelta(t, 15, report.Payments[1].Amount, 0.01)
}

func TestAPI_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)
	token := registerUser(t, ts, "alice@example.com")

	// Group without members is rejected by validation.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/groups", token, map[string]any{
		"name":    "Empty",
		"members": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Create a real group, then try a self-settlement.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/groups", token, map[string]any{
		"name":    "Flat",
		"members": []string{"alice", "bob"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var group struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &group)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/v1/groups/%s/settlements", ts.URL, group.ID), token, map[string]any{
		"from_member_id": "alice",
		"to_member_id":   "alice",
		"amount":         10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Expense with an off-roster payer is a semantic error, not a syntax one.
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/v1/groups/%s/expenses", ts.URL, group.ID), token, map[string]any{
		"payer_id": "mallory",
		"amount":   10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Unknown group is a 404.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/groups/nope/balances", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Healthz(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
