package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/api/admin"
	"github.com/stagedoor/greenroom/internal/seed"
	"github.com/stagedoor/greenroom/internal/testhelpers"
)

func setupServer(t *testing.T, authToken, adminToken string) (*httptest.Server, func(query string) int) {
	t.Helper()
	db, d := testhelpers.NewMigratedDB(t)
	ctx := context.Background()

	if _, err := seed.Run(ctx, db, d, seed.Builtin(), nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mux := http.NewServeMux()
	admin.RegisterRoutes(mux, db, d, seed.Builtin(), nil)

	handler := api.Chain(mux, api.RequestID(), api.Auth(authToken, adminToken))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	count := func(query string) int {
		var n int
		if err := db.QueryRow(query).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		return n
	}
	return srv, count
}

func post(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestSeedEndpointReturnsReport(t *testing.T) {
	srv, _ := setupServer(t, "", "")

	resp := post(t, srv.URL+"/_admin/seed", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var report seed.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The database is already seeded, so a second run inserts nothing.
	if report.Productions.Inserted != 0 || report.Awards.Inserted != 0 {
		t.Errorf("expected no inserts on reseed, got %+v", report)
	}
	if report.Awards.Updated != len(seed.Builtin().Awards) {
		t.Errorf("expected %d awards refreshed, got %d", len(seed.Builtin().Awards), report.Awards.Updated)
	}
}

func TestResetEndpointRestoresCatalog(t *testing.T) {
	srv, count := setupServer(t, "", "")

	resp := post(t, srv.URL+"/_admin/reset", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var report seed.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Productions.Inserted != len(seed.Builtin().Productions) {
		t.Errorf("expected %d productions re-inserted, got %d", len(seed.Builtin().Productions), report.Productions.Inserted)
	}

	if got := count(`SELECT COUNT(*) FROM awards`); got != len(seed.Builtin().Awards) {
		t.Errorf("expected %d awards after reset, got %d", len(seed.Builtin().Awards), got)
	}
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	srv, _ := setupServer(t, "editor-token", "admin-token")

	resp := post(t, srv.URL+"/_admin/seed", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", resp.StatusCode)
	}

	resp = post(t, srv.URL+"/_admin/seed", "editor-token")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for editor, got %d", resp.StatusCode)
	}

	resp = post(t, srv.URL+"/_admin/reset", "admin-token")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
}
