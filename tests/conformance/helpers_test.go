package conformance_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// doRequestAs makes an HTTP request with the given bearer token. An empty
// token sends no Authorization header, which the server treats as an
// anonymous viewer. The caller is responsible for closing the response body.
func doRequestAs(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, serverURL+path, bodyReader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// doRequest makes an HTTP request as an editor, which is enough for
// everything except deletes and admin endpoints.
func doRequest(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return doRequestAs(t, method, path, editorToken, body)
}

// readJSON consumes and closes the response body, decoded as a JSON object.
func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(b, &result); err != nil {
		t.Fatalf("unmarshal response (status %d): body=%s err=%v", resp.StatusCode, string(b), err)
	}
	return result
}

// mustStatus fails the test unless the response carries the expected status
// code, dumping the body for diagnosis.
func mustStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d; body=%s", expected, resp.StatusCode, string(b))
	}
}

// resetServer calls POST /_admin/reset to return the server to its seeded state.
func resetServer(t *testing.T) {
	t.Helper()
	resp := doRequestAs(t, http.MethodPost, "/_admin/reset", adminToken, nil)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("reset server failed: status=%d body=%s", resp.StatusCode, string(b))
	}
}

// fieldAs pulls key out of m and asserts its dynamic type. Failures are
// reported on t and signalled through the second return.
func fieldAs[T any](t *testing.T, m map[string]any, key string) (T, bool) {
	t.Helper()
	var zero T
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present, got keys: %v", key, mapKeys(m))
		return zero, false
	}
	tv, ok := v.(T)
	if !ok {
		t.Errorf("field %q: got %T, want %T", key, v, zero)
		return zero, false
	}
	return tv, true
}

// assertAPIError validates the response matches the standard error envelope.
func assertAPIError(t *testing.T, body map[string]any, expectedCategory string) {
	t.Helper()
	assertStringField(t, body, "status", "error")
	assertFieldPresent(t, body, "message")
	assertFieldPresent(t, body, "correlationId")
	if expectedCategory != "" {
		assertStringField(t, body, "category", expectedCategory)
	}
}

// assertFieldPresent checks only that the key exists, whatever its type.
func assertFieldPresent(t *testing.T, m map[string]any, key string) {
	t.Helper()
	if _, ok := m[key]; !ok {
		t.Errorf("expected field %q to be present, got keys: %v", key, mapKeys(m))
	}
}

func assertStringField(t *testing.T, m map[string]any, key, expected string) {
	t.Helper()
	if s, ok := fieldAs[string](t, m, key); ok && s != expected {
		t.Errorf("field %q: expected %q, got %q", key, expected, s)
	}
}

func assertNumberField(t *testing.T, m map[string]any, key string, expected float64) {
	t.Helper()
	if n, ok := fieldAs[float64](t, m, key); ok && n != expected {
		t.Errorf("field %q: expected %v, got %v", key, expected, n)
	}
}

func assertIsString(t *testing.T, m map[string]any, key string) string {
	t.Helper()
	s, _ := fieldAs[string](t, m, key)
	return s
}

func assertIsArray(t *testing.T, m map[string]any, key string) []any {
	t.Helper()
	a, _ := fieldAs[[]any](t, m, key)
	return a
}

func assertIsObject(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	o, _ := fieldAs[map[string]any](t, m, key)
	return o
}

// assertISOTimestamp checks that value parses as an RFC 3339 timestamp.
// Go's parser accepts the fractional seconds the server emits without a
// separate layout.
func assertISOTimestamp(t *testing.T, value string) {
	t.Helper()
	if value == "" {
		t.Error("expected non-empty ISO timestamp")
		return
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		t.Errorf("value %q is not a valid ISO 8601 timestamp: %v", value, err)
	}
}

// toObject converts a slice element to a map.
func toObject(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	return m
}

// listResults fetches a collection endpoint and returns its results array.
func listResults(t *testing.T, path string) []any {
	t.Helper()
	resp := doRequest(t, http.MethodGet, path, nil)
	mustStatus(t, resp, http.StatusOK)
	return assertIsArray(t, readJSON(t, resp), "results")
}

// createResource POSTs body to path, requires a 201, and returns the decoded
// response.
func createResource(t *testing.T, path string, body map[string]any) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, path, body)
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		t.Fatalf("create %s: status=%d body=%s", path, resp.StatusCode, string(b))
	}
	return readJSON(t, resp)
}

func createProduction(t *testing.T, p map[string]any) map[string]any {
	t.Helper()
	return createResource(t, "/api/v1/productions", p)
}

func createMember(t *testing.T, m map[string]any) map[string]any {
	t.Helper()
	return createResource(t, "/api/v1/members", m)
}

// deleteResource deletes a resource as admin and asserts 204.
func deleteResource(t *testing.T, path string) {
	t.Helper()
	resp := doRequestAs(t, http.MethodDelete, path, adminToken, nil)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("delete %s: status=%d body=%s", path, resp.StatusCode, string(b))
	}
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
