package conformance_test

import (
	"fmt"
	"net/http"
	"testing"
)

// seedCounts are the sizes of the built-in catalog.
var seedCounts = map[string]int{
	"productions": 4,
	"members":     5,
	"awards":      4,
	"products":    3,
}

func TestSeeding_ReseedInsertsNothing(t *testing.T) {
	resetServer(t)

	resp := doRequestAs(t, http.MethodPost, "/_admin/seed", adminToken, nil)
	mustStatus(t, resp, http.StatusOK)

	report := readJSON(t, resp)
	for entity := range seedCounts {
		section := assertIsObject(t, report, entity)
		assertNumberField(t, section, "inserted", 0)
	}

	// Row counts are unchanged.
	for entity, want := range seedCounts {
		results := listResults(t, "/api/v1/"+entity)
		if len(results) != want {
			t.Errorf("%s: expected %d rows after reseed, got %d", entity, want, len(results))
		}
	}
}

func TestSeeding_ReseedPreservesIDs(t *testing.T) {
	resetServer(t)

	before := listResults(t, "/api/v1/productions?season=2013-2014")
	if len(before) != 1 {
		t.Fatalf("expected 1 production in 2013-2014, got %d", len(before))
	}
	id := assertIsString(t, toObject(t, before[0]), "id")

	resp := doRequestAs(t, http.MethodPost, "/_admin/seed", adminToken, nil)
	mustStatus(t, resp, http.StatusOK)
	_ = readJSON(t, resp)

	after := listResults(t, "/api/v1/productions?season=2013-2014")
	if len(after) != 1 {
		t.Fatalf("expected 1 production in 2013-2014 after reseed, got %d", len(after))
	}
	assertStringField(t, toObject(t, after[0]), "id", id)
}

func TestSeeding_ReseedRestoresCatalogValues(t *testing.T) {
	resetServer(t)

	// Hand-edit the recipient of the seeded 2015 win, then reseed. The
	// catalog is the source of truth, so the edit is rolled back in place.
	results := listResults(t, "/api/v1/awards?year=2015&type=WINNER")
	if len(results) != 1 {
		t.Fatalf("expected 1 winner in 2015, got %d", len(results))
	}
	award := toObject(t, results[0])
	id := assertIsString(t, award, "id")
	original := assertIsString(t, award, "recipient")

	resp := doRequest(t, http.MethodPatch, fmt.Sprintf("/api/v1/awards/%s", id),
		map[string]any{"recipient": "Hand Edited"})
	mustStatus(t, resp, http.StatusOK)
	_ = readJSON(t, resp)

	resp = doRequestAs(t, http.MethodPost, "/_admin/seed", adminToken, nil)
	mustStatus(t, resp, http.StatusOK)
	_ = readJSON(t, resp)

	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/awards/%s", id), nil)
	mustStatus(t, resp, http.StatusOK)
	restored := readJSON(t, resp)
	assertStringField(t, restored, "recipient", original)

	if all := listResults(t, "/api/v1/awards"); len(all) != seedCounts["awards"] {
		t.Fatalf("expected %d awards after reseed, got %d", seedCounts["awards"], len(all))
	}
}

func TestSeeding_ReseedKeepsManualRecords(t *testing.T) {
	resetServer(t)

	created := createProduction(t, map[string]any{"title": "Side Project", "season": "2020-2021"})
	id := assertIsString(t, created, "id")

	resp := doRequestAs(t, http.MethodPost, "/_admin/seed", adminToken, nil)
	mustStatus(t, resp, http.StatusOK)
	_ = readJSON(t, resp)

	// Seeding reconciles the catalog; it does not prune records the catalog
	// never mentions.
	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/productions/%s", id), nil)
	mustStatus(t, resp, http.StatusOK)
}

func TestSeeding_ResetRestoresDefaults(t *testing.T) {
	resetServer(t)

	createProduction(t, map[string]any{"title": "Extra Show", "season": "2021-2022"})

	resp := doRequestAs(t, http.MethodPost, "/_admin/reset", adminToken, nil)
	mustStatus(t, resp, http.StatusOK)

	report := readJSON(t, resp)
	for entity, want := range seedCounts {
		section := assertIsObject(t, report, entity)
		assertNumberField(t, section, "inserted", float64(want))
	}

	if results := listResults(t, "/api/v1/productions"); len(results) != seedCounts["productions"] {
		t.Fatalf("expected %d productions after reset, got %d", seedCounts["productions"], len(results))
	}
}
