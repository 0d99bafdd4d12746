package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON writes v to w as a JSON body with the given status code. Encoding
// failures are logged; the status line has already been sent by then.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// CollectionResponse is the envelope every list endpoint returns: a results
// array plus a paging block when more rows remain.
type CollectionResponse struct {
	Results []any   `json:"results"`
	Paging  *Paging `json:"paging,omitempty"`
}

// Paging wraps the cursor for the next page.
type Paging struct {
	Next *PagingNext `json:"next,omitempty"`
}

// PagingNext carries the cursor a client passes back as the after parameter.
type PagingNext struct {
	After string `json:"after"`
}

// Collection assembles the list envelope for one page of rows. The cursor is
// attached only when hasMore is set.
func Collection[T any](rows []T, hasMore bool, after string) CollectionResponse {
	results := make([]any, len(rows))
	for i, r := range rows {
		results[i] = r
	}
	resp := CollectionResponse{Results: results}
	if hasMore {
		resp.Paging = &Paging{Next: &PagingNext{After: after}}
	}
	return resp
}
