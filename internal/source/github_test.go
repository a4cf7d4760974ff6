package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgram = contract.Program{Key: "w3f_grants", Owner: "w3f", Repo: "Grants-Program"}

func newTestSource(baseURL, token string) *GitHubSource {
	cfg := &contract.Config{
		APIBaseURL:  baseURL,
		GitHubToken: token,
		Workers:     2,
	}
	return NewGitHubSource(cfg)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchProgramEnrichesRecords(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/repos/w3f/Grants-Program/pulls", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(t, w, []any{})
			return
		}
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		writeJSON(t, w, []any{
			map[string]any{"number": 7, "title": "Indexer grant", "state": "open"},
		})
	})

	mux.HandleFunc("/repos/w3f/Grants-Program/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"number":    7,
			"commits":   3,
			"additions": 120,
			"deletions": 40,
		})
	})

	mux.HandleFunc("/repos/w3f/Grants-Program/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{
			map[string]any{"body": "second", "created_at": "2024-03-02T00:00:00Z"},
			map[string]any{"body": "first", "created_at": "2024-03-01T00:00:00Z"},
		})
	})

	mux.HandleFunc("/repos/w3f/Grants-Program/pulls/7/reviews", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{
			map[string]any{"user": map[string]any{"login": "bob"}, "state": "APPROVED"},
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := newTestSource(srv.URL, "")
	pulls, err := s.FetchProgram(context.Background(), testProgram)
	require.NoError(t, err)
	require.Len(t, pulls, 1)

	raw := pulls[0]
	assert.Equal(t, "Indexer grant", raw.Get("title"))
	assert.EqualValues(t, 3, raw.Get("commits"), "detail payload merged into the listing record")
	assert.EqualValues(t, 120, raw.Get("additions"))

	comments := raw.GetSlice("comments")
	require.Len(t, comments, 2)
	first, _ := comments[0].(map[string]any)
	assert.Equal(t, "first", first["body"], "comments come back oldest first")

	reviews := raw.GetSlice("reviews")
	require.Len(t, reviews, 1)
}

func TestFetchProgramPaginates(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/repos/w3f/Grants-Program/pulls", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		assert.Equal(t, strconv.Itoa(perPage), r.URL.Query().Get("per_page"))

		switch page {
		case 1:
			batch := make([]any, perPage)
			for i := range batch {
				batch[i] = map[string]any{"number": i + 1}
			}
			writeJSON(t, w, batch)
		case 2:
			writeJSON(t, w, []any{map[string]any{"number": perPage + 1}})
		default:
			t.Errorf("unexpected page %d requested after a short page", page)
		}
	})

	// Enrichment endpoints return empty payloads; pagination is the subject.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := newTestSource(srv.URL, "")
	s.workers = 4
	pulls, err := s.FetchProgram(context.Background(), testProgram)
	require.NoError(t, err)
	assert.Len(t, pulls, perPage+1)
}

func TestGetJSONSendsHeaders(t *testing.T) {
	var seen http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		writeJSON(t, w, map[string]any{})
	}))
	defer srv.Close()

	s := newTestSource(srv.URL, "secret-token")
	var out map[string]any
	require.NoError(t, s.getJSON(context.Background(), srv.URL+"/anything", &out))

	assert.Equal(t, "application/vnd.github+json", seen.Get("Accept"))
	assert.Equal(t, "2022-11-28", seen.Get("X-GitHub-Api-Version"))
	assert.Equal(t, "Bearer secret-token", seen.Get("Authorization"))
}

func TestGetJSONOmitsAuthWithoutToken(t *testing.T) {
	var seen http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		writeJSON(t, w, map[string]any{})
	}))
	defer srv.Close()

	s := newTestSource(srv.URL, "")
	var out map[string]any
	require.NoError(t, s.getJSON(context.Background(), srv.URL+"/anything", &out))
	assert.Empty(t, seen.Get("Authorization"))
}

func TestGetJSONRateLimitError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		errHas string
	}{
		{name: "forbidden reads as rate limit", status: http.StatusForbidden, errHas: "rate limited"},
		{name: "too many requests reads as rate limit", status: http.StatusTooManyRequests, errHas: "rate limited"},
		{name: "not found is a plain status error", status: http.StatusNotFound, errHas: "unexpected HTTP status 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			s := newTestSource(srv.URL, "")
			var out map[string]any
			err := s.getJSON(context.Background(), srv.URL+"/x", &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errHas)
		})
	}
}

func TestFetchProgramListFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestSource(srv.URL, "")
	_, err := s.FetchProgram(context.Background(), testProgram)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list pulls for w3f/Grants-Program")
}

func TestFetchProgramToleratesEnrichmentFailures(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/repos/w3f/Grants-Program/pulls", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(t, w, []any{})
			return
		}
		writeJSON(t, w, []any{map[string]any{"number": 3, "title": "lonely"}})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := newTestSource(srv.URL, "")
	pulls, err := s.FetchProgram(context.Background(), testProgram)
	require.NoError(t, err, "enrichment failures degrade to warnings")
	require.Len(t, pulls, 1)
	assert.Equal(t, "lonely", pulls[0].Get("title"))
	assert.Nil(t, pulls[0].Get("comments"))
}

func TestSortByCreated(t *testing.T) {
	entries := []any{
		map[string]any{"body": "c", "created_at": "2024-03-03T00:00:00Z"},
		map[string]any{"body": "a", "created_at": "2024-03-01T00:00:00Z"},
		map[string]any{"body": "b", "created_at": "2024-03-02T00:00:00Z"},
	}

	sortByCreated(entries)

	bodies := make([]string, len(entries))
	for i, e := range entries {
		m, _ := e.(map[string]any)
		bodies[i] = fmt.Sprint(m["body"])
	}
	assert.Equal(t, []string{"a", "b", "c"}, bodies)
}

func TestSortByCreatedToleratesMalformedEntries(t *testing.T) {
	entries := []any{
		"not-an-object",
		map[string]any{"body": "undated"},
		map[string]any{"body": "dated", "created_at": "2024-03-01T00:00:00Z"},
	}

	assert.NotPanics(t, func() { sortByCreated(entries) })
	assert.Len(t, entries, 3)
}
