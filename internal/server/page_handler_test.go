package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/mizodict/internal/testutil"
	"github.com/at-ishikawa/mizodict/internal/view"
	"github.com/at-ishikawa/mizodict/internal/wotd"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTranslationService fakes a remote translation service whose translations always fail.
func newTranslationService(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/status" {
			_, _ = w.Write([]byte(`{"model_loaded": true, "api_key_configured": true}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Translation failed", "success": false}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestServer_Search(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		remote     bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "forward hit",
			query:      "?q=House",
			wantStatus: http.StatusOK,
			wantBody:   `{"card": {"kind": "dictionary", "query": "House", "title": "house", "entries": [{"word": "house", "definition": "in", "favorite": false}]}}`,
		},
		{
			name:       "reverse hit",
			query:      "?q=tui",
			wantStatus: http.StatusOK,
			wantBody:   `{"card": {"kind": "reverse", "query": "tui", "title": "English words for \"tui\"", "entries": [{"word": "water", "definition": "tui", "favorite": false}]}}`,
		},
		{
			name:       "not found",
			query:      "?q=zzz",
			wantStatus: http.StatusOK,
			wantBody:   `{"placeholder": {"kind": "not_found", "title": "No results", "message": "No entry found for \"zzz\". Try online mode for a translation."}}`,
		},
		{
			name:       "empty query",
			query:      "?q=%20",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "unknown mode",
			query:      "?q=house&mode=telepathy",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error": "unknown mode \"telepathy\", must be offline or online", "success": false}`,
		},
		{
			name:       "online without a connection",
			query:      "?q=chibai&mode=online",
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "online translation failure",
			query:      "?q=chibai&mode=online&direction=mizo-to-english",
			remote:     true,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var baseURL string
			if tt.remote {
				baseURL = newTranslationService(t).URL + "/api"
			}
			a := newTestApp(t, baseURL)
			if tt.remote {
				require.True(t, a.Checker.Probe(context.Background()))
			}
			handler := NewServer(a, nil, testLogger()).Handler()

			rec := doRequest(t, handler, http.MethodGet, "/api/search"+tt.query, "", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			switch tt.wantStatus {
			case http.StatusServiceUnavailable:
				assert.Contains(t, rec.Body.String(), `"kind":"server_offline"`)
			case http.StatusBadGateway:
				assert.Contains(t, rec.Body.String(), `"kind":"error"`)
				assert.Contains(t, rec.Body.String(), "Translation failed")
			}
		})
	}
}

func TestServer_Favorites(t *testing.T) {
	handler := NewServer(newTestApp(t, ""), nil, testLogger()).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/favorites", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doRequest(t, handler, http.MethodPost, "/api/favorites/toggle", `{"word": "house", "definition": "in"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorite": true, "favorites": [{"word": "house", "definition": "in", "favorite": true}]}`, rec.Body.String())

	rec = doRequest(t, handler, http.MethodGet, "/api/search?q=house", "", nil)
	assert.Contains(t, rec.Body.String(), `"favorite":true`)

	rec = doRequest(t, handler, http.MethodPost, "/api/favorites/toggle", `{"word": "house", "definition": "in"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorite": false, "favorites": []}`, rec.Body.String())

	rec = doRequest(t, handler, http.MethodPost, "/api/favorites/toggle", `{"definition": "in"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "No word provided", "success": false}`, rec.Body.String())

	rec = doRequest(t, handler, http.MethodPost, "/api/favorites/toggle", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_FormActions(t *testing.T) {
	a := newTestApp(t, "")
	handler := NewServer(a, nil, testLogger()).Handler()
	form := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Referer":      "http://localhost:5000/?q=house&tab=dictionary&mode=online",
	}

	rec := doRequest(t, handler, http.MethodPost, "/favorites/toggle", "word=house&definition=in", form)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?mode=online&tab=dictionary", rec.Header().Get("Location"))
	assert.True(t, a.Favorites.IsFavorite("house", "in"))

	// Following the redirect does not search again.
	rec = doRequest(t, handler, http.MethodGet, rec.Header().Get("Location"), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, a.Favorites.Recent())

	rec = doRequest(t, handler, http.MethodPost, "/favorites/toggle", "word=house&definition=in",
		map[string]string{"Content-Type": "application/x-www-form-urlencoded", "Referer": "http://localhost:5000/?q=house"})
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.False(t, a.Favorites.IsFavorite("house", "in"))

	rec = doRequest(t, handler, http.MethodPost, "/favorites/toggle", "definition=in", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	a.Favorites.AddRecent(context.Background(), "house")
	rec = doRequest(t, handler, http.MethodPost, "/recent/clear", "", map[string]string{"Referer": "http://other.example.com/page"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Empty(t, a.Favorites.Recent())
}

func TestServer_Recent(t *testing.T) {
	handler := NewServer(newTestApp(t, ""), nil, testLogger()).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/recent", "", nil)
	assert.JSONEq(t, `{"recent": []}`, rec.Body.String())

	for _, q := range []string{"house", "zzz", "dog"} {
		doRequest(t, handler, http.MethodGet, "/api/search?q="+q, "", nil)
	}
	rec = doRequest(t, handler, http.MethodGet, "/api/recent", "", nil)
	assert.JSONEq(t, `{"recent": ["dog", "zzz", "house"]}`, rec.Body.String())

	rec = doRequest(t, handler, http.MethodDelete, "/api/recent", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recent": []}`, rec.Body.String())

	rec = doRequest(t, handler, http.MethodGet, "/api/recent", "", nil)
	assert.JSONEq(t, `{"recent": []}`, rec.Body.String())
}

func TestServer_WordOfDay(t *testing.T) {
	handler := NewServer(newTestApp(t, ""), nil, testLogger()).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/wotd/history", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doRequest(t, handler, http.MethodGet, "/api/wotd/current", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/wotd", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got view.WordOfDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Today)
	assert.NotEmpty(t, got.Today.Word)
	assert.Len(t, got.History, 1)

	rec = doRequest(t, handler, http.MethodGet, "/api/wotd/history", "", nil)
	var history []wotd.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, got.Today.Word, history[0].Word)

	rec = doRequest(t, handler, http.MethodGet, "/api/wotd/current", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var current wotd.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, history[0], current)
}

func TestServer_StaticEndpoints(t *testing.T) {
	handler := NewServer(newTestApp(t, ""), nil, testLogger()).Handler()

	t.Run("dictionary", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/dictionary.json", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, string(testutil.DictionaryJSON(t, testutil.DefaultPairs...)), rec.Body.String())
	})

	t.Run("manifest", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/manifest.webmanifest", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/manifest+json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"start_url": "/"`)
	})

	t.Run("connectivity", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/api/connectivity", "", nil)
		assert.JSONEq(t, `{"connected": false}`, rec.Body.String())
	})
}

func TestServer_Index(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantContain []string
	}{
		{
			name:        "dictionary tab",
			target:      "/?q=house",
			wantContain: []string{"<title>Mizo Dictionary</title>", `<strong class="word">house</strong>`},
		},
		{
			name:        "invalid mode falls back to offline",
			target:      "/?q=house&mode=telepathy",
			wantContain: []string{`<strong class="word">house</strong>`},
		},
		{
			name:        "word of the day tab",
			target:      "/?tab=wotd",
			wantContain: []string{"<h2>Word of the Day</h2>", "<h3>History</h3>"},
		},
		{
			name:        "favorites tab",
			target:      "/?tab=favorites",
			wantContain: []string{"No favorites yet."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewServer(newTestApp(t, ""), nil, testLogger()).Handler()

			rec := doRequest(t, handler, http.MethodGet, tt.target, "", nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			for _, want := range tt.wantContain {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}
