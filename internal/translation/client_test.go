package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Status(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		want       Status
		wantUsable bool
		wantErr    bool
	}{
		{
			name: "model loaded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"model_loaded": true, "model_name": "Google Cloud Translate", "api_key_configured": false, "cache_size": {"mizo_to_english": 2, "english_to_mizo": 1}, "status": "online"}`))
			},
			want: Status{
				ModelLoaded: true,
				ModelName:   "Google Cloud Translate",
				CacheSize:   CacheSize{MizoToEnglish: 2, EnglishToMizo: 1},
				Status:      "online",
			},
			wantUsable: true,
		},
		{
			name: "only api key configured",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"model_loaded": false, "api_key_configured": true}`))
			},
			want:       Status{APIKeyConfigured: true},
			wantUsable: true,
		},
		{
			name: "neither flag",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"model_loaded": false, "api_key_configured": false}`))
			},
			want: Status{},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/status", r.URL.Path)
				tt.handler(w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL+"/api", time.Second)
			defer client.Close()

			got, err := client.Status(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUsable, got.Usable())
		})
	}
}

func TestClient_StatusTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 50*time.Millisecond)
	defer client.Close()

	_, err := client.Status(context.Background())
	assert.Error(t, err)
}

func TestClient_Translate(t *testing.T) {
	tests := []struct {
		name            string
		direction       Direction
		wantPath        string
		status          int
		body            string
		want            string
		wantErrorString string
	}{
		{
			name:      "mizo to english",
			direction: MizoToEnglish,
			wantPath:  "/translate-mizo",
			status:    http.StatusOK,
			body:      `{"mizo": "in", "english": "house", "direction": "mizo-to-english", "success": true}`,
			want:      "house",
		},
		{
			name:      "english to mizo",
			direction: EnglishToMizo,
			wantPath:  "/translate-english",
			status:    http.StatusOK,
			body:      `{"english": "house", "mizo": "in", "direction": "english-to-mizo", "success": true}`,
			want:      "in",
		},
		{
			name:            "success false carries the server message",
			direction:       MizoToEnglish,
			wantPath:        "/translate-mizo",
			status:          http.StatusOK,
			body:            `{"success": false, "error": "quota exceeded"}`,
			wantErrorString: "quota exceeded",
		},
		{
			name:            "error status with message",
			direction:       EnglishToMizo,
			wantPath:        "/translate-english",
			status:          http.StatusInternalServerError,
			body:            `{"error": "Translation failed", "success": false}`,
			wantErrorString: "Translation failed",
		},
		{
			name:            "error status without a JSON body",
			direction:       EnglishToMizo,
			wantPath:        "/translate-english",
			status:          http.StatusBadGateway,
			body:            `bad gateway`,
			wantErrorString: "response error 502",
		},
		{
			name:            "missing translated field",
			direction:       EnglishToMizo,
			wantPath:        "/translate-english",
			status:          http.StatusOK,
			body:            `{"english": "house", "success": true}`,
			wantErrorString: "empty translation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)

				var request Request
				require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
				assert.Equal(t, "House", request.Word)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			defer client.Close()

			got, err := client.Translate(context.Background(), tt.direction, "House")
			if tt.wantErrorString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
