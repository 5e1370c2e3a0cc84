package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	return NewClient(cfg, fixedSource(42))
}

func TestGenerateCoverURL_Success(t *testing.T) {
	var got generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, DefaultPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://covers.example.com/alquimista.png"}`))
	}, Config{})

	url := client.GenerateCoverURL(context.Background(), CoverRequest{Title: "O Alquimista", Description: "Uma fábula"})

	assert.Equal(t, "https://covers.example.com/alquimista.png", url)
	assert.Equal(t, "O Alquimista", got.Title)
	assert.Equal(t, "Uma fábula", got.Description)
	assert.Equal(t, "O Alquimista Uma fábula", got.Prompt)
}

func TestGenerateCoverURL_FallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"url":`))
		}},
		{"missing url", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"image":"x"}`))
		}},
		{"relative url", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"url":"/static/cover.png"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler, Config{})

			url := client.GenerateCoverURL(context.Background(), CoverRequest{Title: "Dune"})

			assert.Equal(t, DefaultPlaceholderURL, url)
		})
	}
}

func TestGenerateCoverURL_TimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, Config{Timeout: 50 * time.Millisecond})
	defer close(release)

	start := time.Now()
	url := client.GenerateCoverURL(context.Background(), CoverRequest{Title: "Slow"})

	assert.Equal(t, DefaultPlaceholderURL, url)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGenerateCoverURL_UnreachableFallsBack(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, fixedSource(0))

	assert.Equal(t, DefaultPlaceholderURL, client.GenerateCoverURL(context.Background(), CoverRequest{Title: "X"}))
}

func TestGenerateCoverURL_DisabledMakesNoCall(t *testing.T) {
	client := NewClient(Config{PlaceholderURL: "https://placeholder.test/cover.png"}, fixedSource(0))

	assert.False(t, client.Enabled())
	assert.Equal(t, "https://placeholder.test/cover.png", client.GenerateCoverURL(context.Background(), CoverRequest{Title: "X"}))
}

func TestGenerateCoverURL_StockFallback(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, Config{Fallback: StrategyStock})

	url := client.GenerateCoverURL(context.Background(), CoverRequest{Title: "Harry Potter", Description: "magia"})

	assert.Equal(t, "https://source.unsplash.com/500x700/?book,Harry,1042", url)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStockPhotoURL(t *testing.T) {
	assert.Equal(t, "https://source.unsplash.com/500x700/?book,book,1000", StockPhotoURL("   ", fixedSource(0)))
	assert.Equal(t, "https://source.unsplash.com/500x700/?book,S%C3%A3o,9999", StockPhotoURL("São Paulo", fixedSource(8999)))
}

func TestCoverPrompt(t *testing.T) {
	assert.Equal(t, "Dune", CoverPrompt("Dune", ""))
	assert.Equal(t, "Dune", CoverPrompt(" Dune ", "   "))
	assert.Equal(t, "Dune Arrakis", CoverPrompt("Dune", "Arrakis"))
}

func TestNewRandomSource_Deterministic(t *testing.T) {
	a := NewRandomSource(7)
	b := NewRandomSource(7)
	for range 5 {
		assert.Equal(t, a.IntN(9000), b.IntN(9000))
	}
}
