package news

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}

func newTestNewsAPIClient(srvURL string) *NewsAPIClient {
	client := NewNewsAPIClient("test-key")
	client.httpClient.Transport = &rewriteTransport{base: srvURL, inner: http.DefaultTransport}
	client.sleep = func(time.Duration) {}
	return client
}

func TestNewsAPITopHeadlines(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			{
				"title":       "Parliament Session Extended Again",
				"description": "The monsoon session runs long for the third year straight.",
				"url":         "https://example.com/parliament",
				"source":      map[string]interface{}{"id": "the-hindu", "name": "The Hindu"},
			},
			{
				"title":       "",
				"description": "Article without a title is dropped.",
				"url":         "https://example.com/untitled",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv.URL)

	candidates, err := client.TopHeadlines("in", "general")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(candidates))
	assert.Equal(t, "Parliament Session Extended Again", candidates[0].Headline)
	assert.Equal(t, "https://example.com/parliament", candidates[0].SourceID)
	assert.Equal(t, ProviderNewsAPI, candidates[0].Provider)
}

func TestNewsAPIDescriptionFallsBackToContent(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			{
				"title":   "Metro Line Opens",
				"content": "Full body text used when description is missing.",
				"url":     "https://example.com/metro",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv.URL)

	candidates, err := client.TopHeadlines("in", "general")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Full body text used when description is missing.", candidates[0].Description)
}

func TestNewsAPIRetriesOnceAfterRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"articles": []map[string]interface{}{
				{"title": "Second Try Works", "url": "https://example.com/retry"},
			},
		})
	}))
	defer srv.Close()

	var slept time.Duration
	client := newTestNewsAPIClient(srv.URL)
	client.sleep = func(d time.Duration) { slept = d }

	candidates, err := client.Everything("cricket India", "")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, newsAPIBackoff, slept)
	assert.Equal(t, 1, len(candidates))
}

func TestNewsAPIGivesUpAfterSecondRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv.URL)

	_, err := client.TopHeadlines("in", "sports")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 2, calls)
}

func TestNewsAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUpgradeRequired)
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv.URL)

	_, err := client.TopHeadlines("in", "general")

	assert.NotEqual(t, nil, err)
}
