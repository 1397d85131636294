package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	newsAPIBackoff  = 60 * time.Second
	newsAPIPageSize = 20
)

// NewsAPIClient talks to newsapi.org, the primary headline source.
type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
	sleep      func(time.Duration)
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		sleep:      time.Sleep,
	}
}

// TopHeadlines fetches country-level headlines for one category.
func (c *NewsAPIClient) TopHeadlines(country, category string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("country", country)
	params.Set("category", category)
	params.Set("pageSize", fmt.Sprint(newsAPIPageSize))

	return c.fetch("https://newsapi.org/v2/top-headlines?" + params.Encode())
}

// Everything runs a broader keyword search, newest first, optionally
// restricted to a comma-separated domain list.
func (c *NewsAPIClient) Everything(query, domains string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("q", query)
	params.Set("pageSize", fmt.Sprint(newsAPIPageSize))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	if domains != "" {
		params.Set("domains", domains)
	}

	return c.fetch("https://newsapi.org/v2/everything?" + params.Encode())
}

// fetch retries exactly once after a rate-limit response.
func (c *NewsAPIClient) fetch(url string) ([]Candidate, error) {
	candidates, err := c.fetchOnce(url)
	if err == errRateLimited {
		c.sleep(newsAPIBackoff)
		candidates, err = c.fetchOnce(url)
	}
	return candidates, err
}

var errRateLimited = fmt.Errorf("newsapi rate limited")

func (c *NewsAPIClient) fetchOnce(url string) ([]Candidate, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	candidates := make([]Candidate, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if item.Title == "" {
			continue
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		candidates = append(candidates, Candidate{
			Headline:    item.Title,
			Description: description,
			SourceID:    item.URL,
			Provider:    ProviderNewsAPI,
		})
	}

	return candidates, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Source      struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
}
