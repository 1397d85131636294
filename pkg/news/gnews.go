package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GNewsClient talks to gnews.io, tried before NewsAPI when its key is set.
type GNewsClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewGNewsClient(apiKey string) *GNewsClient {
	return &GNewsClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// TopHeadlines fetches regional headlines in the given language.
func (c *GNewsClient) TopHeadlines(country, lang string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("country", country)
	params.Set("lang", lang)
	params.Set("max", "10")

	resp, err := c.httpClient.Get("https://gnews.io/api/v4/top-headlines?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("gnews fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews status %d", resp.StatusCode)
	}

	var raw gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("gnews decode: %w", err)
	}

	candidates := make([]Candidate, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if item.Title == "" {
			continue
		}

		candidates = append(candidates, Candidate{
			Headline:    item.Title,
			Description: item.Description,
			SourceID:    item.URL,
			Provider:    ProviderGNews,
		})
	}

	return candidates, nil
}

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}
