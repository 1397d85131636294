package news

import (
	"log/slog"
	"math/rand"
)

const maxCandidates = 5

var headlineCategories = []string{
	"general", "business", "technology", "sports", "entertainment", "science", "health",
}

var indianSearchQueries = []string{
	"India politics",
	"Indian business startup",
	"Bollywood entertainment",
	"cricket India",
	"Indian technology",
	"Mumbai Delhi",
	"Indian economy",
	"India international",
}

var genericTopics = []string{
	"technology", "business", "science", "politics", "entertainment",
}

const indianDomains = "timesofindia.indiatimes.com,thehindu.com,ndtv.com,indianexpress.com,hindustantimes.com,livemint.com,business-standard.com"

// PrimarySource is the NewsAPI-shaped provider with a headline endpoint
// and a broader search endpoint.
type PrimarySource interface {
	TopHeadlines(country, category string) ([]Candidate, error)
	Everything(query, domains string) ([]Candidate, error)
}

// SecondarySource is the GNews-shaped provider, consulted first when
// configured.
type SecondarySource interface {
	TopHeadlines(country, lang string) ([]Candidate, error)
}

// SourceAdapter walks the provider chain and returns up to five candidates
// not yet present in the ledger. It never returns an error: provider
// failures degrade to the next step and finally to the evergreen topics.
type SourceAdapter struct {
	primary   PrimarySource
	secondary SecondarySource
	ledger    Ledger
	rng       *rand.Rand
}

func NewSourceAdapter(primary PrimarySource, secondary SecondarySource, ledger Ledger, rng *rand.Rand) *SourceAdapter {
	return &SourceAdapter{
		primary:   primary,
		secondary: secondary,
		ledger:    ledger,
		rng:       rng,
	}
}

func (a *SourceAdapter) FetchCandidates() []Candidate {
	if a.secondary != nil {
		candidates, err := a.secondary.TopHeadlines("in", "en")
		if err != nil {
			slog.Warn("secondary news provider failed", "error", err)
		} else if fresh := a.filterUsed(candidates); len(fresh) > 0 {
			return capCandidates(fresh)
		}
	}

	if a.primary != nil {
		category := headlineCategories[a.rng.Intn(len(headlineCategories))]
		candidates, err := a.primary.TopHeadlines("in", category)
		if err != nil {
			slog.Warn("primary top headlines failed", "category", category, "error", err)
		} else if fresh := a.filterUsed(candidates); len(fresh) > 0 {
			return capCandidates(fresh)
		}

		query := indianSearchQueries[a.rng.Intn(len(indianSearchQueries))]
		candidates, err = a.primary.Everything(query, indianDomains)
		if err != nil {
			slog.Warn("primary regional search failed", "query", query, "error", err)
		} else if fresh := a.filterUsed(candidates); len(fresh) > 0 {
			return capCandidates(fresh)
		}

		topic := genericTopics[a.rng.Intn(len(genericTopics))]
		candidates, err = a.primary.Everything(topic, "")
		if err != nil {
			slog.Warn("primary generic search failed", "topic", topic, "error", err)
		} else {
			return capCandidates(a.filterUsed(candidates))
		}
	}

	slog.Warn("all news providers exhausted, using evergreen topics")
	return a.filterUsed(fallbackCandidates())
}

func (a *SourceAdapter) filterUsed(candidates []Candidate) []Candidate {
	fresh := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.SourceID != "" && a.ledger.Contains(c.SourceID) {
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh
}

func capCandidates(candidates []Candidate) []Candidate {
	if len(candidates) > maxCandidates {
		return candidates[:maxCandidates]
	}
	return candidates
}
