package news

type Provider string

const (
	ProviderNewsAPI  Provider = "NewsAPI"
	ProviderGNews    Provider = "GNews"
	ProviderFallback Provider = "Fallback"
)

// Candidate is one news item eligible for satirical transformation.
type Candidate struct {
	Headline    string
	Description string
	SourceID    string
	Provider    Provider
}

// Ledger reports whether a source id has already been turned into a post.
type Ledger interface {
	Contains(id string) bool
}
