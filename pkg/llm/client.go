package llm

import "context"

// Article is the parsed result of one generation call.
type Article struct {
	Title    string
	Subtitle string
	Body     string
}

// Generator turns a news headline and description into a satirical article.
// A nil article with an error means the pass should be skipped, not retried.
type Generator interface {
	Generate(ctx context.Context, headline, description string) (*Article, error)
}
