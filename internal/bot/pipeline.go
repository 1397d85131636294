package bot

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/balludanga/merikahani-backend/pkg/llm"
	"github.com/balludanga/merikahani-backend/pkg/news"
)

type CandidateSource interface {
	FetchCandidates() []news.Candidate
}

type ArticlePublisher interface {
	Publish(article llm.Article) bool
}

// Pipeline executes one fetch → generate → publish pass. Each pass is
// independent; only the ledger carries state between passes within a
// single process.
type Pipeline struct {
	mu        sync.Mutex
	source    CandidateSource
	generator llm.Generator
	publisher ArticlePublisher
	ledger    *Ledger
	rng       *rand.Rand
}

func NewPipeline(source CandidateSource, generator llm.Generator, publisher ArticlePublisher, ledger *Ledger, rng *rand.Rand) *Pipeline {
	return &Pipeline{
		source:    source,
		generator: generator,
		publisher: publisher,
		ledger:    ledger,
		rng:       rng,
	}
}

// Run performs a single pass. Failures end the pass without publishing;
// the next scheduled tick is the only retry mechanism. Passes serialize:
// the ledger and rng are not safe for concurrent use, and the trigger
// endpoint can call Run from multiple request goroutines.
func (p *Pipeline) Run(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := p.source.FetchCandidates()
	if len(candidates) == 0 {
		slog.Warn("no news candidates available, skipping pass")
		return
	}

	// Uniform random pick over the candidate list for content variety.
	pick := candidates[p.rng.Intn(len(candidates))]
	p.ledger.Add(pick.SourceID)

	slog.Info("processing news candidate", "headline", pick.Headline, "provider", pick.Provider)

	article, err := p.generator.Generate(ctx, pick.Headline, pick.Description)
	if err != nil {
		slog.Error("content generation failed", "headline", pick.Headline, "error", err)
		return
	}

	if !p.publisher.Publish(*article) {
		slog.Error("publish failed", "title", article.Title)
	}
}
