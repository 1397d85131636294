package news

import (
	"crypto/sha256"
	"fmt"
)

// Evergreen topics used when every upstream provider is unavailable.
// Each gets a stable content-derived source id so the dedup ledger
// applies to them the same way it applies to real articles.
var fallbackTopics = []struct {
	headline    string
	description string
}{
	{
		headline:    "Political Rally Promises Free Everything Except Common Sense",
		description: "Another election season, another set of impossible promises",
	},
	{
		headline:    "Social Media Outrage Reaches New Heights Over Absolutely Nothing",
		description: "Twitter trends show collective anger about trivial matters",
	},
	{
		headline:    "Traffic Jam Declared City's Most Reliable Daily Event",
		description: "Commuters report the only thing that arrives on time is the gridlock",
	},
	{
		headline:    "Weather Department Confidently Predicts Rain After It Starts Raining",
		description: "Forecast accuracy hits record highs for events already in progress",
	},
}

func fallbackCandidates() []Candidate {
	candidates := make([]Candidate, 0, len(fallbackTopics))
	for _, topic := range fallbackTopics {
		candidates = append(candidates, Candidate{
			Headline:    topic.headline,
			Description: topic.description,
			SourceID:    syntheticSourceID(topic.headline),
			Provider:    ProviderFallback,
		})
	}
	return candidates
}

func syntheticSourceID(headline string) string {
	sum := sha256.Sum256([]byte(headline))
	return "fallback:" + fmt.Sprintf("%x", sum)[:16]
}
