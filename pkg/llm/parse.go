package llm

import (
	"regexp"
	"strings"
)

const (
	titleMarker    = "TITLE:"
	subtitleMarker = "SUBTITLE:"
	contentMarker  = "CONTENT:"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// parseGenerated extracts the three marked sections from a raw model reply.
// Missing markers fall back to the original headline for the title, an empty
// subtitle, and the full raw reply for the body.
func parseGenerated(raw, headline string) Article {
	var title, subtitle, body string
	haveBody := false

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if title == "" && strings.HasPrefix(trimmed, titleMarker) {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, titleMarker))
			continue
		}

		if subtitle == "" && strings.HasPrefix(trimmed, subtitleMarker) {
			subtitle = strings.TrimSpace(strings.TrimPrefix(trimmed, subtitleMarker))
			continue
		}

		if strings.HasPrefix(trimmed, contentMarker) {
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, contentMarker))
			tail := strings.Join(lines[i+1:], "\n")
			if rest != "" && tail != "" {
				body = rest + "\n" + tail
			} else {
				body = rest + tail
			}
			haveBody = true
			break
		}
	}

	if title == "" {
		title = strings.TrimSpace(headline)
	}
	if !haveBody {
		body = raw
	}

	return Article{
		Title:    title,
		Subtitle: subtitle,
		Body:     cleanBody(body, title, subtitle),
	}
}

// cleanBody strips marker lines the model echoed into the content section,
// drops the first verbatim occurrence of the title and subtitle, and
// normalizes blank-line runs.
func cleanBody(body, title, subtitle string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, titleMarker) || strings.HasPrefix(trimmed, subtitleMarker) {
			continue
		}
		kept = append(kept, line)
	}
	body = strings.Join(kept, "\n")

	if title != "" {
		body = strings.Replace(body, title, "", 1)
	}
	if subtitle != "" {
		body = strings.Replace(body, subtitle, "", 1)
	}

	body = blankRuns.ReplaceAllString(body, "\n\n")

	return strings.TrimSpace(body)
}
