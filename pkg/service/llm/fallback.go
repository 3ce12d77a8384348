package llm

import (
	"fmt"

	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
)

// FallbackHighlights phrases highlight bullets without an LLM. Candidates
// must already be ranked by impact; output order follows input order.
func FallbackHighlights(candidates []*model.ClosedItem, max int) []string {
	if max > len(candidates) {
		max = len(candidates)
	}

	bullets := make([]string, 0, max)
	for _, item := range candidates[:max] {
		verb := "Closed"
		if item.IsPullRequest() {
			verb = "Merged"
		}
		bullets = append(bullets, fmt.Sprintf("%s %s: %s", verb, item.Number, item.Title))
	}
	return bullets
}

// FallbackLookingAhead phrases forward-looking bullets from milestone names
// without an LLM. Non-committal on purpose.
func FallbackLookingAhead(milestones []string) []string {
	bullets := make([]string, 0, len(milestones))
	for _, m := range milestones {
		bullets = append(bullets, fmt.Sprintf("Work continues toward %s.", m))
	}
	return bullets
}
