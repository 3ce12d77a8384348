package render

import (
	"fmt"
	"strings"

	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
)

// Fixed texts required by the publishing contract
const (
	// EmptyFallback is the entire body of an empty-week recap
	EmptyFallback = "No closures this week. More to report once the next batch of work lands."

	// FollowUpComment is posted once under every published recap
	FollowUpComment = "Questions or additions? Reply here and we'll incorporate them next week."
)

// Report renders a recap to Markdown. It is a pure function of its input:
// the same recap always yields byte-identical output.
func Report(recap *model.Recap) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", recap.Window.Title())

	if recap.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(EmptyFallback)
		b.WriteString("\n")
		return b.String()
	}

	writeBullets(&b, "Highlights", recap.Highlights)

	if len(recap.PRs) > 0 {
		b.WriteString("\n## Closed Pull Requests\n\n")
		for _, pr := range recap.PRs {
			b.WriteString(prLine(pr))
		}
	}

	if len(recap.Issues) > 0 {
		b.WriteString("\n## Closed Issues\n\n")
		for _, issue := range recap.Issues {
			b.WriteString(issueLine(issue))
		}
	}

	if len(recap.Labels) > 0 {
		b.WriteString("\n## By Label\n\n")
		for _, g := range recap.Labels {
			fmt.Fprintf(&b, "- %s: %d (%s)\n", g.Name, g.Count, g.Summary)
		}
	}

	if len(recap.Contributors) > 0 {
		b.WriteString("\n## Contributors This Week\n\n")
		for _, c := range recap.Contributors {
			b.WriteString(contributorLine(c))
		}
	}

	writeBullets(&b, "Looking Ahead", recap.LookingAhead)

	if len(recap.OverflowPRs) > 0 || len(recap.OverflowIssues) > 0 {
		b.WriteString("\n## Full Lists\n\n<details>\n<summary>All closures this week</summary>\n\n")
		if n := len(recap.PRs) + len(recap.OverflowPRs); n > 0 {
			b.WriteString("### All Pull Requests\n\n")
			for _, pr := range append(append([]*model.ClosedItem(nil), recap.PRs...), recap.OverflowPRs...) {
				b.WriteString(prLine(pr))
			}
			b.WriteString("\n")
		}
		if n := len(recap.Issues) + len(recap.OverflowIssues); n > 0 {
			b.WriteString("### All Issues\n\n")
			for _, issue := range append(append([]*model.ClosedItem(nil), recap.Issues...), recap.OverflowIssues...) {
				b.WriteString(issueLine(issue))
			}
			b.WriteString("\n")
		}
		b.WriteString("</details>\n")
	}

	return b.String()
}

func writeBullets(b *strings.Builder, section string, bullets []string) {
	if len(bullets) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", section)
	for _, line := range bullets {
		fmt.Fprintf(b, "- %s\n", line)
	}
}

func prLine(pr *model.ClosedItem) string {
	var meta []string
	if pr.Author != "" {
		meta = append(meta, fmt.Sprintf("by @%s", pr.Author))
	}
	if pr.Merger != "" && pr.Merger != pr.Author {
		meta = append(meta, fmt.Sprintf("merged by @%s", pr.Merger))
	}
	for _, n := range pr.Closes {
		meta = append(meta, fmt.Sprintf("closes %s", n))
	}
	return itemLine(pr, meta)
}

func issueLine(issue *model.ClosedItem) string {
	var meta []string
	if issue.Closer != "" {
		meta = append(meta, fmt.Sprintf("closed by @%s", issue.Closer))
	}
	if len(issue.ClosedBy) > 0 {
		refs := make([]string, 0, len(issue.ClosedBy))
		for _, n := range issue.ClosedBy {
			refs = append(refs, n.String())
		}
		meta = append(meta, fmt.Sprintf("linked to %s", strings.Join(refs, ", ")))
	}
	return itemLine(issue, meta)
}

func itemLine(item *model.ClosedItem, meta []string) string {
	if len(meta) == 0 {
		return fmt.Sprintf("- %s %s\n", item.Number, item.Title)
	}
	return fmt.Sprintf("- %s %s (%s)\n", item.Number, item.Title, strings.Join(meta, ", "))
}

func contributorLine(c model.Contributor) string {
	roles := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, r.String())
	}
	line := fmt.Sprintf("- @%s: %s", c.Handle, strings.Join(roles, ", "))
	if c.FirstTime {
		line += " (first-time contributor)"
	}
	return line + "\n"
}
