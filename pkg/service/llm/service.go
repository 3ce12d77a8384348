package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
)

// Error tags for categorization
var (
	ErrTagInvalidJSON     = goerr.NewTag("invalid_json")
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

//go:embed templates/*.md
var templateFS embed.FS

// Service phrases the recap's editorial sections with an LLM. Every method
// has a deterministic counterpart in fallback.go; callers must not depend on
// the LLM being configured.
type Service struct {
	client gollem.LLMClient
}

// New creates a Service backed by the given LLM client
func New(client gollem.LLMClient) *Service {
	return &Service{client: client}
}

// templateItem is one closed item prepared for prompt rendering
type templateItem struct {
	Number    string
	Kind      string
	Title     string
	Labels    []string
	Comments  int
	Milestone string
}

// promptData feeds both editorial templates
type promptData struct {
	Repo       string
	Window     string
	Items      []templateItem
	Milestones []string
	Min        int
	Max        int
}

// highlightsResponse is the structured LLM reply for highlights
type highlightsResponse struct {
	Highlights []string `json:"highlights"`
}

// lookaheadResponse is the structured LLM reply for looking-ahead bullets
type lookaheadResponse struct {
	Bullets []string `json:"bullets"`
}

// Highlights asks the LLM for a short curated subset of the week's items,
// phrased as recap bullets. The candidate list must already be ranked by
// impact; the model picks and phrases, it does not re-rank.
func (s *Service) Highlights(ctx context.Context, recap *model.Recap, candidates []*model.ClosedItem, min, max int) ([]string, error) {
	data := promptData{
		Repo:   recap.Repo.String(),
		Window: recap.Window.Label(),
		Items:  buildTemplateItems(candidates),
		Min:    min,
		Max:    max,
	}

	prompt, err := renderTemplate("templates/highlights.md", data)
	if err != nil {
		return nil, err
	}

	var parsed highlightsResponse
	if err := s.generateJSON(ctx, prompt, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Highlights) == 0 {
		return nil, goerr.New("LLM returned no highlights",
			goerr.T(ErrTagEmptyResponse))
	}
	if len(parsed.Highlights) > max {
		parsed.Highlights = parsed.Highlights[:max]
	}
	return parsed.Highlights, nil
}

// LookingAhead asks the LLM for non-committal forward-looking bullets
// inferred from the milestones attached to this week's items.
func (s *Service) LookingAhead(ctx context.Context, recap *model.Recap, milestones []string) ([]string, error) {
	data := promptData{
		Repo:       recap.Repo.String(),
		Window:     recap.Window.Label(),
		Milestones: milestones,
	}

	prompt, err := renderTemplate("templates/looking_ahead.md", data)
	if err != nil {
		return nil, err
	}

	var parsed lookaheadResponse
	if err := s.generateJSON(ctx, prompt, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Bullets) == 0 {
		return nil, goerr.New("LLM returned no looking-ahead bullets",
			goerr.T(ErrTagEmptyResponse))
	}
	return parsed.Bullets, nil
}

// generateJSON runs one JSON-mode generation and decodes the reply
func (s *Service) generateJSON(ctx context.Context, prompt string, out any) error {
	session, err := s.client.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return goerr.Wrap(err, "failed to create LLM session", goerr.T(model.ErrTagLLM))
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return goerr.Wrap(err, "failed to generate LLM response", goerr.T(model.ErrTagLLM))
	}
	if len(response.Texts) == 0 || response.Texts[0] == "" {
		return goerr.New("empty response from LLM",
			goerr.T(model.ErrTagLLM),
			goerr.T(ErrTagEmptyResponse))
	}

	if err := json.Unmarshal([]byte(response.Texts[0]), out); err != nil {
		return goerr.Wrap(err, "failed to parse LLM response as JSON",
			goerr.T(model.ErrTagLLM),
			goerr.T(ErrTagInvalidJSON),
			goerr.V("response", response.Texts[0]))
	}
	return nil
}

func renderTemplate(name string, data promptData) (string, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read prompt template",
			goerr.T(ErrTagTemplateFailure),
			goerr.V("template", name))
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse prompt template",
			goerr.T(ErrTagTemplateFailure),
			goerr.V("template", name))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt template",
			goerr.T(ErrTagTemplateFailure),
			goerr.V("template", name))
	}
	return buf.String(), nil
}

func buildTemplateItems(items []*model.ClosedItem) []templateItem {
	out := make([]templateItem, 0, len(items))
	for _, item := range items {
		ti := templateItem{
			Number:    item.Number.String(),
			Kind:      item.Kind.String(),
			Title:     item.Title,
			Comments:  item.Comments,
			Milestone: item.Milestone,
		}
		for _, l := range item.Labels {
			ti.Labels = append(ti.Labels, l.String())
		}
		out = append(out, ti)
	}
	return out
}
