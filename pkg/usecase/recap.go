package usecase

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/interfaces"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
	llmSvc "github.com/oakmoss-dev/ghrecap/pkg/service/llm"
	"github.com/oakmoss-dev/ghrecap/pkg/service/render"
)

// Recap generates and publishes one weekly recap. The flow is strictly
// linear: window, fetch, aggregate, render, publish. A run either completes
// and publishes, or aborts on the first fetch or publish failure. Nothing is
// persisted beyond the written file.
type Recap struct {
	source    interfaces.Source
	publisher interfaces.Publisher
	notifier  interfaces.Notifier
	llm       *llmSvc.Service
	weights   *model.WeightsConfig
	repo      model.Repo
	category  string
	outputDir string
	days      int
	dryRun    bool
	now       func() time.Time
}

// Option configures a Recap use case
type Option func(*Recap)

// WithPublisher sets the Discussion publisher
func WithPublisher(p interfaces.Publisher) Option {
	return func(r *Recap) { r.publisher = p }
}

// WithNotifier sets the out-of-band announcement target
func WithNotifier(n interfaces.Notifier) Option {
	return func(r *Recap) { r.notifier = n }
}

// WithLLM sets the editorial LLM service
func WithLLM(s *llmSvc.Service) Option {
	return func(r *Recap) { r.llm = s }
}

// WithWeights sets the impact-ranking label weights
func WithWeights(w *model.WeightsConfig) Option {
	return func(r *Recap) { r.weights = w }
}

// WithCategory sets the Discussion category name
func WithCategory(category string) Option {
	return func(r *Recap) { r.category = category }
}

// WithOutputDir sets the root under which recap/ files are written
func WithOutputDir(dir string) Option {
	return func(r *Recap) { r.outputDir = dir }
}

// WithWindowDays overrides the trailing window length
func WithWindowDays(days int) Option {
	return func(r *Recap) { r.days = days }
}

// WithDryRun renders and writes the file but skips publication
func WithDryRun(dryRun bool) Option {
	return func(r *Recap) { r.dryRun = dryRun }
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(r *Recap) { r.now = now }
}

// NewRecap creates a Recap use case for the given repository
func NewRecap(source interfaces.Source, repo model.Repo, opts ...Option) *Recap {
	r := &Recap{
		source:    source,
		repo:      repo,
		category:  "Announcements",
		outputDir: ".",
		days:      7,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is what one recap run produced
type Result struct {
	Recap      *model.Recap
	Markdown   string
	FilePath   string
	Discussion *model.Discussion
}

// Generate runs the whole recap pipeline once
func (r *Recap) Generate(ctx context.Context) (*Result, error) {
	logger := ctxlog.From(ctx)

	window := model.NewTimeWindow(r.now(), r.days)
	logger.Info("generating recap",
		"repo", r.repo.String(),
		"window", window.Label(),
	)

	prs, issues, err := r.source.FetchClosed(ctx, r.repo, window)
	if err != nil {
		return nil, err
	}

	recap := r.buildRecap(ctx, window, prs, issues)
	body := render.Report(recap)

	filePath, err := r.writeFile(window, body)
	if err != nil {
		return nil, err
	}
	logger.Info("recap written", "path", filePath)

	result := &Result{Recap: recap, Markdown: body, FilePath: filePath}

	if r.dryRun || r.publisher == nil {
		logger.Debug("publication skipped",
			"dryRun", r.dryRun,
			"hasPublisher", r.publisher != nil,
		)
		return result, nil
	}

	discussion, err := r.publisher.CreateDiscussion(ctx, r.repo, r.category, window.Title(), body)
	if err != nil {
		return nil, err
	}
	if err := r.publisher.AddComment(ctx, discussion.ID, render.FollowUpComment); err != nil {
		return nil, err
	}
	result.Discussion = discussion

	if r.notifier != nil {
		// The recap is already published; an announcement failure is not fatal
		if err := r.notifier.AnnounceRecap(ctx, window.Title(), discussion.URL); err != nil {
			logger.Warn("recap announcement failed", "error", err)
		}
	}

	return result, nil
}

// buildRecap aggregates the fetched items into a render-ready recap
func (r *Recap) buildRecap(ctx context.Context, window model.TimeWindow, prs, issues []*model.ClosedItem) *model.Recap {
	agg := Aggregate(prs, issues, window)

	recap := &model.Recap{
		ID:     types.NewReportID(),
		Repo:   r.repo,
		Window: window,
		PRs:    agg.PRs,
		Issues: agg.Issues,
	}
	if recap.IsEmpty() {
		return recap
	}

	recap.Labels = GroupLabels(agg)
	recap.Contributors = BuildRoster(ctx, r.source, r.repo, window, agg)
	applyThreshold(recap, agg, r.weights)
	recap.Highlights = r.buildHighlights(ctx, recap, agg)
	recap.LookingAhead = r.buildLookingAhead(ctx, recap, agg)
	return recap
}

// buildHighlights curates 3-6 bullets by impact, LLM-phrased when available
func (r *Recap) buildHighlights(ctx context.Context, recap *model.Recap, agg *AggregateResult) []string {
	all := append(append([]*model.ClosedItem(nil), agg.PRs...), agg.Issues...)
	candidates := RankByImpact(all, r.weights)
	if len(candidates) > highlightMax {
		candidates = candidates[:highlightMax]
	}

	if r.llm != nil {
		bullets, err := r.llm.Highlights(ctx, recap, candidates, highlightMin, highlightMax)
		if err == nil {
			return bullets
		}
		ctxlog.From(ctx).Warn("LLM highlights failed, using fallback", "error", err)
	}
	return llmSvc.FallbackHighlights(candidates, highlightMax)
}

// buildLookingAhead infers forward-looking bullets from this week's milestones
func (r *Recap) buildLookingAhead(ctx context.Context, recap *model.Recap, agg *AggregateResult) []string {
	milestones := collectMilestones(agg)
	if len(milestones) == 0 {
		return nil
	}

	if r.llm != nil {
		bullets, err := r.llm.LookingAhead(ctx, recap, milestones)
		if err == nil {
			return bullets
		}
		ctxlog.From(ctx).Warn("LLM looking-ahead failed, using fallback", "error", err)
	}
	return llmSvc.FallbackLookingAhead(milestones)
}

func (r *Recap) writeFile(window model.TimeWindow, body string) (string, error) {
	path := filepath.Join(r.outputDir, filepath.FromSlash(window.FilePath()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create recap directory",
			goerr.T(model.ErrTagPublish),
			goerr.V("path", path))
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write recap file",
			goerr.T(model.ErrTagPublish),
			goerr.V("path", path))
	}
	return path, nil
}

func collectMilestones(agg *AggregateResult) []string {
	seen := make(map[string]bool)
	var milestones []string
	collect := func(items []*model.ClosedItem) {
		for _, item := range items {
			if item.Milestone == "" || seen[item.Milestone] {
				continue
			}
			seen[item.Milestone] = true
			milestones = append(milestones, item.Milestone)
		}
	}
	collect(agg.PRs)
	collect(agg.Issues)
	collect(agg.Suppressed)
	sort.Strings(milestones)
	return milestones
}
