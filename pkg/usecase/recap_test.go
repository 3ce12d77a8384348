package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
	"github.com/oakmoss-dev/ghrecap/pkg/repository"
	"github.com/oakmoss-dev/ghrecap/pkg/service/render"
	"github.com/oakmoss-dev/ghrecap/pkg/usecase"
)

type fakePublisher struct {
	discussions []publishedDiscussion
	comments    []string
	failCreate  error
}

type publishedDiscussion struct {
	repo     model.Repo
	category string
	title    string
	body     string
}

func (p *fakePublisher) CreateDiscussion(ctx context.Context, repo model.Repo, category, title, body string) (*model.Discussion, error) {
	if p.failCreate != nil {
		return nil, goerr.Wrap(p.failCreate, "failed to create discussion", goerr.T(model.ErrTagPublish))
	}
	p.discussions = append(p.discussions, publishedDiscussion{repo, category, title, body})
	return &model.Discussion{
		ID:  types.DiscussionID(fmt.Sprintf("D_%d", len(p.discussions))),
		URL: "https://github.com/oakmoss-dev/ghrecap/discussions/1",
	}, nil
}

func (p *fakePublisher) AddComment(ctx context.Context, id types.DiscussionID, body string) error {
	p.comments = append(p.comments, body)
	return nil
}

type fakeNotifier struct {
	announced []string
	fail      error
}

func (n *fakeNotifier) AnnounceRecap(ctx context.Context, title, url string) error {
	if n.fail != nil {
		return n.fail
	}
	n.announced = append(n.announced, title)
	return nil
}

var testClock = func() time.Time {
	return time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
}

func testRepo() model.Repo {
	return model.Repo{Owner: "oakmoss-dev", Name: "ghrecap"}
}

func newUsecase(t *testing.T, mem *repository.Memory, pub *fakePublisher, extra ...usecase.Option) *usecase.Recap {
	t.Helper()
	opts := append([]usecase.Option{
		usecase.WithClock(testClock),
		usecase.WithOutputDir(t.TempDir()),
		usecase.WithCategory("Announcements"),
	}, extra...)
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	return usecase.NewRecap(mem, testRepo(), opts...)
}

func TestGenerateWorkedExample(t *testing.T) {
	// Window 2024-01-01 to 2024-01-08, PR #42 (alice, merged by bob,
	// label mcp) closes issue #40 (label mcp)
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())

	prItem, err := model.NewClosedItem(types.KindPullRequest, 42, "Add MCP server", testClock().Add(-24*time.Hour))
	gt.NoError(t, err)
	prItem.Author = "alice"
	prItem.Merger = "bob"
	prItem.Closer = "bob"
	prItem.Labels = []types.LabelName{"mcp"}
	prItem.Linked = []types.ItemNumber{40}
	mem.AddPR(prItem)

	issueItem, err := model.NewClosedItem(types.KindIssue, 40, "MCP support missing", testClock().Add(-48*time.Hour))
	gt.NoError(t, err)
	issueItem.Author = "carol"
	issueItem.Closer = "bob"
	issueItem.Labels = []types.LabelName{"mcp"}
	mem.AddIssue(issueItem)

	pub := &fakePublisher{}
	uc := newUsecase(t, mem, pub)

	result, err := uc.Generate(ctx)
	gt.NoError(t, err)

	// Dedup: issue #40 has no standalone entry, PR #42 absorbs it
	gt.B(t, strings.Contains(result.Markdown, "MCP support missing")).False()
	gt.S(t, result.Markdown).Contains("closes #40")

	// Label counts include the suppressed issue
	gt.S(t, result.Markdown).Contains("- mcp: 2")

	// Published with the required title, body and follow-up
	gt.A(t, pub.discussions).Length(1)
	gt.Equal(t, pub.discussions[0].title, "Weekly Recap: 2024-01-01–2024-01-08")
	gt.Equal(t, pub.discussions[0].body, result.Markdown)
	gt.A(t, pub.comments).Length(1)
	gt.Equal(t, pub.comments[0], render.FollowUpComment)

	// File written under recap/ with the window label
	gt.S(t, result.FilePath).Contains(filepath.FromSlash("recap/2024-01-01–2024-01-08.md"))
	written, err := os.ReadFile(result.FilePath)
	gt.NoError(t, err)
	gt.Equal(t, string(written), result.Markdown)
}

func TestGenerateEmptyWindow(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	pub := &fakePublisher{}
	uc := newUsecase(t, mem, pub)

	result, err := uc.Generate(ctx)
	gt.NoError(t, err)

	want := "# Weekly Recap: 2024-01-01–2024-01-08\n\n" + render.EmptyFallback + "\n"
	gt.Equal(t, result.Markdown, want)

	// The fallback recap is still published
	gt.A(t, pub.discussions).Length(1)
}

func TestGenerateThreshold(t *testing.T) {
	// 36 closures: main sections trim to 15 each, remainder in Full Lists
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	for i := 1; i <= 18; i++ {
		p, err := model.NewClosedItem(types.KindPullRequest, types.ItemNumber(i), fmt.Sprintf("pr number %d", i), testClock().Add(-time.Hour))
		gt.NoError(t, err)
		mem.AddPR(p)
		is, err := model.NewClosedItem(types.KindIssue, types.ItemNumber(100+i), fmt.Sprintf("issue number %d", i), testClock().Add(-time.Hour))
		gt.NoError(t, err)
		mem.AddIssue(is)
	}

	pub := &fakePublisher{}
	uc := newUsecase(t, mem, pub)

	result, err := uc.Generate(ctx)
	gt.NoError(t, err)

	gt.Equal(t, result.Recap.TotalClosures(), 36)
	gt.A(t, result.Recap.PRs).Length(15)
	gt.A(t, result.Recap.Issues).Length(15)
	gt.A(t, result.Recap.OverflowPRs).Length(3)
	gt.A(t, result.Recap.OverflowIssues).Length(3)
	gt.S(t, result.Markdown).Contains("## Full Lists")
}

func TestGenerateNoThresholdBelowLimit(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	for i := 1; i <= 10; i++ {
		p, err := model.NewClosedItem(types.KindPullRequest, types.ItemNumber(i), "pr", testClock().Add(-time.Hour))
		gt.NoError(t, err)
		mem.AddPR(p)
	}

	uc := newUsecase(t, mem, &fakePublisher{})
	result, err := uc.Generate(ctx)
	gt.NoError(t, err)

	gt.A(t, result.Recap.PRs).Length(10)
	gt.A(t, result.Recap.OverflowPRs).Length(0)
}

func TestGenerateRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	p, err := model.NewClosedItem(types.KindPullRequest, 1, "stable output", testClock().Add(-time.Hour))
	gt.NoError(t, err)
	mem.AddPR(p)

	uc := newUsecase(t, mem, &fakePublisher{})
	first, err := uc.Generate(ctx)
	gt.NoError(t, err)
	second, err := uc.Generate(ctx)
	gt.NoError(t, err)

	gt.Equal(t, first.Markdown, second.Markdown)
}

func TestGenerateFetchFailureAborts(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	mem.FailFetch(errors.New("api unreachable"))

	pub := &fakePublisher{}
	uc := newUsecase(t, mem, pub)

	_, err := uc.Generate(ctx)
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, model.ErrTagFetch)).True()
	gt.A(t, pub.discussions).Length(0)
}

func TestGeneratePublishFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	pub := &fakePublisher{failCreate: errors.New("graphql error")}
	uc := newUsecase(t, mem, pub)

	_, err := uc.Generate(ctx)
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, model.ErrTagPublish)).True()
}

func TestGenerateDryRun(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	pub := &fakePublisher{}
	uc := newUsecase(t, mem, pub, usecase.WithDryRun(true))

	result, err := uc.Generate(ctx)
	gt.NoError(t, err)

	// The file is written, nothing is published
	_, statErr := os.Stat(result.FilePath)
	gt.NoError(t, statErr)
	gt.A(t, pub.discussions).Length(0)
	gt.V(t, result.Discussion).Nil()
}

func TestGenerateAnnouncesAfterPublish(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())
	p, err := model.NewClosedItem(types.KindPullRequest, 1, "x", testClock().Add(-time.Hour))
	gt.NoError(t, err)
	mem.AddPR(p)

	notifier := &fakeNotifier{}
	uc := newUsecase(t, mem, &fakePublisher{}, usecase.WithNotifier(notifier))

	_, err = uc.Generate(ctx)
	gt.NoError(t, err)
	gt.A(t, notifier.announced).Length(1)
}

func TestGenerateAnnouncementFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemory(testRepo())

	notifier := &fakeNotifier{fail: errors.New("slack down")}
	uc := newUsecase(t, mem, &fakePublisher{}, usecase.WithNotifier(notifier))

	_, err := uc.Generate(ctx)
	gt.NoError(t, err)
}
