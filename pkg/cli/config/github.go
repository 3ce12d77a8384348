package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/repository"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token    string
	Repo     string
	Category string
}

// Flags returns CLI flags for GitHub configuration
func (g *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token with repo and discussion scopes",
			Category:    "GitHub",
			Sources:     cli.EnvVars("GHRECAP_GITHUB_TOKEN", "GITHUB_TOKEN"),
			Destination: &g.Token,
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Target repository in owner/name form",
			Category:    "GitHub",
			Required:    true,
			Sources:     cli.EnvVars("GHRECAP_REPO"),
			Destination: &g.Repo,
		},
		&cli.StringFlag{
			Name:        "discussion-category",
			Usage:       "Discussion category the recap is posted to",
			Category:    "GitHub",
			Value:       "Announcements",
			Sources:     cli.EnvVars("GHRECAP_DISCUSSION_CATEGORY"),
			Destination: &g.Category,
		},
	}
}

// Validate validates the GitHub configuration
func (g *GitHub) Validate() error {
	if _, err := model.ParseRepo(g.Repo); err != nil {
		return goerr.Wrap(err, "invalid repository")
	}
	return nil
}

// Repository returns the parsed repository identifier
func (g *GitHub) Repository() (model.Repo, error) {
	return model.ParseRepo(g.Repo)
}

// ConfigureSource creates the REST-backed closed-item source
func (g *GitHub) ConfigureSource(ctx context.Context) *repository.GitHub {
	return repository.NewGitHub(ctx, g.Token)
}

// ConfigurePublisher creates the GraphQL-backed Discussion publisher.
// Publishing requires a token; returns an error when it is missing.
func (g *GitHub) ConfigurePublisher(ctx context.Context) (*repository.Discussions, error) {
	if g.Token == "" {
		return nil, goerr.New("GitHub token is required to publish discussions")
	}
	return repository.NewDiscussions(ctx, g.Token), nil
}

// LogValue returns structured log value
func (g GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_token", g.Token != ""),
		slog.String("repo", g.Repo),
		slog.String("category", g.Category),
	)
}
