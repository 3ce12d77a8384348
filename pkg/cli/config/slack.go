package config

import (
	"log/slog"

	slackSvc "github.com/oakmoss-dev/ghrecap/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds the optional announcement configuration
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for the recap announcement",
			Category:    "Slack",
			Sources:     cli.EnvVars("GHRECAP_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID the announcement is posted to",
			Category:    "Slack",
			Sources:     cli.EnvVars("GHRECAP_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// IsConfigured checks if the announcement step can run
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.Channel != ""
}

// ConfigureOptional creates a Notifier if configured, returns nil if not
func (s *Slack) ConfigureOptional(logger *slog.Logger) *slackSvc.Notifier {
	if !s.IsConfigured() {
		logger.Debug("Slack not configured, recap announcement skipped")
		return nil
	}
	return slackSvc.New(s.OAuthToken, s.Channel)
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
