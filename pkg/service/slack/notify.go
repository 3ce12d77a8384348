package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/interfaces"
	"github.com/slack-go/slack"
)

// PostMessageClient is the slice of the Slack API the notifier needs
type PostMessageClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier announces published recaps to a Slack channel
type Notifier struct {
	client  PostMessageClient
	channel string
}

// New creates a Notifier posting to the given channel
func New(token, channel string) *Notifier {
	return &Notifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// NewWithClient creates a Notifier with a custom client, for tests
func NewWithClient(client PostMessageClient, channel string) *Notifier {
	return &Notifier{client: client, channel: channel}
}

// AnnounceRecap implements interfaces.Notifier
func (n *Notifier) AnnounceRecap(ctx context.Context, title, url string) error {
	text := fmt.Sprintf("%s is up: %s", title, url)

	_, ts, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post recap announcement",
			goerr.V("channel", n.channel))
	}

	ctxlog.From(ctx).Debug("recap announced",
		"channel", n.channel,
		"ts", ts,
	)
	return nil
}

var _ interfaces.Notifier = (*Notifier)(nil)
