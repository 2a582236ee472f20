package optlabslack

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bcdannyboy/optlab/config"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"
)

var ErrMissingToken = errors.New("slack app and bot tokens are required")

// commandTimeout bounds one slash command, mostly the Monte Carlo ones.
const commandTimeout = 2 * time.Minute

type Bot struct {
	client       *slack.Client
	socketClient *socketmode.Client
	commands     *Commands
	logger       *zap.Logger
}

func NewBot(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	if cfg.Slack.AppToken == "" || cfg.Slack.BotToken == "" {
		return nil, ErrMissingToken
	}

	client := slack.New(
		cfg.Slack.BotToken,
		slack.OptionAppLevelToken(cfg.Slack.AppToken),
	)

	socketClient := socketmode.New(
		client,
		socketmode.OptionDebug(logger.Core().Enabled(zap.DebugLevel)),
		socketmode.OptionLog(zap.NewStdLog(logger.Named("socketmode"))),
	)

	return &Bot{
		client:       client,
		socketClient: socketClient,
		commands:     NewCommands(cfg),
		logger:       logger,
	}, nil
}

// Run serves slash commands until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-b.socketClient.Events:
				if !ok {
					return
				}
				if evt.Type == socketmode.EventTypeSlashCommand {
					b.handle(ctx, evt)
				}
			}
		}
	}()

	return b.socketClient.RunContext(ctx)
}

func (b *Bot) handle(ctx context.Context, evt socketmode.Event) {
	cmd, ok := evt.Data.(slack.SlashCommand)
	if !ok {
		b.logger.Warn("unexpected slash command payload", zap.Any("data", evt.Data))
		return
	}
	if evt.Request != nil {
		b.socketClient.Ack(*evt.Request)
	}

	go func() {
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()

		log := b.logger.With(zap.String("command", cmd.Command), zap.String("user", cmd.UserID))
		log.Info("slash command", zap.String("text", cmd.Text))

		reply, err := b.commands.Dispatch(ctx, cmd)
		if err != nil {
			log.Warn("command failed", zap.Error(err))
			reply = fmt.Sprintf("Error: %v", err)
		}
		if _, _, err := b.client.PostMessageContext(ctx, cmd.ChannelID, slack.MsgOptionText(reply, false)); err != nil {
			log.Error("failed to post reply", zap.Error(err))
		}
	}()
}
