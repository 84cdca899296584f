package bot

import (
	"fmt"

	"ravenhold-bot/model"
	"ravenhold-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

type Bot struct {
	Session *discordgo.Session
	config  *model.Config
	logger  zerolog.Logger
}

func (b *Bot) GetConfig() *model.Config {
	return b.config
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetLogger() zerolog.Logger {
	return b.logger
}

func New(cfg *model.Config, logger zerolog.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	// Members is privileged and must be enabled for the application.
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	dg.StateEnabled = false

	return &Bot{
		Session: dg,
		config:  cfg,
		logger:  logger,
	}, nil
}

func (b *Bot) Close() {
	utils.LogInfo(b.logger, "System", "Shutdown", "Gracefully shutting down.")
	if err := b.Session.Close(); err != nil {
		b.logger.Error().Err(err).Msg("Error closing session")
	}
}
