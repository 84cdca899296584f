package scanner

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// MentionPlaceholder is replaced by the member mention in the message template.
const MentionPlaceholder = "{mention}"

// Notifier announces promotions in the configured channel.
type Notifier struct {
	api       ChannelSender
	channelID string
	template  string
	logger    zerolog.Logger
}

func NewNotifier(api ChannelSender, channelID, template string, logger zerolog.Logger) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		template:  template,
		logger:    logger.With().Str("module", "Notifier").Logger(),
	}
}

// Render fills the template for m. Templates without the placeholder get the
// mention prepended.
func (n *Notifier) Render(m *discordgo.Member) string {
	mention := m.User.Mention()
	if strings.Contains(n.template, MentionPlaceholder) {
		return strings.ReplaceAll(n.template, MentionPlaceholder, mention)
	}
	return mention + ", " + n.template
}

// Notify sends the congratulation for m.
func (n *Notifier) Notify(m *discordgo.Member) error {
	if _, err := n.api.ChannelMessageSend(n.channelID, n.Render(m)); err != nil {
		n.logger.Error().Err(err).Str("user_id", m.User.ID).Str("channel_id", n.channelID).Msg("Failed to send congratulation")
		return fmt.Errorf("failed to notify channel %s about user %s: %w", n.channelID, m.User.ID, err)
	}
	return nil
}
