package utils

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// MessageSender is the part of *discordgo.Session used to answer prefix commands.
type MessageSender interface {
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbedReply(channelID string, embed *discordgo.MessageEmbed, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// SendReply answers the command message in its own channel.
func SendReply(s MessageSender, logger zerolog.Logger, channelID, messageID, message string) {
	_, err := s.ChannelMessageSendReply(channelID, message, reference(channelID, messageID))
	if err != nil {
		logger.Error().Err(err).Str("channel_id", channelID).Msg("Error sending reply")
	}
}

// SendErrorReply sends a reply prefixed with an error marker.
func SendErrorReply(s MessageSender, logger zerolog.Logger, channelID, messageID, message string) {
	SendReply(s, logger, channelID, messageID, "❌ "+message)
}

// SendEmbedReply answers the command message with an embed.
func SendEmbedReply(s MessageSender, logger zerolog.Logger, channelID, messageID string, embed *discordgo.MessageEmbed) {
	_, err := s.ChannelMessageSendEmbedReply(channelID, embed, reference(channelID, messageID))
	if err != nil {
		logger.Error().Err(err).Str("channel_id", channelID).Msg("Error sending embed reply")
	}
}

func reference(channelID, messageID string) *discordgo.MessageReference {
	return &discordgo.MessageReference{ChannelID: channelID, MessageID: messageID}
}
