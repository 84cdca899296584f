package scanner

import "github.com/bwmarrin/discordgo"

// MemberLister pages through the members of a guild.
type MemberLister interface {
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
}

// RoleEditor adds and removes member roles.
type RoleEditor interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// ChannelSender posts plain messages to a channel.
type ChannelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// GuildInspector looks up guild roles and channels.
type GuildInspector interface {
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// GuildAPI is everything a promotion run needs. *discordgo.Session satisfies it.
type GuildAPI interface {
	MemberLister
	RoleEditor
	ChannelSender
	GuildInspector
}

// Report counts the outcome of one promotion run.
type Report struct {
	Scanned      int
	Eligible     int
	Promoted     int
	Failed       int
	NotifyFailed int
}
