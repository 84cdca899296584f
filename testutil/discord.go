package testutil

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// RoleCall records one role add or remove request.
type RoleCall struct {
	GuildID string
	UserID  string
	RoleID  string
}

// SentMessage records one message sent to a channel.
type SentMessage struct {
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
	ReplyTo   string
}

// FakeDiscord is an in-memory stand-in for the discordgo REST calls the bot
// makes. Role changes are applied to the stored members, so a second scan sees
// the result of the first. Safe for concurrent use.
type FakeDiscord struct {
	mu sync.Mutex

	members  []*discordgo.Member
	roles    map[string]bool
	channels map[string]bool

	// Injected failures, keyed by user ID.
	RemoveErr map[string]error
	AddErr    map[string]error
	NotifyErr map[string]error
	ListErr   error

	// MaxPage caps the page size returned by GuildMembers when non-zero.
	MaxPage int

	Removed   []RoleCall
	Added     []RoleCall
	Sent      []SentMessage
	Replies   []SentMessage
	ListCalls int
}

// NewFakeDiscord creates a fake guild with the given role and channel IDs.
func NewFakeDiscord(roleIDs, channelIDs []string) *FakeDiscord {
	f := &FakeDiscord{
		roles:     make(map[string]bool),
		channels:  make(map[string]bool),
		RemoveErr: make(map[string]error),
		AddErr:    make(map[string]error),
		NotifyErr: make(map[string]error),
	}
	for _, id := range roleIDs {
		f.roles[id] = true
	}
	for _, id := range channelIDs {
		f.channels[id] = true
	}
	return f
}

// AddMember adds a member who joined at joinedAt holding roles.
func (f *FakeDiscord) AddMember(userID string, joinedAt time.Time, roles ...string) *FakeDiscord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = append(f.members, &discordgo.Member{
		User:     &discordgo.User{ID: userID, Username: "user" + userID},
		JoinedAt: joinedAt,
		Roles:    append([]string(nil), roles...),
	})
	return f
}

// MemberRoles returns the current roles of userID.
func (f *FakeDiscord) MemberRoles(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m := f.find(userID); m != nil {
		return append([]string(nil), m.Roles...)
	}
	return nil
}

// MutationCount is the number of role and message calls made so far.
func (f *FakeDiscord) MutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Removed) + len(f.Added) + len(f.Sent)
}

func (f *FakeDiscord) find(userID string) *discordgo.Member {
	for _, m := range f.members {
		if m.User.ID == userID {
			return m
		}
	}
	return nil
}

func (f *FakeDiscord) GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	if f.MaxPage > 0 && limit > f.MaxPage {
		limit = f.MaxPage
	}

	start := 0
	if after != "" {
		start = len(f.members)
		for i, m := range f.members {
			if m.User.ID == after {
				start = i + 1
				break
			}
		}
	}

	var page []*discordgo.Member
	for i := start; i < len(f.members) && len(page) < limit; i++ {
		m := *f.members[i]
		user := *m.User
		m.User = &user
		m.GuildID = guildID
		m.Roles = append([]string(nil), m.Roles...)
		page = append(page, &m)
	}
	return page, nil
}

func (f *FakeDiscord) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Removed = append(f.Removed, RoleCall{GuildID: guildID, UserID: userID, RoleID: roleID})
	if err := f.RemoveErr[userID]; err != nil {
		return err
	}
	m := f.find(userID)
	if m == nil {
		return fmt.Errorf("HTTP 404 Not Found: Unknown Member %s", userID)
	}
	kept := m.Roles[:0]
	for _, r := range m.Roles {
		if r != roleID {
			kept = append(kept, r)
		}
	}
	m.Roles = kept
	return nil
}

func (f *FakeDiscord) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Added = append(f.Added, RoleCall{GuildID: guildID, UserID: userID, RoleID: roleID})
	if err := f.AddErr[userID]; err != nil {
		return err
	}
	m := f.find(userID)
	if m == nil {
		return fmt.Errorf("HTTP 404 Not Found: Unknown Member %s", userID)
	}
	for _, r := range m.Roles {
		if r == roleID {
			return nil
		}
	}
	m.Roles = append(m.Roles, roleID)
	return nil
}

func (f *FakeDiscord) GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var roles []*discordgo.Role
	for id := range f.roles {
		roles = append(roles, &discordgo.Role{ID: id, Name: "role" + id})
	}
	return roles, nil
}

func (f *FakeDiscord) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.channels[channelID] {
		return nil, fmt.Errorf("HTTP 404 Not Found: Unknown Channel %s", channelID)
	}
	return &discordgo.Channel{ID: channelID, Type: discordgo.ChannelTypeGuildText}, nil
}

func (f *FakeDiscord) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentMessage{ChannelID: channelID, Content: content})
	for userID, err := range f.NotifyErr {
		if strings.Contains(content, "<@"+userID+">") {
			return nil, err
		}
	}
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *FakeDiscord) ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Replies = append(f.Replies, SentMessage{ChannelID: channelID, Content: content, ReplyTo: reference.MessageID})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *FakeDiscord) ChannelMessageSendEmbedReply(channelID string, embed *discordgo.MessageEmbed, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Replies = append(f.Replies, SentMessage{ChannelID: channelID, Embed: embed, ReplyTo: reference.MessageID})
	return &discordgo.Message{ChannelID: channelID}, nil
}

// LastReply returns the most recent reply content, or "" if none.
func (f *FakeDiscord) LastReply() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Replies) == 0 {
		return ""
	}
	return f.Replies[len(f.Replies)-1].Content
}
