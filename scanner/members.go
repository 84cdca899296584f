package scanner

import (
	"fmt"
	"iter"
	"time"

	"ravenhold-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// memberPageSize is the largest page the members endpoint serves.
const memberPageSize = 1000

// FetchMembers lists every member of the guild.
func FetchMembers(api MemberLister, guildID string) ([]*discordgo.Member, error) {
	return fetchMembers(api, guildID, memberPageSize)
}

func fetchMembers(api MemberLister, guildID string, pageSize int) ([]*discordgo.Member, error) {
	var (
		members []*discordgo.Member
		after   string
	)
	for {
		page, err := api.GuildMembers(guildID, after, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of guild %s after %q: %w", guildID, after, err)
		}
		members = append(members, page...)
		if len(page) < pageSize {
			return members, nil
		}

		last := page[len(page)-1]
		if last.User == nil || last.User.ID == after {
			return members, nil
		}
		after = last.User.ID
	}
}

// IsEligible reports whether m has been a member for at least threshold at now.
// Both timestamps are converted to loc before they are compared.
func IsEligible(m *discordgo.Member, threshold time.Duration, now time.Time, loc *time.Location) bool {
	if m == nil || m.User == nil || m.JoinedAt.IsZero() {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	age := now.In(loc).Sub(m.JoinedAt.In(loc))
	return age >= threshold
}

// Eligible yields the members that still hold oldRoleID and are old enough.
// Filtering on the old role makes a repeated run a no-op for members already
// promoted.
func Eligible(members []*discordgo.Member, threshold time.Duration, now time.Time, loc *time.Location, oldRoleID string) iter.Seq[*discordgo.Member] {
	return func(yield func(*discordgo.Member) bool) {
		for _, m := range members {
			if m == nil || !utils.HasRole(m.Roles, oldRoleID) {
				continue
			}
			if !IsEligible(m, threshold, now, loc) {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}
