// Package platform adapts the Discord session into the narrow capability
// interfaces the sanction workflow consumes: the guild state cache, the
// enforcement dispatcher and the notification dispatcher.
package platform

import (
	"github.com/bwmarrin/discordgo"
)

// SessionCache exposes the gateway session's state cache for permission
// resolution.
type SessionCache struct {
	session *discordgo.Session
}

func NewSessionCache(session *discordgo.Session) *SessionCache {
	return &SessionCache{session: session}
}

func (c *SessionCache) Guild(guildID string) (*discordgo.Guild, bool) {
	guild, err := c.session.State.Guild(guildID)
	if err != nil {
		return nil, false
	}
	return guild, true
}

func (c *SessionCache) Member(guildID, userID string) (*discordgo.Member, bool) {
	member, err := c.session.State.Member(guildID, userID)
	if err == nil && member != nil {
		return member, true
	}
	// State miss, fall back to the REST API.
	member, err = c.session.GuildMember(guildID, userID)
	if err != nil {
		return nil, false
	}
	return member, true
}

func (c *SessionCache) CurrentMember(guildID string) (*discordgo.Member, bool) {
	if c.session.State.User == nil {
		return nil, false
	}
	return c.Member(guildID, c.session.State.User.ID)
}
