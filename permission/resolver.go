package permission

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"sentinel-bot/model"
)

// ErrActorResolution signals that the guild or member needed for an
// authorization check is not present in the cache. Callers treat it as a
// retryable cache miss, never as a permission denial.
var ErrActorResolution = errors.New("guild or member not found in cache")

// Cache is the read-only guild state the resolver consumes.
type Cache interface {
	Guild(guildID string) (*discordgo.Guild, bool)
	Member(guildID, userID string) (*discordgo.Member, bool)
	CurrentMember(guildID string) (*discordgo.Member, bool)
}

// Resolver computes Actors from cached guild state. Channel-level overwrites
// are pre-resolved by the cache and do not participate here.
type Resolver struct {
	cache Cache
}

func NewResolver(cache Cache) *Resolver {
	return &Resolver{cache: cache}
}

// ResolveActor computes the effective permission bitset, owner flag and
// hierarchy rank for a member whose role ids are already known, for example
// from the interaction payload.
func (r *Resolver) ResolveActor(guildID, userID string, roleIDs []string) (model.Actor, error) {
	guild, ok := r.cache.Guild(guildID)
	if !ok {
		return model.Actor{}, fmt.Errorf("%w: guild %s", ErrActorResolution, guildID)
	}
	return resolveFromGuild(guild, userID, roleIDs), nil
}

// ResolveMember resolves an actor by looking the member up in the cache.
func (r *Resolver) ResolveMember(guildID, userID string) (model.Actor, error) {
	member, ok := r.cache.Member(guildID, userID)
	if !ok {
		return model.Actor{}, fmt.Errorf("%w: member %s in guild %s", ErrActorResolution, userID, guildID)
	}
	return r.ResolveActor(guildID, userID, member.Roles)
}

// ResolveCurrent resolves the bot's own actor in the guild.
func (r *Resolver) ResolveCurrent(guildID string) (model.Actor, error) {
	member, ok := r.cache.CurrentMember(guildID)
	if !ok {
		return model.Actor{}, fmt.Errorf("%w: current member in guild %s", ErrActorResolution, guildID)
	}
	var userID string
	if member.User != nil {
		userID = member.User.ID
	}
	return r.ResolveActor(guildID, userID, member.Roles)
}

// resolveFromGuild unions the @everyone base permissions with the member's
// role permissions. The guild owner and ADMINISTRATOR holders get every
// permission. The hierarchy rank is the position of the highest assigned
// role; a member with no roles ranks at the @everyone position.
func resolveFromGuild(guild *discordgo.Guild, userID string, roleIDs []string) model.Actor {
	actor := model.Actor{
		UserID:  userID,
		IsOwner: guild.OwnerID == userID,
	}
	var permissions int64
	rank := 0
	for _, role := range guild.Roles {
		if role.ID == guild.ID {
			// @everyone
			permissions |= role.Permissions
			continue
		}
		for _, id := range roleIDs {
			if id != role.ID {
				continue
			}
			permissions |= role.Permissions
			if role.Position > rank {
				rank = role.Position
			}
			break
		}
	}
	if actor.IsOwner || permissions&discordgo.PermissionAdministrator != 0 {
		permissions = discordgo.PermissionAll
	}
	actor.Permissions = permissions
	actor.HierarchyRank = rank
	return actor
}
