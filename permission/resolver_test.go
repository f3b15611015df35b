package permission

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	guilds  map[string]*discordgo.Guild
	members map[string]*discordgo.Member
	botID   string
}

func (c *fakeCache) Guild(guildID string) (*discordgo.Guild, bool) {
	g, ok := c.guilds[guildID]
	return g, ok
}

func (c *fakeCache) Member(guildID, userID string) (*discordgo.Member, bool) {
	m, ok := c.members[guildID+"/"+userID]
	return m, ok
}

func (c *fakeCache) CurrentMember(guildID string) (*discordgo.Member, bool) {
	return c.Member(guildID, c.botID)
}

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "guild-1",
		OwnerID: "owner-1",
		Roles: []*discordgo.Role{
			{ID: "guild-1", Position: 0, Permissions: discordgo.PermissionViewChannel},
			{ID: "role-mod", Position: 5, Permissions: discordgo.PermissionKickMembers | discordgo.PermissionBanMembers},
			{ID: "role-helper", Position: 2, Permissions: discordgo.PermissionManageMessages},
			{ID: "role-admin", Position: 8, Permissions: discordgo.PermissionAdministrator},
		},
	}
}

func newTestResolver() (*Resolver, *fakeCache) {
	cache := &fakeCache{
		guilds:  map[string]*discordgo.Guild{"guild-1": testGuild()},
		members: map[string]*discordgo.Member{},
		botID:   "bot-1",
	}
	return NewResolver(cache), cache
}

func TestResolveActorUnionsRolePermissions(t *testing.T) {
	r, _ := newTestResolver()

	a, err := r.ResolveActor("guild-1", "user-1", []string{"role-mod", "role-helper"})
	require.NoError(t, err)

	want := int64(discordgo.PermissionViewChannel | discordgo.PermissionKickMembers |
		discordgo.PermissionBanMembers | discordgo.PermissionManageMessages)
	assert.Equal(t, want, a.Permissions)
	assert.Equal(t, 5, a.HierarchyRank)
	assert.False(t, a.IsOwner)
}

func TestResolveActorNoRoles(t *testing.T) {
	r, _ := newTestResolver()

	a, err := r.ResolveActor("guild-1", "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(discordgo.PermissionViewChannel), a.Permissions)
	assert.Equal(t, 0, a.HierarchyRank)
}

func TestResolveActorAdministratorImpliesAll(t *testing.T) {
	r, _ := newTestResolver()

	a, err := r.ResolveActor("guild-1", "user-1", []string{"role-admin"})
	require.NoError(t, err)

	assert.Equal(t, int64(discordgo.PermissionAll), a.Permissions)
	assert.Equal(t, 8, a.HierarchyRank)
}

func TestResolveActorOwner(t *testing.T) {
	r, _ := newTestResolver()

	a, err := r.ResolveActor("guild-1", "owner-1", nil)
	require.NoError(t, err)

	assert.True(t, a.IsOwner)
	assert.Equal(t, int64(discordgo.PermissionAll), a.Permissions)
}

func TestResolveActorGuildMiss(t *testing.T) {
	r, _ := newTestResolver()

	_, err := r.ResolveActor("guild-2", "user-1", nil)
	assert.ErrorIs(t, err, ErrActorResolution)
}

func TestResolveMember(t *testing.T) {
	r, cache := newTestResolver()
	cache.members["guild-1/user-2"] = &discordgo.Member{Roles: []string{"role-mod"}}

	a, err := r.ResolveMember("guild-1", "user-2")
	require.NoError(t, err)
	assert.Equal(t, 5, a.HierarchyRank)

	_, err = r.ResolveMember("guild-1", "user-3")
	assert.ErrorIs(t, err, ErrActorResolution)
}

func TestResolveCurrent(t *testing.T) {
	r, cache := newTestResolver()
	cache.members["guild-1/bot-1"] = &discordgo.Member{
		User:  &discordgo.User{ID: "bot-1"},
		Roles: []string{"role-mod"},
	}

	a, err := r.ResolveCurrent("guild-1")
	require.NoError(t, err)
	assert.Equal(t, "bot-1", a.UserID)
	assert.Equal(t, 5, a.HierarchyRank)
	assert.True(t, a.HasPermissions(discordgo.PermissionBanMembers))
}
