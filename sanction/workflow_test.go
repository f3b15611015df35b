package sanction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-bot/cluster"
	"sentinel-bot/model"
	"sentinel-bot/permission"
	"sentinel-bot/store"
)

const (
	modPerms = int64(discordgo.PermissionKickMembers |
		discordgo.PermissionBanMembers |
		discordgo.PermissionModerateMembers)
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

type fakeStore struct {
	policy  model.GuildPolicy
	entries []model.ModlogEntry
	addErr  error
}

func (s *fakeStore) GuildPolicy(_ context.Context, guildID string) (model.GuildPolicy, error) {
	policy := s.policy
	policy.GuildID = guildID
	return policy, nil
}

func (s *fakeStore) AddModlogEntry(_ context.Context, entry model.ModlogEntry) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeStore) ModlogEntriesForUser(_ context.Context, guildID, userID string) ([]model.ModlogEntry, error) {
	var entries []model.ModlogEntry
	for _, e := range s.entries {
		if e.GuildID == guildID && e.TargetID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type fakeEnforcer struct {
	applied []*model.SanctionRequest
	err     error
}

func (e *fakeEnforcer) Apply(_ context.Context, req *model.SanctionRequest) error {
	if e.err != nil {
		return e.err
	}
	e.applied = append(e.applied, req)
	return nil
}

type fakeNotifier struct {
	targets, logs, authors int
	err                    error
}

func (n *fakeNotifier) NotifyTarget(_ context.Context, _ *model.SanctionRequest) error {
	n.targets++
	return n.err
}

func (n *fakeNotifier) NotifyLogChannel(_ context.Context, _ *model.SanctionRequest, _ model.GuildPolicy, _ []model.ModlogEntry) error {
	n.logs++
	return n.err
}

func (n *fakeNotifier) NotifyAuthor(_ context.Context, _ *model.SanctionRequest) error {
	n.authors++
	return n.err
}

type fixture struct {
	workflow *Workflow
	cache    *fakeCache
	store    *fakeStore
	pending  *store.Memory
	enforcer *fakeEnforcer
	notifier *fakeNotifier
}

func newFixture() *fixture {
	guild := &discordgo.Guild{
		ID:      "guild-1",
		OwnerID: "owner-1",
		Roles: []*discordgo.Role{
			{ID: "guild-1", Position: 0},
			{ID: "role-low", Position: 1},
			{ID: "role-mod", Position: 5},
			{ID: "role-weakbot", Position: 6, Permissions: modPerms},
			{ID: "role-high", Position: 7},
			{ID: "role-senior", Position: 9},
			{ID: "role-bot", Position: 10, Permissions: modPerms},
		},
	}
	cache := &fakeCache{
		guilds: map[string]*discordgo.Guild{"guild-1": guild},
		members: map[string]*discordgo.Member{
			"guild-1/bot-1": {User: &discordgo.User{ID: "bot-1"}, Roles: []string{"role-bot"}},
		},
		botID: "bot-1",
	}
	st := &fakeStore{}
	pending := store.NewMemory(time.Minute)
	enforcer := &fakeEnforcer{}
	notifier := &fakeNotifier{}

	state := cluster.NewState(cache, st, pending, enforcer, notifier)
	return &fixture{
		workflow: NewWorkflow(state),
		cache:    cache,
		store:    st,
		pending:  pending,
		enforcer: enforcer,
		notifier: notifier,
	}
}

func testUser(id, username string) *discordgo.User {
	return &discordgo.User{ID: id, Username: username}
}

func commandContext(kind, interactionID, reason string, target *discordgo.User, member *discordgo.Member) *model.CommandContext {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "member", Type: discordgo.ApplicationCommandOptionUser, Value: target.ID},
	}
	if reason != "" {
		options = append(options, &discordgo.ApplicationCommandInteractionDataOption{
			Name: "reason", Type: discordgo.ApplicationCommandOptionString, Value: reason,
		})
	}
	resolved := &discordgo.ApplicationCommandInteractionDataResolved{
		Users:   map[string]*discordgo.User{target.ID: target},
		Members: map[string]*discordgo.Member{},
	}
	if member != nil {
		resolved.Members[target.ID] = member
	}
	return &model.CommandContext{
		ID:        interactionID,
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		User:      testUser("author-1", "mod"),
		Member:    &discordgo.Member{Roles: []string{"role-mod"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name:     kind,
			Options:  options,
			Resolved: resolved,
		},
	}
}

func modalContext(customID, reason, notes string) *model.ModalContext {
	return &model.ModalContext{
		ID:       "modal-int-1",
		GuildID:  "guild-1",
		User:     testUser("author-1", "mod"),
		Member:   &discordgo.Member{Roles: []string{"role-mod"}},
		CustomID: customID,
		Reason:   reason,
		Notes:    notes,
	}
}

func lowTarget() (*discordgo.User, *discordgo.Member) {
	return testUser("target-1", "troublemaker"), &discordgo.Member{Roles: []string{"role-low"}}
}

func TestHandleCommandInlineReason(t *testing.T) {
	f := newFixture()
	target, member := lowTarget()
	cc := commandContext("kick", "int-1", "spamming", target, member)

	resp, err := f.workflow.HandleCommand(context.Background(), cc)
	require.NoError(t, err)

	assert.Equal(t, ResponseMessage, resp.Kind)
	assert.True(t, resp.Ephemeral)
	assert.Contains(t, resp.Content, "Kicked")

	require.Len(t, f.enforcer.applied, 1)
	assert.Equal(t, model.SanctionKick, f.enforcer.applied[0].Kind)
	assert.Equal(t, "spamming", f.enforcer.applied[0].Reason)

	require.Len(t, f.store.entries, 1)
	assert.Equal(t, model.OutcomeEnforced, f.store.entries[0].Outcome)

	// No pending record is created on the inline path.
	_, err = f.pending.Consume(context.Background(), store.Key("int-1"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHandleCommandModalRoundTrip(t *testing.T) {
	f := newFixture()
	target, member := lowTarget()
	cc := commandContext("ban", "int-1", "", target, member)

	resp, err := f.workflow.HandleCommand(context.Background(), cc)
	require.NoError(t, err)

	require.Equal(t, ResponseModal, resp.Kind)
	require.NotNil(t, resp.Modal)
	assert.Equal(t, "sanction:int-1", resp.Modal.CustomID)
	assert.False(t, resp.Modal.RequireReason)
	assert.Contains(t, resp.Modal.Title, "Ban")
	assert.Empty(t, f.enforcer.applied)

	resp, err = f.workflow.HandleModalSubmit(context.Background(),
		modalContext("sanction:int-1", "raiding", "second offense"))
	require.NoError(t, err)

	assert.Equal(t, ResponseMessage, resp.Kind)
	assert.Contains(t, resp.Content, "Banned")

	require.Len(t, f.enforcer.applied, 1)
	assert.Equal(t, model.SanctionBan, f.enforcer.applied[0].Kind)
	assert.Equal(t, "raiding", f.enforcer.applied[0].Reason)
	assert.Equal(t, "second offense", f.enforcer.applied[0].Notes)
	require.Len(t, f.store.entries, 1)

	// The record was consumed: a replayed submission expires.
	resp, err = f.workflow.HandleModalSubmit(context.Background(),
		modalContext("sanction:int-1", "raiding", ""))
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "expired")
	assert.Len(t, f.enforcer.applied, 1)
}

func TestHandleCommandEnforceReasonRequired(t *testing.T) {
	f := newFixture()
	f.store.policy.EnforceReason = true
	target, member := lowTarget()

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("warn", "int-1", "", target, member))
	require.NoError(t, err)
	require.Equal(t, ResponseModal, resp.Kind)
	assert.True(t, resp.Modal.RequireReason)

	// An empty reason is rejected before enforcement.
	resp, err = f.workflow.HandleModalSubmit(context.Background(),
		modalContext("sanction:int-1", "   ", "notes only"))
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "reason is required")
	assert.Empty(t, f.enforcer.applied)
	assert.Empty(t, f.store.entries)
}

func TestHandleCommandDeniedTargetOwner(t *testing.T) {
	f := newFixture()
	target := testUser("owner-1", "boss")
	member := &discordgo.Member{Roles: []string{"role-low"}}

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("kick", "int-1", "nope", target, member))
	require.NoError(t, err)

	assert.Contains(t, resp.Content, "owner")
	assert.Empty(t, f.enforcer.applied)
	assert.Empty(t, f.store.entries)
}

func TestHandleCommandDeniedBotMissingPermission(t *testing.T) {
	f := newFixture()
	// Bot with rank but no moderation permissions.
	f.cache.members["guild-1/bot-1"] = &discordgo.Member{
		User:  &discordgo.User{ID: "bot-1"},
		Roles: []string{"role-high"},
	}
	target, member := lowTarget()

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("ban", "int-1", "spam", target, member))
	require.NoError(t, err)

	assert.Contains(t, resp.Content, "missing the permissions")
	assert.Empty(t, f.enforcer.applied)
}

func TestHandleCommandDeniedEqualRank(t *testing.T) {
	f := newFixture()
	target := testUser("target-1", "peer")
	member := &discordgo.Member{Roles: []string{"role-mod"}} // same rank as author

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("ban", "int-1", "spam", target, member))
	require.NoError(t, err)

	assert.Contains(t, resp.Content, "at or above yours")
	assert.Empty(t, f.enforcer.applied)
}

func TestHandleCommandDeniedBotHierarchy(t *testing.T) {
	f := newFixture()
	// Author outranks the target, but the bot does not.
	f.cache.members["guild-1/bot-1"] = &discordgo.Member{
		User:  &discordgo.User{ID: "bot-1"},
		Roles: []string{"role-weakbot"},
	}
	cc := commandContext("kick", "int-1", "spam",
		testUser("target-1", "highroller"), &discordgo.Member{Roles: []string{"role-high"}})
	cc.Member = &discordgo.Member{Roles: []string{"role-senior"}}

	resp, err := f.workflow.HandleCommand(context.Background(), cc)
	require.NoError(t, err)

	assert.Contains(t, resp.Content, "not above theirs")
	assert.Empty(t, f.enforcer.applied)
}

func TestHandleCommandTargetNotMember(t *testing.T) {
	f := newFixture()
	target := testUser("target-1", "stranger")

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("kick", "int-1", "spam", target, nil))
	require.NoError(t, err)

	assert.Contains(t, resp.Content, "not a member")
	assert.Empty(t, f.enforcer.applied)
}

func TestHandleCommandCacheMiss(t *testing.T) {
	f := newFixture()
	delete(f.cache.guilds, "guild-1")
	target, member := lowTarget()

	_, err := f.workflow.HandleCommand(context.Background(),
		commandContext("kick", "int-1", "spam", target, member))
	require.Error(t, err)
	assert.ErrorIs(t, err, permission.ErrActorResolution)
}

func TestHandleCommandDuplicateDelivery(t *testing.T) {
	f := newFixture()
	target, member := lowTarget()
	require.NoError(t, f.pending.Create(context.Background(), store.Key("int-1"), model.PendingSanction{
		Kind:     model.SanctionKick,
		TargetID: target.ID,
	}))

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("kick", "int-1", "", target, member))
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "expired")
}

func TestEnforcementFailure(t *testing.T) {
	f := newFixture()
	f.enforcer.err = errors.New("missing access")
	target, member := lowTarget()

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("ban", "int-1", "spam", target, member))
	require.NoError(t, err)

	assert.Contains(t, resp.Content, "Failed to ban")
	assert.Empty(t, f.store.entries)
	assert.Zero(t, f.notifier.targets)
}

func TestNotificationFailuresDoNotRollBack(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("cannot send messages to this user")
	target, member := lowTarget()

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("mute", "int-1", "spam", target, member))
	require.NoError(t, err)

	// Enforcement and the audit entry stand; every notification was still
	// attempted.
	assert.Contains(t, resp.Content, "Muted")
	require.Len(t, f.store.entries, 1)
	assert.Equal(t, 1, f.notifier.targets)
	assert.Equal(t, 1, f.notifier.logs)
	assert.Equal(t, 1, f.notifier.authors)
}

func TestModlogWriteFailureStillNotifies(t *testing.T) {
	f := newFixture()
	f.store.addErr = errors.New("disk full")
	target, member := lowTarget()

	resp, err := f.workflow.HandleCommand(context.Background(),
		commandContext("warn", "int-1", "spam", target, member))
	require.NoError(t, err)

	assert.Contains(t, resp.Content, "Warned")
	assert.Equal(t, 1, f.notifier.targets)
}
