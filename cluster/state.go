// Package cluster bundles the shared collaborators handed to the sanction
// workflow. The bundle is read-mostly: it is built once at startup and
// injected, never mutated by the workflow.
package cluster

import (
	"context"

	"sentinel-bot/model"
	"sentinel-bot/permission"
	"sentinel-bot/store"
)

// Store is the persistent-store capability: the per-guild moderation policy,
// created with defaults when absent, and the append-only modlog.
type Store interface {
	GuildPolicy(ctx context.Context, guildID string) (model.GuildPolicy, error)
	AddModlogEntry(ctx context.Context, entry model.ModlogEntry) error
	ModlogEntriesForUser(ctx context.Context, guildID, userID string) ([]model.ModlogEntry, error)
}

// Enforcer dispatches the platform action for a sanction request.
type Enforcer interface {
	Apply(ctx context.Context, req *model.SanctionRequest) error
}

// Notifier delivers post-enforcement notifications. Each call is
// independently fallible and best-effort.
type Notifier interface {
	NotifyTarget(ctx context.Context, req *model.SanctionRequest) error
	NotifyLogChannel(ctx context.Context, req *model.SanctionRequest, policy model.GuildPolicy, history []model.ModlogEntry) error
	NotifyAuthor(ctx context.Context, req *model.SanctionRequest) error
}

// State holds the shared cache, stores and dispatchers.
type State struct {
	cache    permission.Cache
	store    Store
	pending  store.Pending
	enforcer Enforcer
	notifier Notifier
}

func NewState(cache permission.Cache, st Store, pending store.Pending, enforcer Enforcer, notifier Notifier) *State {
	return &State{
		cache:    cache,
		store:    st,
		pending:  pending,
		enforcer: enforcer,
		notifier: notifier,
	}
}

func (s *State) Cache() permission.Cache {
	return s.cache
}

func (s *State) Store() Store {
	return s.store
}

func (s *State) Pending() store.Pending {
	return s.pending
}

func (s *State) Enforcer() Enforcer {
	return s.enforcer
}

func (s *State) Notifier() Notifier {
	return s.notifier
}
