package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sentinel-bot/model"
)

// GuildPolicy returns the guild's moderation policy, creating the default
// record (reason optional, no log channel) when the guild has none yet.
func (s *Store) GuildPolicy(ctx context.Context, guildID string) (model.GuildPolicy, error) {
	var policy model.GuildPolicy
	err := s.db.GetContext(ctx, &policy, "SELECT * FROM guild_policies WHERE guild_id = ?", guildID)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO guild_policies (guild_id) VALUES (?)", guildID); err != nil {
			return model.GuildPolicy{}, fmt.Errorf("failed to create default policy for guild %s: %w", guildID, err)
		}
		return model.GuildPolicy{GuildID: guildID}, nil
	}
	if err != nil {
		return model.GuildPolicy{}, fmt.Errorf("failed to get policy for guild %s: %w", guildID, err)
	}
	return policy, nil
}

// SetGuildPolicy upserts the guild's moderation policy.
func (s *Store) SetGuildPolicy(ctx context.Context, policy model.GuildPolicy) error {
	query := `INSERT INTO guild_policies (guild_id, enforce_reason, log_channel_id)
	          VALUES (:guild_id, :enforce_reason, :log_channel_id)
	          ON CONFLICT(guild_id) DO UPDATE SET
	              enforce_reason = excluded.enforce_reason,
	              log_channel_id = excluded.log_channel_id`
	if _, err := s.db.NamedExecContext(ctx, query, policy); err != nil {
		return fmt.Errorf("failed to set policy for guild %s: %w", policy.GuildID, err)
	}
	return nil
}
