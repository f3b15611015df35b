package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"sentinel-bot/model"
)

// Store wraps the sqlite database holding the append-only modlog and the
// per-guild moderation policy.
type Store struct {
	db *sqlx.DB
}

// Open connects to the sqlite database and ensures the tables exist.
func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to moderation database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS modlog (
	          modlog_id INTEGER PRIMARY KEY AUTOINCREMENT,
	          guild_id TEXT NOT NULL,
	          kind TEXT NOT NULL,
	          target_id TEXT NOT NULL,
	          target_username TEXT NOT NULL,
	          author_id TEXT NOT NULL,
	          reason TEXT NOT NULL,
	          notes TEXT NOT NULL,
	          timestamp INTEGER NOT NULL,
	          outcome TEXT NOT NULL
	      );
	      CREATE INDEX IF NOT EXISTS idx_modlog_guild_target ON modlog (guild_id, target_id);
	      CREATE TABLE IF NOT EXISTS guild_policies (
	          guild_id TEXT PRIMARY KEY,
	          enforce_reason INTEGER NOT NULL DEFAULT 0,
	          log_channel_id TEXT NOT NULL DEFAULT ''
	      );`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create moderation tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddModlogEntry appends an audit record. Entries are never updated or
// deleted.
func (s *Store) AddModlogEntry(ctx context.Context, entry model.ModlogEntry) error {
	query := `INSERT INTO modlog (guild_id, kind, target_id, target_username, author_id, reason, notes, timestamp, outcome)
	          VALUES (:guild_id, :kind, :target_id, :target_username, :author_id, :reason, :notes, :timestamp, :outcome)`
	if _, err := s.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to insert modlog entry: %w", err)
	}
	return nil
}

// ModlogEntriesForUser retrieves a user's audit records in a guild, oldest
// first.
func (s *Store) ModlogEntriesForUser(ctx context.Context, guildID, userID string) ([]model.ModlogEntry, error) {
	var entries []model.ModlogEntry
	query := "SELECT * FROM modlog WHERE guild_id = ? AND target_id = ? ORDER BY timestamp"
	if err := s.db.SelectContext(ctx, &entries, query, guildID, userID); err != nil {
		return nil, fmt.Errorf("failed to get modlog entries for user %s: %w", userID, err)
	}
	return entries, nil
}

// ModlogEntriesForGuild retrieves all audit records for a guild, oldest
// first.
func (s *Store) ModlogEntriesForGuild(ctx context.Context, guildID string) ([]model.ModlogEntry, error) {
	var entries []model.ModlogEntry
	query := "SELECT * FROM modlog WHERE guild_id = ? ORDER BY timestamp"
	if err := s.db.SelectContext(ctx, &entries, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to get modlog entries for guild %s: %w", guildID, err)
	}
	return entries, nil
}
