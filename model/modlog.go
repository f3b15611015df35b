package model

// Modlog outcomes.
const (
	OutcomeEnforced = "enforced"
)

// ModlogEntry is an append-only audit record of an enforced sanction.
// The database table is named 'modlog'.
type ModlogEntry struct {
	ID             int64  `db:"modlog_id"` // Primary Key, Auto-increment
	GuildID        string `db:"guild_id"`
	Kind           string `db:"kind"`
	TargetID       string `db:"target_id"`
	TargetUsername string `db:"target_username"`
	AuthorID       string `db:"author_id"`
	Reason         string `db:"reason"`
	Notes          string `db:"notes"`
	Timestamp      int64  `db:"timestamp"`
	Outcome        string `db:"outcome"`
}

// NewModlogEntry builds the audit record for an enforced sanction request.
func NewModlogEntry(req *SanctionRequest) ModlogEntry {
	return ModlogEntry{
		GuildID:        req.GuildID,
		Kind:           string(req.Kind),
		TargetID:       req.TargetID,
		TargetUsername: req.TargetUsername,
		AuthorID:       req.AuthorID,
		Reason:         req.Reason,
		Notes:          req.Notes,
		Timestamp:      req.IssuedAt.Unix(),
		Outcome:        OutcomeEnforced,
	}
}
