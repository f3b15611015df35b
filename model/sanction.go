package model

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// SanctionKind identifies a moderation enforcement action.
type SanctionKind string

const (
	SanctionKick SanctionKind = "kick"
	SanctionBan  SanctionKind = "ban"
	SanctionMute SanctionKind = "mute"
	SanctionWarn SanctionKind = "warn"
)

// Valid reports whether k is a known sanction kind.
func (k SanctionKind) Valid() bool {
	switch k {
	case SanctionKick, SanctionBan, SanctionMute, SanctionWarn:
		return true
	}
	return false
}

// RequiredPermissions returns the permission bits the bot must hold to
// enforce this kind. Warnings piggyback on the kick permission, matching the
// default member permissions of the warn command.
func (k SanctionKind) RequiredPermissions() int64 {
	switch k {
	case SanctionBan:
		return discordgo.PermissionBanMembers
	case SanctionMute:
		return discordgo.PermissionModerateMembers
	default:
		return discordgo.PermissionKickMembers
	}
}

// PendingSanction is the coordination record bridging a sanction command and
// the reason modal submitted later, possibly on another instance. It is
// created only after authorization succeeds and consumed exactly once.
type PendingSanction struct {
	Kind           SanctionKind `json:"kind"`
	TargetID       string       `json:"target_id"`
	TargetUsername string       `json:"target_username"`
	CreatedAt      time.Time    `json:"created_at"`
}

// SanctionRequest is a finalized, validated instruction to enforce a
// sanction. It is built only after reason collection completes.
type SanctionRequest struct {
	Kind           SanctionKind
	GuildID        string
	TargetID       string
	TargetUsername string
	AuthorID       string
	AuthorUsername string
	Reason         string
	Notes          string
	IssuedAt       time.Time
}

// GuildPolicy is the per-guild moderation policy record.
type GuildPolicy struct {
	GuildID       string `db:"guild_id"`
	EnforceReason bool   `db:"enforce_reason"`
	LogChannelID  string `db:"log_channel_id"`
}
