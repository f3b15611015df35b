package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"sentinel-bot/model"
)

// Enforcer applies sanctions through the Discord REST API.
type Enforcer struct {
	session      *discordgo.Session
	muteDuration time.Duration
}

func NewEnforcer(session *discordgo.Session, muteDuration time.Duration) *Enforcer {
	if muteDuration <= 0 {
		muteDuration = time.Hour
	}
	return &Enforcer{session: session, muteDuration: muteDuration}
}

func (e *Enforcer) Apply(_ context.Context, req *model.SanctionRequest) error {
	switch req.Kind {
	case model.SanctionKick:
		return e.session.GuildMemberDeleteWithReason(req.GuildID, req.TargetID, req.Reason)
	case model.SanctionBan:
		return e.session.GuildBanCreateWithReason(req.GuildID, req.TargetID, req.Reason, 0)
	case model.SanctionMute:
		until := req.IssuedAt.Add(e.muteDuration)
		return e.session.GuildMemberTimeout(req.GuildID, req.TargetID, &until)
	case model.SanctionWarn:
		// Warnings have no platform action; the modlog entry and the
		// notifications are the whole effect.
		return nil
	}
	return fmt.Errorf("unknown sanction kind %q", req.Kind)
}
