package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"sentinel-bot/model"
)

// Notifier delivers DMs and log-channel embeds after a sanction has been
// enforced. Every method is best-effort; the caller logs and continues.
type Notifier struct {
	session *discordgo.Session
}

func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// NotifyTarget sends the sanctioned user a DM with the reason. Fails when
// the user has DMs disabled, which the caller treats as non-fatal.
func (n *Notifier) NotifyTarget(_ context.Context, req *model.SanctionRequest) error {
	channel, err := n.session.UserChannelCreate(req.TargetID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel with %s: %w", req.TargetID, err)
	}

	guildName := req.GuildID
	if guild, err := n.session.State.Guild(req.GuildID); err == nil {
		guildName = guild.Name
	}
	description := fmt.Sprintf("You have been %s **%s**.", verbWithPreposition(req.Kind), guildName)
	if req.Reason != "" {
		description += fmt.Sprintf("\n**Reason:** %s", req.Reason)
	}
	_, err = n.session.ChannelMessageSendEmbed(channel.ID, &discordgo.MessageEmbed{
		Description: description,
		Color:       embedColor(req.Kind),
		Timestamp:   req.IssuedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to DM target %s: %w", req.TargetID, err)
	}
	return nil
}

// NotifyLogChannel posts the audit embed to the guild's configured log
// channel. A guild without one configured is not an error.
func (n *Notifier) NotifyLogChannel(_ context.Context, req *model.SanctionRequest, policy model.GuildPolicy, history []model.ModlogEntry) error {
	if policy.LogChannelID == "" {
		return nil
	}

	reason := req.Reason
	if reason == "" {
		reason = "No reason provided"
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s · %s", strings.ToUpper(string(req.Kind)), req.TargetUsername),
		Color: embedColor(req.Kind),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", req.TargetID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", req.AuthorID), Inline: true},
			{Name: "Reason", Value: reason},
		},
		Timestamp: req.IssuedAt.Format(time.RFC3339),
	}
	if req.Notes != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Notes", Value: req.Notes,
		})
	}
	if len(history) > 1 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "History",
			Value: fmt.Sprintf("%d prior sanction(s) on record for this user.", len(history)-1),
		})
	}

	_, err := n.session.ChannelMessageSendEmbed(policy.LogChannelID, embed)
	if err != nil {
		return fmt.Errorf("failed to post to log channel %s: %w", policy.LogChannelID, err)
	}
	return nil
}

// NotifyAuthor sends the acting moderator a DM summary of the action.
func (n *Notifier) NotifyAuthor(_ context.Context, req *model.SanctionRequest) error {
	channel, err := n.session.UserChannelCreate(req.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel with %s: %w", req.AuthorID, err)
	}
	content := fmt.Sprintf("Sanction applied: %s of %s", req.Kind, req.TargetUsername)
	if req.Reason != "" {
		content += fmt.Sprintf(" (reason: %s)", req.Reason)
	}
	if _, err := n.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to DM author %s: %w", req.AuthorID, err)
	}
	return nil
}

func verbWithPreposition(kind model.SanctionKind) string {
	switch kind {
	case model.SanctionKick:
		return "kicked from"
	case model.SanctionBan:
		return "banned from"
	case model.SanctionMute:
		return "muted in"
	default:
		return "warned in"
	}
}

func embedColor(kind model.SanctionKind) int {
	switch kind {
	case model.SanctionBan:
		return 0xff0000
	case model.SanctionKick:
		return 0xe67e22
	case model.SanctionMute:
		return 0xf1c40f
	default:
		return 0x3498db
	}
}
