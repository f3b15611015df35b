package commands

import (
	"github.com/bwmarrin/discordgo"
)

// Generate returns the application commands the bot registers: the four
// sanction commands and the operator status command.
func Generate() []*discordgo.ApplicationCommand {
	kick := int64(discordgo.PermissionKickMembers)
	ban := int64(discordgo.PermissionBanMembers)
	mute := int64(discordgo.PermissionModerateMembers)

	return []*discordgo.ApplicationCommand{
		sanctionCommand("kick", "Kick a member from the server", &kick),
		sanctionCommand("ban", "Ban a member from the server", &ban),
		sanctionCommand("mute", "Time out a member", &mute),
		sanctionCommand("warn", "Warn a member", &kick),
		{
			Name:        "mod-status",
			Description: "Show bot and host status",
		},
	}
}

func sanctionCommand(name, description string, defaultPermissions *int64) *discordgo.ApplicationCommand {
	dmPermission := false
	return &discordgo.ApplicationCommand{
		Name:                     name,
		Description:              description,
		DefaultMemberPermissions: defaultPermissions,
		DMPermission:             &dmPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "The member to sanction.",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for the sanction.",
				MaxLength:   100,
				Required:    false,
			},
		},
	}
}
