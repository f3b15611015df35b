package model

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Context construction failures. Both are fatal to the invocation.
var (
	ErrMissingUser   = errors.New("interaction is missing user data")
	ErrMissingMember = errors.New("guild interaction is missing member data")
)

// CommandContext is an immutable snapshot of an invoked application command.
// It is constructed once at intake and read-only thereafter.
type CommandContext struct {
	ID            string
	ApplicationID string
	Token         string
	GuildID       string
	ChannelID     string
	Locale        string
	User          *discordgo.User
	Member        *discordgo.Member
	Data          discordgo.ApplicationCommandInteractionData
}

// NewCommandContext builds a CommandContext from an incoming interaction.
// A command invoked in a guild must carry a member record and a command
// invoked in DMs must carry a user record; either being absent is a
// construction failure, not a later runtime check.
func NewCommandContext(i *discordgo.Interaction) (*CommandContext, error) {
	user, member, err := interactionIdentity(i)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		ID:            i.ID,
		ApplicationID: i.AppID,
		Token:         i.Token,
		GuildID:       i.GuildID,
		ChannelID:     i.ChannelID,
		Locale:        string(i.Locale),
		User:          user,
		Member:        member,
		Data:          i.ApplicationCommandData(),
	}, nil
}

// ModalContext is an immutable snapshot of a modal submission, correlated
// back to the originating command through the modal custom id.
type ModalContext struct {
	ID            string
	ApplicationID string
	Token         string
	GuildID       string
	ChannelID     string
	Locale        string
	User          *discordgo.User
	Member        *discordgo.Member
	CustomID      string
	Reason        string
	Notes         string
}

// NewModalContext builds a ModalContext from an incoming modal-submit
// interaction, extracting the reason and notes text inputs.
func NewModalContext(i *discordgo.Interaction) (*ModalContext, error) {
	user, member, err := interactionIdentity(i)
	if err != nil {
		return nil, err
	}
	data := i.ModalSubmitData()
	mc := &ModalContext{
		ID:            i.ID,
		ApplicationID: i.AppID,
		Token:         i.Token,
		GuildID:       i.GuildID,
		ChannelID:     i.ChannelID,
		Locale:        string(i.Locale),
		User:          user,
		Member:        member,
		CustomID:      data.CustomID,
	}
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if !ok {
				continue
			}
			switch input.CustomID {
			case "reason":
				mc.Reason = input.Value
			case "notes":
				mc.Notes = input.Value
			}
		}
	}
	return mc, nil
}

func interactionIdentity(i *discordgo.Interaction) (*discordgo.User, *discordgo.Member, error) {
	if i.GuildID != "" {
		if i.Member == nil {
			return nil, nil, ErrMissingMember
		}
		if i.Member.User == nil {
			return nil, nil, ErrMissingUser
		}
		return i.Member.User, i.Member, nil
	}
	if i.User == nil {
		return nil, nil, ErrMissingUser
	}
	return i.User, nil, nil
}
