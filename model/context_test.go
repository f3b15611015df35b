package model

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandInteraction() *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        "int-1",
		AppID:     "app-1",
		Token:     "token-1",
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		Type:      discordgo.InteractionApplicationCommand,
		Locale:    discordgo.EnglishUS,
		Member: &discordgo.Member{
			User:  &discordgo.User{ID: "author-1", Username: "mod"},
			Roles: []string{"role-mod"},
		},
		Data: discordgo.ApplicationCommandInteractionData{Name: "kick"},
	}
}

func TestNewCommandContext(t *testing.T) {
	cc, err := NewCommandContext(commandInteraction())
	require.NoError(t, err)

	assert.Equal(t, "int-1", cc.ID)
	assert.Equal(t, "app-1", cc.ApplicationID)
	assert.Equal(t, "guild-1", cc.GuildID)
	assert.Equal(t, "author-1", cc.User.ID)
	require.NotNil(t, cc.Member)
	assert.Equal(t, []string{"role-mod"}, cc.Member.Roles)
	assert.Equal(t, "kick", cc.Data.Name)
}

func TestNewCommandContextMissingMember(t *testing.T) {
	i := commandInteraction()
	i.Member = nil

	_, err := NewCommandContext(i)
	assert.ErrorIs(t, err, ErrMissingMember)
}

func TestNewCommandContextMissingUser(t *testing.T) {
	i := commandInteraction()
	i.Member.User = nil

	_, err := NewCommandContext(i)
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestNewCommandContextDirectMessage(t *testing.T) {
	i := commandInteraction()
	i.GuildID = ""
	i.Member = nil

	_, err := NewCommandContext(i)
	assert.ErrorIs(t, err, ErrMissingUser)

	i.User = &discordgo.User{ID: "author-1"}
	cc, err := NewCommandContext(i)
	require.NoError(t, err)
	assert.Nil(t, cc.Member)
	assert.Equal(t, "author-1", cc.User.ID)
}

func TestNewModalContext(t *testing.T) {
	i := &discordgo.Interaction{
		ID:      "int-2",
		GuildID: "guild-1",
		Type:    discordgo.InteractionModalSubmit,
		Member: &discordgo.Member{
			User: &discordgo.User{ID: "author-1", Username: "mod"},
		},
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: "sanction:int-1",
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "reason", Value: "spamming"},
				}},
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "notes", Value: "third strike"},
				}},
			},
		},
	}

	mc, err := NewModalContext(i)
	require.NoError(t, err)
	assert.Equal(t, "sanction:int-1", mc.CustomID)
	assert.Equal(t, "spamming", mc.Reason)
	assert.Equal(t, "third strike", mc.Notes)
	assert.Equal(t, "author-1", mc.User.ID)
}

func TestNewModalContextMissingMember(t *testing.T) {
	i := &discordgo.Interaction{
		GuildID: "guild-1",
		Type:    discordgo.InteractionModalSubmit,
		Data:    discordgo.ModalSubmitInteractionData{CustomID: "sanction:int-1"},
	}

	_, err := NewModalContext(i)
	assert.ErrorIs(t, err, ErrMissingMember)
}
