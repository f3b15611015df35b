package handlers

import (
	"sentinel-bot/bot"
	"sentinel-bot/store"

	"github.com/bwmarrin/discordgo"
)

func handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "kick", "ban", "mute", "warn":
			HandleSanctionCommand(s, i, b)
		case "mod-status":
			HandleStatusCommand(s, i, b)
		}
	case discordgo.InteractionModalSubmit:
		if _, ok := store.ParseKey(i.ModalSubmitData().CustomID); ok {
			HandleSanctionModalSubmit(s, i, b)
		}
	}
}
