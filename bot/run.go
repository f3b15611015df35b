package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sentinel-bot/commands"
	"sentinel-bot/utils"
)

func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	log.Println("Registering moderation commands...")
	cmds := commands.Generate()
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", cmds)
	if err != nil {
		log.Printf("cannot register commands: %v", err)
	} else {
		b.RegisteredCommands = registered
	}

	b.startScheduler()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	if ch := b.GetConfig().LogChannelID; ch != "" {
		if err := utils.LogInfo(b.Session, ch, "System", "Startup", "Bot has started successfully."); err != nil {
			log.Printf("Failed to send startup log: %v", err)
		}
	}
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
