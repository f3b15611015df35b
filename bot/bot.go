package bot

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"sentinel-bot/cluster"
	"sentinel-bot/model"
	"sentinel-bot/platform"
	"sentinel-bot/sanction"
	"sentinel-bot/store"
	"sentinel-bot/utils"
	"sentinel-bot/utils/database"
)

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	config             atomic.Value // *model.Config
	DB                 *database.Store
	Pending            store.Pending
	workflow           *sanction.Workflow
	sweepTicker        *time.Ticker
	done               chan struct{}
}

func New(cfg *model.Config, db *database.Store, pending store.Pending) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	// Guild and member state must be cached for permission resolution.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentGuildModeration
	dg.StateEnabled = true

	b := &Bot{
		Session: dg,
		DB:      db,
		Pending: pending,
		done:    make(chan struct{}),
	}
	b.config.Store(cfg)

	state := cluster.NewState(
		platform.NewSessionCache(dg),
		db,
		pending,
		platform.NewEnforcer(dg, cfg.MuteDuration),
		platform.NewNotifier(dg),
	)
	b.workflow = sanction.NewWorkflow(state)
	return b, nil
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) Workflow() *sanction.Workflow {
	return b.workflow
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	close(b.done) // Signal all goroutines to stop

	if b.sweepTicker != nil {
		b.sweepTicker.Stop()
	}
	if ch := b.GetConfig().LogChannelID; ch != "" {
		if err := utils.LogInfo(b.Session, ch, "System", "Shutdown", "Bot is shutting down."); err != nil {
			log.Printf("Failed to send shutdown log: %v", err)
		}
	}
	b.Session.Close()
}
