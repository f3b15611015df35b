package bot

import (
	"time"

	"sentinel-bot/store"
)

// startScheduler starts the background maintenance loops. Only the in-memory
// pending store needs one: Redis expires records server-side.
func (b *Bot) startScheduler() {
	memory, ok := b.Pending.(*store.Memory)
	if !ok {
		return
	}
	b.sweepTicker = time.NewTicker(time.Minute)
	go func() {
		for {
			select {
			case <-b.sweepTicker.C:
				memory.Sweep()
			case <-b.done:
				return
			}
		}
	}()
}
