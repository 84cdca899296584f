package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ravenhold-bot/utils"
)

// Run opens the gateway connection and blocks until SIGINT or SIGTERM.
func (b *Bot) Run() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	cfg := b.GetConfig()
	utils.LogInfo(b.logger, "System", "Startup", fmt.Sprintf(
		"Bot is now running with prefix %q, threshold %s, timezone %s. Press CTRL-C to exit.",
		cfg.Prefix, cfg.JoinTimeThreshold, cfg.TimezoneName))

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	return nil
}
