package handlers

import (
	"ravenhold-bot/model"
	"ravenhold-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Register wires the command dispatcher and lifecycle handlers onto the bot session.
func Register(b model.Bot) *Dispatcher {
	cfg := b.GetConfig()
	session := b.GetSession()
	logger := b.GetLogger()

	h := NewHandler(cfg, session, utils.RealClock{}, logger)
	h.SetLatencySource(session.HeartbeatLatency)
	d := NewDispatcher(cfg.Prefix, h, logger)

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		if r.User == nil {
			utils.LogWarn(logger, "System", "Startup", "Ready event without user")
			return
		}
		utils.LogInfo(logger, "System", "Startup", "Logged in as "+r.User.Username)
	})
	session.AddHandler(d.OnMessageCreate)
	return d
}
