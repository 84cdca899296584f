package scanner

import (
	"errors"
	"fmt"
	"time"

	"ravenhold-bot/model"
	"ravenhold-bot/utils"

	"github.com/rs/zerolog"
)

// ErrRoleOrChannelNotFound is returned by Preflight when the configured roles
// or channel do not exist.
var ErrRoleOrChannelNotFound = errors.New("role or channel not found")

// Promoter runs one scan → transition → notify pass over a guild.
type Promoter struct {
	api      GuildAPI
	cfg      *model.Config
	clock    utils.Clock
	executor *Executor
	notifier *Notifier
	logger   zerolog.Logger
}

func NewPromoter(api GuildAPI, cfg *model.Config, clock utils.Clock, logger zerolog.Logger) *Promoter {
	return &Promoter{
		api:      api,
		cfg:      cfg,
		clock:    clock,
		executor: NewExecutor(api, cfg.OldRoleID, cfg.NewRoleID, logger),
		notifier: NewNotifier(api, cfg.ChannelID, cfg.CongratsMessage, logger),
		logger:   logger.With().Str("module", "Promotion").Logger(),
	}
}

// Preflight checks that both roles exist in the guild and that the
// announcement channel is reachable.
func (p *Promoter) Preflight(guildID string) error {
	roles, err := p.api.GuildRoles(guildID)
	if err != nil {
		return fmt.Errorf("failed to list roles of guild %s: %w", guildID, err)
	}
	var hasOld, hasNew bool
	for _, r := range roles {
		switch r.ID {
		case p.cfg.OldRoleID:
			hasOld = true
		case p.cfg.NewRoleID:
			hasNew = true
		}
	}
	if !hasOld || !hasNew {
		return fmt.Errorf("%w: old role present=%t, new role present=%t", ErrRoleOrChannelNotFound, hasOld, hasNew)
	}

	if _, err := p.api.Channel(p.cfg.ChannelID); err != nil {
		return fmt.Errorf("%w: channel %s: %v", ErrRoleOrChannelNotFound, p.cfg.ChannelID, err)
	}
	return nil
}

// Run promotes every eligible member of the guild. Per-member failures are
// logged and counted; only failing to list members aborts the run.
func (p *Promoter) Run(guildID string, threshold time.Duration) (Report, error) {
	var report Report

	members, err := FetchMembers(p.api, guildID)
	if err != nil {
		return report, err
	}
	report.Scanned = len(members)

	now := p.clock.Now()
	for m := range Eligible(members, threshold, now, p.cfg.Location, p.cfg.OldRoleID) {
		report.Eligible++

		if err := p.executor.Transition(guildID, m); err != nil {
			report.Failed++
			continue
		}
		report.Promoted++

		if err := p.notifier.Notify(m); err != nil {
			report.NotifyFailed++
		}
	}

	p.logger.Info().
		Str("guild_id", guildID).
		Dur("threshold", threshold).
		Int("scanned", report.Scanned).
		Int("eligible", report.Eligible).
		Int("promoted", report.Promoted).
		Int("failed", report.Failed).
		Int("notify_failed", report.NotifyFailed).
		Msg("Promotion run finished")
	return report, nil
}
