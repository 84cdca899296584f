package handlers

import (
	"fmt"
	"time"

	"ravenhold-bot/model"
	"ravenhold-bot/scanner"
	"ravenhold-bot/utils"

	"github.com/rs/zerolog"
)

const (
	msgPermissionDenied      = "У вас нет прав на выполнение этой команды."
	msgNoCandidates          = "Достойных кандидатов не нашлось, милорд."
	msgInvalidThreshold      = "Порог должен быть неотрицательным целым числом секунд."
	msgRoleOrChannelNotFound = "Role or channel not found."
	msgMemberListFailed      = "Не удалось получить список участников сервера."
)

// HandlerAPI is the platform surface used by the command handlers.
type HandlerAPI interface {
	scanner.GuildAPI
	utils.MessageSender
}

// Handler implements Commands.
type Handler struct {
	cfg      *model.Config
	api      HandlerAPI
	promoter *scanner.Promoter
	logger   zerolog.Logger
	clock    utils.Clock
	started  time.Time
	latency  func() time.Duration
}

func NewHandler(cfg *model.Config, api HandlerAPI, clock utils.Clock, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		api:      api,
		promoter: scanner.NewPromoter(api, cfg, clock, logger),
		logger:   logger,
		clock:    clock,
		started:  clock.Now(),
	}
}

// SetLatencySource lets the status command report gateway heartbeat latency.
func (h *Handler) SetLatencySource(f func() time.Duration) {
	h.latency = f
}

func (h *Handler) authorize(inv Invocation) bool {
	if utils.CheckPermission(inv.AuthorRoles, h.cfg.AdminRoleID) {
		return true
	}
	utils.LogWarn(h.logger, "Permission", inv.Command, fmt.Sprintf("permission denied for user %s", inv.AuthorID))
	utils.SendReply(h.api, h.logger, inv.ChannelID, inv.MessageID, msgPermissionDenied)
	return false
}

// threshold resolves the effective threshold from the optional argument.
func (h *Handler) threshold(args []string) (time.Duration, error) {
	switch len(args) {
	case 0:
		return h.cfg.JoinTimeThreshold, nil
	case 1:
		return utils.ParseThreshold(args[0])
	default:
		return 0, fmt.Errorf("%w: expected at most one argument, got %d", utils.ErrInvalidThreshold, len(args))
	}
}

// Promote handles the C/c command.
func (h *Handler) Promote(inv Invocation) {
	if !h.authorize(inv) {
		return
	}

	threshold, err := h.threshold(inv.Args)
	if err != nil {
		utils.LogWarn(h.logger, "Promotion", "ValidateThreshold", err.Error())
		utils.SendErrorReply(h.api, h.logger, inv.ChannelID, inv.MessageID, msgInvalidThreshold)
		return
	}

	if err := h.promoter.Preflight(inv.GuildID); err != nil {
		utils.LogError(h.logger, "Promotion", "Preflight", err.Error())
		utils.SendReply(h.api, h.logger, inv.ChannelID, inv.MessageID, msgRoleOrChannelNotFound)
		return
	}

	report, err := h.promoter.Run(inv.GuildID, threshold)
	if err != nil {
		utils.LogError(h.logger, "Promotion", "FetchMembers", err.Error())
		utils.SendErrorReply(h.api, h.logger, inv.ChannelID, inv.MessageID, msgMemberListFailed)
		return
	}

	if report.Eligible == 0 {
		utils.SendReply(h.api, h.logger, inv.ChannelID, inv.MessageID, msgNoCandidates)
		return
	}
	utils.SendReply(h.api, h.logger, inv.ChannelID, inv.MessageID, summary(report))
}

func summary(r scanner.Report) string {
	msg := fmt.Sprintf("Повышено участников: %d из %d.", r.Promoted, r.Eligible)
	if r.Failed > 0 {
		msg += fmt.Sprintf(" Не удалось сменить роль: %d.", r.Failed)
	}
	if r.NotifyFailed > 0 {
		msg += fmt.Sprintf(" Не отправлено поздравлений: %d.", r.NotifyFailed)
	}
	return msg
}
