package handlers

import (
	"fmt"
	"runtime"
	"time"

	"ravenhold-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status handles the status command: host and bot information plus the
// effective promotion settings.
func (h *Handler) Status(inv Invocation) {
	if !h.authorize(inv) {
		return
	}
	utils.SendEmbedReply(h.api, h.logger, inv.ChannelID, inv.MessageID, h.statusEmbed())
}

func (h *Handler) statusEmbed() *discordgo.MessageEmbed {
	osVersion, kernel := "unknown", "unknown"
	if hostInfo, err := host.Info(); err == nil {
		osVersion = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
		kernel = hostInfo.KernelVersion
	}

	cpuCount := "n/a"
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		cpuCount = fmt.Sprintf("%d", n)
	}
	cpuUsage := "n/a"
	if cpuPercent, err := cpu.Percent(0, false); err == nil && len(cpuPercent) > 0 {
		cpuUsage = fmt.Sprintf("%.1f%%", cpuPercent[0])
	}

	memory := "n/a"
	if vm, err := mem.VirtualMemory(); err == nil {
		memory = fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}

	latency := "n/a"
	if h.latency != nil {
		latency = h.latency().String()
	}

	now := h.clock.Now().In(h.cfg.Location)
	uptime := now.Sub(h.started).Round(time.Second)

	return &discordgo.MessageEmbed{
		Title: "System info",
		Color: 0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS", Value: osVersion, Inline: true},
			{Name: "🔧 Kernel", Value: kernel, Inline: true},
			{Name: "🐹 Go", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPUs", Value: cpuCount, Inline: true},
			{Name: "🔥 CPU usage", Value: cpuUsage, Inline: true},
			{Name: "🧠 Memory", Value: memory, Inline: true},
			{Name: "⏱️ WebSocket latency", Value: latency, Inline: true},
			{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "⌛ Uptime", Value: uptime.String(), Inline: true},
			{Name: "🎭 Roles", Value: fmt.Sprintf("<@&%s> → <@&%s>", h.cfg.OldRoleID, h.cfg.NewRoleID), Inline: true},
			{Name: "📢 Channel", Value: fmt.Sprintf("<#%s>", h.cfg.ChannelID), Inline: true},
			{Name: "📅 Threshold", Value: fmt.Sprintf("%ds (%s)", int64(h.cfg.JoinTimeThreshold/time.Second), h.cfg.TimezoneName), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Status・%s", now.Format("15:04")),
		},
	}
}
