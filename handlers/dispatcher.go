package handlers

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Invocation is one parsed prefix command.
type Invocation struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	AuthorID    string
	AuthorRoles []string
	Command     string
	Args        []string
}

// Commands has one method per bot command.
type Commands interface {
	Promote(inv Invocation)
	Status(inv Invocation)
}

// Dispatcher routes prefix commands to their handlers one at a time.
type Dispatcher struct {
	mu     sync.Mutex
	prefix string
	table  map[string]func(Invocation)
	logger zerolog.Logger
}

func NewDispatcher(prefix string, cmds Commands, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		prefix: prefix,
		table: map[string]func(Invocation){
			"C":      cmds.Promote,
			"c":      cmds.Promote,
			"status": cmds.Status,
		},
		logger: logger.With().Str("module", "Dispatcher").Logger(),
	}
}

// Parse turns a guild message into an Invocation. It returns false for
// messages from bots, direct messages and anything that is not a known command.
func (d *Dispatcher) Parse(m *discordgo.Message) (Invocation, bool) {
	if m == nil || m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return Invocation{}, false
	}
	if !strings.HasPrefix(m.Content, d.prefix) {
		return Invocation{}, false
	}

	rest := strings.TrimPrefix(m.Content, d.prefix)
	if r, _ := utf8.DecodeRuneInString(rest); rest == "" || unicode.IsSpace(r) {
		return Invocation{}, false
	}
	fields := strings.Fields(rest)
	if _, ok := d.table[fields[0]]; !ok {
		return Invocation{}, false
	}

	inv := Invocation{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		AuthorID:  m.Author.ID,
		Command:   fields[0],
		Args:      fields[1:],
	}
	if m.Member != nil {
		inv.AuthorRoles = m.Member.Roles
	}
	return inv, true
}

// Dispatch runs the handler for inv. Concurrent calls are serialized.
func (d *Dispatcher) Dispatch(inv Invocation) {
	h, ok := d.table[inv.Command]
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.logger.Info().
		Str("command", inv.Command).
		Strs("args", inv.Args).
		Str("user_id", inv.AuthorID).
		Str("channel_id", inv.ChannelID).
		Msg("Command received")
	h(inv)
}

// OnMessageCreate is the discordgo MessageCreate handler.
func (d *Dispatcher) OnMessageCreate(_ *discordgo.Session, mc *discordgo.MessageCreate) {
	if inv, ok := d.Parse(mc.Message); ok {
		d.Dispatch(inv)
	}
}
