package bot

import (
	"io"
	"testing"
	"time"

	"ravenhold-bot/model"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

var _ model.Bot = (*Bot)(nil)

func TestNew(t *testing.T) {
	cfg := &model.Config{BotToken: "token", Prefix: "!", Location: time.UTC}

	b, err := New(cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.GetConfig() != cfg {
		t.Error("GetConfig() did not return the configuration passed to New")
	}
	if b.GetSession().Token != "Bot token" {
		t.Errorf("Token = %q, want %q", b.GetSession().Token, "Bot token")
	}

	want := discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	if got := b.Session.Identify.Intents; got&want != want {
		t.Errorf("Intents = %b, want %b set", got, want)
	}
	if b.Session.StateEnabled {
		t.Error("StateEnabled = true, want false")
	}
}
