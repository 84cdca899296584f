package model

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot provides an interface for bot functionality to avoid circular dependencies.
type Bot interface {
	GetConfig() *Config
	GetSession() *discordgo.Session
	GetLogger() zerolog.Logger
}
