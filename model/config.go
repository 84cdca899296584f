package model

import "time"

// DefaultCongratsMessage is sent to the announcement channel after a member is promoted.
const DefaultCongratsMessage = "{mention}, поздравляю с новым титулом! Теперь ты житель. Живи во имя Рэйвенхолда!"

// Config holds the bot settings. It is built once by config.Load and only read afterwards.
type Config struct {
	BotToken string

	AdminRoleID string
	OldRoleID   string
	NewRoleID   string
	ChannelID   string

	// JoinTimeThreshold is the default minimum membership age.
	JoinTimeThreshold time.Duration
	TimezoneName      string
	Location          *time.Location

	Prefix          string
	LogFile         string
	CongratsMessage string
}
