package scanner

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Transition stages.
const (
	StageRemoveOldRole = "remove_old_role"
	StageAddNewRole    = "add_new_role"
)

// TransitionError reports which half of a role swap failed. A failure at
// StageAddNewRole means the old role is already gone.
type TransitionError struct {
	UserID string
	Stage  string
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("role transition for user %s failed at %s: %v", e.UserID, e.Stage, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// Partial reports whether the old role was removed but the new one was not added.
func (e *TransitionError) Partial() bool { return e.Stage == StageAddNewRole }

// Executor swaps the old role for the new one.
type Executor struct {
	api       RoleEditor
	oldRoleID string
	newRoleID string
	logger    zerolog.Logger
}

func NewExecutor(api RoleEditor, oldRoleID, newRoleID string, logger zerolog.Logger) *Executor {
	return &Executor{
		api:       api,
		oldRoleID: oldRoleID,
		newRoleID: newRoleID,
		logger:    logger.With().Str("module", "RoleTransition").Logger(),
	}
}

// Transition removes the old role from m, then adds the new one. Nothing is
// rolled back when the second call fails.
func (x *Executor) Transition(guildID string, m *discordgo.Member) error {
	userID := m.User.ID

	if err := x.api.GuildMemberRoleRemove(guildID, userID, x.oldRoleID); err != nil {
		x.logger.Error().Err(err).Str("user_id", userID).Str("role_id", x.oldRoleID).Msg("Failed to remove old role")
		return &TransitionError{UserID: userID, Stage: StageRemoveOldRole, Err: err}
	}

	if err := x.api.GuildMemberRoleAdd(guildID, userID, x.newRoleID); err != nil {
		x.logger.Error().Err(err).Str("user_id", userID).Str("role_id", x.newRoleID).
			Msg("Old role removed but new role could not be added, member left without either role")
		return &TransitionError{UserID: userID, Stage: StageAddNewRole, Err: err}
	}

	x.logger.Info().Str("user_id", userID).Str("username", m.User.Username).Msg("Successfully promoted member")
	return nil
}
