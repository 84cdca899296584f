package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"ravenhold-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Settings file keys.
const (
	KeyAdminRoleID       = "ADMIN_ROLE_ID"
	KeyOldRoleID         = "OLD_ROLE_ID"
	KeyNewRoleID         = "NEW_ROLE_ID"
	KeyChannelID         = "CHANNEL_ID"
	KeyJoinTimeThreshold = "JOIN_TIME_THRESHOLD"
	KeyTimezone          = "TIMEZONE"
	KeyPrefix            = "PREFIX"
	KeyLogFile           = "LOG_FILE"
	KeyCongratsMessage   = "CONGRATS_MESSAGE"
)

// ErrMissingToken is returned when neither TOKEN nor BOT_TOKEN is set.
var ErrMissingToken = errors.New("TOKEN environment variable not set")

var requiredKeys = []string{
	KeyAdminRoleID,
	KeyOldRoleID,
	KeyNewRoleID,
	KeyChannelID,
	KeyJoinTimeThreshold,
	KeyTimezone,
	KeyPrefix,
	KeyLogFile,
}

// Load reads the bot token from the environment (after loading envPath, if it
// exists) and the settings file at settingsPath.
func Load(settingsPath, envPath string) (*model.Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Info: %s not found, relying on environment variables", envPath)
	}

	token := os.Getenv("TOKEN")
	if token == "" {
		token = os.Getenv("BOT_TOKEN")
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	cfg, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	cfg.BotToken = token
	return cfg, nil
}

// LoadSettings parses and validates the settings file. The format is picked
// from the file extension (json, yaml, toml).
func LoadSettings(path string) (*model.Config, error) {
	v := viper.New()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		settings, err := readJSON(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
		return fromViper(v)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return fromViper(v)
}

// readJSON keeps numbers as json.Number so unquoted snowflake IDs survive
// decoding without passing through float64.
func readJSON(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var settings map[string]interface{}
	if err := dec.Decode(&settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func fromViper(v *viper.Viper) (*model.Config, error) {
	var missing []string
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	cfg := &model.Config{}
	var err error

	ids := []struct {
		key string
		dst *string
	}{
		{KeyAdminRoleID, &cfg.AdminRoleID},
		{KeyOldRoleID, &cfg.OldRoleID},
		{KeyNewRoleID, &cfg.NewRoleID},
		{KeyChannelID, &cfg.ChannelID},
	}
	for _, id := range ids {
		if *id.dst, err = snowflake(v.Get(id.key)); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.key, err)
		}
	}
	if cfg.OldRoleID == cfg.NewRoleID {
		return nil, fmt.Errorf("%s and %s must differ", KeyOldRoleID, KeyNewRoleID)
	}

	seconds, err := cast.ToInt64E(v.Get(KeyJoinTimeThreshold))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyJoinTimeThreshold, err)
	}
	if seconds < 0 {
		return nil, fmt.Errorf("invalid %s: must not be negative, got %d", KeyJoinTimeThreshold, seconds)
	}
	if seconds > math.MaxInt64/int64(time.Second) {
		return nil, fmt.Errorf("invalid %s: %d seconds is out of range", KeyJoinTimeThreshold, seconds)
	}
	cfg.JoinTimeThreshold = time.Duration(seconds) * time.Second

	cfg.TimezoneName = strings.TrimSpace(v.GetString(KeyTimezone))
	if cfg.TimezoneName == "" {
		return nil, fmt.Errorf("invalid %s: empty", KeyTimezone)
	}
	if cfg.Location, err = time.LoadLocation(cfg.TimezoneName); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyTimezone, err)
	}

	cfg.Prefix = v.GetString(KeyPrefix)
	if strings.TrimSpace(cfg.Prefix) == "" {
		return nil, fmt.Errorf("invalid %s: empty", KeyPrefix)
	}

	cfg.LogFile = strings.TrimSpace(v.GetString(KeyLogFile))
	if cfg.LogFile == "" {
		return nil, fmt.Errorf("invalid %s: empty", KeyLogFile)
	}

	cfg.CongratsMessage = model.DefaultCongratsMessage
	if msg := v.GetString(KeyCongratsMessage); msg != "" {
		cfg.CongratsMessage = msg
	}

	return cfg, nil
}

// maxExactFloat is the largest integer a float64 holds without rounding.
const maxExactFloat = 1 << 53

// snowflake accepts a Discord ID written either as a string or as an integer.
// Float values above 2^53 have already lost digits and are rejected.
func snowflake(raw interface{}) (string, error) {
	var s string
	switch val := raw.(type) {
	case string:
		s = strings.TrimSpace(val)
	case json.Number:
		s = val.String()
	case float64:
		if val != math.Trunc(val) || val < 0 || val > maxExactFloat {
			return "", fmt.Errorf("%v cannot be represented exactly, quote it as a string", val)
		}
		s = strconv.FormatInt(int64(val), 10)
	default:
		var err error
		if s, err = cast.ToStringE(val); err != nil {
			return "", err
		}
	}

	if s == "" {
		return "", errors.New("empty")
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return "", fmt.Errorf("%q is not a numeric ID", s)
	}
	return s, nil
}
