package main

import (
	"fmt"
	"os"

	"ravenhold-bot/bot"
	"ravenhold-bot/config"
	"ravenhold-bot/handlers"
	"ravenhold-bot/utils"

	"github.com/spf13/cobra"
)

var (
	settingsPath string
	envPath      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "ravenhold-bot",
	Short:        "Promotes guild members from one role to another once they have been around long enough",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(settingsPath, envPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, logFile, err := utils.NewLogger(cfg.LogFile, cfg.Location)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logFile.Close()

		b, err := bot.New(cfg, logger)
		if err != nil {
			utils.LogError(logger, "System", "Startup", err.Error())
			return err
		}
		handlers.Register(b)
		defer b.Close()

		if err := b.Run(); err != nil {
			utils.LogError(logger, "System", "Startup", err.Error())
			return err
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the settings file and token, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(settingsPath, envPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration from %s is valid:\n\n", settingsPath)
		fmt.Fprintf(out, "Admin role:  %s\n", cfg.AdminRoleID)
		fmt.Fprintf(out, "Old role:    %s\n", cfg.OldRoleID)
		fmt.Fprintf(out, "New role:    %s\n", cfg.NewRoleID)
		fmt.Fprintf(out, "Channel:     %s\n", cfg.ChannelID)
		fmt.Fprintf(out, "Threshold:   %s\n", cfg.JoinTimeThreshold)
		fmt.Fprintf(out, "Timezone:    %s\n", cfg.TimezoneName)
		fmt.Fprintf(out, "Prefix:      %s\n", cfg.Prefix)
		fmt.Fprintf(out, "Log file:    %s\n", cfg.LogFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "config.json", "path to the settings file (json, yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "token.env", "path to the env file holding TOKEN")
	rootCmd.AddCommand(checkCmd)
}
