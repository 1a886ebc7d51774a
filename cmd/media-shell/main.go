// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the media-shell CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/media-shell/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the media-shell CLI.
var rootCmd = &cobra.Command{
	Use:   "media-shell",
	Short: "Dispatch media conversions and turn Markdown into plain text",
	Long: `media-shell hands image, overlay, and video conversions to an external
converter process and reports its result. It also converts Markdown files to
plain text next to the source file.

The converter command is configured with converter.command (or
MEDIA_SHELL_CONVERTER_COMMAND); every conversion appends its argument
sequence to that command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./media-shell.yaml or ~/.config/media-shell/media-shell.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("converter", "", "converter command line (overrides converter.command)")
	flags.Bool("no-history", false, "do not record conversions in the history database")

	_ = viper.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("converter.command", flags.Lookup("converter"))
	_ = viper.BindPFlag("history.disabled", flags.Lookup("no-history"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("media-shell")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "media-shell"))
		}
	}

	viper.SetDefault("converter.command", types.DefaultConverterCommand)
	viper.SetDefault("history.dir", defaultHistoryDir())

	viper.SetEnvPrefix("MEDIA_SHELL")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultHistoryDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".local", "share", "media-shell")
	}
	return filepath.Join(os.TempDir(), "media-shell")
}

// loadConfig decodes the merged viper settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
