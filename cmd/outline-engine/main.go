// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the outline-engine CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/outline-engine/internal/secrets"
	"github.com/pdiddy/outline-engine/internal/workspace"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the outline-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "outline-engine",
	Short: "Organize thesis outlines, research notes, and citations",
	Long: `outline-engine organizes a thesis project: the thesis statement, a
two-level outline, research notes attached to outline points, and the
bibliographic details behind each note.

Each concern is a subcommand: thesis, outline, research, cite, export,
and ocr. The serve subcommand runs the local HTTP API used by the
browser frontend. All state lives in a per-profile store on disk.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./outline-engine.yaml or ~/.config/outline-engine/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "profile directory (default: ~/.local/share/outline-engine/default)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("outline-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "outline-engine"))
		}
	}

	viper.SetEnvPrefix("OUTLINE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// appConfig resolves the effective configuration from flags, config file,
// environment, and secrets, in that order of precedence.
func appConfig() types.AppConfig {
	profile, _ := rootCmd.PersistentFlags().GetString("profile")
	if profile == "" {
		profile = viper.GetString("storage.profile_dir")
	}
	if profile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		profile = filepath.Join(home, ".local", "share", "outline-engine", "default")
	}

	return types.AppConfig{
		Storage: types.StorageConfig{
			ProfileDir: profile,
			MaxBytes:   viper.GetInt64("storage.max_bytes"),
		},
		OCR: types.OCRConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("ocr.timeout"),
				UserAgent: "outline-engine/" + version,
			},
			Endpoint:     viper.GetString("ocr.endpoint"),
			APIKey:       secretDefault("vision-api-key", viper.GetString("ocr.api_key")),
			MaxRetries:   viper.GetInt("ocr.max_retries"),
			DailyLimit:   viper.GetInt("ocr.daily_limit"),
			MonthlyLimit: viper.GetInt("ocr.monthly_limit"),
		},
		Server: types.ServerConfig{
			Addr:   viper.GetString("server.addr"),
			APIKey: secretDefault("server-api-key", viper.GetString("server.api_key")),
		},
		Export: types.ExportConfig{
			Style: types.Style(viper.GetString("export.style")),
		},
	}
}

// exportStyle resolves the citation style for a command: the --style flag
// when set, the configured default otherwise, turabian as the fallback.
func exportStyle(cmd *cobra.Command) types.Style {
	if v, _ := cmd.Flags().GetString("style"); v != "" {
		return types.Style(v)
	}
	if s := appConfig().Export.Style; s != "" {
		return s
	}
	return types.StyleTurabian
}

// openWorkspace opens the configured profile. The caller must Close it.
func openWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	cfg := appConfig()
	w, err := workspace.Open(ctx, cfg.Storage, nil)
	if err != nil {
		return nil, fmt.Errorf("opening profile %s: %w", cfg.Storage.ProfileDir, err)
	}
	return w, nil
}

// warnStorage prints the sticky storage warning, if any, after a mutation.
func warnStorage(w *workspace.Workspace) {
	if msg := w.StorageWarning(); msg != "" {
		fmt.Fprintln(os.Stderr, "warning:", msg)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
