// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bsearch CLI, a terminal client
// for the Wikipedia search API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bsearch/internal/funfact"
	"github.com/pdiddy/bsearch/internal/httputil"
	"github.com/pdiddy/bsearch/internal/search"
	"github.com/pdiddy/bsearch/internal/secrets"
	"github.com/pdiddy/bsearch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds the dependencies shared by subcommands. It is built in the
// root command's PersistentPreRunE.
type app struct {
	cfg      types.Config
	log      zerolog.Logger
	client   *http.Client
	searcher search.Searcher
	facts    *funfact.Client
}

var current *app

// rootCmd is the base command for the bsearch CLI.
var rootCmd = &cobra.Command{
	Use:   "bsearch",
	Short: "Search Wikipedia from the terminal",
	Long: `bsearch queries the Wikipedia search API and shows ranked results that can
be re-sorted by relevance, recency, or length.

Use "bsearch search" for a single query or "bsearch shell" for an interactive
session with a recent-query history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Log.Level)
		if err != nil {
			return err
		}

		s, err := secrets.Load(".secrets/", log)
		if err != nil {
			return err
		}
		if keys := s.Keys(); len(keys) > 0 {
			log.Debug().Strs("keys", keys).Msg("loaded secrets")
		}

		userAgent := s.UserAgent(cfg.HTTP.UserAgent)
		client := httputil.NewClient(cfg.HTTP)
		current = &app{
			cfg:      cfg,
			log:      log,
			client:   client,
			searcher: search.NewWikipediaClient(client, cfg.Search, userAgent),
			facts:    funfact.NewClient(client, cfg.FunFact, userAgent),
		}
		cmd.SetContext(log.WithContext(cmd.Context()))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bsearch.yaml or ~/.config/bsearch/config.yaml)")
	rootCmd.PersistentFlags().String("log", "", "log level: trace, debug, info, warn, error (default warn)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log"))

	setDefaults(types.DefaultConfig())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bsearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bsearch"))
		}
	}

	viper.SetEnvPrefix("BSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment overrides apply
// even when no config file exists.
func setDefaults(d types.Config) {
	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", "bsearch/"+version)
	viper.SetDefault("search.endpoint", d.Search.Endpoint)
	viper.SetDefault("search.limit", d.Search.Limit)
	viper.SetDefault("funfact.endpoint", d.FunFact.Endpoint)
	viper.SetDefault("funfact.fallback", d.FunFact.Fallback)
	viper.SetDefault("session.history_limit", d.Session.HistoryLimit)
	viper.SetDefault("placeholder.phrases", d.Placeholder.Phrases)
	viper.SetDefault("placeholder.type_delay", d.Placeholder.TypeDelay)
	viper.SetDefault("placeholder.type_jitter", d.Placeholder.TypeJitter)
	viper.SetDefault("placeholder.hold", d.Placeholder.Hold)
	viper.SetDefault("placeholder.delete_delay", d.Placeholder.DeleteDelay)
	viper.SetDefault("log.level", d.Log.Level)
}

func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Search.Limit <= 0 {
		return cfg, fmt.Errorf("search.limit must be positive, got %d", cfg.Search.Limit)
	}
	return cfg, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
