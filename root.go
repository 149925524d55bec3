package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/store"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Folio - a personal portfolio for the web and the terminal",
		Long: `Folio serves a single-page portfolio with scroll and pointer effects,
or renders the same page in a terminal.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	f := cmd.PersistentFlags()
	f.String("env-file", "", "load settings from this .env file instead of ./.env")
	f.String("port", "8080", "HTTP listen port")
	f.String("db", "folio.db", "SQLite database path")
	f.String("content", "", "portfolio YAML file, reloaded on change (default: built-in)")
	f.String("github-user", "Zachkp", "GitHub account whose repositories are listed")
	f.String("log-level", "info", "debug, info, warn or error")
	f.Duration("frame-interval", 0, "animation frame interval (default: the content file's frame_interval)")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newTUICommand())
	return cmd
}

// runtime is what every subcommand needs: settings, a logger, the database
// and the live content.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	content *content.Store
}

func setup(ctx context.Context, cmd *cobra.Command, logOut io.Writer) (*runtime, error) {
	var envFiles []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		envFiles = append(envFiles, f)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(logOut)
	slog.SetDefault(logger)

	c, err := loadContent(cfg.ContentPath)
	if err != nil {
		return nil, err
	}

	// A fresh salt per process unless one is configured; hashes then only
	// group visits within one run.
	salt := cfg.IPSalt
	if salt == "" {
		salt = uuid.NewString()
	}
	db, err := store.Open(ctx, cfg.DBPath, salt)
	if err != nil {
		return nil, err
	}
	logger.Debug("database ready", "path", cfg.DBPath)

	return &runtime{cfg: cfg, logger: logger, store: db, content: content.NewStore(c)}, nil
}

func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// watchContent reloads the content file in the background when one is set.
func (rt *runtime) watchContent(ctx context.Context) {
	if rt.cfg.ContentPath == "" {
		return
	}
	go func() {
		if err := rt.content.Watch(ctx, rt.cfg.ContentPath, rt.logger); err != nil {
			rt.logger.Error("content watcher stopped", "error", err)
		}
	}()
}

func (rt *runtime) close() {
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("closing database", "error", err)
	}
}
