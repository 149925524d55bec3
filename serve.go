package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/repos"
	"github.com/Zachkp/folio/internal/server"
	"github.com/Zachkp/folio/internal/store"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site over HTTP",
		Long: `Serve the portfolio page, the contact form, the repository list and the
admin dashboard. Visitor records older than a year are purged daily.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := setup(ctx, cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer rt.close()
			cfg, logger := rt.cfg, rt.logger

			if cfg.DefaultAdmin() {
				logger.Warn("admin is using the default credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
			}
			if !cfg.SMTP.Configured() {
				logger.Info("SMTP not configured, contact messages are stored only")
			}

			retention, err := store.NewRetention(rt.store, store.DefaultRetention, "@daily", logger)
			if err != nil {
				return err
			}
			retention.Start()
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				retention.Stop(stopCtx)
			}()

			rt.watchContent(ctx)

			srv, err := server.New(server.Options{
				Store:      rt.store,
				Content:    rt.content,
				Repos:      repos.New(),
				Mailer:     contact.NewMailer(cfg.SMTP, logger),
				Sweeper:    retention,
				GitHubUser: cfg.GitHubUser,
				Admin:      server.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx, ":"+cfg.Port)
		},
	}
}
