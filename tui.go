package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/tui"
)

func newTUICommand() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		Long: `Render the portfolio in the terminal with the same effects as the site.
Scroll with the wheel, arrows, j/k or PgUp/PgDn, jump with 1-6, press t to
switch theme and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the screen owns the terminal, so logs go to a file or nowhere
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()
			rt, err := setup(ctx, cmd, logOut)
			if err != nil {
				return err
			}
			defer rt.close()
			rt.watchContent(ctx)

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			app, err := tui.New(tui.Options{
				Screen:        screen,
				Content:       rt.content,
				Prefs:         rt.store,
				FrameInterval: rt.cfg.FrameInterval,
				Logger:        rt.logger,
			})
			if err != nil {
				return err
			}
			return app.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
