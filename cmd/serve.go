package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/bingo/internal/board"
	"github.com/robalobadob/bingo/internal/config"
	"github.com/robalobadob/bingo/internal/content"
	"github.com/robalobadob/bingo/internal/httpserver"
)

var servePort string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bingo web server",
		Long: `Serve the bingo page, the JSON API and the board of the day.

Configuration comes from the environment (and a .env file if present):
  PORT, LOG_LEVEL, LOG_FORMAT, BINGO_SECRET, DAILY_SALT, CATALOG_DB,
  CATALOG_FILE, SPRITES_FILE, PUBLIC_URL, CLIENT_ORIGIN, DEFAULT_GRID_SIZE`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides PORT)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if servePort != "" {
		cfg.Port = servePort
	}
	setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := content.Load(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if cfg.Secret == config.DevSecret {
		log.Warn().Msg("BINGO_SECRET not set; using development secret")
	}
	tokens, err := board.NewIssuer(cfg.Secret)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(c.Store, c.Sprites, tokens, httpserver.Options{
		PublicURL:       cfg.PublicURL,
		ClientOrigin:    cfg.ClientOrigin,
		DailySalt:       cfg.DailySalt,
		DefaultGridSize: cfg.DefaultGridSize,
	})
	if err != nil {
		return err
	}

	log.Info().Str("port", cfg.Port).Msg("starting bingo server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
