package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aria-creative/vitrine/internal/config"
	"github.com/aria-creative/vitrine/internal/mailer"
	"github.com/aria-creative/vitrine/internal/server"
	"github.com/aria-creative/vitrine/internal/service"
	"github.com/aria-creative/vitrine/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Vitrine API server",
		Long:  "Start the HTTP server that backs the website: contact form, portfolio catalog, and admin dashboard API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3001, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging, detailed errors)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("server.dev", cmd.Flags().Lookup("dev"))

	return cmd
}

func runServe(dev bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dev = dev || cfg.Server.Dev

	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// 1. Open the store and report its contents.
	st, err := store.Open(cfg.Database.Driver, storeDSN(cfg))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if msgs, err := st.CountMessages(ctx); err == nil {
		if projs, perr := st.CountProjects(ctx); perr == nil {
			logger.Info("database ready",
				"driver", cfg.Database.Driver, "messages", msgs, "projects", projs)
		}
	}

	// 2. Build the singleton admin identity and the auth service.
	identity, err := cfg.AdminIdentity()
	if err != nil {
		return err
	}
	secret, err := cfg.JWTSecret()
	if err != nil {
		return err
	}
	authSvc := service.NewAuthService(identity, secret, cfg.Auth.TokenTTL, logger)
	logger.Info("admin identity configured", "email", identity.Email)

	// 3. Mail dispatcher (best-effort; a missing SMTP config only warns).
	m := mailer.New(cfg.SMTP, logger)
	if !cfg.SMTP.Enabled() {
		logger.Warn("smtp not configured, contact notifications disabled")
	}

	// 4. Build and start the HTTP server.
	srvCfg := server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigin:      cfg.Server.CORSOrigin,
		Dev:             dev,
	}
	srv := server.New(srvCfg, st, authSvc, m, logger)

	fmt.Printf("→ Vitrine API\n")
	fmt.Printf("→ Listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health:  http://%s:%d/api/health\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()

	return srv.ListenAndServe()
}

func storeDSN(cfg *config.Config) string {
	if cfg.Database.Driver == "postgres" {
		return cfg.Database.DSN
	}
	return cfg.Database.DataDir
}
