// Package cli wires configuration, logging and the HTTP server behind the
// sociallogin command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BlackMission/sociallogin/internal/auth"
	"github.com/BlackMission/sociallogin/internal/config"
	"github.com/BlackMission/sociallogin/internal/exchange"
	"github.com/BlackMission/sociallogin/internal/identity"
	"github.com/BlackMission/sociallogin/internal/login"
	"github.com/BlackMission/sociallogin/internal/metrics"
	"github.com/BlackMission/sociallogin/internal/observability/logger"
	"github.com/BlackMission/sociallogin/internal/redirect"
	"github.com/BlackMission/sociallogin/internal/render"
	"github.com/BlackMission/sociallogin/internal/server"
	"github.com/BlackMission/sociallogin/internal/state"
	"github.com/BlackMission/sociallogin/pkg/client"
)

const shutdownTimeout = 10 * time.Second

// Version is set at build time.
var Version = "dev"

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "sociallogin",
		Short:         "OAuth2 social login service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment (optional)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "providers",
		Short: "List the configured login providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			return printProviders(cmd.OutOrStdout(), cfg)
		},
	})

	var statusURL string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running instance and list its login links",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStatus(cmd.Context(), cmd.OutOrStdout(), client.New(client.Config{BaseURL: statusURL}))
		},
	}
	statusCmd.Flags().StringVar(&statusURL, "url", "http://localhost:8080", "base URL of the running service")
	root.AddCommand(statusCmd)

	return root
}

// Execute runs the root command until SIGINT or SIGTERM.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func printProviders(w io.Writer, cfg *config.Config) error {
	registry, err := auth.NewRegistry(cfg.Providers...)
	if err != nil {
		return err
	}
	for _, p := range registry.All() {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Label(), redirect.LoginPath(p.Name)); err != nil {
			return err
		}
	}
	return nil
}

func printStatus(ctx context.Context, w io.Writer, c *client.Client) error {
	if err := c.HealthCheck(ctx); err != nil {
		return err
	}
	names, err := c.Providers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "status: ok")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, c.LoginURL(name))
	}
	return nil
}

// app is the assembled service.
type app struct {
	server *server.Server
}

func build(cfg *config.Config, log *zap.Logger) (*app, error) {
	registry, err := auth.NewRegistry(cfg.Providers...)
	if err != nil {
		return nil, err
	}
	for _, name := range registry.Names() {
		log.Info("registered provider", logger.Provider(name))
	}
	log.Info("provider registry ready", zap.Int("providers", registry.Len()))

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	// One outbound client for token exchange and profile fetches.
	outbound := &http.Client{Timeout: cfg.OutboundTimeout}
	m := metrics.New()

	flow := login.New(login.Deps{
		Providers: registry,
		Exchanger: exchange.New(outbound),
		Identity:  identity.New(outbound),
		State:     state.NewGenerator(),
		Metrics:   m,
	})

	srv := server.New(server.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
		Redirect: redirect.Builder{
			Secure:  cfg.Server.SecureRedirect,
			BaseURL: cfg.Server.BaseURL,
		},
	}, server.Deps{
		Flow:       flow,
		Providers:  registry,
		Renderer:   renderer,
		Metrics:    m,
		Logger:     log.Named("http"),
		HTTPClient: outbound,
	})

	return &app{server: srv}, nil
}

func runServe(ctx context.Context, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.Log.Env,
		Level:       cfg.Log.Level,
		ServiceName: "sociallogin",
		Version:     Version,
	})
	log := logger.L()
	defer logger.Sync()

	a, err := build(cfg, log)
	if err != nil {
		return err
	}
	return a.run(ctx, log)
}

// run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully.
func (a *app) run(ctx context.Context, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		log.Info("server stopped")
		return nil
	})

	return g.Wait()
}
