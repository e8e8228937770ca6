package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mascotd/internal/config"
	"mascotd/internal/keeper"
	"mascotd/internal/notify"
	"mascotd/internal/pet"
	"mascotd/internal/server"
	"mascotd/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Resolve database path
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rules := pet.DefaultRules()
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: unknown timezone %q, using %s\n", cfg.Timezone, rules.Zone)
		} else {
			rules.Zone = loc
		}
	}

	notifier := notify.NewWebhook(cfg.WebhookURL)
	kpr := keeper.New(db, rules, notifier)
	kpr.StartSweep(cfg.SweepInterval)
	defer kpr.Stop()

	srv := server.New(kpr, db, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "mascotd serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  sweep: every %s\n", cfg.SweepInterval)
		if cfg.WebhookURL != "" {
			fmt.Fprintf(os.Stderr, "  webhook: %s\n", cfg.WebhookURL)
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
