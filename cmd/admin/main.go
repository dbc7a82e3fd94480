// cmd/admin/main.go
//
// Shopadmin – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Optional Vault client, then typed config (koanf + validation).
//
//  4. Open the catalog DB and run the idempotent schema bootstrap.
//
//  5. Wire the pipeline: submission client → session registry → dialog
//     endpoints, plus the bundled create-product endpoint.
//
//  6. Serve behind security headers, UA enrichment, and Prometheus
//     /metrics; shut down gracefully on SIGINT/SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/shopadmin/internal/admin"
	"github.com/yanizio/shopadmin/internal/catalog"
	"github.com/yanizio/shopadmin/internal/config"
	"github.com/yanizio/shopadmin/internal/database"
	"github.com/yanizio/shopadmin/internal/form"
	"github.com/yanizio/shopadmin/internal/logger"
	"github.com/yanizio/shopadmin/internal/middleware"
	"github.com/yanizio/shopadmin/internal/requestinfo"
	"github.com/yanizio/shopadmin/internal/server"
	"github.com/yanizio/shopadmin/internal/session"
	"github.com/yanizio/shopadmin/internal/vault"

	_ "github.com/yanizio/shopadmin/internal/metrics" // register collectors
)

const serverEnvPath = "/usr/local/etc/shopadmin/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config (with optional Vault secret resolution) ─────────────
	//
	var resolver config.SecretResolver
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, logOut)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		resolver = vc
	}

	cfg, err := config.Load(ctx, resolver)
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Catalog DB + schema bootstrap ──────────────────────────────
	//
	db, err := database.Open(cfg.Catalog.DSN)
	if err != nil {
		logOut.Fatalf("connect catalog DB: %v", err)
	}
	defer db.Close()
	logOut.Infow("catalog DB online")

	if cfg.Catalog.Migrate {
		if err := catalog.Bootstrap(ctx, db, logOut); err != nil {
			logOut.Fatalf("schema bootstrap: %v", err)
		}
	}

	//
	// ── 3.  Pipeline wiring ────────────────────────────────────────────
	//
	submitter := form.NewClient(cfg.Catalog.Endpoint, nil)
	sessions := session.NewManager(cfg.Session.MaxEntries, submitter, logOut)

	catalogH := catalog.NewHandler(catalog.NewRepository(db), logOut)
	adminH := admin.NewHandler(sessions, logOut)

	//
	// ── 4.  Router ─────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)
	r.Handle("/metrics", promhttp.Handler())
	catalogH.Routes(r)
	adminH.Routes(r)

	srv := server.New(cfg.HTTP.ListenAddr, middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, r))

	//
	// ── 5.  Serve until signalled ──────────────────────────────────────
	//
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
	logOut.Infow("shutdown complete")
}
