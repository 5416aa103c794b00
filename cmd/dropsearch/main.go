// Package main provides the dropsearch binary entry point. It wires the
// configuration, the Dropbox storage adapter, the bleve index, the sqlite
// report store and the core services, then hands control to the CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/custodia-labs/dropsearch/internal/adapters/driven/dropbox"
	bleveindex "github.com/custodia-labs/dropsearch/internal/adapters/driven/index/bleve"
	"github.com/custodia-labs/dropsearch/internal/adapters/driven/oauth"
	"github.com/custodia-labs/dropsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dropsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/dropsearch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/dropsearch/internal/config"
	"github.com/custodia-labs/dropsearch/internal/core/services"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// application holds the wired components for the lifetime of one invocation.
type application struct {
	cfg     *config.Config
	index   *bleveindex.Index
	reports *sqlite.ReportStore
	search  *services.SearchService
	sync    *services.SyncOrchestrator
}

var app *application

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initialize)

	err := cli.Execute()
	if app != nil {
		app.close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// initialize builds the adapter and service graph once flags are parsed.
func initialize(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.SetVerbose(true)
	}

	tokens, err := oauth.NewTokenManager(oauth.Credentials{
		AppKey:       cfg.Dropbox.AppKey,
		AppSecret:    cfg.Dropbox.AppSecret,
		RefreshToken: cfg.Dropbox.RefreshToken,
		TokenURL:     cfg.Dropbox.TokenURL,
	})
	if err != nil {
		return err
	}

	storage := dropbox.NewClient(context.Background(), tokens, dropbox.DefaultRateLimit)

	index, err := bleveindex.Open(cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}

	reports, err := sqlite.NewReportStore(cfg.DBPath)
	if err != nil {
		_ = index.Close()
		return fmt.Errorf("opening report store: %w", err)
	}

	enumerator := services.NewEnumerator(storage, cfg.Extension)
	links := services.NewLinkResolver(storage)
	fetcher := services.NewFetcher(storage)
	orchestrator := services.NewSyncOrchestrator(enumerator, links, fetcher, index, reports)
	search := services.NewSearchService(index)

	app = &application{
		cfg:     cfg,
		index:   index,
		reports: reports,
		search:  search,
		sync:    orchestrator,
	}

	cli.SetServices(search, orchestrator, cfg.Root)
	cli.SetServeRunner(app.serve)
	return nil
}

// serve runs the HTTP server until ctx is cancelled, optionally kicking off
// a startup sync and a periodic resync loop.
func (a *application) serve(ctx context.Context) error {
	handler := httpapi.New(a.search, a.sync, a.cfg.Root, a.readiness)
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if a.cfg.SyncOnStart {
		go a.runSync(ctx)
	}
	if a.cfg.SyncInterval > 0 {
		go a.resyncLoop(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", a.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// readiness reports whether the index is answering queries.
func (a *application) readiness(context.Context) error {
	_, err := a.index.Count()
	return err
}

func (a *application) runSync(ctx context.Context) {
	report, err := a.sync.Sync(ctx, a.cfg.Root)
	if err != nil {
		logger.Warn("sync failed: %v", err)
		return
	}
	logger.Info("sync finished: %d indexed, %d skipped", report.Indexed, report.Skipped)
}

func (a *application) resyncLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.SyncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runSync(ctx)
		}
	}
}

func (a *application) close() {
	if err := a.index.Close(); err != nil {
		logger.Warn("closing index: %v", err)
	}
	if err := a.reports.Close(); err != nil {
		logger.Warn("closing report store: %v", err)
	}
}
