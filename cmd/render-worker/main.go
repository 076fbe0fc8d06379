package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/medibook/appointment-registry/internal/config"
	"github.com/medibook/appointment-registry/internal/db"
	"github.com/medibook/appointment-registry/internal/document"
	"github.com/medibook/appointment-registry/internal/registry"
)

// render-worker backfills confirmation documents. The API renders one after
// each booking, but a render can fail or the document directory can be
// wiped; this worker re-renders whatever is missing on disk.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("render-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.StoreDriver != config.StorePostgres {
		log.Fatal("render-worker requires STORE_DRIVER=postgres")
	}

	log.Printf("running render worker in env=%s interval=%s dir=%s", cfg.Env, cfg.RenderInterval, cfg.DocumentDir)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	store := registry.NewPgStore(pgPool)
	renderer := document.NewPDFRenderer(cfg.DocumentDir)

	// Run once at startup
	runOnce(rootCtx, store, renderer)

	ticker := time.NewTicker(cfg.RenderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Println("shutdown signal received, stopping render worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, store, renderer)
		}
	}
}

func runOnce(ctx context.Context, store registry.Store, renderer *document.PDFRenderer) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()

	appts, err := store.List(runCtx)
	if err != nil {
		log.Printf("render run error: %v", err)
		return
	}

	rendered := 0
	for _, appt := range appts {
		if renderer.Exists(appt.ReferenceID) {
			continue
		}
		if _, err := renderer.Render(appt); err != nil {
			log.Printf("render %s: %v", appt.ReferenceID, err)
			continue
		}
		rendered++
	}

	log.Printf("render run complete rendered=%d of=%d in %s", rendered, len(appts), time.Since(start))
}
