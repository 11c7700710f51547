package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netfabric/internal/config"
	"netfabric/internal/handler"
	"netfabric/internal/hub"
	"netfabric/internal/loader"
	"netfabric/internal/netbox"
	"netfabric/internal/repository/sqlite"
	"netfabric/internal/service"
	"netfabric/internal/watcher"
)

func main() {
	// Command line flags override the config file
	configPath := flag.String("config", "", "config file path")
	addr := flag.String("addr", "", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite run-archive path")
	snapshotPath := flag.String("snapshot", "", "offline snapshot file (skips the API)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting netfabric server...")

	cfg, cfgPath, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgPath != "" {
		log.Printf("Config loaded: %s", cfgPath)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *snapshotPath != "" {
		cfg.Snapshot.Path = *snapshotPath
		cfg.NetBox.URL = ""
	}

	// Run archive
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// Event bus and SSE hub
	eventBus := service.NewEventBus()
	sseHub := hub.New()
	go sseHub.Run()

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	fetcher, err := buildFetcher(cfg)
	if err != nil {
		log.Fatalf("Failed to configure snapshot source: %v", err)
	}

	topoSvc := service.NewTopologyService(fetcher, repo, eventBus)

	// First resolution run; an unreachable source is not fatal, the API
	// reports 503 until a refresh succeeds.
	startCtx, startCancel := context.WithTimeout(context.Background(), cfg.NetBox.Timeout.Duration())
	if _, err := topoSvc.Refresh(startCtx); err != nil {
		log.Printf("Initial resolution failed: %v", err)
	}
	startCancel()

	// Re-resolve when the offline snapshot changes on disk
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Offline() && cfg.Snapshot.Watch && cfg.Snapshot.Path != "" {
		w := watcher.New(cfg.Snapshot.Path, func() {
			ctx, cancel := context.WithTimeout(watchCtx, 30*time.Second)
			defer cancel()
			if _, err := topoSvc.Refresh(ctx); err != nil {
				log.Printf("Snapshot refresh failed: %v", err)
			}
		})
		go func() {
			if err := w.Watch(watchCtx); err != nil && err != context.Canceled {
				log.Printf("Snapshot watcher stopped: %v", err)
			}
		}()
	}

	topoHandler := handler.NewTopologyHandler(topoSvc)

	mux := http.NewServeMux()

	// Graph
	mux.HandleFunc("GET /api/graph", topoHandler.GetGraph)
	mux.HandleFunc("POST /api/refresh", topoHandler.Refresh)

	// Nodes and edges
	mux.HandleFunc("GET /api/nodes", topoHandler.ListNodes)
	mux.HandleFunc("GET /api/nodes/{id}", topoHandler.GetNode)
	mux.HandleFunc("GET /api/edges", topoHandler.ListEdges)

	// Reports
	mux.HandleFunc("GET /api/unresolved", topoHandler.GetUnresolved)
	mux.HandleFunc("GET /api/diagnostics", topoHandler.GetDiagnostics)

	// Run archive
	mux.HandleFunc("GET /api/runs", topoHandler.ListRuns)
	mux.HandleFunc("GET /api/runs/{id}", topoHandler.GetRun)
	mux.HandleFunc("GET /api/runs/{id}/snapshot", topoHandler.GetRunSnapshot)

	// Export
	mux.HandleFunc("GET /api/export/{format}", topoHandler.Export)

	// SSE events
	mux.Handle("GET /events", sseHub)

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	watchCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// buildFetcher wires the snapshot source: the live API when a URL is
// configured, otherwise the offline snapshot file.
func buildFetcher(cfg *config.Config) (service.Fetcher, error) {
	if !cfg.Offline() {
		client := netbox.NewClient(cfg.NetBox.URL, cfg.NetBox.Token,
			netbox.WithPageSize(cfg.NetBox.PageSize))
		parallelism := cfg.NetBox.Parallelism
		return service.FetcherFunc(func(ctx context.Context) (*netbox.Snapshot, error) {
			return client.FetchSnapshot(ctx, parallelism)
		}), nil
	}

	if cfg.Snapshot.Path == "" {
		log.Println("No source configured; starting with an empty inventory")
		return service.FetcherFunc(func(ctx context.Context) (*netbox.Snapshot, error) {
			return &netbox.Snapshot{}, nil
		}), nil
	}

	path := cfg.Snapshot.Path
	log.Printf("Offline mode: loading snapshots from %s", path)
	return service.FetcherFunc(func(ctx context.Context) (*netbox.Snapshot, error) {
		return loader.LoadSnapshot(path)
	}), nil
}
