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

	"orrery/internal/config"
	"orrery/internal/engine"
	"orrery/internal/handler"
	"orrery/internal/hub"
	"orrery/internal/render"
	"orrery/internal/repository/sqlite"
	"orrery/internal/service"
	"orrery/internal/watcher"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "", "config file path")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	graphFile := flag.String("graph", "", "topology YAML to load and watch (overrides config)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting orrery server...")

	var cfg *config.Config
	var from string
	var err error
	if *configPath != "" {
		cfg, from, err = config.LoadFromPath(*configPath)
	} else {
		cfg, from, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if from != "" {
		log.Printf("Config loaded from %s", from)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *graphFile != "" {
		cfg.GraphFile = *graphFile
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

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

	surfaces := render.NewRegistry()
	surfaces.Register("main", render.NewRaster(cfg.Viewport.Width, cfg.Viewport.Height))

	eng, err := engine.New("main", surfaces, cfg.EngineOptions())
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	graphSvc := service.NewGraphService(eng, repo, eventBus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := graphSvc.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore graph: %v", err)
	}
	log.Printf("Graph restored: %d nodes, %d edges", len(eng.Nodes()), len(eng.Edges()))

	if cfg.GraphFile != "" {
		if err := graphSvc.LoadGraphFile(ctx, cfg.GraphFile); err != nil {
			log.Printf("Failed to load graph file: %v", err)
		}

		fileWatcher := watcher.New(cfg.GraphFile, func() {
			if err := graphSvc.LoadGraphFile(ctx, cfg.GraphFile); err != nil {
				log.Printf("Failed to reload graph file: %v", err)
			}
		})
		go func() {
			if err := fileWatcher.Watch(ctx); err != nil && err != context.Canceled {
				log.Printf("Watcher stopped: %v", err)
			}
		}()
	}

	// Layout loop; every tick broadcasts a projected frame.
	tick := time.Duration(cfg.TickMS) * time.Millisecond
	go func() {
		if err := eng.Run(ctx, tick, graphSvc.PublishFrame); err != nil && err != context.Canceled {
			log.Printf("Engine stopped: %v", err)
		}
	}()

	graphHandler := handler.NewGraphHandler(graphSvc)
	graphHandler.SetStyle(cfg.RenderStyle())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/graph", graphHandler.GetGraph)
	mux.HandleFunc("DELETE /api/graph", graphHandler.ClearGraph)
	mux.HandleFunc("POST /api/nodes", graphHandler.CreateNode)
	mux.HandleFunc("POST /api/edges", graphHandler.CreateEdge)

	mux.HandleFunc("POST /api/pointer", graphHandler.Pointer)
	mux.HandleFunc("POST /api/wheel", graphHandler.Wheel)
	mux.HandleFunc("POST /api/viewport", graphHandler.Viewport)

	mux.HandleFunc("POST /api/search", graphHandler.Search)
	mux.HandleFunc("POST /api/highlight", graphHandler.Highlight)
	mux.HandleFunc("DELETE /api/highlights", graphHandler.ClearHighlights)
	mux.HandleFunc("DELETE /api/highlights/search", graphHandler.ClearSearchHighlights)

	mux.HandleFunc("POST /api/import/yaml", graphHandler.ImportYAML)
	mux.HandleFunc("GET /api/export/yaml", graphHandler.ExportYAML)

	mux.HandleFunc("GET /api/render.svg", graphHandler.RenderSVG)
	mux.HandleFunc("GET /api/render.png", graphHandler.RenderPNG)

	mux.Handle("GET /events", sseHub)

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
