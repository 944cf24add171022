package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oversightlabs/approval-service/config"
	"github.com/oversightlabs/approval-service/endpoints"
	"github.com/oversightlabs/approval-service/internal/audit"
	"github.com/oversightlabs/approval-service/internal/workflow"
	"github.com/oversightlabs/approval-service/middleware"
	"github.com/oversightlabs/approval-service/services"
	"github.com/oversightlabs/approval-service/utils"
)

const ServiceName = "approval-service"

func main() {
	// Handle version/help commands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Println(utils.GetVersion().Str)
			os.Exit(0)
		case "help", "--help", "-h":
			fmt.Println("AI Project Approval Service")
			fmt.Println()
			fmt.Println("Usage:")
			fmt.Println("  approval-service               Start the approval service")
			fmt.Println("  approval-service version       Display version information")
			fmt.Println("  approval-service -seed         Start with sample projects loaded")
			fmt.Println("  approval-service -list         List all stored projects")
			fmt.Println("  approval-service -delete <pattern>  Delete projects matching pattern")
			os.Exit(0)
		}
	}

	deleteCmd := flag.Bool("delete", false, "Run in delete mode")
	listCmd := flag.Bool("list", false, "List all stored projects")
	seedCmd := flag.Bool("seed", false, "Load sample projects on startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load configuration: %v", err)
	}

	// Maintenance modes run against the Redis backend directly.
	if *deleteCmd || *listCmd {
		if cfg.StoreBackend != "redis" {
			log.Fatalf("FATAL: -list and -delete require store_backend \"redis\"")
		}
		client := newRedisClient(cfg.Redis)
		defer func() { _ = client.Close() }()

		if *listCmd {
			if err := ListProjects(client); err != nil {
				log.Fatalf("List operation failed: %v", err)
			}
			return
		}

		patterns := flag.Args()
		if len(patterns) == 0 {
			fmt.Println("Usage: approval-service -delete <pattern1> [pattern2] ...")
			fmt.Println("\nExamples:")
			fmt.Println("  approval-service -delete '*'              # Delete all projects")
			fmt.Println("  approval-service -delete 'a1b2*'          # Delete ids starting with a1b2")
			fmt.Println("\nFirst run with -list to see all project IDs")
			os.Exit(1)
		}
		if err := DeleteMode(client, patterns); err != nil {
			log.Fatalf("Delete operation failed: %v", err)
		}
		return
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("FATAL: Invalid port %q: %v", cfg.Port, err)
	}

	// Select the project store backend.
	var store workflow.Store
	var redisClient *redis.Client
	switch cfg.StoreBackend {
	case "redis":
		log.Println("Initializing Redis connection...")
		redisClient = newRedisClient(cfg.Redis)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("FATAL: Failed to reach Redis at %s: %v", cfg.Redis.Address, err)
		}
		log.Println("Redis connected successfully")
		store = workflow.NewRedisStore(redisClient)
	default:
		log.Println("Using in-memory project store")
		store = workflow.NewMemoryStore()
	}

	recorder := audit.NewRecorder(redisClient)
	engine := workflow.NewEngine(store, recorder)

	if *seedCmd {
		if err := SeedSampleProjects(context.Background(), engine); err != nil {
			log.Fatalf("FATAL: Failed to seed sample projects: %v", err)
		}
		log.Println("Sample projects loaded")
	}

	// Create a context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Println("Core Logic: Starting...")
		if err := RunCoreLogic(ctx, store); err != nil {
			log.Printf("Core Logic Error: %v", err)
			cancel()
		}
		log.Println("Core Logic: Stopped")
	}()

	// Ops sidecar on the next port up.
	sidecar := services.NewStatusServer(port+1, utils.GetVersion().Str, engine)
	if err := sidecar.Start(); err != nil {
		log.Printf("Status server failed to start: %v", err)
	}

	router := endpoints.NewRouter(engine, recorder, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      middleware.CorsMiddleware(cfg.CorsOrigin, router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		fmt.Printf("Starting %s on :%d\n", ServiceName, port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server crashed: %v", err)
		}
	}()

	// Wait for shutdown signal (SIGTERM from systemd or SIGINT from Ctrl+C)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down service...")

	utils.SetHealthStatus("SHUTTING_DOWN", "Service is shutting down")
	cancel()

	// Give the HTTP server 5 seconds to finish current requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Println("Service exited cleanly")
}

func newRedisClient(creds *config.RedisCredentials) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     creds.Address,
		Username: creds.Username,
		Password: creds.Password,
		DB:       creds.DB,
	})
}
