package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	apimod "github.com/FunAdventureBooks/task-manager/modules/api"
	boardmod "github.com/FunAdventureBooks/task-manager/modules/board"
	cachemod "github.com/FunAdventureBooks/task-manager/modules/cache"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	dbPath := getEnv("DB_PATH", "./tasks.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	apiToken := getEnv("API_TOKEN", "")
	boardPassword := getEnv("BOARD_PASSWORD", "")
	agentName := getEnv("AGENT_NAME", "agent")
	redisAddr := getEnv("REDIS_ADDR", "")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)

	if apiToken == "" {
		log.Fatal("API_TOKEN is required")
	}
	if boardPassword == "" {
		log.Fatal("BOARD_PASSWORD is required")
	}

	log.Println("=== Task Board ===")
	log.Printf("Database: %s", dbPath)
	log.Printf("HTTP Port: %d", httpPort)
	if redisAddr != "" {
		log.Printf("Redis: %s (TTL %s)", redisAddr, cacheTTL)
	} else {
		log.Println("Redis: disabled")
	}

	// Create modules
	boardModule := boardmod.NewModule(dbPath)
	apiModule := apimod.NewModule(apimod.Config{
		Port:          httpPort,
		APIToken:      apiToken,
		BoardPassword: boardPassword,
		AgentName:     agentName,
	})
	var cacheModule *cachemod.Module
	if redisAddr != "" {
		cacheModule = cachemod.NewModule(redisAddr, cacheTTL)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	if cacheModule != nil {
		app.Register(cacheModule)
	}
	app.Register(boardModule)
	app.Register(apiModule)

	// Start modules (this handles Init and Start)
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// Wire up the list cache after start; the board runs uncached
	// when no Redis address is configured.
	if cacheModule != nil {
		boardModule.SetCache(cacheModule.GetCache())
	}

	log.Println("=== Application Started ===")
	log.Printf("Board client at http://localhost:%d/", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health                      - Health check")
	log.Println("  GET    /tasks                       - List tasks (bearer token)")
	log.Println("  POST   /tasks                       - Create task (bearer token)")
	log.Println("  PATCH  /tasks?id=<id>               - Update task (bearer token)")
	log.Println("  DELETE /tasks?id=<id>               - Delete task (bearer token)")
	log.Println("  POST   /board/login                 - Board password gate")
	log.Println("  GET    /board/tasks                 - Board view")
	log.Println("  GET    /board/archive               - Archive view")
	log.Println("  POST   /board/tasks                 - Create from modal")
	log.Println("  PUT    /board/tasks/:id             - Edit-form save")
	log.Println("  POST   /board/tasks/:id/move        - Drag-and-drop move")
	log.Println("  POST   /board/tasks/:id/restore     - Restore from archive")
	log.Println("  POST   /board/archive-completed     - Archive completed tasks")
	log.Println("  DELETE /board/tasks/:id             - Delete task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	// Wait for shutdown signal and exit with appropriate code
	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
