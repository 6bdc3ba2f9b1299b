package api

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/FunAdventureBooks/task-manager/modules/board"
)

//go:embed static/index.html
var indexHTML []byte

// Config holds the HTTP module configuration.
type Config struct {
	Port          int
	APIToken      string
	BoardPassword string
	AgentName     string
}

// APIModule serves both HTTP surfaces: the bearer-token /tasks API and
// the password-gated /board client.
type APIModule struct {
	app            *fiber.App
	cfg            Config
	boardContainer mono.ServiceContainer
	board          board.BoardPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config) *APIModule {
	return &APIModule{cfg: cfg}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"board"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "board":
		m.boardContainer = container
		m.board = board.NewBoardAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.boardContainer == nil {
		return fmt.Errorf("board dependency not set")
	}
	if m.cfg.APIToken == "" || m.cfg.BoardPassword == "" {
		return fmt.Errorf("API token and board password are required")
	}
	if m.cfg.Port == 0 {
		m.cfg.Port = 3000
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Add middleware
	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	// Setup routes
	m.setupRoutes()

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", m.cfg.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.cfg.Port,
		},
	}
}

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// Embedded single-page board client
	m.app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(indexHTML)
	})

	// Programmatic surface, bearer token
	tasks := m.app.Group("/tasks", BearerAuth(m.cfg.APIToken))
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Patch("/", m.patchTask)
	tasks.Delete("/", m.deleteTask)

	// Interactive surface, board password
	b := m.app.Group("/board")

	// Public gate check
	b.Post("/login", m.boardLogin)

	// Protected routes (require the board key)
	protected := b.Group("")
	protected.Use(BoardAuth(m.cfg.BoardPassword))
	protected.Get("/tasks", m.boardListTasks)
	protected.Get("/archive", m.boardListArchive)
	protected.Post("/tasks", m.boardCreateTask)
	protected.Put("/tasks/:id", m.boardUpdateTask)
	protected.Post("/tasks/:id/move", m.boardMoveTask)
	protected.Post("/tasks/:id/restore", m.boardRestoreTask)
	protected.Post("/archive-completed", m.boardArchiveCompleted)
	protected.Delete("/tasks/:id", m.boardDeleteTask)
}
