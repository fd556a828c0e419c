// Package app assembles repositories, services and transports.
package app

import (
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/staffplan/internal/config"
	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/domain/client"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/knowledge"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/mcp"
	"github.com/rpggio/staffplan/internal/sqlite"
	"github.com/rpggio/staffplan/internal/transport"
)

// DefaultTenant owns all data when auth is disabled.
const DefaultTenant = "default"

// App holds the wired services for one database.
type App struct {
	DB       *sqlite.DB
	APIKeys  *sqlite.APIKeyRepository
	Services mcp.Services
	Staffing *staffing.Service
	Handler  *mcp.Handler
	cfg      config.Config
	logger   *slog.Logger
}

// New wires repositories and services over db.
func New(db *sqlite.DB, cfg config.Config, logger *slog.Logger) *App {
	employeeRepo := sqlite.NewEmployeeRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	knowledgeRepo := sqlite.NewKnowledgeRepository(db)
	allocationRepo := sqlite.NewAllocationRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	staffingSvc := staffing.NewService(allocationRepo, employeeRepo, projectRepo, staffing.Options{
		WeekStart:        cfg.WeekStart(),
		OverlapThreshold: cfg.Planning.OverlapThreshold,
	}, logger)

	services := mcp.Services{
		Employees:   employee.NewService(employeeRepo, activityRepo, logger),
		Clients:     client.NewService(clientRepo, activityRepo, logger),
		Projects:    project.NewService(projectRepo, clientRepo, activityRepo, logger),
		Knowledge:   knowledge.NewService(knowledgeRepo, activityRepo, logger),
		Allocations: allocation.NewService(allocationRepo, employeeRepo, projectRepo, activityRepo, logger),
		Staffing:    staffingSvc,
		Activity:    activity.NewService(activityRepo, logger),
	}

	return &App{
		DB:       db,
		APIKeys:  sqlite.NewAPIKeyRepository(db),
		Services: services,
		Staffing: staffingSvc,
		Handler:  mcp.NewHandler(services),
		cfg:      cfg,
		logger:   logger,
	}
}

// MCPServer builds the MCP server for the configured transport mode.
func (a *App) MCPServer() *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Handler:       a.Handler,
		Resolver:      a.APIKeys,
		AuthEnabled:   a.cfg.Auth.Enabled,
		TransportMode: a.cfg.Transport.Mode,
		DefaultTenant: DefaultTenant,
		Logger:        a.logger,
	})
}

// HTTPHandler serves JSON-RPC, XLSX export, health and streamable MCP.
func (a *App) HTTPHandler(mcpServer *sdkmcp.Server) http.Handler {
	auth := transport.StaticTenantMiddleware(DefaultTenant)
	if a.cfg.Auth.Enabled {
		auth = transport.AuthMiddleware(a.APIKeys)
	}

	var mcpHandler http.Handler
	if mcpServer != nil {
		mcpHandler = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		)
	}

	return transport.NewServer(transport.Options{
		Handler:  a.Handler,
		Auth:     auth,
		MCP:      mcpHandler,
		Workload: a.Staffing,
		Logger:   a.logger,
	})
}
