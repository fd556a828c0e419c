package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/staffplan/internal/app"
	"github.com/rpggio/staffplan/internal/config"
	"github.com/rpggio/staffplan/internal/sqlite"
	"github.com/rpggio/staffplan/internal/tracing"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the MCP server (stdio or HTTP, from STAFFPLAN_TRANSPORT_MODE)",
		Action: runServe,
	}
}

func runServe(ctx context.Context, _ *cli.Command) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	shutdownTracing, err := tracing.Init("staffplan", version, env.cfg.Tracing.Output)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			env.logger.Error("tracing shutdown", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(env.db, env.cfg, env.logger)
	mcpServer := a.MCPServer()

	if env.cfg.Transport.Mode == "stdio" {
		return runStdio(ctx, env.logger, mcpServer)
	}
	return runHTTP(ctx, env.logger, a.HTTPHandler(mcpServer), env.cfg.Server)
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or ctx is canceled
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, handler http.Handler, cfg config.ServerConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// environment is the opened database and logger shared by all commands.
type environment struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *sqlite.DB
	closers []func() error
}

func (e *environment) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

func setup() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	env := &environment{cfg: cfg}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	env.logger = logger
	env.closers = append(env.closers, closeLog)

	db, err := openDB(context.Background(), cfg.DB.Path)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.db = db
	env.closers = append(env.closers, db.Close)
	return env, nil
}

// stdout carries JSON-RPC in stdio mode, so logs go to stderr there.
func consoleWriter(cfg config.Config) *os.File {
	if cfg.Transport.Mode == "stdio" {
		return os.Stderr
	}
	return os.Stdout
}
