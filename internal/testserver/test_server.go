// Package testserver runs the full HTTP stack over an in-memory database.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/staffplan/internal/app"
	"github.com/rpggio/staffplan/internal/config"
	"github.com/rpggio/staffplan/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	App      *app.App
	DB       *sqlite.DB
	Token    string
	TenantID string
}

// New starts a server with auth enabled and registers token for tenantID.
func New(t *testing.T, token, tenantID string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(context.Background()))

	cfg := config.Default()
	cfg.Auth.Enabled = true
	cfg.Transport.Mode = "http"

	a := app.New(db, cfg, nil)
	server := httptest.NewServer(a.HTTPHandler(a.MCPServer()))

	ts := &TestServer{
		Server:   server,
		App:      a,
		DB:       db,
		Token:    token,
		TenantID: tenantID,
	}

	require.NoError(t, ts.AddAPIKey(token, tenantID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddAPIKey registers another bearer token.
func (ts *TestServer) AddAPIKey(token, tenantID string) error {
	return ts.App.APIKeys.Create(context.Background(), tenantID, token, "test")
}
