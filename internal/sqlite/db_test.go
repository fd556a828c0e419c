package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/staffplan/internal/domain/client"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/knowledge"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations(context.Background())
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"knowledge",
		"employees",
		"employee_knowledge",
		"clients",
		"projects",
		"project_knowledge",
		"allocations",
		"activity_log",
		"employees_fts",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	version, err := db.MigrationVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), version)

	// Applying again is a no-op.
	require.NoError(t, db.RunMigrations(context.Background()))
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

func TestAllocationsTable_Checks(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEmployee(t, db, "e1", "tenant1", "Ada", "Lovelace")
	insertClient(t, db, "c1", "tenant1", "ACME")
	insertProject(t, db, "p1", "tenant1", "c1", "Apollo")

	insert := `INSERT INTO allocations (id, tenant_id, employee_id, project_id, start_date, end_date, percentage)
		VALUES (?, 'tenant1', ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, insert, "a1", "e1", "p1", "2024-01-01", "2024-01-31", 50)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "a2", "e1", "p1", "2024-01-01", "2024-01-31", 0)
	require.Error(t, err, "percentage must be positive")

	_, err = db.ExecContext(ctx, insert, "a3", "e1", "p1", "2024-01-01", "2024-01-31", 101)
	require.Error(t, err, "percentage must not exceed 100")

	_, err = db.ExecContext(ctx, insert, "a4", "e1", "p1", "2024-02-01", "2024-01-31", 50)
	require.Error(t, err, "start must not follow end")

	_, err = db.ExecContext(ctx, insert, "a5", "missing", "p1", "2024-01-01", "2024-01-31", 50)
	require.Error(t, err, "employee must exist")
}

func insertKnowledge(t *testing.T, db *DB, id, tenantID, name string) {
	t.Helper()
	repo := NewKnowledgeRepository(db)
	require.NoError(t, repo.Create(context.Background(), tenantID, &knowledge.Knowledge{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}))
}

func insertEmployee(t *testing.T, db *DB, id, tenantID, givenName, surname string, knowledgeIDs ...string) {
	t.Helper()
	now := time.Now().UTC()
	repo := NewEmployeeRepository(db)
	require.NoError(t, repo.Create(context.Background(), tenantID, &employee.Employee{
		ID:            id,
		GivenName:     givenName,
		Surname:       surname,
		CompanyEmail:  id + "@company.test",
		PersonalEmail: id + "@personal.test",
		IsActive:      true,
		KnowledgeIDs:  knowledgeIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
}

func insertClient(t *testing.T, db *DB, id, tenantID, code string) {
	t.Helper()
	now := time.Now().UTC()
	repo := NewClientRepository(db)
	require.NoError(t, repo.Create(context.Background(), tenantID, &client.Client{
		ID:          id,
		Name:        code + " Corp",
		Code:        code,
		CountryCode: "DE",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func insertProject(t *testing.T, db *DB, id, tenantID, clientID, name string) {
	t.Helper()
	now := time.Now().UTC()
	repo := NewProjectRepository(db)
	require.NoError(t, repo.Create(context.Background(), tenantID, &project.Project{
		ID:                     id,
		Code:                   id,
		Name:                   name,
		ClientID:               clientID,
		ContractOwner:          "owner@company.test",
		StartDate:              planning.MustParseDate("2024-01-01"),
		EndDate:                planning.MustParseDate("2024-12-31"),
		DealStatus:             project.DealWon,
		EngagementManagerEmail: "manager@company.test",
		CreatedAt:              now,
		UpdatedAt:              now,
	}))
}
