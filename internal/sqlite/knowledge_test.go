package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/staffplan/internal/domain/knowledge"
	"github.com/rpggio/staffplan/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeRepository_CreateList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertKnowledge(t, db, "k2", "tenant1", "SQL")
	insertKnowledge(t, db, "k1", "tenant1", "Go")
	insertKnowledge(t, db, "k3", "tenant2", "Rust")

	repo := NewKnowledgeRepository(db)
	items, err := repo.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Go", items[0].Name)
	require.Equal(t, "SQL", items[1].Name)

	err = repo.Create(ctx, "tenant1", &knowledge.Knowledge{ID: "k4", Name: "Go"})
	require.ErrorIs(t, err, repository.ErrUniqueViolation)

	require.NoError(t, repo.Create(ctx, "tenant2", &knowledge.Knowledge{ID: "k5", Name: "Go"}))
}

func TestKnowledgeRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertKnowledge(t, db, "k1", "tenant1", "Go")
	insertKnowledge(t, db, "k2", "tenant1", "SQL")
	insertEmployee(t, db, "e1", "tenant1", "Ada", "Lovelace", "k1")

	repo := NewKnowledgeRepository(db)
	require.ErrorIs(t, repo.Delete(ctx, "tenant1", "k1"), repository.ErrForeignKeyViolation)
	require.ErrorIs(t, repo.Delete(ctx, "tenant2", "k2"), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "tenant1", "k2"))

	items, err := repo.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, items, 1)
}
