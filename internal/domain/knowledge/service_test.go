package knowledge_test

import (
	"context"
	"testing"

	"github.com/rpggio/staffplan/internal/domain/knowledge"
	"github.com/rpggio/staffplan/internal/repository"
	"github.com/rpggio/staffplan/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.KnowledgeRepository{}
	repo.On("Create", ctx, "tenant1", mock.MatchedBy(func(k *knowledge.Knowledge) bool { return k.Name == "Go" })).Return(nil)

	svc := knowledge.NewService(repo, nil, nil)
	k, err := svc.Create(ctx, "tenant1", knowledge.CreateRequest{Name: "  Go "})
	require.NoError(t, err)
	require.NotEmpty(t, k.ID)

	_, err = svc.Create(ctx, "tenant1", knowledge.CreateRequest{})
	require.ErrorIs(t, err, knowledge.ErrInvalidInput)
}

func TestKnowledgeService_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.KnowledgeRepository{}
	repo.On("Create", ctx, "tenant1", mock.Anything).Return(repository.ErrUniqueViolation)

	svc := knowledge.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, "tenant1", knowledge.CreateRequest{Name: "Go"})
	require.ErrorIs(t, err, knowledge.ErrDuplicateName)
}

func TestKnowledgeService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.KnowledgeRepository{}
	repo.On("Delete", ctx, "tenant1", "used").Return(repository.ErrForeignKeyViolation)
	repo.On("Delete", ctx, "tenant1", "gone").Return(repository.ErrNotFound)
	repo.On("Delete", ctx, "tenant1", "free").Return(nil)

	svc := knowledge.NewService(repo, nil, nil)
	require.ErrorIs(t, svc.Delete(ctx, "tenant1", "used"), knowledge.ErrInUse)
	require.ErrorIs(t, svc.Delete(ctx, "tenant1", "gone"), knowledge.ErrKnowledgeNotFound)
	require.NoError(t, svc.Delete(ctx, "tenant1", "free"))
}

func TestKnowledgeService_ListNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.KnowledgeRepository{}
	repo.On("List", ctx, "tenant1").Return(nil, nil)

	svc := knowledge.NewService(repo, nil, nil)
	items, err := svc.List(ctx, "tenant1")
	require.NoError(t, err)
	require.NotNil(t, items)
}
