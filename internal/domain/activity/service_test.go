package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		EntityType:   activity.EntityEmployee,
		EntityID:     "emp1",
		ActivityType: activity.TypeCreated,
		Summary:      "created",
	}

	repo.On("Log", ctx, tenantID, entry).Return(nil)
	repo.On("List", ctx, tenantID, activity.ListActivityOptions{EntityID: "emp1", Limit: 50}).Return(nil, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, tenantID, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, tenantID, activity.ListActivityOptions{EntityID: "emp1"})
	require.NoError(t, err)
	require.NotNil(t, entries)
	repo.AssertExpectations(t)
}

func TestActivityService_LogRejectsIncompleteEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "tenant1", nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "tenant1", &activity.ActivityEntry{}), activity.ErrInvalidInput)
}

func TestRecord_SwallowsFailures(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, "tenant1", mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.EntityType == activity.EntityClient && e.EntityID == "c1" && e.Details == `{"code":"ACME"}`
	})).Return(errors.New("disk full"))

	activity.Record(ctx, repo, nil, "tenant1", activity.EntityClient, "c1", activity.TypeCreated, map[string]string{"code": "ACME"})
	activity.Record(ctx, nil, nil, "tenant1", activity.EntityClient, "c1", activity.TypeCreated, nil)
	repo.AssertExpectations(t)
}
