package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		EntityType:   activity.EntityEmployee,
		EntityID:     "e1",
		ActivityType: activity.TypeCreated,
		Summary:      "Created employee",
		Details:      `{"id":"e1"}`,
	}
	entry2 := &activity.ActivityEntry{
		EntityType:   activity.EntityAllocation,
		EntityID:     "a1",
		ActivityType: activity.TypeConflict,
		Summary:      "Version conflict on allocation",
		Details:      `{"expected":1,"actual":2}`,
	}

	require.NoError(t, repo.Log(ctx, "tenant1", entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, "tenant1", entry2))
	require.NotZero(t, entry1.ID)
	require.Equal(t, "tenant1", entry1.TenantID)

	entries, err := repo.List(ctx, "tenant1", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)

	entries, err = repo.List(ctx, "tenant1", activity.ListActivityOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "e1", entries[0].EntityID)
}

func TestActivityRepository_FiltersAndTenantIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	require.NoError(t, repo.Log(ctx, "tenant1", &activity.ActivityEntry{
		EntityType:   activity.EntityProject,
		EntityID:     "p1",
		ActivityType: activity.TypeUpdated,
		Summary:      "Updated project",
	}))
	require.NoError(t, repo.Log(ctx, "tenant1", &activity.ActivityEntry{
		EntityType:   activity.EntityProject,
		EntityID:     "p2",
		ActivityType: activity.TypeDeleted,
		Summary:      "Deleted project",
	}))

	entityType := activity.EntityProject
	activityType := activity.TypeUpdated
	entries, err := repo.List(ctx, "tenant1", activity.ListActivityOptions{
		EntityType:   &entityType,
		ActivityType: &activityType,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "p1", entries[0].EntityID)

	entries, err = repo.List(ctx, "tenant1", activity.ListActivityOptions{EntityID: "p2"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, "tenant2", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 0)
}
