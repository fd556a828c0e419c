package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/staffplan/internal/repository"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, tenantID string, entry *ActivityEntry) error {
	if entry == nil || entry.EntityType == "" || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, tenantID, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering, newest first.
func (s *Service) GetRecentActivity(ctx context.Context, tenantID string, opts ListActivityOptions) ([]ActivityEntry, error) {
	page := repository.Page{Limit: opts.Limit, Offset: opts.Offset}.Normalize()
	opts.Limit, opts.Offset = page.Limit, page.Offset
	entries, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	if entries == nil {
		entries = []ActivityEntry{}
	}
	return entries, nil
}

// Record builds and logs an entry for a change to one entity. Failures are
// logged and swallowed so that auditing never fails the change itself.
func Record(ctx context.Context, repo Repository, logger *slog.Logger, tenantID string, entity EntityType, entityID string, typ ActivityType, details any) {
	if repo == nil {
		return
	}
	entry := &ActivityEntry{
		EntityType:   entity,
		EntityID:     entityID,
		ActivityType: typ,
		Summary:      fmt.Sprintf("%s %s %s", typ, entity, entityID),
		CreatedAt:    time.Now(),
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = string(raw)
		}
	}
	if err := repo.Log(ctx, tenantID, entry); err != nil && logger != nil {
		logger.Warn("activity log failed", "entity", entity, "id", entityID, "error", err)
	}
}
