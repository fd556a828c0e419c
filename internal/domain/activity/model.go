package activity

import "time"

// EntityType names the kind of entity an activity entry refers to.
type EntityType string

const (
	EntityEmployee   EntityType = "employee"
	EntityClient     EntityType = "client"
	EntityProject    EntityType = "project"
	EntityKnowledge  EntityType = "knowledge"
	EntityAllocation EntityType = "allocation"
)

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeCreated  ActivityType = "created"
	TypeUpdated  ActivityType = "updated"
	TypeDeleted  ActivityType = "deleted"
	TypeConflict ActivityType = "conflict_detected"
)

// ActivityEntry represents an event in the audit log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	EntityType   EntityType   `json:"entity_type"`
	EntityID     string       `json:"entity_id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
