package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	EntityType   *EntityType
	EntityID     string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
