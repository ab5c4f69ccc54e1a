package types

// Status is a type for the lifecycle status of a persisted resource.
// This is used to determine if a record should be included in queries.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)
