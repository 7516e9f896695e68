package models

type ChangeType string

const (
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// PendingChange is one not-yet-confirmed mutation waiting for connectivity.
// Timestamp (unix milliseconds) is the replay ordering key; Data is nil for deletes.
type PendingChange struct {
	TaskId    string      `json:"taskId"`
	Type      ChangeType  `json:"type"`
	Data      *TaskUpdate `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}
