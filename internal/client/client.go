package client

import "github.com/TWRT/garden-tasks/internal/models"

type ListOptions struct {
	View     models.ViewKey
	Offset   string
	PageSize int
}

type ListResult struct {
	Tasks   []models.Task
	Offset  string
	HasMore bool
}

type RecordClient interface {
	ListTasks(opts ListOptions) (*ListResult, error)
	CreateTask(task models.Task) (string, error)
	UpdateTask(id string, task models.Task) error
	DeleteTask(id string) error
}

type ConnectivityProbe interface {
	Ping() bool
}
