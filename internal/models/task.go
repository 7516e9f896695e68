package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "To do"
	StatusInProgress TaskStatus = "In progress"
	StatusDone       TaskStatus = "Done"
)

type TaskImportance string

const (
	ImportanceNormal TaskImportance = "normal"
	ImportanceUrgent TaskImportance = "urgent"
)

type ViewKey string

const (
	ViewToday    ViewKey = "today"
	ViewUpcoming ViewKey = "upcoming"
	ViewAll      ViewKey = "all"
)

// Prefixo de IDs temporários criados offline, antes do Airtable atribuir um ID real.
const TempIdPrefix = "temp-"

type Task struct {
	Id              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Status          TaskStatus     `json:"status"`
	DueDate         time.Time      `json:"dueDate"`
	CompletedDate   *time.Time     `json:"completedDate,omitempty"`
	Importance      TaskImportance `json:"importance"`
	Images          []string       `json:"images"`
	AssigneeId      string         `json:"assigneeId,omitempty"`
	IsRepeating     bool           `json:"isRepeating"`
	RepeatEveryDays int            `json:"repeatEveryDays,omitempty"`
}

func (t Task) HasTempId() bool {
	return strings.HasPrefix(t.Id, TempIdPrefix)
}

// TaskUpdate carries the fields a mutation actually touched; nil means "leave as is".
type TaskUpdate struct {
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Status          *TaskStatus     `json:"status,omitempty"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	CompletedDate   *time.Time      `json:"completedDate,omitempty"`
	Importance      *TaskImportance `json:"importance,omitempty"`
	Images          *[]string       `json:"images,omitempty"`
	AssigneeId      *string         `json:"assigneeId,omitempty"`
	IsRepeating     *bool           `json:"isRepeating,omitempty"`
	RepeatEveryDays *int            `json:"repeatEveryDays,omitempty"`
}

func (u TaskUpdate) ApplyTo(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.CompletedDate != nil {
		t.CompletedDate = u.CompletedDate
	}
	if u.Importance != nil {
		t.Importance = *u.Importance
	}
	if u.Images != nil {
		t.Images = *u.Images
	}
	if u.AssigneeId != nil {
		t.AssigneeId = *u.AssigneeId
	}
	if u.IsRepeating != nil {
		t.IsRepeating = *u.IsRepeating
	}
	if u.RepeatEveryDays != nil {
		t.RepeatEveryDays = *u.RepeatEveryDays
	}
	return t
}

// FullUpdate turns a whole record into an update payload. Used when an offline
// create is queued: the pending change has to carry every field of the new task.
func FullUpdate(t Task) TaskUpdate {
	images := t.Images
	return TaskUpdate{
		Title:           &t.Title,
		Description:     &t.Description,
		Status:          &t.Status,
		DueDate:         &t.DueDate,
		CompletedDate:   t.CompletedDate,
		Importance:      &t.Importance,
		Images:          &images,
		AssigneeId:      &t.AssigneeId,
		IsRepeating:     &t.IsRepeating,
		RepeatEveryDays: &t.RepeatEveryDays,
	}
}
