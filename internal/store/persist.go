package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/TWRT/garden-tasks/internal/models"
)

// StorageKey é a chave do snapshot do estado no blob store.
const StorageKey = "task-storage"

// Snapshot types mirror the in-memory state but carry dates as ISO-8601 strings
// so the blob round-trips losslessly through any storage backend.
type taskSnapshot struct {
	Id              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Status          models.TaskStatus     `json:"status"`
	DueDate         string                `json:"dueDate"`
	CompletedDate   string                `json:"completedDate,omitempty"`
	Importance      models.TaskImportance `json:"importance"`
	Images          []string              `json:"images"`
	AssigneeId      string                `json:"assigneeId,omitempty"`
	IsRepeating     bool                  `json:"isRepeating"`
	RepeatEveryDays int                   `json:"repeatEveryDays,omitempty"`
}

type cacheSnapshot struct {
	Tasks      []taskSnapshot `json:"tasks"`
	Timestamp  int64          `json:"timestamp"`
	FilterType models.ViewKey `json:"filterType"`
}

type storeSnapshot struct {
	Tasks          []taskSnapshot                  `json:"tasks"`
	PendingChanges []models.PendingChange          `json:"pendingChanges"`
	Cache          map[models.ViewKey]cacheSnapshot `json:"cache"`
}

func encodeTask(t models.Task) taskSnapshot {
	snapshot := taskSnapshot{
		Id:              t.Id,
		Title:           t.Title,
		Description:     t.Description,
		Status:          t.Status,
		DueDate:         t.DueDate.Format(time.RFC3339Nano),
		Importance:      t.Importance,
		Images:          t.Images,
		AssigneeId:      t.AssigneeId,
		IsRepeating:     t.IsRepeating,
		RepeatEveryDays: t.RepeatEveryDays,
	}
	if t.CompletedDate != nil {
		snapshot.CompletedDate = t.CompletedDate.Format(time.RFC3339Nano)
	}
	return snapshot
}

func decodeTask(s taskSnapshot) (models.Task, error) {
	dueDate, err := time.Parse(time.RFC3339Nano, s.DueDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("parse dueDate of task %s: %w", s.Id, err)
	}

	task := models.Task{
		Id:              s.Id,
		Title:           s.Title,
		Description:     s.Description,
		Status:          s.Status,
		DueDate:         dueDate,
		Importance:      s.Importance,
		Images:          s.Images,
		AssigneeId:      s.AssigneeId,
		IsRepeating:     s.IsRepeating,
		RepeatEveryDays: s.RepeatEveryDays,
	}
	if s.CompletedDate != "" {
		completedDate, err := time.Parse(time.RFC3339Nano, s.CompletedDate)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse completedDate of task %s: %w", s.Id, err)
		}
		task.CompletedDate = &completedDate
	}
	return task, nil
}

func encodeTasks(tasks []models.Task) []taskSnapshot {
	out := make([]taskSnapshot, len(tasks))
	for i, task := range tasks {
		out[i] = encodeTask(task)
	}
	return out
}

func decodeTasks(snapshots []taskSnapshot) ([]models.Task, error) {
	out := make([]models.Task, len(snapshots))
	for i, snapshot := range snapshots {
		task, err := decodeTask(snapshot)
		if err != nil {
			return nil, err
		}
		out[i] = task
	}
	return out, nil
}

func encodeSnapshot(tasks []models.Task, changes []models.PendingChange, cache map[models.ViewKey]CacheEntry) ([]byte, error) {
	snapshot := storeSnapshot{
		Tasks:          encodeTasks(tasks),
		PendingChanges: changes,
		Cache:          make(map[models.ViewKey]cacheSnapshot, len(cache)),
	}
	for view, entry := range cache {
		snapshot.Cache[view] = cacheSnapshot{
			Tasks:      encodeTasks(entry.Tasks),
			Timestamp:  entry.Timestamp.UnixMilli(),
			FilterType: entry.View,
		}
	}
	return json.Marshal(snapshot)
}

func decodeSnapshot(raw []byte) ([]models.Task, []models.PendingChange, map[models.ViewKey]CacheEntry, error) {
	var snapshot storeSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, nil, nil, fmt.Errorf("parse state snapshot: %w", err)
	}

	tasks, err := decodeTasks(snapshot.Tasks)
	if err != nil {
		return nil, nil, nil, err
	}

	cache := make(map[models.ViewKey]CacheEntry, len(snapshot.Cache))
	for view, entry := range snapshot.Cache {
		cachedTasks, err := decodeTasks(entry.Tasks)
		if err != nil {
			return nil, nil, nil, err
		}
		cache[view] = CacheEntry{
			Tasks:     cachedTasks,
			Timestamp: time.UnixMilli(entry.Timestamp),
			View:      entry.FilterType,
		}
	}

	return tasks, snapshot.PendingChanges, cache, nil
}
