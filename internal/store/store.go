package store

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TWRT/garden-tasks/internal/client"
	"github.com/TWRT/garden-tasks/internal/models"
)

// Outcome diz qual caminho a mutação tomou, para o chamador e para os testes.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeCommitted
	OutcomeQueued
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeQueued:
		return "queued"
	case OutcomeSkipped:
		return "skipped"
	}
	return "failed"
}

type BlobStore interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
}

// TaskStore is the in-memory source of truth for the task list and selection.
// Mutations apply optimistically, pick the online or offline path from the
// connectivity signal, and keep the cache and pending queue up to date.
//
// The mutex covers the in-memory state only; it is released across remote
// calls, so two overlapping mutations on the same task can still interleave
// (check-then-act). That lost-update window is a known trade-off.
type TaskStore struct {
	mu             sync.Mutex
	tasks          []models.Task
	selectedTaskId string
	cache          *RecordCache
	queue          *PendingQueue

	recordClient client.RecordClient
	blobs        BlobStore
	online       func() bool

	now       func() time.Time
	newTempId func() string
}

func NewTaskStore(recordClient client.RecordClient, blobs BlobStore, online func() bool) *TaskStore {
	s := &TaskStore{
		cache:        NewRecordCache(),
		queue:        NewPendingQueue(),
		recordClient: recordClient,
		blobs:        blobs,
		online:       online,
		now:          time.Now,
		newTempId: func() string {
			return models.TempIdPrefix + uuid.NewString()
		},
	}
	s.restore()
	return s
}

func (s *TaskStore) restore() {
	raw, ok, err := s.blobs.Load(StorageKey)
	if err != nil {
		log.Printf("Failed to load persisted state: %v", err)
		return
	}
	if !ok {
		return
	}

	tasks, changes, cache, err := decodeSnapshot(raw)
	if err != nil {
		log.Printf("Failed to restore persisted state: %v", err)
		return
	}

	s.tasks = tasks
	s.queue.Replace(changes)
	s.cache.Restore(cache)
}

// persistLocked grava o snapshot no blob store. Chamar com s.mu já preso.
func (s *TaskStore) persistLocked() {
	raw, err := encodeSnapshot(s.tasks, s.queue.Items(), s.cache.Entries())
	if err != nil {
		log.Printf("Failed to encode state snapshot: %v", err)
		return
	}
	if err := s.blobs.Save(StorageKey, raw); err != nil {
		log.Printf("Failed to persist state: %v", err)
	}
}

func (s *TaskStore) indexOf(id string) int {
	for i, task := range s.tasks {
		if task.Id == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

func (s *TaskStore) SelectedTaskId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedTaskId
}

func (s *TaskStore) SetSelectedTaskId(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTaskId = id
}

// SetTasks replaces the in-memory list and rewrites the cache entry for view.
func (s *TaskStore) SetTasks(tasks []models.Task, view models.ViewKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.cache.Put(view, tasks, s.now())
	s.persistLocked()
}

// AppendTasks concatenates a loaded page onto the list. The cache is not touched.
func (s *TaskStore) AppendTasks(tasks []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, tasks...)
	s.persistLocked()
}

func (s *TaskStore) GetCachedTasks(view models.ViewKey) ([]models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(view, s.now())
}

func (s *TaskStore) CachedAt(view models.ViewKey) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.CachedAt(view, s.now())
}

// AddTask tenta criar no Airtable; se falhar e o sinal disser offline, a task
// entra na lista com um ID temporário e a criação fica pendente na fila.
func (s *TaskStore) AddTask(data models.Task) (models.Task, Outcome, error) {
	id, err := s.recordClient.CreateTask(data)
	if err == nil {
		task := data
		task.Id = id
		s.mu.Lock()
		s.tasks = append(s.tasks, task)
		s.persistLocked()
		s.mu.Unlock()
		return task, OutcomeCommitted, nil
	}

	if !s.online() {
		task := data
		task.Id = s.newTempId()
		s.mu.Lock()
		s.tasks = append(s.tasks, task)
		payload := models.FullUpdate(task)
		s.queue.Enqueue(models.PendingChange{
			TaskId:    task.Id,
			Type:      models.ChangeUpdate,
			Data:      &payload,
			Timestamp: s.now().UnixMilli(),
		})
		s.persistLocked()
		s.mu.Unlock()
		return task, OutcomeQueued, nil
	}

	return models.Task{}, OutcomeFailed, fmt.Errorf("create task: %w", err)
}

// applyUpdate merges updates into the record for id and pushes the merged
// record remotely when online, or queues the partial payload when offline.
func (s *TaskStore) applyUpdate(id string, updates models.TaskUpdate) (Outcome, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeSkipped, nil
	}
	merged := updates.ApplyTo(s.tasks[idx])
	online := s.online()
	s.mu.Unlock()

	if online {
		if err := s.recordClient.UpdateTask(id, merged); err != nil {
			return OutcomeFailed, fmt.Errorf("update task %s: %w", id, err)
		}
		s.mu.Lock()
		if idx := s.indexOf(id); idx >= 0 {
			s.tasks[idx] = merged
		}
		s.persistLocked()
		s.mu.Unlock()
		return OutcomeCommitted, nil
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.tasks[idx] = merged
	}
	s.queue.Enqueue(models.PendingChange{
		TaskId:    id,
		Type:      models.ChangeUpdate,
		Data:      &updates,
		Timestamp: s.now().UnixMilli(),
	})
	s.persistLocked()
	s.mu.Unlock()
	return OutcomeQueued, nil
}

func (s *TaskStore) UpdateTask(id string, updates models.TaskUpdate) (Outcome, error) {
	return s.applyUpdate(id, updates)
}

// UpdateTaskStatus sets the status. Marking a repeating task Done reschedules
// it instead: due date jumps to now + interval, status goes back to To do and
// no completion date is recorded.
func (s *TaskStore) UpdateTaskStatus(id string, status models.TaskStatus) (Outcome, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeSkipped, nil
	}
	task := s.tasks[idx]
	s.mu.Unlock()

	if status == models.StatusDone && task.IsRepeating && task.RepeatEveryDays > 0 {
		newDueDate := s.now().AddDate(0, 0, task.RepeatEveryDays)
		newStatus := models.StatusTodo
		return s.applyUpdate(id, models.TaskUpdate{
			DueDate: &newDueDate,
			Status:  &newStatus,
		})
	}

	updates := models.TaskUpdate{Status: &status}
	if status == models.StatusDone {
		completedAt := s.now()
		updates.CompletedDate = &completedAt
	}
	return s.applyUpdate(id, updates)
}

// DelayTask adds days to the task's current due date, not to today.
func (s *TaskStore) DelayTask(id string, days int) (Outcome, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeSkipped, nil
	}
	newDueDate := s.tasks[idx].DueDate.AddDate(0, 0, days)
	s.mu.Unlock()

	return s.applyUpdate(id, models.TaskUpdate{DueDate: &newDueDate})
}

// DeleteTask removes the record locally no matter what; the remote delete is
// issued when online (a remote failure does not bring the record back) and
// queued otherwise.
func (s *TaskStore) DeleteTask(id string) (Outcome, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeSkipped, nil
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if s.selectedTaskId == id {
		s.selectedTaskId = ""
	}
	online := s.online()

	if !online {
		s.queue.Enqueue(models.PendingChange{
			TaskId:    id,
			Type:      models.ChangeDelete,
			Timestamp: s.now().UnixMilli(),
		})
		s.persistLocked()
		s.mu.Unlock()
		return OutcomeQueued, nil
	}

	s.persistLocked()
	s.mu.Unlock()

	if err := s.recordClient.DeleteTask(id); err != nil {
		return OutcomeFailed, fmt.Errorf("delete task %s: %w", id, err)
	}
	return OutcomeCommitted, nil
}

// SyncPendingChanges replays the queue in timestamp order, one entry at a time.
// Update payloads are re-merged onto the current in-memory record so a stale
// queued payload never clobbers a later edit. Failed entries stay queued for
// the next attempt; nothing is raised past this boundary.
func (s *TaskStore) SyncPendingChanges() (synced, failed int) {
	s.mu.Lock()
	if s.queue.Len() == 0 {
		s.mu.Unlock()
		return 0, 0
	}
	changes := s.queue.Sorted()
	s.mu.Unlock()

	var failures []models.PendingChange

	for _, change := range changes {
		var err error
		switch change.Type {
		case models.ChangeUpdate:
			err = s.replayUpdate(change)
		case models.ChangeDelete:
			err = s.recordClient.DeleteTask(change.TaskId)
		}
		if err != nil {
			log.Printf("Failed to sync change %s for task %s: %v", change.Type, change.TaskId, err)
			failures = append(failures, change)
		}
	}

	s.mu.Lock()
	s.queue.Replace(failures)
	s.persistLocked()
	s.mu.Unlock()

	return len(changes) - len(failures), len(failures)
}

func (s *TaskStore) replayUpdate(change models.PendingChange) error {
	s.mu.Lock()
	idx := s.indexOf(change.TaskId)
	if idx < 0 {
		// a task sumiu da lista; a mudança pendente não tem mais alvo
		s.mu.Unlock()
		return nil
	}
	current := s.tasks[idx]
	if change.Data != nil {
		current = change.Data.ApplyTo(current)
	}
	s.mu.Unlock()

	if !current.HasTempId() {
		return s.recordClient.UpdateTask(change.TaskId, current)
	}

	// Offline create: the record only exists locally, so replay issues a
	// create and swaps the temporary ID for the server-assigned one.
	newId, err := s.recordClient.CreateTask(current)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if idx := s.indexOf(change.TaskId); idx >= 0 {
		task := s.tasks[idx]
		task.Id = newId
		s.tasks[idx] = task
	}
	if s.selectedTaskId == change.TaskId {
		s.selectedTaskId = newId
	}
	s.mu.Unlock()
	return nil
}
