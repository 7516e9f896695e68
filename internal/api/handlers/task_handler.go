package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/TWRT/garden-tasks/internal/client/airtable"
	"github.com/TWRT/garden-tasks/internal/connectivity"
	"github.com/TWRT/garden-tasks/internal/models"
	"github.com/TWRT/garden-tasks/internal/service"
	"github.com/TWRT/garden-tasks/internal/store"
)

type CreateTaskRequestBody struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	DueDate         string   `json:"dueDate"`
	Importance      string   `json:"importance"`
	Images          []string `json:"images"`
	AssigneeId      string   `json:"assigneeId"`
	IsRepeating     bool     `json:"isRepeating"`
	RepeatEveryDays int      `json:"repeatEveryDays"`
}

type TaskHandler struct {
	taskService *service.TaskService
	taskStore   *store.TaskStore
	monitor     *connectivity.Monitor
}

func NewTaskHandler(
	taskService *service.TaskService,
	taskStore *store.TaskStore,
	monitor *connectivity.Monitor,
) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		taskStore:   taskStore,
		monitor:     monitor,
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

func loadErrorStatus(err error) int {
	if errors.Is(err, airtable.ErrNotConfigured) {
		return http.StatusBadRequest
	}
	if errors.Is(err, service.ErrOffline) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	view := models.ViewKey(r.URL.Query().Get("view"))
	if view == "" {
		view = h.taskService.View()
	}
	if view != models.ViewToday && view != models.ViewUpcoming && view != models.ViewAll {
		writeError(w, http.StatusBadRequest, "Invalid view: "+string(view))
		return
	}

	result, err := h.taskService.LoadTasks(view)
	if err != nil {
		writeError(w, loadErrorStatus(err), "Error trying to load tasks: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"tasks":     result.Tasks,
		"hasMore":   result.HasMore,
		"fromCache": result.FromCache,
		"cachedAgo": result.CachedAgo,
	})
}

func (h *TaskHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	result, err := h.taskService.LoadMore()
	if err != nil {
		writeError(w, loadErrorStatus(err), "Error trying to load more tasks: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"tasks":   result.Tasks,
		"hasMore": result.HasMore,
	})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return
	}

	var reqBody CreateTaskRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	if reqBody.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if reqBody.DueDate == "" {
		writeError(w, http.StatusBadRequest, "dueDate is required")
		return
	}
	dueDate, err := parseDateParam(reqBody.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dueDate: "+err.Error())
		return
	}
	if reqBody.IsRepeating && reqBody.RepeatEveryDays < 1 {
		writeError(w, http.StatusBadRequest, "repeatEveryDays must be >= 1 for a repeating task")
		return
	}

	status := models.TaskStatus(reqBody.Status)
	if status == "" {
		status = models.StatusTodo
	}
	importance := models.TaskImportance(reqBody.Importance)
	if importance == "" {
		importance = models.ImportanceNormal
	}
	images := reqBody.Images
	if images == nil {
		images = []string{}
	}

	task, outcome, err := h.taskStore.AddTask(models.Task{
		Title:           reqBody.Title,
		Description:     reqBody.Description,
		Status:          status,
		DueDate:         dueDate,
		Importance:      importance,
		Images:          images,
		AssigneeId:      reqBody.AssigneeId,
		IsRepeating:     reqBody.IsRepeating,
		RepeatEveryDays: reqBody.RepeatEveryDays,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to create task: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"task":    task,
		"outcome": outcome.String(),
	})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return
	}

	var updates models.TaskUpdate
	if err := json.Unmarshal(body, &updates); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	outcome, err := h.taskStore.UpdateTask(id, updates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to update task: "+err.Error())
		return
	}

	writeOutcome(w, outcome)
}

func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var reqBody struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}
	if reqBody.Status != models.StatusTodo && reqBody.Status != models.StatusInProgress && reqBody.Status != models.StatusDone {
		writeError(w, http.StatusBadRequest, "Invalid status: "+string(reqBody.Status))
		return
	}

	outcome, err := h.taskStore.UpdateTaskStatus(id, reqBody.Status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to update task status: "+err.Error())
		return
	}

	writeOutcome(w, outcome)
}

func (h *TaskHandler) DelayTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var reqBody struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}
	if reqBody.Days < 1 {
		writeError(w, http.StatusBadRequest, "days must be >= 1")
		return
	}

	outcome, err := h.taskStore.DelayTask(id, reqBody.Days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to delay task: "+err.Error())
		return
	}

	writeOutcome(w, outcome)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	outcome, err := h.taskStore.DeleteTask(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to delete task: "+err.Error())
		return
	}

	writeOutcome(w, outcome)
}

func (h *TaskHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var reqBody struct {
		TaskId string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	h.taskStore.SetSelectedTaskId(reqBody.TaskId)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Sync(w http.ResponseWriter, r *http.Request) {
	synced, failed := h.taskService.Sync()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]int{
		"synced": synced,
		"failed": failed,
	})
}

func (h *TaskHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"online":         h.monitor.Online(),
		"pendingChanges": h.taskStore.PendingCount(),
		"selectedTaskId": h.taskStore.SelectedTaskId(),
		"view":           h.taskService.View(),
	})
}

// SetConnectivity liga o sinal externo de conectividade aos eventos de borda.
func (h *TaskHandler) SetConnectivity(w http.ResponseWriter, r *http.Request) {
	var reqBody struct {
		Online bool `json:"online"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	h.monitor.SetOnline(reqBody.Online)
	w.WriteHeader(http.StatusNoContent)
}

func writeOutcome(w http.ResponseWriter, outcome store.Outcome) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"outcome": outcome.String(),
	})
}

func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
