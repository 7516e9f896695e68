package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/TWRT/garden-tasks/internal/client"
	"github.com/TWRT/garden-tasks/internal/client/airtable"
	"github.com/TWRT/garden-tasks/internal/connectivity"
	"github.com/TWRT/garden-tasks/internal/models"
	"github.com/TWRT/garden-tasks/internal/store"
)

var ErrOffline = errors.New("You are offline. No cached data available.")

// TaskService liga o store ao mundo externo: paginação da view atual,
// fallback para o cache quando offline e o fluxo de reconexão.
type TaskService struct {
	taskStore      *store.TaskStore
	airtableClient *airtable.AirtableClient
	monitor        *connectivity.Monitor

	mu      sync.Mutex
	view    models.ViewKey
	offset  string
	hasMore bool
}

func NewTaskService(
	taskStore *store.TaskStore,
	airtableClient *airtable.AirtableClient,
	monitor *connectivity.Monitor,
) *TaskService {
	s := &TaskService{
		taskStore:      taskStore,
		airtableClient: airtableClient,
		monitor:        monitor,
		view:           models.ViewToday,
		hasMore:        true,
	}
	monitor.OnOnline(s.HandleOnline)
	return s
}

type LoadResult struct {
	Tasks     []models.Task
	HasMore   bool
	FromCache bool
	CachedAgo string
}

func (s *TaskService) View() models.ViewKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView troca o filtro atual e zera a paginação.
func (s *TaskService) SetView(view models.ViewKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	s.offset = ""
	s.hasMore = true
}

// LoadTasks fetches the first page for view, replacing the current list.
func (s *TaskService) LoadTasks(view models.ViewKey) (*LoadResult, error) {
	s.SetView(view)
	return s.LoadMore()
}

// LoadMore loads the next page of the current view. Offline it serves the
// cached list when still valid, otherwise it fails with ErrOffline.
func (s *TaskService) LoadMore() (*LoadResult, error) {
	if !s.airtableClient.Configured() {
		return nil, airtable.ErrNotConfigured
	}

	s.mu.Lock()
	view := s.view
	offset := s.offset
	hasMore := s.hasMore
	s.mu.Unlock()

	if !hasMore {
		return &LoadResult{Tasks: s.taskStore.Tasks(), HasMore: false}, nil
	}

	if !s.monitor.Online() {
		cached, ok := s.taskStore.GetCachedTasks(view)
		if !ok {
			return nil, ErrOffline
		}
		s.taskStore.SetTasks(cached, view)
		s.mu.Lock()
		s.hasMore = false
		s.mu.Unlock()

		result := &LoadResult{Tasks: cached, HasMore: false, FromCache: true}
		if cachedAt, ok := s.taskStore.CachedAt(view); ok {
			result.CachedAgo = humanize.Time(cachedAt)
		}
		return result, nil
	}

	page, err := s.airtableClient.ListTasks(client.ListOptions{
		View:     view,
		Offset:   offset,
		PageSize: airtable.DefaultPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	if offset == "" {
		s.taskStore.SetTasks(page.Tasks, view)
	} else {
		s.taskStore.AppendTasks(page.Tasks)
	}

	s.mu.Lock()
	s.offset = page.Offset
	s.hasMore = page.HasMore
	s.mu.Unlock()

	return &LoadResult{Tasks: s.taskStore.Tasks(), HasMore: page.HasMore}, nil
}

// Sync replays the pending queue now. Returns aggregate counts only.
func (s *TaskService) Sync() (synced, failed int) {
	return s.taskStore.SyncPendingChanges()
}

// HandleOnline roda na borda "ficou online": sincroniza a fila, zera a
// paginação e recarrega a view atual.
func (s *TaskService) HandleOnline() {
	pending := s.taskStore.PendingCount()
	if pending > 0 {
		fmt.Printf("🔄 Conexão restabelecida, sincronizando %d mudanças pendentes...\n", pending)
	}

	synced, failed := s.taskStore.SyncPendingChanges()
	if failed > 0 {
		fmt.Printf("❌ %d mudanças não sincronizadas, tentando de novo no próximo sync\n", failed)
	} else if synced > 0 {
		fmt.Printf("✅ %d mudanças sincronizadas\n", synced)
	}

	s.mu.Lock()
	view := s.view
	s.offset = ""
	s.hasMore = true
	s.mu.Unlock()

	if _, err := s.LoadTasks(view); err != nil {
		fmt.Printf("Erro ao recarregar tasks: %v\n", err)
	}
}
