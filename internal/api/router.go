package api

import (
	"database/sql"
	"net/http"

	"github.com/TWRT/garden-tasks/internal/api/handlers"
	"github.com/TWRT/garden-tasks/internal/client/airtable"
	"github.com/TWRT/garden-tasks/internal/connectivity"
	"github.com/TWRT/garden-tasks/internal/repository"
	"github.com/TWRT/garden-tasks/internal/service"
	"github.com/TWRT/garden-tasks/internal/store"
)

func SetupRouter(db *sql.DB, airtableClient *airtable.AirtableClient, monitor *connectivity.Monitor) *http.ServeMux {
	mux := http.NewServeMux()

	blobRepo := repository.NewBlobRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	taskStore := store.NewTaskStore(airtableClient, blobRepo, monitor.Online)
	taskService := service.NewTaskService(taskStore, airtableClient, monitor)

	taskHandler := handlers.NewTaskHandler(taskService, taskStore, monitor)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, airtableClient)
	employeeHandler := handlers.NewEmployeeHandler()

	mux.HandleFunc("GET /tasks", taskHandler.GetTasks)
	mux.HandleFunc("POST /tasks/load-more", taskHandler.LoadMore)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("PATCH /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("POST /tasks/{id}/status", taskHandler.UpdateTaskStatus)
	mux.HandleFunc("POST /tasks/{id}/delay", taskHandler.DelayTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.DeleteTask)
	mux.HandleFunc("POST /selection", taskHandler.SetSelection)
	mux.HandleFunc("POST /sync", taskHandler.Sync)
	mux.HandleFunc("GET /status", taskHandler.GetStatus)
	mux.HandleFunc("POST /connectivity", taskHandler.SetConnectivity)

	mux.HandleFunc("GET /settings", settingsHandler.GetSettings)
	mux.HandleFunc("POST /settings", settingsHandler.SaveSettings)
	mux.HandleFunc("DELETE /settings", settingsHandler.ClearSettings)
	mux.HandleFunc("GET /airtable/bases", settingsHandler.GetBases)
	mux.HandleFunc("GET /airtable/bases/{id}/tables", settingsHandler.GetTables)

	mux.HandleFunc("GET /employees", employeeHandler.ListEmployees)

	return mux
}
