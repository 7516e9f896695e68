package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/TWRT/garden-tasks/internal/client/airtable"
	"github.com/TWRT/garden-tasks/internal/repository"
)

type SaveSettingsRequestBody struct {
	AirtableToken string `json:"airtableToken"`
	AirtableBase  string `json:"airtableBase"`
	AirtableTable string `json:"airtableTable"`
}

type SettingsHandler struct {
	settingsRepo   *repository.SettingsRepository
	airtableClient *airtable.AirtableClient
}

func NewSettingsHandler(
	settingsRepo *repository.SettingsRepository,
	airtableClient *airtable.AirtableClient,
) *SettingsHandler {
	return &SettingsHandler{
		settingsRepo:   settingsRepo,
		airtableClient: airtableClient,
	}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to get settings: "+err.Error())
		return
	}

	// o token nunca volta na resposta
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"airtableBase":  settings.AirtableBase,
		"airtableTable": settings.AirtableTable,
		"isConfigured":  settings.IsConfigured,
	})
}

func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var reqBody SaveSettingsRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	if reqBody.AirtableToken == "" {
		writeError(w, http.StatusBadRequest, "airtableToken is required")
		return
	}

	settings := repository.Settings{
		AirtableToken: reqBody.AirtableToken,
		AirtableBase:  reqBody.AirtableBase,
		AirtableTable: reqBody.AirtableTable,
		IsConfigured:  reqBody.AirtableToken != "" && reqBody.AirtableBase != "" && reqBody.AirtableTable != "",
	}

	if err := h.settingsRepo.Save(settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to save settings: "+err.Error())
		return
	}

	h.airtableClient.Configure(settings.AirtableToken, settings.AirtableBase, settings.AirtableTable)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"isConfigured": settings.IsConfigured,
	})
}

func (h *SettingsHandler) ClearSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsRepo.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to clear settings: "+err.Error())
		return
	}

	h.airtableClient.Configure("", "", "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) GetBases(w http.ResponseWriter, r *http.Request) {
	bases, err := h.airtableClient.GetBases()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to get Airtable bases: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"bases": bases,
	})
}

func (h *SettingsHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	baseId := r.PathValue("id")

	tables, err := h.airtableClient.GetTables(baseId)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to get Airtable tables: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"tables": tables,
	})
}
