package airtable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/TWRT/garden-tasks/internal/client"
	"github.com/TWRT/garden-tasks/internal/models"
)

var ErrNotConfigured = errors.New("Airtable configuration is missing")

const DefaultPageSize = 25

type AirtableClient struct {
	baseUrl    string
	httpClient *http.Client

	mu      sync.RWMutex
	token   string
	baseId  string
	table   string
	nowFunc func() time.Time
}

func NewAirtableClient(token, baseId, table string) *AirtableClient {
	return &AirtableClient{
		baseUrl:    "https://api.airtable.com/v0",
		token:      token,
		baseId:     baseId,
		table:      table,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		nowFunc:    time.Now,
	}
}

// Configure troca as credenciais em tempo de execução (tela de configurações).
func (c *AirtableClient) Configure(token, baseId, table string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.baseId = baseId
	c.table = table
}

func (c *AirtableClient) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != "" && c.baseId != "" && c.table != ""
}

func (c *AirtableClient) config() (token, baseId, table string, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" || c.baseId == "" || c.table == "" {
		return "", "", "", ErrNotConfigured
	}
	return c.token, c.baseId, c.table, nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("parse date (airtable): %w", err)
	}
	utc := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	return &utc, nil
}

func viewFormula(view models.ViewKey, today time.Time) string {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	switch view {
	case models.ViewToday:
		return fmt.Sprintf(
			"AND(IS_AFTER({To Do Date}, '%s'), IS_BEFORE({To Do Date}, '%s'), {Status} != 'Done')",
			formatDate(day.AddDate(0, 0, -2)),
			formatDate(day.AddDate(0, 0, 2)),
		)
	case models.ViewUpcoming:
		return fmt.Sprintf(
			"AND({To Do Date} >= '%s', {To Do Date} <= '%s', {Status} != 'Done')",
			formatDate(day.AddDate(0, 0, -1)),
			formatDate(day.AddDate(0, 0, 7)),
		)
	}
	// 'all' lista tudo, sem filtro
	return ""
}

func (c *AirtableClient) decodeError(resp *http.Response) error {
	errorBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error body (airtable): %w", err)
	}

	var airtableErr AirtableError
	if err := json.Unmarshal(errorBody, &airtableErr); err != nil {
		return fmt.Errorf("error status (airtable): %d", resp.StatusCode)
	}
	if airtableErr.Error.Message != "" {
		return fmt.Errorf("Airtable error: %s", airtableErr.Error.Message)
	}
	return fmt.Errorf("API error status: %d", resp.StatusCode)
}

func (c *AirtableClient) doJSON(method, url string, payload, out any) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return ErrNotConfigured
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request (airtable): %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("build request (airtable): %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s (airtable): %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body (airtable): %w", err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response (airtable): %w", err)
	}
	return nil
}

func (c *AirtableClient) recordToTask(record Record) (models.Task, error) {
	dueDate, err := parseDate(record.Fields.ToDoDate)
	if err != nil {
		return models.Task{}, err
	}
	if dueDate == nil {
		now := c.nowFunc().UTC()
		dueDate = &now
	}

	completedDate, err := parseDate(record.Fields.CompletedDate)
	if err != nil {
		return models.Task{}, err
	}

	status := models.TaskStatus(record.Fields.Status)
	if status == "" {
		status = models.StatusTodo
	}
	importance := models.TaskImportance(record.Fields.Importance)
	if importance == "" {
		importance = models.ImportanceNormal
	}

	images := make([]string, 0, len(record.Fields.Photos))
	for _, photo := range record.Fields.Photos {
		images = append(images, photo.Url)
	}

	return models.Task{
		Id:              record.Id,
		Title:           record.Fields.Task,
		Description:     record.Fields.Notes,
		Status:          status,
		DueDate:         *dueDate,
		CompletedDate:   completedDate,
		Importance:      importance,
		Images:          images,
		IsRepeating:     record.Fields.RepeatedTask,
		RepeatEveryDays: record.Fields.RepeatEveryDays,
	}, nil
}

func taskToFields(task models.Task) RecordFields {
	photos := make([]Attachment, 0, len(task.Images))
	for _, imageUrl := range task.Images {
		photos = append(photos, Attachment{Url: imageUrl})
	}

	fields := RecordFields{
		Task:            task.Title,
		Notes:           task.Description,
		Status:          string(task.Status),
		ToDoDate:        formatDate(task.DueDate),
		Photos:          photos,
		RepeatedTask:    task.IsRepeating,
		RepeatEveryDays: task.RepeatEveryDays,
		Importance:      string(task.Importance),
	}
	if fields.Importance == "" {
		fields.Importance = string(models.ImportanceNormal)
	}
	if task.CompletedDate != nil {
		fields.CompletedDate = formatDate(*task.CompletedDate)
	}
	return fields
}

func (c *AirtableClient) ListTasks(opts client.ListOptions) (*client.ListResult, error) {
	_, baseId, table, err := c.config()
	if err != nil {
		return nil, err
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(pageSize))
	query.Set("sort[0][field]", "Importance")
	query.Set("sort[0][direction]", "desc")
	query.Set("sort[1][field]", "To Do Date")
	query.Set("sort[1][direction]", "asc")
	for _, field := range []string{
		"Task", "Notes", "Status", "To Do Date", "Completed Date",
		"Photos", "Repeated Task", "Repeat Every X Days", "Importance",
	} {
		query.Add("fields[]", field)
	}
	if formula := viewFormula(opts.View, c.nowFunc()); formula != "" {
		query.Set("filterByFormula", formula)
	}
	if opts.Offset != "" {
		query.Set("offset", opts.Offset)
	}

	listUrl := c.baseUrl + "/" + baseId + "/" + url.PathEscape(table) + "?" + query.Encode()

	var listResp ListRecordsResponse
	if err := c.doJSON("GET", listUrl, nil, &listResp); err != nil {
		return nil, fmt.Errorf("get tasks (airtable): %w", err)
	}

	tasks := make([]models.Task, 0, len(listResp.Records))
	for _, record := range listResp.Records {
		task, err := c.recordToTask(record)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return &client.ListResult{
		Tasks:   tasks,
		Offset:  listResp.Offset,
		HasMore: listResp.Offset != "",
	}, nil
}

func (c *AirtableClient) CreateTask(task models.Task) (string, error) {
	_, baseId, table, err := c.config()
	if err != nil {
		return "", err
	}

	createUrl := c.baseUrl + "/" + baseId + "/" + url.PathEscape(table)

	var created Record
	if err := c.doJSON("POST", createUrl, RecordRequest{Fields: taskToFields(task)}, &created); err != nil {
		return "", fmt.Errorf("create task (airtable): %w", err)
	}
	if created.Id == "" {
		return "", fmt.Errorf("create task (airtable): no record id in response")
	}
	return created.Id, nil
}

func (c *AirtableClient) UpdateTask(id string, task models.Task) error {
	_, baseId, table, err := c.config()
	if err != nil {
		return err
	}

	updateUrl := c.baseUrl + "/" + baseId + "/" + url.PathEscape(table) + "/" + id

	if err := c.doJSON("PATCH", updateUrl, RecordRequest{Fields: taskToFields(task)}, nil); err != nil {
		return fmt.Errorf("update task (airtable): %w", err)
	}
	return nil
}

func (c *AirtableClient) DeleteTask(id string) error {
	_, baseId, table, err := c.config()
	if err != nil {
		return err
	}

	deleteUrl := c.baseUrl + "/" + baseId + "/" + url.PathEscape(table) + "/" + id

	if err := c.doJSON("DELETE", deleteUrl, nil, nil); err != nil {
		return fmt.Errorf("delete task (airtable): %w", err)
	}
	return nil
}

// GetBases lista as bases acessíveis pelo token (Meta API).
func (c *AirtableClient) GetBases() ([]Base, error) {
	var basesResp GetBasesResponse
	if err := c.doJSON("GET", c.baseUrl+"/meta/bases", nil, &basesResp); err != nil {
		return nil, fmt.Errorf("get bases (airtable): %w", err)
	}
	return basesResp.Bases, nil
}

func (c *AirtableClient) GetTables(baseId string) ([]Table, error) {
	var tablesResp GetTablesResponse
	if err := c.doJSON("GET", c.baseUrl+"/meta/bases/"+baseId+"/tables", nil, &tablesResp); err != nil {
		return nil, fmt.Errorf("get tables (airtable): %w", err)
	}
	return tablesResp.Tables, nil
}

// Ping verifica se a API do Airtable responde; usado como sonda de conectividade.
func (c *AirtableClient) Ping() bool {
	req, err := http.NewRequest("HEAD", c.baseUrl+"/meta/bases", nil)
	if err != nil {
		return false
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
