package airtable

type Attachment struct {
	Url string `json:"url"`
}

type RecordFields struct {
	Task            string       `json:"Task,omitempty"`
	Notes           string       `json:"Notes,omitempty"`
	Status          string       `json:"Status,omitempty"`
	ToDoDate        string       `json:"To Do Date,omitempty"`
	CompletedDate   string       `json:"Completed Date,omitempty"`
	Photos          []Attachment `json:"Photos,omitempty"`
	RepeatedTask    bool         `json:"Repeated Task,omitempty"`
	RepeatEveryDays int          `json:"Repeat Every X Days,omitempty"`
	Importance      string       `json:"Importance,omitempty"`
}

type Record struct {
	Id     string       `json:"id"`
	Fields RecordFields `json:"fields"`
}

type ListRecordsResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type RecordRequest struct {
	Fields RecordFields `json:"fields"`
}

type AirtableErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type AirtableError struct {
	Error AirtableErrorDetail `json:"error"`
}

type Base struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type GetBasesResponse struct {
	Bases []Base `json:"bases"`
}

type Table struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type GetTablesResponse struct {
	Tables []Table `json:"tables"`
}
