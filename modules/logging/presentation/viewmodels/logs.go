package viewmodels

import "encoding/json"

type Author struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Log struct {
	ID                 string          `json:"id"`
	Action             string          `json:"action"`
	Objects            json.RawMessage `json:"objects"`
	Author             Author          `json:"author"`
	LocalizedAuditedAt string          `json:"localized_audited_at"`
}

type LogsPage struct {
	Logs    []Log `json:"logs"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
