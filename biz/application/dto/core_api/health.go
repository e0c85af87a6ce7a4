package core_api

type HealthResp struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type ReadyResp struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Database  string          `json:"database"`
	Modules   map[string]bool `json:"modules,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type LiveResp struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
