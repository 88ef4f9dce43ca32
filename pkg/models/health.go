package models

// HealthStatus is the aggregate result of the three postfix checks,
// computed fresh for every request and never persisted.
type HealthStatus struct {
	Healthy        bool `json:"healthy"`
	PostfixRunning bool `json:"postfix_running"`
	QueueHealthy   bool `json:"queue_healthy"`
	ConfigValid    bool `json:"config_valid"`
}

// QueueStats summarises the output of `postqueue -p`.
type QueueStats struct {
	TotalMessages int      `json:"total_messages"`
	Status        string   `json:"status"`
	SampleOutput  []string `json:"sample_output,omitempty"`
}

// ProcessInfo carries the raw result of `postfix status`.
type ProcessInfo struct {
	StatusCommandResult int    `json:"status_command_result"`
	StatusOutput        string `json:"status_output"`
	Running             bool   `json:"running"`
}

// FileInfo describes a postfix configuration file on disk.
type FileInfo struct {
	Exists   bool   `json:"exists"`
	Size     int64  `json:"size,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// Metrics is the verbose postfix section of the /status response.
type Metrics struct {
	QueueStats  QueueStats          `json:"queue_stats"`
	ProcessInfo ProcessInfo         `json:"process_info"`
	ConfigInfo  map[string]FileInfo `json:"config_info"`
}
