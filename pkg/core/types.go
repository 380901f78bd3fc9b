package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Config is the parsed settings file.
type Config struct {
	CleanupToolPath      string   `json:"pg_cleanup_path"`
	Host                 string   `json:"host"`
	Port                 Port     `json:"port"`
	Username             string   `json:"username"`
	NotificationsEnabled bool     `json:"telegram_notifications_enabled"`
	NotifierPath         string   `json:"telegram_script_path"`
	MessagePrefix        string   `json:"prefix"`
	ExcludePatterns      []string `json:"exclude_patterns"`
}

// Port is a connection port kept as text. Settings files carry it either as
// a JSON string or as a JSON number.
type Port string

// UnmarshalJSON accepts "5432" as well as 5432.
func (p *Port) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Port(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("port must be a string or a number, got %s", strings.TrimSpace(string(data)))
	}
	*p = Port(n.String())
	return nil
}

// CleanupResult is the outcome of one cleanup invocation.
type CleanupResult struct {
	Target    string
	Succeeded bool
	Detail    string // diagnostic text, empty on success
}

// RunSummary describes one pass over the target list.
type RunSummary struct {
	RunID   string
	Host    string
	Aborted bool // settings could not be loaded, nothing was cleaned
	Results []CleanupResult
}

// Succeeded counts successful cleanups.
func (s *RunSummary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded {
			n++
		}
	}
	return n
}

// Failed counts failed cleanups.
func (s *RunSummary) Failed() int {
	return len(s.Results) - s.Succeeded()
}
