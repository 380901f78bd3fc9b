package core

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"
	"github.com/rs/zerolog"
)

// LoadConfiguration reads the JSON settings file at path.
//
// A settings file that cannot be read or parsed is not an error for the
// caller: the failure goes to the console and the log, and the returned
// *Config is nil. The error return only reports a broken log sink.
// Required connection fields are not validated here.
func LoadConfiguration(path string, logger *Logger, console zerolog.Logger) (*Config, error) {
	cfg, err := parseConfig(path)
	if err == nil {
		return cfg, nil
	}

	msg := fmt.Sprintf("Failed to load settings: %v", err)
	console.Error().Msg(msg)
	if lerr := logger.Error(msg); lerr != nil {
		return nil, lerr
	}
	return nil, nil
}

func parseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTargetList reads one database name per line. Lines are trimmed; empty
// lines, lines starting with '#' and names matching any of excludes are
// dropped. Order and duplicates are preserved.
//
// The '#' check runs on the trimmed line, so an indented "  # x" is a
// comment too, not a database named "# x".
func LoadTargetList(path string, excludes []string) ([]string, error) {
	lines, err := ReadListFile(path)
	if err != nil {
		return nil, err
	}
	if len(excludes) == 0 {
		return lines, nil
	}

	targets := make([]string, 0, len(lines))
	for _, name := range lines {
		if isExcluded(name, excludes) {
			continue
		}
		targets = append(targets, name)
	}
	return targets, nil
}

// ReadListFile returns the non-empty, non-comment lines of filename, trimmed.
func ReadListFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file %s: %w", filename, err)
	}
	return lines, nil
}

func isExcluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if wildcard.Match(pattern, name) {
			return true
		}
	}
	return false
}
