package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// LoadFile reads outcomes from a .jsonl, .yaml or .yml file.
// A missing file yields no outcomes and no error.
func LoadFile(path string) ([]EventOutcome, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return loadJSONL(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported history file format: %s", path)
	}
}

// SaveFile writes outcomes to path, replacing it atomically.
func SaveFile(path string, outcomes []EventOutcome) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		var sb strings.Builder
		for _, o := range outcomes {
			line, err := json.Marshal(o)
			if err != nil {
				return fmt.Errorf("failed to encode outcome: %w", err)
			}
			sb.Write(line)
			sb.WriteByte('\n')
		}
		data = []byte(sb.String())
	case ".yaml", ".yml":
		out, err := yaml.Marshal(outcomes)
		if err != nil {
			return fmt.Errorf("failed to encode outcomes: %w", err)
		}
		data = out
	default:
		return fmt.Errorf("unsupported history file format: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename history file: %w", err)
	}

	log.Info().Str("path", path).Int("count", len(outcomes)).Msg("History saved")
	return nil
}

func loadJSONL(path string) ([]EventOutcome, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer file.Close()

	var outcomes []EventOutcome
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		if len(strings.TrimSpace(scanner.Text())) == 0 {
			continue
		}
		var o EventOutcome
		if err := json.Unmarshal(scanner.Bytes(), &o); err != nil {
			log.Warn().Err(err).Str("path", path).Int("line", line).Msg("Skipping invalid JSON line in history")
			continue
		}
		outcomes = append(outcomes, o)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading history: %w", err)
	}

	log.Debug().Str("path", path).Int("count", len(outcomes)).Msg("Loaded history")
	return outcomes, nil
}

func loadYAML(path string) ([]EventOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	var outcomes []EventOutcome
	if err := yaml.Unmarshal(data, &outcomes); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return outcomes, nil
}
