package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"attendance-mcp/internal/calibration"
	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/simulation"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath      string
	HistoryDB     string
	HTTPAddr      string
	CORSOrigins   []string
	Probabilities estimate.Overrides

	SimulationTrials      int
	BatchWorkers          int
	CalibrationMinHistory int
}

// Model returns the default probability model with the configured overrides applied.
func (c *AppConfig) Model() estimate.ProbabilityModel {
	return estimate.BuildProbabilityModel(c.Probabilities)
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	probs, err := loadProbabilities()
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		DataPath:              dataPath,
		HistoryDB:             getEnv("HISTORY_DB", filepath.Join(dataPath, "history.db")),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:           splitList(getEnv("CORS_ORIGINS", "*")),
		Probabilities:         probs,
		SimulationTrials:      getEnvInt("SIMULATION_TRIALS", simulation.DefaultTrials),
		BatchWorkers:          getEnvInt("BATCH_WORKERS", 4),
		CalibrationMinHistory: getEnvInt("CALIBRATION_MIN_HISTORY", calibration.DefaultMinHistory),
	}

	return cfg, nil
}

func loadProbabilities() (estimate.Overrides, error) {
	var o estimate.Overrides
	fields := []struct {
		key string
		dst **float64
	}{
		{"P_YES", &o.PYes},
		{"P_MAYBE", &o.PMaybe},
		{"P_NO", &o.PNo},
		{"P_UNKNOWN", &o.PUnknown},
	}

	for _, f := range fields {
		raw, ok := os.LookupEnv(f.key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return estimate.Overrides{}, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		if p < 0 || p > 1 {
			return estimate.Overrides{}, fmt.Errorf("invalid %s: %v is outside [0, 1]", f.key, p)
		}
		*f.dst = &p
	}
	return o, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid integer setting")
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
