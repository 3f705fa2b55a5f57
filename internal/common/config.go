package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	LLM       LLMConfig
	Analysis  AnalysisConfig
	Artifacts ArtifactsConfig
}

// LLMConfig holds classifier-service configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// AnalysisConfig holds per-document analysis parameters
type AnalysisConfig struct {
	SummaryBudget  int // max chars sent for summary and metadata requests
	LanguageBudget int // max chars sent for language detection
	MaxTags        int
	Workers        int
}

// ArtifactsConfig holds default locations for the stage artifacts
type ArtifactsConfig struct {
	IndexPath     string
	StructurePath string
	PlanPath      string
	LedgerPath    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:       getEnv("OLLAMA_MODEL", "phi4-reasoning:14b-plus-fp16"),
			Temperature: getEnvAsFloat32("OLLAMA_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OLLAMA_TIMEOUT", 120*time.Second),
		},
		Analysis: AnalysisConfig{
			SummaryBudget:  getEnvAsInt("DOCSORTER_SUMMARY_BUDGET", 15000),
			LanguageBudget: getEnvAsInt("DOCSORTER_LANGUAGE_BUDGET", 2000),
			MaxTags:        getEnvAsInt("DOCSORTER_MAX_TAGS", 5),
			Workers:        getEnvAsInt("DOCSORTER_WORKERS", 1),
		},
		Artifacts: ArtifactsConfig{
			IndexPath:     getEnv("DOCSORTER_INDEX", "master_index.csv"),
			StructurePath: getEnv("DOCSORTER_STRUCTURE", "folder_structure.json"),
			PlanPath:      getEnv("DOCSORTER_PLAN", "execution_plan.md"),
			LedgerPath:    getEnv("DOCSORTER_LEDGER", "docsorter_runs.db"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
