package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	Generator GeneratorConfig
	Loader    LoaderConfig
	Model     ModelConfig
	Artifacts ArtifactsConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type DatabaseConfig struct {
	// URL, when set, overrides the discrete connection fields.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GeneratorConfig struct {
	Customers       int
	UsageRecords    int
	Transactions    int
	FeedbackRecords int
	// Seed of 0 means unseeded (time-based) randomness.
	Seed    int64
	DataDir string
}

// LoadPolicy selects how the loader moves a batch into a table.
type LoadPolicy string

const (
	// PolicyAppend inserts rows one by one, skipping primary-key
	// conflicts (insert-or-ignore).
	PolicyAppend LoadPolicy = "append"
	// PolicyReplace truncates the table (resetting identity counters)
	// and bulk-appends the full batch.
	PolicyReplace LoadPolicy = "replace"
)

type LoaderConfig struct {
	Policy LoadPolicy
}

type ModelConfig struct {
	Trees        int
	MaxDepth     int
	TestFraction float64
	Seed         int64
	// ChurnThreshold is the usage_frequency cutoff below which a
	// customer is labeled churned.
	ChurnThreshold int
	OneHot         bool
}

type ArtifactsConfig struct {
	ModelPath  string
	ReportPath string
	// PredictionsCSV is optional; empty disables the CSV export.
	PredictionsCSV string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	customers := getEnvInt("GEN_CUSTOMERS", 2000)
	usageRecords := getEnvInt("GEN_USAGE_RECORDS", 5000)
	transactions := getEnvInt("GEN_TRANSACTIONS", 3000)
	feedbackRecords := getEnvInt("GEN_FEEDBACK_RECORDS", 1000)
	genSeed := getEnvInt64("GEN_SEED", 0)

	trees := getEnvInt("MODEL_TREES", 100)
	maxDepth := getEnvInt("MODEL_MAX_DEPTH", 10)
	testFraction := getEnvFloat("MODEL_TEST_FRACTION", 0.3)
	modelSeed := getEnvInt64("MODEL_SEED", 42)
	churnThreshold := getEnvInt("CHURN_THRESHOLD", 5)
	oneHot := getEnv("MODEL_ONE_HOT", "false") == "true"

	policy := LoadPolicy(getEnv("LOAD_POLICY", string(PolicyAppend)))
	if policy != PolicyAppend && policy != PolicyReplace {
		return nil, fmt.Errorf("unknown LOAD_POLICY %q: must be %q or %q", policy, PolicyAppend, PolicyReplace)
	}

	return &Config{
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "customer_retention"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Generator: GeneratorConfig{
			Customers:       customers,
			UsageRecords:    usageRecords,
			Transactions:    transactions,
			FeedbackRecords: feedbackRecords,
			Seed:            genSeed,
			DataDir:         getEnv("DATA_DIR", "data"),
		},
		Loader: LoaderConfig{
			Policy: policy,
		},
		Model: ModelConfig{
			Trees:          trees,
			MaxDepth:       maxDepth,
			TestFraction:   testFraction,
			Seed:           modelSeed,
			ChurnThreshold: churnThreshold,
			OneHot:         oneHot,
		},
		Artifacts: ArtifactsConfig{
			ModelPath:      getEnv("MODEL_PATH", "artifacts/churn_model.gob"),
			ReportPath:     getEnv("REPORT_PATH", "artifacts/metrics_report.txt"),
			PredictionsCSV: getEnv("PREDICTIONS_CSV", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}
