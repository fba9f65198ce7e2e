package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// legacyEnv maps config keys to the plain environment variable names the
// deployment scripts already export. Keys with an empty name are bound to
// their canonical SECTION_KEY variable only.
var legacyEnv = map[string]string{
	"server.port":                "PORT",
	"database.url":               "DATABASE_URL",
	"generation.provider":        "GENERATION_PROVIDER",
	"generation.model":           "GENERATION_MODEL",
	"generation.gemini_api_key":  "GEMINI_API_KEY",
	"generation.openai_api_key":  "OPENAI_API_KEY",
	"generation.openai_base_url": "OPENAI_BASE_URL",
	"enhancer.url":               "ENHANCER_URL",
	"cache.backend":              "CACHE_BACKEND",
	"cache.redis.address":        "REDIS_ADDR",
	"cache.redis.password":       "REDIS_PASSWORD",
	"storage.type":               "STORAGE_TYPE",
	"storage.local_path":         "STORAGE_LOCAL_PATH",
	"storage.s3_bucket":          "AWS_S3_BUCKET",
	"storage.s3_region":          "AWS_REGION",
	"storage.aws_access_key":     "AWS_ACCESS_KEY_ID",
	"storage.aws_secret_key":     "AWS_SECRET_ACCESS_KEY",
	"knowledge.pack_path":        "KNOWLEDGE_PACK_PATH",
	"logging.level":              "LOG_LEVEL",
	"logging.format":             "LOG_FORMAT",

	"server.request_timeout": "",
	"generation.temperature": "",
	"generation.max_tokens":  "",
	"generation.timeout":     "",
	"enhancer.timeout":       "",
	"cache.ttl":              "",
	"cache.redis.db":         "",
}

// Load reads .env, an optional config.yaml and the environment, in increasing
// order of precedence
func Load() (*Config, error) {
	loadEnvFile()
	return LoadWith(viper.New())
}

// LoadWith loads configuration using the supplied viper instance
func LoadWith(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		names := []string{key, strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))}
		if env != "" {
			names = append(names, env)
		}
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found in the working directory or its parents
func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return
		}
	}

	log.Printf("Warning: No .env file found, using environment variables")
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
