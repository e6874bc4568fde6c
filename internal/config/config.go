package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the hosted generation backend.
const DefaultAPIBaseURL = "https://dev-genie-backend.onrender.com"

// Config holds application configuration.
type Config struct {
	// APIBaseURL is the remote generation API. Trailing slashes are trimmed.
	APIBaseURL string `json:"api_base_url"`

	// DisableRemote forces every generation and prompt parse through the local builder.
	DisableRemote bool `json:"disable_remote,omitempty"`

	// RemoteTimeoutSeconds bounds every remote request.
	RemoteTimeoutSeconds int `json:"remote_timeout_seconds"`

	// OutputDir is where generated archives are written when no --out is given.
	// Empty means the current working directory.
	OutputDir string `json:"output_dir,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of tool groups to disable entirely.
	// Known types: "project", "history".
	DisabledTypes []string `json:"disabled_types,omitempty"`

	// Publish configures optional upload of archives to S3-compatible storage.
	Publish PublishConfig `json:"publish,omitempty"`
}

// PublishConfig describes the object store used by generate --publish.
// Credentials are only ever read from the environment.
type PublishConfig struct {
	Endpoint  string `json:"endpoint,omitempty"`
	Region    string `json:"region,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	UseSSL    bool   `json:"use_ssl,omitempty"`
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
}

// Enabled reports whether enough is configured to attempt an upload.
func (p PublishConfig) Enabled() bool {
	return p.Endpoint != "" && p.Bucket != ""
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:           DefaultAPIBaseURL,
		RemoteTimeoutSeconds: 15,
		Publish: PublishConfig{
			Region: "us-east-1",
			Bucket: "devgenie-projects",
		},
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.devgenie) and repo (.devgenie) directories.
// Repo config is found by walking upward from startDir to find the nearest .devgenie/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// LoadAll is LoadWithRepo followed by .env loading and environment overrides.
func LoadAll(globalDir, startDir string) (*Config, error) {
	cfg, err := LoadWithRepo(globalDir, startDir)
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load()
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

// FindRepoConfig walks upward from startDir to find the nearest .devgenie/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".devgenie", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ApplyEnv overlays DEVGENIE_* variables onto cfg. getenv is os.Getenv outside tests.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	env := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if v := env("DEVGENIE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := parseBool(env("DEVGENIE_DISABLE_REMOTE")); ok {
		cfg.DisableRemote = v
	}
	if v, err := strconv.Atoi(env("DEVGENIE_REMOTE_TIMEOUT")); err == nil && v > 0 {
		cfg.RemoteTimeoutSeconds = v
	}
	if v := env("DEVGENIE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	cfg.Publish.Endpoint = firstNonEmpty(env("DEVGENIE_S3_ENDPOINT"), cfg.Publish.Endpoint)
	cfg.Publish.Region = firstNonEmpty(env("DEVGENIE_S3_REGION"), cfg.Publish.Region)
	cfg.Publish.Bucket = firstNonEmpty(env("DEVGENIE_S3_BUCKET"), cfg.Publish.Bucket)
	cfg.Publish.AccessKey = firstNonEmpty(env("DEVGENIE_S3_ACCESS_KEY"), env("MINIO_ROOT_USER"))
	cfg.Publish.SecretKey = firstNonEmpty(env("DEVGENIE_S3_SECRET_KEY"), env("MINIO_ROOT_PASSWORD"))
	if v, ok := parseBool(env("DEVGENIE_S3_USE_SSL")); ok {
		cfg.Publish.UseSSL = v
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
}

func parseBool(raw string) (bool, bool) {
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.APIBaseURL = firstNonEmpty(overlay.APIBaseURL, base.APIBaseURL)
	result.OutputDir = firstNonEmpty(overlay.OutputDir, base.OutputDir)

	result.RemoteTimeoutSeconds = overlay.RemoteTimeoutSeconds
	if result.RemoteTimeoutSeconds == 0 {
		result.RemoteTimeoutSeconds = base.RemoteTimeoutSeconds
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.Publish = PublishConfig{
		Endpoint:  firstNonEmpty(overlay.Publish.Endpoint, base.Publish.Endpoint),
		Region:    firstNonEmpty(overlay.Publish.Region, base.Publish.Region),
		Bucket:    firstNonEmpty(overlay.Publish.Bucket, base.Publish.Bucket),
		UseSSL:    base.Publish.UseSSL || overlay.Publish.UseSSL,
		AccessKey: firstNonEmpty(overlay.Publish.AccessKey, base.Publish.AccessKey),
		SecretKey: firstNonEmpty(overlay.Publish.SecretKey, base.Publish.SecretKey),
	}

	// Booleans: overlay wins if true, else base
	result.DisableRemote = base.DisableRemote || overlay.DisableRemote

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
