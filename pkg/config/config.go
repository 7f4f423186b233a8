// Package config manages TOML-backed ambient service configuration for
// hangulsearch: default SearchPolicy knobs, LRU cache capacity, the
// tuner's default SimilarityTuningOptions, and the deployment-config file
// store's path.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/yeojin-dev/hangulsearch/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Search SearchDefaults `toml:"search"`
	Cache  CacheDefaults  `toml:"cache"`
	Tuning TuningDefaults `toml:"tuning"`
	Deploy DeployDefaults `toml:"deploy"`
}

// SearchDefaults mirrors the knobs on search.SearchPolicy that an
// operator would want to tune without recompiling.
type SearchDefaults struct {
	IndexStrategy     string `toml:"index_strategy"` // "precompute" | "lazycache" | "ngram"
	NgramSize         int    `toml:"ngram_size"`      // clamped to {2,3}
	MaxQueryLength    int    `toml:"max_query_length"`
	MaxCandidateScan  int    `toml:"max_candidate_scan"`
	WhitespacePolicy  string `toml:"whitespace_policy"` // "keep" | "normalize" | "remove"
	PreserveNonHangul bool   `toml:"preserve_non_hangul"`
}

// CacheDefaults configures the index's LRU result cache.
type CacheDefaults struct {
	Enabled  bool `toml:"enabled"`
	Capacity int  `toml:"capacity"`
}

// TuningDefaults seeds SimilarityTuningOptions and the feedback store's
// bounds when a caller doesn't override them.
type TuningDefaults struct {
	Limit                    int     `toml:"limit"`
	CandidateLimitPerVariant int     `toml:"candidate_limit_per_variant"`
	IncludeLayoutVariants    bool    `toml:"include_layout_variants"`
	MinimumScore             float64 `toml:"minimum_score"`
	MaxCandidates            int     `toml:"max_candidates"`
	LeaderboardSize          int     `toml:"leaderboard_size"`
	Seed                     int64   `toml:"seed"`
	ModelVersionPrefix       string  `toml:"model_version_prefix"`
	MinOccurrences           int     `toml:"min_occurrences"`
	MaxSamples               int     `toml:"max_samples"`
	MaxEvents                int     `toml:"max_events"`
	TTLHours                 int     `toml:"ttl_hours"`
}

// DeployDefaults points at the deployment-config JSON file pkg/deploy's
// store reads and writes.
type DeployDefaults struct {
	ConfigPath  string `toml:"config_path"`
	Environment string `toml:"environment"`
}

// GetConfigDir returns the config directory with fallback priority:
//  1. XDG_CONFIG_HOME (or ~/.config on Linux, Library/Application Support
//     on macOS, %APPDATA% on Windows)
//  2. current executable's directory
//  3. builtin defaults (caller falls back without ever calling this)
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := platformConfigDir(homeDir)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "hangulsearch")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "hangulsearch")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "hangulsearch")
	default:
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "hangulsearch")
		}
		return filepath.Join(homeDir, ".config", "hangulsearch")
	}
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
//  1. custom path from --config flag
//  2. default path: [UserConfigDir]/hangulsearch/config.toml
//  3. builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchDefaults{
			IndexStrategy:     "precompute",
			NgramSize:         2,
			MaxQueryLength:    64,
			MaxCandidateScan:  0,
			WhitespacePolicy:  "normalize",
			PreserveNonHangul: true,
		},
		Cache: CacheDefaults{
			Enabled:  true,
			Capacity: 512,
		},
		Tuning: TuningDefaults{
			Limit:                    10,
			CandidateLimitPerVariant: 100,
			IncludeLayoutVariants:    true,
			MinimumScore:             0.2,
			MaxCandidates:            64,
			LeaderboardSize:          10,
			Seed:                     1,
			ModelVersionPrefix:       "hangulsearch",
			MinOccurrences:           2,
			MaxSamples:               2000,
			MaxEvents:                50000,
			TTLHours:                 24 * 30,
		},
		Deploy: DeployDefaults{
			ConfigPath:  "deploy.json",
			Environment: "production",
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file, falling back to partial recovery on
// a parse error. A file that cannot be stat'ed (e.g. missing) is an error.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to recover whichever sections of a malformed
// TOML file still parse, defaulting the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchDefaults(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cache"); ok {
		extractCacheDefaults(section, &config.Cache)
	}
	if section, ok := utils.ExtractSection(tempConfig, "tuning"); ok {
		extractTuningDefaults(section, &config.Tuning)
	}
	if section, ok := utils.ExtractSection(tempConfig, "deploy"); ok {
		extractDeployDefaults(section, &config.Deploy)
	}
	return config, nil
}

func extractSearchDefaults(data map[string]any, search *SearchDefaults) {
	if val, ok := data["index_strategy"].(string); ok {
		search.IndexStrategy = val
	}
	if val, ok := utils.ExtractInt64(data, "ngram_size"); ok {
		search.NgramSize = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query_length"); ok {
		search.MaxQueryLength = val
	}
	if val, ok := utils.ExtractInt64(data, "max_candidate_scan"); ok {
		search.MaxCandidateScan = val
	}
	if val, ok := data["whitespace_policy"].(string); ok {
		search.WhitespacePolicy = val
	}
	if val, ok := utils.ExtractBool(data, "preserve_non_hangul"); ok {
		search.PreserveNonHangul = val
	}
}

func extractCacheDefaults(data map[string]any, cache *CacheDefaults) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		cache.Enabled = val
	}
	if val, ok := utils.ExtractInt64(data, "capacity"); ok {
		cache.Capacity = val
	}
}

func extractTuningDefaults(data map[string]any, tuning *TuningDefaults) {
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		tuning.Limit = val
	}
	if val, ok := utils.ExtractInt64(data, "candidate_limit_per_variant"); ok {
		tuning.CandidateLimitPerVariant = val
	}
	if val, ok := utils.ExtractBool(data, "include_layout_variants"); ok {
		tuning.IncludeLayoutVariants = val
	}
	if val, ok := utils.ExtractInt64(data, "max_candidates"); ok {
		tuning.MaxCandidates = val
	}
	if val, ok := utils.ExtractInt64(data, "leaderboard_size"); ok {
		tuning.LeaderboardSize = val
	}
	if val, ok := utils.ExtractInt64(data, "min_occurrences"); ok {
		tuning.MinOccurrences = val
	}
	if val, ok := utils.ExtractInt64(data, "max_samples"); ok {
		tuning.MaxSamples = val
	}
	if val, ok := utils.ExtractInt64(data, "max_events"); ok {
		tuning.MaxEvents = val
	}
	if val, ok := utils.ExtractInt64(data, "ttl_hours"); ok {
		tuning.TTLHours = val
	}
	if val, ok := data["model_version_prefix"].(string); ok {
		tuning.ModelVersionPrefix = val
	}
}

func extractDeployDefaults(data map[string]any, deploy *DeployDefaults) {
	if val, ok := data["config_path"].(string); ok {
		deploy.ConfigPath = val
	}
	if val, ok := data["environment"].(string); ok {
		deploy.Environment = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
