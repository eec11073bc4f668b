package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds the project-level options.
type Config struct {
	// BacklogFile is the markdown document, relative to the working
	// directory unless absolute.
	BacklogFile string `json:"backlog_file"`
	// DataDir holds the SQLite store and the sync lock.
	DataDir string `json:"data_dir"`
}

// ConfigSources tracks which config files contributed to the effective
// config.
type ConfigSources struct {
	Global  string // global config path when loaded, empty otherwise
	Project string // project config path when loaded, empty otherwise
}

// ConfigFileName is the project config file looked up in the working
// directory.
const ConfigFileName = ".bkl.json"

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		BacklogFile: "backlog.md",
		DataDir:     ".bkl",
	}
}

var errDataDirEmpty = errors.New("data_dir cannot be empty")

var errBacklogFileEmpty = errors.New("backlog_file cannot be empty")

// LoadConfig builds the effective config, highest precedence last:
// defaults, then the global user config, then the project config (or an
// explicit --config path), then CLI overrides. Config files are hujson, so
// comments and trailing commas are fine.
func LoadConfig(workDir, configPath string, overrides Config, env map[string]string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	globalPath := globalConfigPath(env)
	if globalPath != "" {
		loaded, ok, err := readConfigFile(globalPath)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if ok {
			sources.Global = globalPath
			cfg = mergeConfig(cfg, loaded)
		}
	}

	projectPath := configPath
	explicit := projectPath != ""

	if projectPath == "" {
		projectPath = filepath.Join(workDir, ConfigFileName)
	}

	loaded, ok, err := readConfigFile(projectPath)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	if !ok && explicit {
		return Config{}, ConfigSources{}, fmt.Errorf("config file not found: %s", projectPath)
	}

	if ok {
		sources.Project = projectPath
		cfg = mergeConfig(cfg, loaded)
	}

	cfg = mergeConfig(cfg, overrides)

	if cfg.BacklogFile == "" {
		return Config{}, ConfigSources{}, errBacklogFileEmpty
	}

	if cfg.DataDir == "" {
		return Config{}, ConfigSources{}, errDataDirEmpty
	}

	return cfg, sources, nil
}

// globalConfigPath resolves $XDG_CONFIG_HOME/bkl/config.json, falling back
// to ~/.config/bkl/config.json. Empty when no home can be determined.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "bkl", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "bkl", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "bkl", "config.json")
	}

	return ""
}

// readConfigFile loads one hujson config file. The second return is false
// when the file does not exist.
func readConfigFile(path string) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config resolution
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, false, nil
	}

	if err != nil {
		return Config{}, false, fmt.Errorf("read config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid config %s: %w", path, err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, true, nil
}

// mergeConfig overlays non-empty fields of layer onto base.
func mergeConfig(base, layer Config) Config {
	if layer.BacklogFile != "" {
		base.BacklogFile = layer.BacklogFile
	}

	if layer.DataDir != "" {
		base.DataDir = layer.DataDir
	}

	return base
}
