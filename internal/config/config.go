package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Repair contains the timing-repair knobs.
type Repair struct {
	FrameRate           float64 `toml:"frame_rate"`
	CorruptionThreshold float64 `toml:"corruption_threshold"`
	OutputSuffix        string  `toml:"output_suffix"`
}

// Paths contains directory configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config centralizes every knob the CLI needs.
type Config struct {
	Repair  Repair  `toml:"repair"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/gltfix/config.toml")
}

// Load reads configuration from path (empty selects the default location),
// layered over repository defaults. It returns the populated config, the
// resolved path, and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			return nil, resolved, true, fmt.Errorf("read config %s: %w", resolved, readErr)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, resolved, true, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, resolved, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolved, exists, err
	}
	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		trimmed = defaultPath
	} else {
		expanded, err := ExpandPath(trimmed)
		if err != nil {
			return "", false, err
		}
		trimmed = expanded
	}

	info, err := os.Stat(trimmed)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", trimmed)
		}
		return trimmed, true, nil
	case errors.Is(err, fs.ErrNotExist):
		return trimmed, false, nil
	default:
		return "", false, fmt.Errorf("stat config %s: %w", trimmed, err)
	}
}

func (c *Config) expandPaths() error {
	logDir, err := ExpandPath(c.Paths.LogDir)
	if err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.LogDir = logDir

	if strings.TrimSpace(c.Paths.HistoryDB) != "" {
		historyDB, err := ExpandPath(c.Paths.HistoryDB)
		if err != nil {
			return fmt.Errorf("paths.history_db: %w", err)
		}
		c.Paths.HistoryDB = historyDB
	}
	return nil
}

// HistoryDBPath returns the run journal location, defaulting into LogDir.
func (c *Config) HistoryDBPath() string {
	if strings.TrimSpace(c.Paths.HistoryDB) != "" {
		return c.Paths.HistoryDB
	}
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// EnsureDirectories creates the directories the tool writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, filepath.Dir(c.HistoryDBPath())}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath resolves ~ prefixes and makes the path absolute.
func ExpandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", trimmed, err)
	}
	return abs, nil
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
