package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yash-srivastava19/recall/internal/kv"
	"github.com/yash-srivastava19/recall/internal/notes"
	"github.com/yash-srivastava19/recall/internal/pins"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Dataset    string `json:"dataset"`
	StateDir   string `json:"state_dir"`
	Storage    string `json:"storage"`
	PinKey     string `json:"pin_key"`
	SearchMode string `json:"search_mode"`
	WideWidth  int    `json:"wide_width"`
	LogFile    string `json:"log_file"`
	Debug      bool   `json:"debug"`
}

func Default() *Config {
	state := defaultStateDir()
	return &Config{
		StateDir:   state,
		Storage:    kv.BackendFile,
		PinKey:     pins.DefaultKey,
		SearchMode: notes.SearchSubstring,
		WideWidth:  100,
		LogFile:    filepath.Join(state, "recall.log"),
	}
}

// Path is where Load looks for the config file.
func Path() string {
	return filepath.Join(xdgConfig(), "recall", "config.json")
}

func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(Path()); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", Path(), err)
		}
	}

	if v := os.Getenv("RECALL_DATASET"); v != "" {
		cfg.Dataset = v
	}
	if v := os.Getenv("RECALL_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("RECALL_DEBUG"); v != "" && v != "0" && v != "false" {
		cfg.Debug = true
	}

	if cfg.PinKey == "" {
		cfg.PinKey = pins.DefaultKey
	}
	if cfg.WideWidth <= 0 {
		cfg.WideWidth = 100
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.StateDir, "recall.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendMemory:
	default:
		return fmt.Errorf("%w: storage %q (want file, sqlite or memory)", ErrInvalid, c.Storage)
	}
	switch c.SearchMode {
	case notes.SearchSubstring, notes.SearchFuzzy:
	default:
		return fmt.Errorf("%w: search_mode %q (want substring or fuzzy)", ErrInvalid, c.SearchMode)
	}
	if c.StateDir == "" {
		return fmt.Errorf("%w: state_dir is empty", ErrInvalid)
	}
	return nil
}

func Save(cfg *Config) error {
	dir := filepath.Dir(Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0644)
}

func xdgConfig() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func defaultStateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "recall")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "recall")
}
