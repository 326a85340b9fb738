package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the persisted application configuration.
type Settings struct {
	// Backend selects the preferred version manager ("fnm" or "nvm").
	// Empty means probe fnm first, then nvm.
	Backend string `yaml:"backend,omitempty"`

	// BackendPath overrides detection with an explicit executable path.
	BackendPath string `yaml:"backend_path,omitempty"`

	// WSLDistro runs the nvm backend inside this WSL distribution.
	// Windows only; empty means the host itself.
	WSLDistro string `yaml:"wsl_distro,omitempty"`

	// ShowConsoleWindows leaves backend console windows visible on
	// Windows instead of suppressing them.
	ShowConsoleWindows bool `yaml:"show_console_windows"`

	// TimeoutSeconds bounds ordinary backend commands.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// InstallTimeoutMinutes bounds installation commands, which
	// download full Node distributions.
	InstallTimeoutMinutes int `yaml:"install_timeout_minutes"`

	// ShellInitPrelude holds shell lines spliced verbatim before a
	// sourced backend is loaded.
	ShellInitPrelude string `yaml:"shell_init_prelude,omitempty"`
}

const (
	defaultTimeoutSeconds        = 30
	defaultInstallTimeoutMinutes = 10
)

// Default returns the settings written on first run.
func Default() Settings {
	return Settings{
		TimeoutSeconds:        defaultTimeoutSeconds,
		InstallTimeoutMinutes: defaultInstallTimeoutMinutes,
	}
}

// CommandTimeout returns the bound for ordinary backend commands.
func (s Settings) CommandTimeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// InstallTimeout returns the bound for installation commands.
func (s Settings) InstallTimeout() time.Duration {
	if s.InstallTimeoutMinutes <= 0 {
		return defaultInstallTimeoutMinutes * time.Minute
	}
	return time.Duration(s.InstallTimeoutMinutes) * time.Minute
}

// Load reads the settings file, creating it with defaults when absent.
func Load() (Settings, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads settings from an explicit path.
func LoadFrom(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := SaveTo(path, cfg); err != nil {
				return Settings{}, err
			}
			return cfg, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var cfg Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	return hydrateDefaults(cfg), nil
}

func hydrateDefaults(cfg Settings) Settings {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.InstallTimeoutMinutes <= 0 {
		cfg.InstallTimeoutMinutes = defaultInstallTimeoutMinutes
	}
	return cfg
}

// Save writes the settings file at the default location.
func Save(cfg Settings) error {
	return SaveTo(FilePath(), cfg)
}

// SaveTo writes settings to an explicit path, creating the directory
// as needed.
func SaveTo(path string, cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
