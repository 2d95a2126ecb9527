// Package config loads pictDB's defaults for new databases (capacity and
// derivative bounding boxes) through a layered precedence chain:
// defaults, then a global user file, then a project-local file, then
// explicit CLI overrides. Files are JSONC (JSON-with-comments) via
// github.com/tailscale/hujson.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds the defaults new databases are created with when the CLI
// does not override them (spec §6.3 bounds: max_files in (0, 100000],
// thumb_res/small_res each in (0,128]/(0,512]).
type Config struct {
	MaxFiles uint32 `json:"max_files,omitempty"`

	ThumbWidth  uint16 `json:"thumb_width,omitempty"`
	ThumbHeight uint16 `json:"thumb_height,omitempty"`
	SmallWidth  uint16 `json:"small_width,omitempty"`
	SmallHeight uint16 `json:"small_height,omitempty"`

	EffectiveCwd string        `json:"-"`
	Sources      ConfigSources `json:"-"`
}

// ConfigSources records which files, if any, contributed to a Config,
// purely for diagnostics (e.g. a `--show-config` style command).
type ConfigSources struct {
	Global  string
	Project string
}

// ConfigFileName is the default project-local config file name.
const ConfigFileName = ".pictdb.json"

// DefaultConfig returns the built-in defaults used when no config file
// and no CLI override supplies a value.
func DefaultConfig() Config {
	return Config{
		MaxFiles:    10,
		ThumbWidth:  64,
		ThumbHeight: 64,
		SmallWidth:  256,
		SmallHeight: 256,
	}
}

// getGlobalConfigPath returns $XDG_CONFIG_HOME/pictdb/config.json, or
// ~/.config/pictdb/config.json if XDG_CONFIG_HOME is unset. Returns "" if
// neither can be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "pictdb", "config.json")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "pictdb", "config.json")
	}
	return ""
}

// Overrides holds CLI-flag-supplied values. A nil pointer means "not
// given on the command line", so it never masks a config-file value.
type Overrides struct {
	MaxFiles    *uint32
	ThumbWidth  *uint16
	ThumbHeight *uint16
	SmallWidth  *uint16
	SmallHeight *uint16
}

// LoadInput holds the inputs to Load.
type LoadInput struct {
	WorkDirOverride string // -C/--cwd; empty means os.Getwd()
	ConfigPath      string // -c/--config; empty means ConfigFileName in workDir
	Overrides       Overrides
	Env             map[string]string
}

// Load resolves a Config with precedence (highest wins): defaults, global
// user config, project config, CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}
	cfg.Sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	applyOverrides(&cfg, input.Overrides)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir
	return cfg, nil
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	path := getGlobalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}
	if !loaded {
		return Config{}, "", nil
	}
	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var file string
	var mustExist bool

	if configPath != "" {
		file = configPath
		if !filepath.IsAbs(file) {
			file = filepath.Join(workDir, file)
		}
		mustExist = true

		if _, err := os.Stat(file); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		file = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	cfg, loaded, err := loadConfigFile(file, mustExist)
	if err != nil {
		return Config{}, "", err
	}
	if !loaded {
		return Config{}, "", nil
	}
	return cfg, file, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func merge(base, overlay Config) Config {
	if overlay.MaxFiles != 0 {
		base.MaxFiles = overlay.MaxFiles
	}
	if overlay.ThumbWidth != 0 {
		base.ThumbWidth = overlay.ThumbWidth
	}
	if overlay.ThumbHeight != 0 {
		base.ThumbHeight = overlay.ThumbHeight
	}
	if overlay.SmallWidth != 0 {
		base.SmallWidth = overlay.SmallWidth
	}
	if overlay.SmallHeight != 0 {
		base.SmallHeight = overlay.SmallHeight
	}
	return base
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.MaxFiles != nil {
		cfg.MaxFiles = *o.MaxFiles
	}
	if o.ThumbWidth != nil {
		cfg.ThumbWidth = *o.ThumbWidth
	}
	if o.ThumbHeight != nil {
		cfg.ThumbHeight = *o.ThumbHeight
	}
	if o.SmallWidth != nil {
		cfg.SmallWidth = *o.SmallWidth
	}
	if o.SmallHeight != nil {
		cfg.SmallHeight = *o.SmallHeight
	}
}

func validate(cfg Config) error {
	if cfg.MaxFiles == 0 || cfg.MaxFiles > 100_000 {
		return ErrMaxFilesOutOfRange
	}
	if cfg.ThumbWidth == 0 || cfg.ThumbWidth > 128 || cfg.ThumbHeight == 0 || cfg.ThumbHeight > 128 {
		return ErrResolutionOutOfRange
	}
	if cfg.SmallWidth == 0 || cfg.SmallWidth > 512 || cfg.SmallHeight == 0 || cfg.SmallHeight > 512 {
		return ErrResolutionOutOfRange
	}
	return nil
}
