package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"timeline/internal/platform/fsutil"
)

const (
	defaultRefresh     = "*/5 * * * *"
	defaultHorizonDays = 7
	defaultLogLevel    = "error"
)

type Config struct {
	HomePath     string
	DataPath     string
	DBPath       string
	SettingsPath string
}

func New(homePath string) (Config, error) {
	if homePath == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	return Config{
		HomePath:     homePath,
		DataPath:     filepath.Join(homePath, "timeline.json"),
		DBPath:       filepath.Join(homePath, ".timeline", "timeline.db"),
		SettingsPath: filepath.Join(homePath, ".timeline", "config.yaml"),
	}, nil
}

// Settings is the user-editable YAML part of the configuration.
type Settings struct {
	// Refresh is the cron spec used by `timeline watch`.
	Refresh string `yaml:"refresh"`

	// HorizonDays is the default `timeline agenda --days`.
	HorizonDays int `yaml:"horizon_days"`

	LogLevel string `yaml:"log_level"`

	// Messages maps a report state (ongoing, waiting, finish) to the
	// variants one of which is shown above the report.
	Messages map[string][]string `yaml:"messages"`
}

func DefaultMessages() map[string][]string {
	return map[string][]string{
		"ongoing": {
			"博士，您还有许多事情需要处理。现在还不能休息哦。",
			"ドクター、終わってない仕事がたくさんありますから、まだ休んじゃだめですよ。",
		},
		"waiting": {
			"咻，应该可以小小休息一下了吧。",
			"ふう、これで少しは休めますね。",
		},
		"finish": {
			"博士，您工作辛苦了。",
			"ドクター、お仕事お疲れ様です。",
		},
	}
}

func DefaultSettings() *Settings {
	return &Settings{
		Refresh:     defaultRefresh,
		HorizonDays: defaultHorizonDays,
		LogLevel:    defaultLogLevel,
		Messages:    DefaultMessages(),
	}
}

// Normalize fills missing values so partially written files still work.
// A state whose variant list is empty falls back to the built-in table.
func (s *Settings) Normalize() {
	if s.Refresh == "" {
		s.Refresh = defaultRefresh
	}
	if s.HorizonDays <= 0 {
		s.HorizonDays = defaultHorizonDays
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
	defaults := DefaultMessages()
	if s.Messages == nil {
		s.Messages = map[string][]string{}
	}
	for state, variants := range defaults {
		if len(s.Messages[state]) == 0 {
			s.Messages[state] = variants
		}
	}
}

func (s *Settings) Validate() error {
	if _, err := cron.ParseStandard(s.Refresh); err != nil {
		return fmt.Errorf("invalid refresh spec %q: %w", s.Refresh, err)
	}
	return nil
}

// LoadSettings reads the YAML settings at path. On first run the defaults
// are written to path with 0600 perms and returned.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New("settings path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s := DefaultSettings()
			if err := SaveSettings(path, s); err != nil {
				return s, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func SaveSettings(path string, s *Settings) error {
	if path == "" {
		return errors.New("settings path is empty")
	}
	if s == nil {
		return errors.New("settings is nil")
	}
	s.Normalize()
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o600)
}
