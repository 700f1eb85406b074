// Package config loads tcreview settings from defaults, YAML files, the
// environment and command-line overrides, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	appErrors "tcreview/internal/errors"
)

const (
	KeyServerURL       = "server.url"
	KeyServerTimeout   = "server.timeout"
	KeyPageSize        = "review.page-size"
	KeyToastDuration   = "toast.duration"
	KeyDialogDelay     = "dialog.close-delay"
	KeyExportDir       = "export.dir"
	KeyUploadCaseCount = "upload.case-count"
	KeyOutputFormat    = "output.format"
	KeyOutputJSON      = "output.json"
	KeyTheme           = "theme"
)

const (
	DefaultServerURL       = "http://localhost:5000"
	DefaultPageSize        = 10
	DefaultToastDuration   = 3 * time.Second
	DefaultDialogDelay     = 300 * time.Millisecond
	DefaultUploadCaseCount = 100
	DefaultOutputFormat    = "rich"
	DefaultTheme           = "tokyonight"

	// DirName holds both the user and the project config file.
	DirName  = ".tcreview"
	fileName = "config.yaml"

	envPrefix = "TCR"
)

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"rich", "light", "plain"}

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// userConfigPathOverride redirects SaveTheme in tests.
	userConfigPathOverride string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	v, err := getViper()
	if err != nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool fetches a bool configuration value, initializing on demand.
func GetBool(key string) bool {
	v, err := getViper()
	if err != nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt fetches an integer configuration value, initializing on demand.
func GetInt(key string) int {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration fetches a duration configuration value, initializing on demand.
func GetDuration(key string) time.Duration {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set updates a configuration key at runtime, initializing on demand.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	configInst.Set(key, value)
	return nil
}

// Settings is a typed snapshot of the values the application reads.
type Settings struct {
	ServerURL       string
	ServerTimeout   time.Duration
	PageSize        int
	ToastDuration   time.Duration
	DialogDelay     time.Duration
	ExportDir       string
	UploadCaseCount int
	OutputFormat    string
	OutputJSON      bool
	Theme           string
}

// Load returns the current settings after validating them.
func Load() (Settings, error) {
	v, err := getViper()
	if err != nil {
		return Settings{}, err
	}
	configMu.RLock()
	s := Settings{
		ServerURL:       strings.TrimSpace(v.GetString(KeyServerURL)),
		ServerTimeout:   v.GetDuration(KeyServerTimeout),
		PageSize:        v.GetInt(KeyPageSize),
		ToastDuration:   v.GetDuration(KeyToastDuration),
		DialogDelay:     v.GetDuration(KeyDialogDelay),
		ExportDir:       v.GetString(KeyExportDir),
		UploadCaseCount: v.GetInt(KeyUploadCaseCount),
		OutputFormat:    strings.ToLower(strings.TrimSpace(v.GetString(KeyOutputFormat))),
		OutputJSON:      v.GetBool(KeyOutputJSON),
		Theme:           v.GetString(KeyTheme),
	}
	configMu.RUnlock()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects values no component can work with.
func (s Settings) Validate() error {
	var problems []string
	if s.ServerURL == "" {
		problems = append(problems, KeyServerURL+" is empty")
	}
	if s.ServerTimeout < 0 {
		problems = append(problems, KeyServerTimeout+" must not be negative")
	}
	if s.PageSize <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive, got %d", KeyPageSize, s.PageSize))
	}
	if s.DialogDelay < 0 {
		problems = append(problems, KeyDialogDelay+" must not be negative")
	}
	if s.UploadCaseCount <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive, got %d", KeyUploadCaseCount, s.UploadCaseCount))
	}
	if !validOutputFormat(s.OutputFormat) {
		problems = append(problems, fmt.Sprintf("%s must be one of %s, got %q",
			KeyOutputFormat, strings.Join(OutputFormats, ", "), s.OutputFormat))
	}
	if len(problems) == 0 {
		return nil
	}
	return appErrors.New(appErrors.CodeConfigurationError,
		"invalid configuration: "+strings.Join(problems, "; "), nil)
}

func validOutputFormat(f string) bool {
	for _, ok := range OutputFormats {
		if f == ok {
			return true
		}
	}
	return false
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return fmt.Errorf("load user config: %w", err)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: user and project config files are read on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, DirName, fileName), nil
}

// findProjectConfig walks up from startDir looking for .tcreview/config.yaml.
func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, DirName, fileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerURL, DefaultServerURL)
	v.SetDefault(KeyServerTimeout, time.Duration(0))
	v.SetDefault(KeyPageSize, DefaultPageSize)
	v.SetDefault(KeyToastDuration, DefaultToastDuration)
	v.SetDefault(KeyDialogDelay, DefaultDialogDelay)
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyUploadCaseCount, DefaultUploadCaseCount)
	v.SetDefault(KeyOutputFormat, DefaultOutputFormat)
	v.SetDefault(KeyOutputJSON, false)
	v.SetDefault(KeyTheme, DefaultTheme)
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPathOverride = ""
}

// ResetForTesting clears package state for tests in other packages and
// initializes from an empty temp directory. Returns a cleanup function.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	return reset
}

// SaveTheme persists the theme name to the project config when one exists,
// otherwise to the user config. The user config directory is created if
// needed; a project config directory never is.
func SaveTheme(themeName string) error {
	targetPath, err := findWritableConfigPath()
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(targetPath)
	_ = v.ReadInConfig() // a missing file is fine
	v.Set(KeyTheme, themeName)

	//nolint:gosec // G301: user config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return Set(KeyTheme, themeName)
}

func findWritableConfigPath() (string, error) {
	if wd, err := os.Getwd(); err == nil {
		if projectPath, err := findProjectConfig(wd); err == nil && projectPath != "" {
			return projectPath, nil
		}
	}
	if userConfigPathOverride != "" {
		return userConfigPathOverride, nil
	}
	return defaultUserConfigPath()
}
