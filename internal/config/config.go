package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/callmeskyy111/wayfind/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfind.json"

	// DefaultPort is the default route server port.
	DefaultPort = 4000

	// DefaultHost is the default route server host.
	DefaultHost = "localhost"

	// DefaultManifest is the default route manifest path.
	DefaultManifest = "routes.yaml"

	// DefaultArchiveDir is the default directory for history snapshots.
	DefaultArchiveDir = ".wayfind/archive"
)

// Config represents the complete wayfind.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Manifest is the path to the route manifest, relative to the
	// config file.
	Manifest string `json:"manifest,omitempty"`

	// Strict turns route validation issues into hard errors.
	Strict bool `json:"strict,omitempty"`

	// Server contains route server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Archive contains history snapshot storage configuration.
	Archive ArchiveConfig `json:"archive,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains route server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to run the server on.
	Port int `json:"port,omitempty"`
}

// ArchiveConfig contains history snapshot storage settings.
type ArchiveConfig struct {
	// Backend selects the snapshot store: "disk" or "s3".
	Backend string `json:"backend,omitempty"`

	// Dir is the snapshot directory for the disk backend.
	Dir string `json:"dir,omitempty"`

	// Bucket is the bucket name for the s3 backend.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the object key prefix for the s3 backend.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket region for the s3 backend.
	Region string `json:"region,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is the log output format: text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Manifest: DefaultManifest,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Archive: ArchiveConfig{
			Backend: "disk",
			Dir:     DefaultArchiveDir,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for wayfind.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E120").
				WithDetail("No wayfind.json found in " + filepath.Dir(path))
		}
		return nil, errors.New("E060").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E060").
			WithDetail("Failed to parse wayfind.json: " + err.Error()).
			WithSuggestion("Check that wayfind.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E060").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E060").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}

	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}

	if c.Archive.Backend == "" {
		c.Archive.Backend = "disk"
	}
	if c.Archive.Dir == "" {
		c.Archive.Dir = DefaultArchiveDir
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E062").
			WithDetail("server.port is " + strconv.Itoa(c.Server.Port))
	}

	switch c.Archive.Backend {
	case "disk", "s3":
	default:
		return errors.New("E063").
			WithDetail("archive.backend is " + strconv.Quote(c.Archive.Backend))
	}

	if c.Archive.Backend == "s3" && c.Archive.Bucket == "" {
		return errors.New("E061").
			WithDetail(`archive.bucket is required when archive.backend is "s3"`)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E060").
			WithDetail("log.level must be debug, info, warn or error")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("E060").
			WithDetail("log.format must be text or json")
	}

	return nil
}

// Address returns the listen address string for the route server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the route server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// LogLevel maps the configured level onto slog. Unknown levels fall back
// to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ManifestPath returns the absolute path to the route manifest.
func (c *Config) ManifestPath() string {
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.Dir(), c.Manifest)
}

// ArchiveDir returns the absolute path to the disk snapshot directory.
func (c *Config) ArchiveDir() string {
	if filepath.IsAbs(c.Archive.Dir) {
		return c.Archive.Dir
	}
	return filepath.Join(c.Dir(), c.Archive.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing wayfind.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E120").
				WithDetail("No wayfind.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
