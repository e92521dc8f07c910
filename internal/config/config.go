package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the machine-timeline commands.
type Config struct {
	// FolderPath is the directory holding one YYYYMMDD.<ext> file per day.
	FolderPath string `yaml:"folder_path"`
	// StartDate is the inclusive lower bound, formatted as YYYY-MM-DD.
	StartDate string `yaml:"start_date"`
	// EndDate is the inclusive upper bound, formatted as YYYY-MM-DD.
	EndDate string `yaml:"end_date"`
	// Output is the chart path; its extension selects the image format.
	Output string `yaml:"output"`
	// Chart controls the rendered figure.
	Chart Chart `yaml:"chart"`
	// ServerAddress is the gRPC listen or dial address.
	ServerAddress string `yaml:"server_addr"`
	// Timeout bounds RPC calls and broker operations.
	Timeout time.Duration `yaml:"timeout"`
	// MQTT configures summary publishing.
	MQTT MQTT `yaml:"mqtt"`
}

// Chart holds the figure settings, in points.
type Chart struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// MQTT holds the broker settings of the publish command.
type MQTT struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "machine-timeline.yaml"

	// DefaultOutput is the default chart path.
	DefaultOutput = "timeline.png"

	// DefaultServerAddress is the default gRPC address.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultChartWidth and DefaultChartHeight size the figure in points.
	DefaultChartWidth  = 1000
	DefaultChartHeight = 500

	// DefaultTopic is the MQTT topic prefix for summaries.
	DefaultTopic = "machines/timeline"

	// DefaultClientID identifies the publisher at the broker.
	DefaultClientID = "machine-timeline"

	// DateLayout is the layout of StartDate and EndDate.
	DateLayout = "2006-01-02"

	// DefaultFilePermissions is the permission of files written by the commands.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errFolderRequired is returned when the day-file folder is missing.
	errFolderRequired = errors.New("folder path must be provided")
	// errDatesRequired is returned when either bound of the date range is missing.
	errDatesRequired = errors.New("start and end dates must be provided")
	// errDateOrder is returned when the start date is after the end date.
	errDateOrder = errors.New("start date is after end date")
)

// Load reads configuration from path. Validation is left to the caller,
// since command-line flags may still fill in the required fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &cfg, nil
}

// LoadOptional behaves like Load but returns empty settings when the file does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return new(Config), nil
	}

	return cfg, err
}

// Save validates cfg and writes it to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the required fields and fills defaults for the optional ones.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := cfg.RequireFolder(); err != nil {
		return err
	}

	if _, _, err := cfg.DateRange(); err != nil {
		return err
	}

	return Normalize(cfg)
}

// Normalize fills defaults for the optional fields and checks the server address.
// Commands that take their folder or dates from elsewhere call it instead of Validate.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	applyDefaults(cfg)

	if _, err := net.ResolveTCPAddr("tcp", cfg.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	return nil
}

// RequireFolder reports errFolderRequired when FolderPath is unset.
func (c *Config) RequireFolder() error {
	if c.FolderPath == "" {
		return errFolderRequired
	}

	return nil
}

// DateRange parses StartDate and EndDate.
func (c *Config) DateRange() (start, end time.Time, err error) {
	if c.StartDate == "" || c.EndDate == "" {
		return time.Time{}, time.Time{}, errDatesRequired
	}

	start, err = ParseDate(c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date: %w", err)
	}

	end, err = ParseDate(c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date: %w", err)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s", errDateOrder, c.StartDate, c.EndDate)
	}

	return start, end, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}

	return date, nil
}

// applyDefaults fills unset optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	if cfg.Chart.Width <= 0 {
		cfg.Chart.Width = DefaultChartWidth
	}

	if cfg.Chart.Height <= 0 {
		cfg.Chart.Height = DefaultChartHeight
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.MQTT.Topic == "" {
		cfg.MQTT.Topic = DefaultTopic
	}

	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = DefaultClientID
	}
}
