//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"

	"github.com/oshokin/machine-timeline/internal/config"
)

// Overrides holds the command-line values that take precedence over the settings file.
type Overrides struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// FolderPath overrides folder_path.
	FolderPath string
	// StartDate overrides start_date.
	StartDate string
	// EndDate overrides end_date.
	EndDate string
	// Output overrides output.
	Output string
	// ServerAddress overrides server_addr.
	ServerAddress string
}

// LoadSettings reads the settings file, if any, and applies the overrides on top.
// Defaults are filled but required fields are left for the caller to check.
func LoadSettings(opts *Overrides) (*config.Config, error) {
	if opts == nil {
		opts = new(Overrides)
	}

	cfg, err := config.LoadOptional(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	override(&cfg.FolderPath, opts.FolderPath)
	override(&cfg.StartDate, opts.StartDate)
	override(&cfg.EndDate, opts.EndDate)
	override(&cfg.Output, opts.Output)
	override(&cfg.ServerAddress, opts.ServerAddress)

	if err := config.Normalize(cfg); err != nil {
		return nil, fmt.Errorf("normalize settings: %w", err)
	}

	return cfg, nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
