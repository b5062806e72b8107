// Package config loads soundsegctl's optional YAML defaults file.
package config

/*------------------------------------------------------------------
 *
 * Purpose:	CLI-wide defaults: the ad-match correlation threshold, the
 *		default output directory, and whether write's gap-fill
 *		behavior is enabled.
 *
 * Description:	Grounded on src/deviceid.go's deviceid_init: read a YAML
 *		file at run time rather than compiling it in, trying a
 *		short list of search locations and falling back to defaults
 *		if none exist. Unlike deviceid_init, a file that exists but
 *		fails to parse is reported as an error rather than logged
 *		and ignored -- config content the user explicitly provided
 *		is expected to be honored or rejected, not silently
 *		dropped.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// searchLocations mirrors deviceid_init's current-directory-then-installed-
// data-directory search order.
var searchLocations = []string{
	"soundsegctl.yaml",
	"config/soundsegctl.yaml",
	"/usr/local/share/soundseg/soundsegctl.yaml",
	"/usr/share/soundseg/soundsegctl.yaml",
}

// Config holds the CLI defaults. No command-line flag overrides them, and no
// soundsegctl command reads OutputDir: --out paths are used as given.
type Config struct {
	CorrelationThreshold float64 `yaml:"correlation_threshold"`
	OutputDir            string  `yaml:"output_dir"`
	ZeroFillWriteGaps    bool    `yaml:"zero_fill_write_gaps"`
}

// Default returns the built-in defaults, used when no config file is found.
func Default() Config {
	return Config{
		CorrelationThreshold: 0.95,
		OutputDir:            ".",
		ZeroFillWriteGaps:    true,
	}
}

// Load searches searchLocations for a config file and merges any fields it
// sets over Default(). If no file is found, it returns Default() with a nil
// error -- an optional config file is not a failure. If a file is found but
// cannot be parsed, that IS an error: the caller asked for those settings.
func Load() (Config, error) {
	cfg := Default()

	var data []byte
	var foundPath string
	for _, loc := range searchLocations {
		b, err := os.ReadFile(loc)
		if err == nil {
			data = b
			foundPath = loc
			break
		}
	}
	if foundPath == "" {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", foundPath, err)
	}
	return cfg, nil
}
