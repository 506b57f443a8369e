package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-project configuration file.
const ConfigFileName = ".marginalia.yml"

// FileConfig is the on-disk project configuration. All fields are optional;
// zero values fall back to defaults.
type FileConfig struct {
	// Suffix overrides the memo set file name marker (default "code_memo").
	Suffix string `yaml:"suffix"`
}

// LoadConfig reads the project configuration from the given root. A missing
// file yields a zero config and no error; a malformed file is an error, since
// silently ignoring a present config would be surprising.
func LoadConfig(root string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}
