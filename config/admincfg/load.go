package admincfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfig selects the config file path when the --config flag is unset.
const EnvConfig = "OVERLEAF_ADMIN_CONFIG"

// Load reads a YAML file from path and returns the deserialized Root
// merged over defaults. It performs no validation beyond YAML decoding.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Resolve returns the effective configuration: the file named by the
// flag, else $OVERLEAF_ADMIN_CONFIG, else defaults when neither names a
// file. A flag-named file that does not exist is an error; an env-named
// one falls back silently.
func Resolve(flagPath string) (*Root, error) {
	if flagPath != "" {
		return Load(flagPath)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		if _, err := os.Stat(env); err == nil {
			return Load(env)
		}
	}
	return Default(), nil
}

// Dump serializes the configuration back to YAML.
func (r *Root) Dump() ([]byte, error) {
	return yaml.Marshal(r)
}
