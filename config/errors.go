package config

import "fmt"

// ConfigError is a fatal configuration problem detected at load time.
// Key is the dotted path of the offending entry, e.g. "markets.default".
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("config: missing required key %q", e.Key)
	}
	return fmt.Sprintf("config: invalid key %q: %s", e.Key, e.Reason)
}

func missingKey(key string) *ConfigError {
	return &ConfigError{Key: key}
}
