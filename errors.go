package mockhttp

import "fmt"

// ConfigError is returned synchronously from MockBuilder.Build when a
// mock's configuration is invalid. Configuration errors never surface at
// match time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mockhttp: invalid mock configuration: %s", e.Reason)
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
