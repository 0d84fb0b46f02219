package errors

import "fmt"

// Common error types.
var (
	// Backend errors.
	ErrNoBackend            = fmt.Errorf("no supported native package manager detected")
	ErrUnsupportedOperation = fmt.Errorf("operation not supported by this backend")
	ErrFlatpakUnavailable   = fmt.Errorf("flatpak is not available on this system")

	// Command execution errors.
	ErrEmptyCommand = fmt.Errorf("command cannot be empty")
	ErrCommandStart = fmt.Errorf("failed to start command")

	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
