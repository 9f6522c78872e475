// Package tomlutil wraps TOML parsing to isolate the external dependency.
// This allows swapping the underlying TOML library without modifying callers.
package tomlutil

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// MaxInputSize limits TOML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilDestination = errors.New("tomlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("tomlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes TOML data into a typed destination.
// Keys in the input that have no matching field are ignored.
// Empty data is a valid empty document and leaves v untouched.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("tomlutil: %w", err)
	}
	return nil
}

// DecodeMapping parses TOML data into a generic key-value mapping.
// Tables decode to nested map[string]any values. Empty data decodes to
// an empty mapping.
func DecodeMapping(data []byte) (map[string]any, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	mapping := map[string]any{}
	if err := toml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("tomlutil: %w", err)
	}
	return mapping, nil
}
