package gifenc

import (
	"errors"
	"fmt"
)

// Domain errors for encoding operations.
var (
	// ErrConfiguration indicates a color depth or code length outside the GIF limits.
	ErrConfiguration = errors.New("gifenc: invalid configuration")

	// ErrPaletteLength indicates a palette shorter than the color table requires.
	ErrPaletteLength = errors.New("gifenc: palette too short")

	// ErrSymbolRange indicates a pixel value outside the compressor's alphabet.
	ErrSymbolRange = errors.New("gifenc: symbol outside code table")
)

// ConfigError reports which setting was rejected.
type ConfigError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gifenc: %s %d outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &ConfigError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return nil
}
