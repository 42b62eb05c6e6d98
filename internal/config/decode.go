package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxConfigSize limits config input to prevent memory exhaustion.
const MaxConfigSize = 1 << 20

var (
	errEmptyConfig    = errors.New("empty config")
	errConfigTooLarge = errors.New("config exceeds maximum size")
)

// decodeStrict unmarshals YAML into v and rejects unknown fields.
func decodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errEmptyConfig
	}
	if len(data) > MaxConfigSize {
		return fmt.Errorf("%w: %d bytes (max %d)", errConfigTooLarge, len(data), MaxConfigSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}
