package codec

/**
 * codec.go - config encoding utils
 */

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/burntsushi/toml"
)

const (
	TOML = "toml"
	JSON = "json"
)

/**
 * Encode data based on format
 * Currently supported: toml and json
 */
func Encode(in interface{}, format string) (string, error) {

	switch format {
	case TOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(in); err != nil {
			return "", err
		}
		return buf.String(), nil
	case JSON:
		buf, err := json.MarshalIndent(in, "", "    ")
		if err != nil {
			return "", err
		}
		return string(buf), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

/**
 * Decode data based on format
 * Currently supported: toml and json
 */
func Decode(data []byte, out interface{}, format string) error {

	switch format {
	case TOML:
		if _, err := toml.Decode(string(data), out); err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
		return nil
	case JSON:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
