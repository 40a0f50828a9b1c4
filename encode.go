package shutter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding for resolved motion data.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("shutter: unknown output format %q", name)
	}
}

// cborEnc uses Core Deterministic Encoding so identical motion data always
// encodes to identical bytes. InstanceTable hashes depend on this.
var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("shutter: CBOR encoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes v with deterministic CBOR.
func MarshalCBOR(v any) ([]byte, error) {
	return cborEnc.Marshal(v)
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("shutter: encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("shutter: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("shutter: encode yaml: %w", err)
		}
	case FormatCBOR:
		data, err := MarshalCBOR(v)
		if err != nil {
			return fmt.Errorf("shutter: encode cbor: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("shutter: write cbor: %w", err)
		}
	default:
		return fmt.Errorf("shutter: unknown output format %q", format)
	}
	return nil
}
