package configloader

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema describes the accepted shape of a JSON config file: a few
// reserved keys, with every other key being a rule toggled by a boolean
// or configured with an options object.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "default": {"type": "boolean"},
    "severity_default": {
      "type": "string",
      "enum": ["error", "warning", "info"]
    },
    "ignore": {
      "type": "array",
      "items": {"type": "string"}
    },
    "rules": {
      "type": "object",
      "additionalProperties": {
        "anyOf": [{"type": "boolean"}, {"type": "object"}]
      }
    }
  },
  "additionalProperties": {
    "anyOf": [{"type": "boolean"}, {"type": "object"}]
  }
}`

// validateJSONConfig checks a JSON config document against the schema
// before any field is interpreted, so malformed configs fail with a
// message naming the offending key rather than a type assertion later.
func validateJSONConfig(content []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(content),
	)
	if err != nil {
		return fmt.Errorf("validate config schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("config schema violation: %s", strings.Join(details, "; "))
}
