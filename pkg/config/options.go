package config

// Options is an open key/value map of rule-specific settings.
//
// Accessors never fail: a missing key, or a value of the wrong type or an
// out-of-range value, falls back to the supplied default. Rules therefore
// degrade to documented behavior instead of erroring on malformed
// configuration.
type Options map[string]any

// Int returns an integer option, or the default when absent or unusable.
func (o Options) Int(key string, defaultValue int) int {
	if o == nil {
		return defaultValue
	}
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		// JSON numbers decode as float64.
		return int(v)
	default:
		return defaultValue
	}
}

// String returns a string option, or the default.
func (o Options) String(key string, defaultValue string) string {
	if o == nil {
		return defaultValue
	}
	if s, ok := o[key].(string); ok {
		return s
	}
	return defaultValue
}

// Bool returns a boolean option, or the default.
func (o Options) Bool(key string, defaultValue bool) bool {
	if o == nil {
		return defaultValue
	}
	if b, ok := o[key].(bool); ok {
		return b
	}
	return defaultValue
}

// StringSlice returns a string slice option, or the default.
func (o Options) StringSlice(key string, defaultValue []string) []string {
	if o == nil {
		return defaultValue
	}
	switch v := o[key].(type) {
	case []string:
		return v
	case []any:
		// YAML and JSON decoders produce []any.
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
		return defaultValue
	default:
		return defaultValue
	}
}
