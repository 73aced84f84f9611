package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
)

func TestOptionsInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.Options
		want int
	}{
		{"nil map", nil, 42},
		{"missing key", config.Options{}, 42},
		{"int value", config.Options{"n": 7}, 7},
		{"int64 value", config.Options{"n": int64(7)}, 7},
		{"json float64", config.Options{"n": float64(7)}, 7},
		{"wrong type", config.Options{"n": "seven"}, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.opts.Int("n", 42))
		})
	}
}

func TestOptionsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fallback", config.Options(nil).String("s", "fallback"))
	assert.Equal(t, "value", config.Options{"s": "value"}.String("s", "fallback"))
	assert.Equal(t, "fallback", config.Options{"s": 3}.String("s", "fallback"))
}

func TestOptionsBool(t *testing.T) {
	t.Parallel()

	assert.True(t, config.Options(nil).Bool("b", true))
	assert.False(t, config.Options{"b": false}.Bool("b", true))
	assert.True(t, config.Options{"b": "no"}.Bool("b", true))
}

func TestOptionsStringSlice(t *testing.T) {
	t.Parallel()

	fallback := []string{"x"}

	assert.Equal(t, fallback, config.Options(nil).StringSlice("l", fallback))
	assert.Equal(t, []string{"a", "b"},
		config.Options{"l": []string{"a", "b"}}.StringSlice("l", fallback))

	// Decoded YAML and JSON lists arrive as []any.
	assert.Equal(t, []string{"a", "b"},
		config.Options{"l": []any{"a", "b"}}.StringSlice("l", fallback))
	assert.Equal(t, []string{"a"},
		config.Options{"l": []any{"a", 3}}.StringSlice("l", fallback))
	assert.Equal(t, fallback,
		config.Options{"l": []any{1, 2}}.StringSlice("l", fallback))
	assert.Equal(t, fallback,
		config.Options{"l": "not a list"}.StringSlice("l", fallback))
}
