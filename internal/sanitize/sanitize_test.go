package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_SizeLimit(t *testing.T) {
	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"under limit", 100, false},
		{"at limit", DefaultMaxInputSize, false},
		{"over limit", DefaultMaxInputSize + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Input(strings.Repeat("a", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInput_ControlChars(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"people", "people"},
		{"peo\x00ple", "people"},
		{"\x1b[31mred\x1b[0m", "[31mred[0m"},
		{"line1\nline2\tend\r", "line1\nline2\tend\r"},
		{"beep\a", "beep"},
	}
	for _, tt := range tests {
		got, err := Input(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := Input("12345678901")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	_, err = Input("12345")
	assert.NoError(t, err)
	assert.Equal(t, 10, MaxInputSize())

	t.Setenv(EnvMaxInputSize, "garbage")
	assert.Equal(t, DefaultMaxInputSize, MaxInputSize())
}

func TestInput_InvalidUTF8(t *testing.T) {
	_, err := Input("bad \xff byte")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestLine(t *testing.T) {
	got, err := Line("  very\r\nimportant \n")
	require.NoError(t, err)
	assert.Equal(t, "very important", got)
}
