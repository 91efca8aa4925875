package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  Sarah M.  \n"))

	got, err := GetSimpleText(reader, "Your name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Sarah M.", got)
	assert.Contains(t, out.String(), "Your name")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("Nairobi"))

	got, err := GetSimpleText(reader, "Your location", &out)
	require.NoError(t, err)
	assert.Equal(t, "Nairobi", got)
}

func TestGetMultiline_JoinsUntilEmptyLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("first line\nsecond line\n\nignored\n"))

	got, err := GetMultiline(reader, "Your message", &out)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got)
}

func TestGetChoice(t *testing.T) {
	options := []string{"Family", "Friend", "Fan"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "valid pick", input: "2\n", want: "Friend"},
		{name: "empty skips", input: "\n", want: ""},
		{name: "out of range skips", input: "9\n", want: ""},
		{name: "garbage skips", input: "many\n", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			reader := bufio.NewReader(strings.NewReader(tc.input))

			got, err := GetChoice(reader, "Your relationship", options, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
