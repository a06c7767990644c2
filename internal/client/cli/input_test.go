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
	reader := bufio.NewReader(strings.NewReader("  Operating Systems  \n"))

	text, err := GetSimpleText(reader, "Subject name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Operating Systems", text)
	assert.Contains(t, out.String(), "Subject name")
}

func TestGetSimpleText_PartialLineBeforeEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no newline"))

	text, err := GetSimpleText(reader, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", text)
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer

	n, err := GetInt(bufio.NewReader(strings.NewReader("4\n")), "Semester", 0, &out)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = GetInt(bufio.NewReader(strings.NewReader("\n")), "Semester", 2, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = GetInt(bufio.NewReader(strings.NewReader("four\n")), "Semester", 2, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		ok, err := Confirm(bufio.NewReader(strings.NewReader(tt.input)), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "input %q", tt.input)
	}
}
