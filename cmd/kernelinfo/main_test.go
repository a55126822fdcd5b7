package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-spacing", "0.5", "-range", "2", "1", "3"}, &out, &bytes.Buffer{}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "FWHM"))

	fields := strings.Fields(lines[2])
	require.Len(t, fields, 8)
	assert.Equal(t, "1.0000", fields[0])
	assert.Equal(t, "8", fields[2])
	assert.Equal(t, "4", fields[3])
	assert.Equal(t, "-2.000000", fields[4])
	assert.Equal(t, "1.000000", fields[5])
}

func TestRunKeV(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-kev", "1"}, &out, &bytes.Buffer{}))
	assert.Contains(t, out.String(), "3.9100")
}

func TestRunErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"abc"},
		{"-spacing", "0", "1"},
		{"-1"},
	}
	for _, args := range tests {
		require.Error(t, run(args, &bytes.Buffer{}, &bytes.Buffer{}), "args %v", args)
	}
}
