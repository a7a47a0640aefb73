// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package hostinfo

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppPath(t *testing.T) {
	// The shell is present on any platform the tests run on.
	path := AppPath("sh")
	assert.NotEmpty(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestAppPathNotFound(t *testing.T) {
	assert.Empty(t, AppPath("definitely-not-an-installed-application"))
}

func TestHostname(t *testing.T) {
	name, err := Hostname()
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestPID(t *testing.T) {
	assert.Equal(t, os.Getpid(), PID())
	assert.Positive(t, PID())
}

func TestUsername(t *testing.T) {
	name, err := Username()
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestGetenv(t *testing.T) {
	t.Setenv("SCIFLOW_TEST_VAR", "bound")

	value, ok := Getenv("SCIFLOW_TEST_VAR")
	assert.True(t, ok)
	assert.Equal(t, "bound", value)

	_, ok = Getenv("SCIFLOW_TEST_UNBOUND_VAR")
	assert.False(t, ok)
}

func TestGetenvEmptyValueIsBound(t *testing.T) {
	t.Setenv("SCIFLOW_TEST_VAR", "")

	value, ok := Getenv("SCIFLOW_TEST_VAR")
	assert.True(t, ok, "an empty bound value is reported as bound")
	assert.Empty(t, value)
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("SCIFLOW_TEST_INT", "42")

	n, ok := GetenvInt("SCIFLOW_TEST_INT")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	t.Setenv("SCIFLOW_TEST_INT", "not-a-number")

	_, ok = GetenvInt("SCIFLOW_TEST_INT")
	assert.False(t, ok)

	_, ok = GetenvInt("SCIFLOW_TEST_UNBOUND_VAR")
	assert.False(t, ok)
}

func TestGetenvFloat(t *testing.T) {
	t.Setenv("SCIFLOW_TEST_FLOAT", "0.25")

	f, ok := GetenvFloat("SCIFLOW_TEST_FLOAT")
	assert.True(t, ok)
	assert.InDelta(t, 0.25, f, 1e-9)

	t.Setenv("SCIFLOW_TEST_FLOAT", "not-a-number")

	_, ok = GetenvFloat("SCIFLOW_TEST_FLOAT")
	assert.False(t, ok)
}

func TestGetenvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
		ok    bool
	}{
		{value: "true", want: true, ok: true},
		{value: "1", want: true, ok: true},
		{value: "false", want: false, ok: true},
		{value: "0", want: false, ok: true},
		{value: "yes", want: false, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SCIFLOW_TEST_BOOL", tt.value)

			b, ok := GetenvBool("SCIFLOW_TEST_BOOL")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, b)
		})
	}
}
