// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package hostinfo provides queries against the host platform and the
// run-time environment: executable lookup, host identity and typed access
// to environment variables.
package hostinfo

import (
	"os"
	"os/exec"
	"os/user"
	"strconv"
)

// AppPath returns the full path to the named application by searching the
// directories listed in PATH. It returns the empty string when the
// application cannot be located.
func AppPath(app string) string {
	path, err := exec.LookPath(app)
	if err != nil {
		return ""
	}

	return path
}

// Hostname returns the name assigned to the host platform.
func Hostname() (string, error) {
	return os.Hostname()
}

// PID returns the process identifier of the calling process.
func PID() int {
	return os.Getpid()
}

// Username returns the login name of the current user.
func Username() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}

	return u.Username, nil
}

// Chown changes the ownership of path to the named user and, optionally,
// group. An empty group leaves the group unchanged.
func Chown(path, username, group string) error {
	u, err := user.Lookup(username)
	if err != nil {
		return err
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return err
	}

	gid := -1

	if group != "" {
		g, err := user.LookupGroup(group)
		if err != nil {
			return err
		}

		if gid, err = strconv.Atoi(g.Gid); err != nil {
			return err
		}
	}

	return os.Chown(path, uid, gid)
}

// Getenv returns the value of the named environment variable and whether
// it is bound in the environment. An empty bound value is reported as
// bound.
func Getenv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// GetenvInt returns the integer value of the named environment variable.
// It reports false when the variable is unbound or does not parse as an
// integer.
func GetenvInt(name string) (int, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}

	return n, true
}

// GetenvFloat returns the floating-point value of the named environment
// variable. It reports false when the variable is unbound or does not
// parse as a number.
func GetenvFloat(name string) (float64, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// GetenvBool returns the boolean value of the named environment variable.
// It reports false when the variable is unbound or does not parse as a
// boolean.
func GetenvBool(name string) (bool, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}

	return b, true
}
