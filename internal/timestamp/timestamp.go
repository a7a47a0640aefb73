// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package timestamp defines the supported timestamp layouts, expressed
// against the Go reference time, and a format-checking helper.
package timestamp

import (
	"errors"
	"fmt"
	"time"
)

// Supported timestamp layouts. Global is the layout from which all others
// should be derived.
const (
	// General is a human-oriented layout of the form 2006-01-02_15:04:05.
	General = "2006-01-02_15:04:05"
	// Global is the canonical layout, 20060102150405.
	Global = "20060102150405"
	// H is the hour-only layout.
	H = "15"
	// Info is the layout used for informational messages.
	Info = "15:04:05 UTC 02 January 2006"
	// YmdDashedTHMSZ is an ISO-8601 style layout with a Z suffix.
	YmdDashedTHMSZ = "2006-01-02T15:04:05Z"
	// Ymd is the date-only layout.
	Ymd = "20060102"
	// YmdH is the date plus hour layout.
	YmdH = "2006010215"
	// YmdTHM is the date plus hour and minute layout.
	YmdTHM = "20060102T1504"
	// YmdTHMS is the date plus hour, minute and second layout.
	YmdTHMS = "20060102T150405"
	// YmdTHMZ is the date plus hour and minute layout with a Z suffix.
	YmdTHMZ = "20060102T1504Z"
)

// ErrBadFormat is returned when a timestamp string does not conform to the
// expected layout.
var ErrBadFormat = errors.New("timestamp format mismatch")

// CheckFormat verifies that datestr, assumed to be in inLayout, renders
// identically under outLayout. It returns ErrBadFormat when the timestamp
// does not parse or when the round-trip differs from the input.
func CheckFormat(datestr, inLayout, outLayout string) error {
	t, err := time.Parse(inLayout, datestr)
	if err != nil {
		return fmt.Errorf("%w: timestamp %q does not match layout %q: %v",
			ErrBadFormat, datestr, inLayout, err)
	}

	if check := t.Format(outLayout); check != datestr {
		return fmt.Errorf("%w: timestamp %q does not match layout %q",
			ErrBadFormat, datestr, outLayout)
	}

	return nil
}
