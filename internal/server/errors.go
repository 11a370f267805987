// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	// errTransportStopped is returned when a listener exits on its own
	// while the process was not asked to stop.
	errTransportStopped = errors.New("transport stopped unexpectedly")
)
