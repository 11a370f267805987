// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// notAvailable stands in for build metadata the linker did not set.
const notAvailable = "N/A"

// AppBuildInfo is the release metadata stamped into the server binary with
// -ldflags. The version doubles as the default /api/version answer.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo builds [AppBuildInfo], replacing empty values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNotAvailable(version),
		Date:    orNotAvailable(date),
		Commit:  orNotAvailable(commit),
	}
}

// Stamped reports whether a real version was injected at build time.
func (a AppBuildInfo) Stamped() bool {
	return a.Version != "" && a.Version != notAvailable
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", a.Version, a.Commit, a.Date)
}

func orNotAvailable(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
