// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfo is the linker-injected build metadata of a binary. Empty fields
// are reported as "N/A".
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewBuildInfo fills missing values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return BuildInfo{Version: orNA(version), Date: orNA(date), Commit: orNA(commit)}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("version=%s date=%s commit=%s", b.Version, b.Date, b.Commit)
}
