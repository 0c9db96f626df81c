package tui

import "strings"

// BuildInfo is the version metadata shown in the header and by --version.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// String formats the build as "version (commit) date", skipping empty parts.
func (b BuildInfo) String() string {
	parts := make([]string, 0, 3)
	if b.Version != "" {
		parts = append(parts, b.Version)
	}
	if b.Commit != "" {
		parts = append(parts, "("+b.Commit+")")
	}
	if b.Date != "" {
		parts = append(parts, b.Date)
	}
	return strings.Join(parts, " ")
}
