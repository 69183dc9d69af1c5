package types

import (
	"github.com/Masterminds/semver/v3"
)

// ToolVersion is the version of the model tooling that produced the
// generated artifacts, or that a board configuration was written for.
type ToolVersion string

// Valid reports whether the version is a recognized semantic version
func (v ToolVersion) Valid() bool {
	if v == "" {
		return false
	}
	_, err := semver.NewVersion(string(v))
	return err == nil
}

// Equal compares two versions semantically when both parse, and textually
// otherwise.
func (v ToolVersion) Equal(other ToolVersion) bool {
	a, errA := semver.NewVersion(string(v))
	b, errB := semver.NewVersion(string(other))
	if errA != nil || errB != nil {
		return v == other
	}
	return a.Equal(b)
}

func (v ToolVersion) String() string {
	if v == "" {
		return "unknown"
	}
	return string(v)
}
