package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic version of a deployed module.
type Version struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

// NewVersion creates a Version.
func NewVersion(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// ParseVersion parses "major.minor.patch", with an optional leading "v".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	if len(parts) != 3 {
		return Version{}, BadRequest(fmt.Sprintf("invalid version %q", s)).
			WithMethod("parse_version").
			WithSource(Source)
	}

	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, BadRequest(fmt.Sprintf("invalid version %q", s)).
				WithMethod("parse_version").
				WithSource(Source).
				WithCause(err)
		}
		nums[i] = n
	}
	return NewVersion(nums[0], nums[1], nums[2]), nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpUint(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpUint(v.Minor, other.Minor)
	default:
		return cmpUint(v.Patch, other.Patch)
	}
}

// IsHigherVersion reports whether v is strictly newer than other.
func (v Version) IsHigherVersion(other Version) bool {
	return v.Compare(other) > 0
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
