// Package node defines the typed Node.js version model shared by all backends
package node

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrAliasCompare is returned when a named alias is compared numerically.
// Aliases only resolve to concrete versions inside the backend tools, so
// ordering them here would silently invent a result.
var ErrAliasCompare = errors.New("cannot compare an unresolved version alias")

// Version is a Node.js version: either a numeric major.minor.patch triple
// or a named alias such as "latest" or "lts/iron". Values are immutable
// once constructed.
type Version struct {
	Raw   string // original text as parsed, without a leading "v"
	Major int
	Minor int
	Patch int
	Name  string // alias name; empty for numeric versions
}

// Parse converts a version string into a Version. A leading "v" is
// accepted and stripped. One or two numeric components are allowed
// ("20", "20.11") and missing components default to zero; anything that
// is not purely numeric parses as an alias.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "v")
	if trimmed == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) > 3 {
		return Alias(trimmed), nil
	}
	nums := make([]int, 0, 3)
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Alias(trimmed), nil
		}
		nums = append(nums, n)
	}

	v := Version{Raw: trimmed}
	if len(nums) > 0 {
		v.Major = nums[0]
	}
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}
	return v, nil
}

// MustParse is Parse for fixed tables; it panics on invalid input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("node: invalid version %q: %v", s, err))
	}
	return v
}

// Alias constructs a named alias version ("latest", "lts", "system").
func Alias(name string) Version {
	return Version{Raw: name, Name: name}
}

// IsAlias reports whether the version is a named alias rather than a
// numeric triple.
func (v Version) IsAlias() bool {
	return v.Name != ""
}

// String renders the version. Numeric versions round-trip the parsed
// text; constructed numeric versions format as "major.minor.patch";
// aliases render verbatim.
func (v Version) String() string {
	if v.Name != "" {
		return v.Name
	}
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders two numeric versions lexicographically by
// (major, minor, patch), returning -1, 0, or 1. Comparing against an
// alias returns ErrAliasCompare.
func (v Version) Compare(o Version) (int, error) {
	if v.IsAlias() || o.IsAlias() {
		return 0, ErrAliasCompare
	}
	if v.Major != o.Major {
		return cmpInt(v.Major, o.Major), nil
	}
	if v.Minor != o.Minor {
		return cmpInt(v.Minor, o.Minor), nil
	}
	return cmpInt(v.Patch, o.Patch), nil
}

// Equal reports whether two versions denote the same numeric triple, or
// the same alias name. A numeric version never equals an alias.
func (v Version) Equal(o Version) bool {
	if v.IsAlias() != o.IsAlias() {
		return false
	}
	if v.IsAlias() {
		return v.Name == o.Name
	}
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func cmpInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// Installed is a version reported by a backend's "list installed"
// output, plus the listing metadata that came with it.
type Installed struct {
	Version
	Default bool
	Path    string // install location, when the tool reports one
	Arch    string // architecture label, when the tool reports one
}

// String returns a formatted representation for diagnostics.
func (iv Installed) String() string {
	marker := ""
	if iv.Default {
		marker = " (default)"
	}
	return fmt.Sprintf("v%s%s", iv.Version.String(), marker)
}

// Remote is a version available for installation from a backend's
// remote catalog.
type Remote struct {
	Version
	Codename string // LTS codename, empty when the line carried none
	LTS      bool
}

// String returns a formatted representation for diagnostics.
func (rv Remote) String() string {
	if rv.LTS && rv.Codename != "" {
		return fmt.Sprintf("v%s (%s)", rv.Version.String(), rv.Codename)
	}
	return "v" + rv.Version.String()
}
