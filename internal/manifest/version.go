package manifest

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// VersionInfo is the build code and dotted version declared on the root.
type VersionInfo struct {
	Code int32
	Name Version
	Raw  string // versionName as declared, before normalization
}

// Version is a dotted numeric version with at least two components.
type Version struct {
	parts []int
}

// ParseVersion parses s as dot-separated non-negative integers.
// At least two components are required and none may be empty.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("empty version")
	}
	fields := strings.Split(s, ".")
	if len(fields) < 2 {
		return Version{}, fmt.Errorf("version %q has a single component", s)
	}
	parts := make([]int, len(fields))
	for i, f := range fields {
		if f == "" {
			return Version{}, fmt.Errorf("version %q has an empty component", s)
		}
		n, err := strconv.ParseInt(f, 10, 32)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("version %q: invalid component %q", s, f)
		}
		parts[i] = int(n)
	}
	return Version{parts: parts}, nil
}

// MustParseVersion is ParseVersion that panics on error. Intended for tests
// and constants.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Components returns a copy of the version components.
func (v Version) Components() []int {
	out := make([]int, len(v.parts))
	copy(out, v.parts)
	return out
}

func (v Version) component(i int) int {
	if i < len(v.parts) {
		return v.parts[i]
	}
	return -1
}

// Major returns the first component.
func (v Version) Major() int { return v.component(0) }

// Minor returns the second component.
func (v Version) Minor() int { return v.component(1) }

// Build returns the third component, or -1.
func (v Version) Build() int { return v.component(2) }

// Revision returns the fourth component, or -1.
func (v Version) Revision() int { return v.component(3) }

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return len(v.parts) == 0
}

func (v Version) String() string {
	fields := make([]string, len(v.parts))
	for i, p := range v.parts {
		fields[i] = strconv.Itoa(p)
	}
	return strings.Join(fields, ".")
}

// Compare returns -1, 0 or +1. Missing trailing components sort before
// present ones, so 1.2 < 1.2.0.
func (v Version) Compare(w Version) int {
	n := max(len(v.parts), len(w.parts))
	for i := 0; i < n; i++ {
		a, b := v.component(i), w.component(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Semver renders v as a canonical semantic version ("v1.2.3"). Versions
// with more than three components cannot be expressed and return "".
func (v Version) Semver() string {
	if len(v.parts) == 0 || len(v.parts) > 3 {
		return ""
	}
	return semver.Canonical("v" + v.String())
}

// NormalizeVersionName drops every character that is not an ASCII digit or
// '.', keeping the order of the rest. "1.2.3-beta4" becomes "1.2.34".
func NormalizeVersionName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// GetVersion runs DefaultQuery.Version.
func GetVersion(root *Node) (VersionInfo, error) {
	return DefaultQuery.Version(root)
}

// Version reads versionCode and versionName from the root's own attributes.
func (q Query) Version(root *Node) (VersionInfo, error) {
	if err := checkRoot(root, StageVersion); err != nil {
		return VersionInfo{}, err
	}

	code, codeOK := findRootAttr(root, "versioncode")
	name, nameOK := findRootAttr(root, "versionname")
	if !codeOK || isBlank(code.Value) {
		return VersionInfo{}, NewError(KindMissingVersionInfo, StageVersion, "versionCode is missing", nil)
	}
	if !nameOK || isBlank(name.Value) {
		return VersionInfo{}, NewError(KindMissingVersionInfo, StageVersion, "versionName is missing", nil)
	}

	normalized := NormalizeVersionName(name.Value)

	buildCode, err := parseVersionCode(code.Value)
	if err != nil {
		return VersionInfo{}, NewError(KindInvalidVersionCode, StageVersion, fmt.Sprintf("%q", code.Value), err)
	}

	parsed, err := ParseVersion(normalized)
	if err != nil {
		return VersionInfo{}, NewError(KindInvalidVersionName, StageVersion, fmt.Sprintf("%q", name.Value), err)
	}

	return VersionInfo{
		Code: buildCode,
		Name: parsed,
		Raw:  strings.Clone(name.Value),
	}, nil
}

// findRootAttr returns the first root attribute whose qualified name
// contains sub, ignoring case.
func findRootAttr(root *Node, sub string) (Attr, bool) {
	for _, a := range root.Attrs {
		if strings.Contains(strings.ToLower(a.QualifiedName()), sub) {
			return a, true
		}
	}
	return Attr{}, false
}

func parseVersionCode(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("version code %d is negative", n)
	}
	return int32(n), nil
}
