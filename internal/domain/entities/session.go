package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

// User is the authenticated GitLab user.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// RemoteVersion is the version reported by the GitLab instance, e.g. "17.2.1-ee".
type RemoteVersion struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
}

// Enterprise reports whether the instance runs the enterprise edition.
func (v RemoteVersion) Enterprise() bool {
	return strings.HasSuffix(v.Version, "-ee")
}

// Semver returns the canonical "vMAJOR.MINOR.PATCH" form, dropping the edition
// suffix. It returns an empty string for unparsable versions.
func (v RemoteVersion) Semver() string {
	core, _, _ := strings.Cut(v.Version, "-")
	return semver.Canonical(normalizeVersion(core))
}

// AtLeast reports whether the remote version is greater than or equal to minimum.
// Unparsable versions never satisfy the check.
func (v RemoteVersion) AtLeast(minimum string) bool {
	current := v.Semver()
	wanted := semver.Canonical(normalizeVersion(minimum))
	if current == "" || wanted == "" {
		return false
	}
	return semver.Compare(current, wanted) >= 0
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
