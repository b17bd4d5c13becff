package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// PackageIdentity is an immutable package id and exact version.
// Ids compare without regard to case. Versions compare after normalization, never as ranges.
type PackageIdentity struct {
	id      InternedString
	version InternedString
}

// IdentityKey is the comparable deduplication key of a PackageIdentity.
type IdentityKey struct {
	id      InternedString
	version InternedString
}

// NewPackageIdentity creates a PackageIdentity, keeping the id casing as declared.
func NewPackageIdentity(id, version string) PackageIdentity {
	return PackageIdentity{
		id:      NewInternedString(strings.TrimSpace(id)),
		version: NewInternedString(strings.TrimSpace(version)),
	}
}

// ID returns the package id as declared.
func (p PackageIdentity) ID() string {
	return p.id.String()
}

// Version returns the package version as declared.
func (p PackageIdentity) Version() string {
	return p.version.String()
}

// Key returns the deduplication key of the identity.
func (p PackageIdentity) Key() IdentityKey {
	return IdentityKey{
		id:      NewInternedString(strings.ToLower(p.ID())),
		version: NewInternedString(NormalizeVersion(p.Version())),
	}
}

// Equal reports whether two identities denote the same package.
func (p PackageIdentity) Equal(other PackageIdentity) bool {
	return p.Key() == other.Key()
}

// String returns "<id> <version>".
func (p PackageIdentity) String() string {
	return p.ID() + " " + p.Version()
}

// NormalizeVersion returns the canonical form of a version string used for identity comparison.
// A version is one to four dot-separated decimal components with an optional prerelease and
// build suffix. Leading zeros and missing components count as zero, a zero fourth component is
// dropped, the prerelease is lower-cased and build metadata is ignored, so 01.0 and 1.0.0.0
// both become 1.0.0. Anything else, including a "v" prefix, is only lower-cased.
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	invalid := strings.ToLower(v)

	end := strings.IndexAny(v, "-+")
	if end < 0 {
		end = len(v)
	}
	parts := strings.Split(v[:end], ".")
	if len(parts) > 4 {
		return invalid
	}

	var nums [4]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return invalid
		}
		nums[i] = n
	}

	sv, err := semver.StrictNewVersion(fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]) + v[end:])
	if err != nil {
		return invalid
	}

	out := fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch())
	if nums[3] != 0 {
		out += "." + strconv.FormatUint(nums[3], 10)
	}
	if pre := sv.Prerelease(); pre != "" {
		out += "-" + strings.ToLower(pre)
	}
	return out
}

// String renders the key as "id/version".
func (k IdentityKey) String() string {
	return k.id.String() + "/" + k.version.String()
}
