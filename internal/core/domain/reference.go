package domain

import "iter"

// PackageReference is a package identity declared by a manifest, with optional target metadata.
type PackageReference struct {
	Identity              PackageIdentity
	TargetFramework       string
	DevelopmentDependency bool
}

// NewPackageReference creates a reference without target metadata.
func NewPackageReference(id, version string) PackageReference {
	return PackageReference{Identity: NewPackageIdentity(id, version)}
}

// ReferenceSet holds package references unique by identity.
// The first reference added for an identity wins and iteration follows insertion order.
type ReferenceSet struct {
	index map[IdentityKey]int
	refs  []PackageReference
}

// NewReferenceSet creates a set holding the given references.
func NewReferenceSet(refs ...PackageReference) *ReferenceSet {
	s := &ReferenceSet{index: make(map[IdentityKey]int, len(refs))}
	for _, ref := range refs {
		s.Add(ref)
	}
	return s
}

// Add inserts ref unless an equal identity is already present. It reports whether ref was added.
func (s *ReferenceSet) Add(ref PackageReference) bool {
	key := ref.Identity.Key()
	if _, ok := s.index[key]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[IdentityKey]int)
	}
	s.index[key] = len(s.refs)
	s.refs = append(s.refs, ref)
	return true
}

// AddAll inserts every reference of other.
func (s *ReferenceSet) AddAll(other *ReferenceSet) {
	for ref := range other.All() {
		s.Add(ref)
	}
}

// Len returns the number of references.
func (s *ReferenceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.refs)
}

// All iterates the references in insertion order.
func (s *ReferenceSet) All() iter.Seq[PackageReference] {
	return func(yield func(PackageReference) bool) {
		if s == nil {
			return
		}
		for _, ref := range s.refs {
			if !yield(ref) {
				return
			}
		}
	}
}

// Slice returns a copy of the references in insertion order.
func (s *ReferenceSet) Slice() []PackageReference {
	if s == nil {
		return nil
	}
	out := make([]PackageReference, len(s.refs))
	copy(out, s.refs)
	return out
}
