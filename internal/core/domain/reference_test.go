package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgr/internal/core/domain"
)

func TestReferenceSet_Deduplicates(t *testing.T) {
	set := domain.NewReferenceSet()

	assert.True(t, set.Add(domain.NewPackageReference("Foo", "1.0.0")))
	assert.False(t, set.Add(domain.NewPackageReference("foo", "1.0.0")))
	assert.False(t, set.Add(domain.PackageReference{
		Identity:        domain.NewPackageIdentity("FOO", "1.0"),
		TargetFramework: "net48",
	}))
	assert.True(t, set.Add(domain.NewPackageReference("Foo", "2.0.0")))

	require.Equal(t, 2, set.Len())
	refs := set.Slice()
	assert.Equal(t, "Foo", refs[0].Identity.ID(), "first declaration wins")
	assert.Empty(t, refs[0].TargetFramework)
	assert.Equal(t, "2.0.0", refs[1].Identity.Version())
}

func TestReferenceSet_AddAllKeepsOrder(t *testing.T) {
	a := domain.NewReferenceSet(
		domain.NewPackageReference("A", "1.0.0"),
		domain.NewPackageReference("B", "1.0.0"),
	)
	b := domain.NewReferenceSet(
		domain.NewPackageReference("b", "1.0.0"),
		domain.NewPackageReference("C", "1.0.0"),
	)

	a.AddAll(b)

	var ids []string
	for ref := range a.All() {
		ids = append(ids, ref.Identity.ID())
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestReferenceSet_Nil(t *testing.T) {
	var set *domain.ReferenceSet

	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Slice())
	assert.Empty(t, slices.Collect(set.All()))
}

func TestReferenceSet_ZeroValueUsable(t *testing.T) {
	var set domain.ReferenceSet

	assert.True(t, set.Add(domain.NewPackageReference("A", "1.0.0")))
	assert.Equal(t, 1, set.Len())
}
