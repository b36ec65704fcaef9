package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialFor(t *testing.T) {
	cases := map[Part]Material{
		PartNone:       MaterialCobblestone,
		PartTrunk:      MaterialLog,
		PartLeaves:     MaterialLeaf,
		PartFeet:       MaterialBlack,
		PartPillars:    MaterialRed,
		PartCrossbeams: MaterialRed,
		PartRoof:       MaterialBlack,
	}
	for part, want := range cases {
		assert.Equal(t, want, MaterialFor(part), "материал части %q", part)
	}
	assert.Equal(t, MaterialNone, MaterialFor(Part("unknown")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindFree, KindOf(PartNone))
	assert.Equal(t, KindTrunk, KindOf(PartTrunk))
	assert.Equal(t, KindLeaf, KindOf(PartLeaves))
	for _, p := range StructureParts {
		assert.Equal(t, KindStructure, KindOf(p))
		assert.True(t, IsStructurePart(p))
		assert.False(t, IsTreePart(p))
	}
	assert.Equal(t, "leaf", KindLeaf.String())
}

func TestMaterialNames(t *testing.T) {
	assert.Equal(t, "cobblestone", MaterialCobblestone.String())
	assert.Equal(t, "unknown", Material(999).String())
	assert.True(t, IsValidMaterial(MaterialRed))
	assert.False(t, IsValidMaterial(MaterialNone))
}
