package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleParameters_BuildSearchQuery(t *testing.T) {
	p := StyleParameters{
		LengthCategory: "C Length",
		CutForm:        "L(Layer)",
		LiftingRange:   []string{"L2", "L4"},
		SectionPrimary: "Diagonal Backward",
		VolumeZone:     "High",
		FringeType:     "See-through Bang",
	}

	query := p.BuildSearchQuery()
	assert.Equal(t, "쇄골 세미롱, LLayer, 리프팅 L2 L4, 섹션 Diagonal Backward, High 볼륨, See-through Bang", query)
}

func TestStyleParameters_BuildSearchQuerySkipsNoFringe(t *testing.T) {
	p := StyleParameters{
		LengthCategory: "F Length",
		FringeType:     "No Fringe",
	}
	assert.Equal(t, "턱선 보브", p.BuildSearchQuery())
}

func TestStyleParameters_BuildSearchQueryIsDeterministic(t *testing.T) {
	p := StyleParameters{LengthCategory: "A Length", VolumeZone: "Low"}
	assert.Equal(t, p.BuildSearchQuery(), p.BuildSearchQuery())
}

func TestStyleParameters_Gender(t *testing.T) {
	assert.Equal(t, "female", StyleParameters{CutCategory: "Women's Cut"}.Gender())
	assert.Equal(t, "male", StyleParameters{CutCategory: "Men's Cut"}.Gender())
	assert.Equal(t, "", StyleParameters{}.Gender())
}

func TestStyleParameters_LengthPrefix(t *testing.T) {
	assert.Equal(t, "FAL", StyleParameters{LengthCategory: "A Length"}.LengthPrefix())
	assert.Equal(t, "FHL", StyleParameters{LengthCategory: "H Length"}.LengthPrefix())
	assert.Equal(t, "", StyleParameters{LengthCategory: "unknown"}.LengthPrefix())
}

func TestStyleParameters_IsZero(t *testing.T) {
	assert.True(t, StyleParameters{}.IsZero())
	assert.False(t, StyleParameters{VolumeZone: "High"}.IsZero())
	assert.False(t, StyleParameters{LiftingRange: []string{"L2"}}.IsZero())
}
