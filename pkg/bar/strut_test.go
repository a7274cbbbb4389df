package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrutValuesTop(t *testing.T) {
	strut := StrutValues(false, 24, 1920)

	assert.Equal(t, uint(24), strut[strutTop])
	assert.Equal(t, uint(1920), strut[strutTopEndX])
	assert.Zero(t, strut[strutBottom])
	assert.Zero(t, strut[strutBottomEndX])

	// top_start_x stays 0 so the reserved band starts at the screen edge.
	assert.Zero(t, strut[8])
}

func TestStrutValuesBottom(t *testing.T) {
	strut := StrutValues(true, 32, 2560)

	assert.Equal(t, uint(32), strut[strutBottom])
	assert.Equal(t, uint(2560), strut[strutBottomEndX])
	assert.Zero(t, strut[strutTop])
	assert.Zero(t, strut[strutTopEndX])
}

func TestStrutValuesOnlyOneEdgeSet(t *testing.T) {
	for _, bottom := range []bool{false, true} {
		strut := StrutValues(bottom, 20, 1000)
		nonZero := 0
		for _, v := range strut {
			if v != 0 {
				nonZero++
			}
		}
		assert.Equal(t, 2, nonZero, "exactly height and end_x should be set")
	}
}

func TestOpacityCardinal(t *testing.T) {
	assert.Equal(t, uint32(0), OpacityCardinal(0))
	assert.Equal(t, uint32(0xFFFFFFFF), OpacityCardinal(1))
	assert.Equal(t, uint32(0x7FFFFFFF), OpacityCardinal(0.5))
}
