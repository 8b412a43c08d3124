package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStarGlyphs(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		want   GlyphCounts
	}{
		{"three and a half", 3.5, GlyphCounts{Full: 3, Half: 1, Empty: 1}},
		{"zero", 0, GlyphCounts{Full: 0, Half: 0, Empty: 5}},
		{"five", 5, GlyphCounts{Full: 5, Half: 0, Empty: 0}},
		{"rounded down fraction", 4.2, GlyphCounts{Full: 4, Half: 0, Empty: 0}},
		{"high fraction", 4.7, GlyphCounts{Full: 4, Half: 1, Empty: 0}},
		{"above range", 6, GlyphCounts{Full: 6, Half: 0, Empty: 0}},
		{"below range", -2, GlyphCounts{Full: 0, Half: 0, Empty: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountGlyphs(StarGlyphs(tt.rating)))
		})
	}
}

func TestStarGlyphs_Order(t *testing.T) {
	assert.Equal(t,
		[]StarGlyph{StarFull, StarFull, StarFull, StarHalf, StarEmpty},
		StarGlyphs(3.5),
	)
}

func TestStarGlyphs_NonFinite(t *testing.T) {
	assert.Empty(t, StarGlyphs(math.NaN()))
	assert.Empty(t, StarGlyphs(math.Inf(1)))
	assert.Empty(t, StarGlyphs(math.Inf(-1)))
}
