package catalog

import "math"

// StarGlyph 评分星标类型
type StarGlyph string

const (
	StarFull  StarGlyph = "full"
	StarHalf  StarGlyph = "half"
	StarEmpty StarGlyph = "empty"
)

// StarGlyphs 将评分转换为星标序列
// 总数不强制为 5，超出 [0,5] 时负数个数按 0 处理；非有限值不输出任何星标
func StarGlyphs(rating float64) []StarGlyph {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return []StarGlyph{}
	}

	full := int(math.Floor(rating))
	half := math.Mod(rating, 1) >= 0.5
	empty := 5 - int(math.Ceil(rating))

	glyphs := make([]StarGlyph, 0, 5)
	for i := 0; i < full; i++ {
		glyphs = append(glyphs, StarFull)
	}
	if half {
		glyphs = append(glyphs, StarHalf)
	}
	for i := 0; i < empty; i++ {
		glyphs = append(glyphs, StarEmpty)
	}
	return glyphs
}

// GlyphCounts 星标统计
type GlyphCounts struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

// CountGlyphs 统计各类星标数量
func CountGlyphs(glyphs []StarGlyph) GlyphCounts {
	var c GlyphCounts
	for _, g := range glyphs {
		switch g {
		case StarFull:
			c.Full++
		case StarHalf:
			c.Half++
		case StarEmpty:
			c.Empty++
		}
	}
	return c
}
