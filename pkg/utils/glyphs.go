package utils

import (
	"image/color"
	"strings"
)

// 内置字体不含彩色表情，表情字形在渲染时由精灵代替：
// 爱心类表情绘制为对应颜色的心形，文本中的表情替换为 ♥ 或移除。

var glyphColors = map[string]color.RGBA{
	"💖": {R: 0xff, G: 0x6b, B: 0x9d, A: 0xff},
	"💕": {R: 0xf4, G: 0x8f, B: 0xb1, A: 0xff},
	"💗": {R: 0xff, G: 0x8f, B: 0xb8, A: 0xff},
	"💓": {R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
	"💘": {R: 0xff, G: 0x4d, B: 0x6d, A: 0xff},
	"💝": {R: 0xff, G: 0x7a, B: 0xa8, A: 0xff},
	"🩷": {R: 0xff, G: 0xb6, B: 0xc1, A: 0xff},
	"♥": {R: 0xe5, G: 0x39, B: 0x50, A: 0xff},
	"❤": {R: 0xe5, G: 0x39, B: 0x50, A: 0xff},
	"💌": {R: 0xff, G: 0x6b, B: 0x9d, A: 0xff},
	"✨": {R: 0xff, G: 0xd5, B: 0x4f, A: 0xff},
}

// defaultGlyphColor 未知字形使用的颜色
var defaultGlyphColor = color.RGBA{R: 0xff, G: 0x6b, B: 0x9d, A: 0xff}

// isGlyphModifier 变体选择符与零宽连接符
func isGlyphModifier(r rune) bool {
	return r == 0xFE0F || r == 0xFE0E || r == 0x200D
}

// isEmoji 粗略判断是否属于表情区段
func isEmoji(r rune) bool {
	return r >= 0x1F000 || r == '✨' || r == '❤'
}

// NormalizeGlyph 去掉变体选择符（"♥️" -> "♥"）
func NormalizeGlyph(glyph string) string {
	return strings.Map(func(r rune) rune {
		if isGlyphModifier(r) {
			return -1
		}
		return r
	}, glyph)
}

// GlyphColor 返回表情字形对应的精灵颜色
func GlyphColor(glyph string) color.RGBA {
	if c, ok := glyphColors[NormalizeGlyph(glyph)]; ok {
		return c
	}
	return defaultGlyphColor
}

// DisplayText 将文本转换为内置字体可显示的形式
// 爱心类表情替换为 ♥，其他表情移除
func DisplayText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case isGlyphModifier(r):
			continue
		case isEmoji(r):
			if _, heart := glyphColors[string(r)]; heart && r != '✨' {
				b.WriteRune('♥')
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
