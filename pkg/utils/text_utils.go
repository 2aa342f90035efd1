package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本（可包含 \n，作为强制换行）
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，按字符强制断行
//   - 空段落保留为空行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if face == nil || maxWidth <= 0 {
		return strings.Split(textStr, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, face, maxWidth)...)
	}
	return lines
}

// wrapParagraph 对不含换行符的单个段落换行
func wrapParagraph(paragraph string, face text.Face, maxWidth float64) []string {
	if measureTextWidth(paragraph, face) <= maxWidth {
		return []string{paragraph}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(paragraph) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measureTextWidth(candidate, face) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		// 单个单词超宽，按字符拆分
		if measureTextWidth(word, face) > maxWidth {
			parts := breakWord(word, face, maxWidth)
			lines = append(lines, parts[:len(parts)-1]...)
			current = parts[len(parts)-1]
			continue
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// breakWord 按字符拆分超宽单词，每段至少包含一个字符
func breakWord(word string, face text.Face, maxWidth float64) []string {
	var parts []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]
		candidate := current + string(r)
		if current != "" && measureTextWidth(candidate, face) > maxWidth {
			parts = append(parts, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	return append(parts, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}
