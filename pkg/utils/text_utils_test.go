package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// newTestFace 使用内置 Go 字体创建测试字体
func newTestFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: source, Size: 22}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	face := newTestFace(t)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{
			name:      "短文本不换行",
			input:     "Hey, you",
			maxWidth:  1000,
			expectMin: 1,
		},
		{
			name:      "长文本自动换行",
			input:     "There's something about you that makes everything feel brighter, softer, and alive.",
			maxWidth:  300,
			expectMin: 2,
		},
		{
			name:      "空文本",
			input:     "",
			maxWidth:  100,
			expectMin: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, face, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("期望至少 %d 行，实际得到 %d 行", tt.expectMin, len(lines))
			}
			for i, line := range lines {
				if w := measureTextWidth(line, face); w > tt.maxWidth {
					t.Errorf("第 %d 行超宽: %q (%.1f > %.0f)", i+1, line, w, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 换行只发生在空格处，拼接后内容不变
func TestWrapTextKeepsWords(t *testing.T) {
	face := newTestFace(t)
	input := "I don't know why... my heart just beats differently."
	lines := WrapText(input, face, 200)
	if len(lines) < 2 {
		t.Fatalf("Expected wrapping, got %d lines", len(lines))
	}
	if got := strings.Join(lines, " "); got != input {
		t.Errorf("Joined lines = %q, want %q", got, input)
	}
}

// TestWrapTextHardBreaks 显式换行符始终生效，空行保留
func TestWrapTextHardBreaks(t *testing.T) {
	face := newTestFace(t)
	lines := WrapText("first\n\nthird", face, 1000)
	if len(lines) != 3 || lines[0] != "first" || lines[1] != "" || lines[2] != "third" {
		t.Errorf("Unexpected lines: %q", lines)
	}
}

// TestWrapTextLongWord 超宽单词按字符拆分
func TestWrapTextLongWord(t *testing.T) {
	face := newTestFace(t)
	word := strings.Repeat("m", 40)
	lines := WrapText(word, face, 100)
	if len(lines) < 2 {
		t.Fatalf("Expected the word to be split, got %d lines", len(lines))
	}
	if strings.Join(lines, "") != word {
		t.Error("Splitting must not drop characters")
	}
}

// TestWrapTextEdgeCases 测试边界情况
func TestWrapTextEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		face     text.Face
		maxWidth float64
		wantLen  int
	}{
		{"nil font", "测试", nil, 100, 1},
		{"nil font keeps hard breaks", "a\nb", nil, 100, 2},
		{"zero maxWidth", "测试", nil, 0, 1},
		{"negative maxWidth", "测试", nil, -100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, tt.face, tt.maxWidth)
			if len(lines) != tt.wantLen {
				t.Errorf("期望 %d 行，实际得到 %d 行", tt.wantLen, len(lines))
			}
		})
	}
}
