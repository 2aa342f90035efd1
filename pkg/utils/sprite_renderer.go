package utils

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// heartCurveSteps 心形曲线的采样点数
const heartCurveSteps = 96

var (
	glyphFontOnce sync.Once
	glyphFont     *truetype.Font
	glyphFontErr  error
)

// RenderHeartImage 光栅化一个边长为 size 的爱心精灵
//
// 使用经典心形参数曲线：
//
//	x = 16·sin³t
//	y = 13·cos t − 5·cos 2t − 2·cos 3t − cos 4t
//
// 曲线包围盒约为 32×29，缩放后居中放入画布。
func RenderHeartImage(size int, clr color.Color) image.Image {
	if size <= 0 {
		size = 1
	}
	s := float64(size)
	scale := s / 34
	cx := s / 2
	// 曲线纵向范围 [-17, 12]，中心在 -2.5
	cy := s/2 - 2.5*scale

	dc := gg.NewContext(size, size)
	dc.SetColor(clr)
	for i := 0; i < heartCurveSteps; i++ {
		t := float64(i) / heartCurveSteps * 2 * math.Pi
		x := 16 * math.Pow(math.Sin(t), 3)
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		px, py := cx+x*scale, cy-y*scale
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	dc.Fill()
	return dc.Image()
}

// RenderSparkleImage 光栅化一个四角星闪光精灵
func RenderSparkleImage(size int, clr color.Color) image.Image {
	if size <= 0 {
		size = 1
	}
	s := float64(size)
	outer := s / 2
	inner := s * 0.12

	dc := gg.NewContext(size, size)
	dc.SetColor(clr)
	for i := 0; i < 8; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/4 - math.Pi/2
		x := s/2 + r*math.Cos(angle)
		y := s/2 + r*math.Sin(angle)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.Fill()
	return dc.Image()
}

// RenderGlyphImage 使用内置 Go 字体把单个字形光栅化为精灵（如音乐开关的 ♪）
func RenderGlyphImage(glyph string, size int, clr color.Color) (image.Image, error) {
	glyphFontOnce.Do(func() {
		glyphFont, glyphFontErr = truetype.Parse(goregular.TTF)
	})
	if glyphFontErr != nil {
		return nil, fmt.Errorf("failed to parse glyph font: %w", glyphFontErr)
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid glyph size %d", size)
	}

	s := float64(size)
	face := truetype.NewFace(glyphFont, &truetype.Options{
		Size:    s * 0.8,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	dc := gg.NewContext(size, size)
	dc.SetFontFace(face)
	dc.SetColor(clr)
	dc.DrawStringAnchored(glyph, s/2, s/2, 0.5, 0.35)
	return dc.Image(), nil
}
