package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/valentine/pkg/utils"
)

// degToRad 角度转弧度
const degToRad = math.Pi / 180

// UIResources 渲染所需的字体与精灵
// game.ResourceManager 实现此接口
type UIResources interface {
	Font(size float64) *text.GoTextFace
	HeartSprite(glyph string, size int) *ebiten.Image
	SparkleSprite(size int) *ebiten.Image
	GlyphSprite(glyph string, size int) *ebiten.Image
}

// 贺卡配色
var (
	ColorPink      = color.NRGBA{R: 0xff, G: 0x6b, B: 0x9d, A: 0xff}
	ColorDeepPink  = color.NRGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff}
	ColorLavender  = color.NRGBA{R: 0xc0, G: 0x84, B: 0xfc, A: 0xff}
	ColorCream     = color.NRGBA{R: 0xff, G: 0xf5, B: 0xf8, A: 0xff}
	ColorInk       = color.NRGBA{R: 0x4a, G: 0x1c, B: 0x2f, A: 0xff}
	ColorCardWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe6}
)

// WithAlpha 将颜色的不透明度乘以 alpha
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha <= 0 {
		c.A = 0
		return c
	}
	if alpha < 1 {
		c.A = uint8(float64(c.A) * alpha)
	}
	return c
}

// Lighten 将颜色向白色混合 amount [0, 1]
func Lighten(c color.NRGBA, amount float64) color.NRGBA {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*amount)
	}
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}

// FillRoundedRect 绘制圆角矩形
// 由三个矩形与四个圆拼成，radius 超过短边一半时按一半处理
func FillRoundedRect(dst *ebiten.Image, x, y, w, h, radius float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	if radius*2 > w {
		radius = w / 2
	}
	if radius*2 > h {
		radius = h / 2
	}
	if radius <= 0 {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, true)
		return
	}

	r := float32(radius)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(dst, fx+r, fy, fw-2*r, fh, clr, false)
	vector.DrawFilledRect(dst, fx, fy+r, r, fh-2*r, clr, false)
	vector.DrawFilledRect(dst, fx+fw-r, fy+r, r, fh-2*r, clr, false)
	vector.DrawFilledCircle(dst, fx+r, fy+r, r, clr, true)
	vector.DrawFilledCircle(dst, fx+fw-r, fy+r, r, clr, true)
	vector.DrawFilledCircle(dst, fx+r, fy+fh-r, r, clr, true)
	vector.DrawFilledCircle(dst, fx+fw-r, fy+fh-r, r, clr, true)
}

// DrawCenteredText 以 (centerX, centerY) 为中心绘制文字，带阴影效果
// 表情符号按 utils.DisplayText 规则替换，face 为 nil 时跳过
func DrawCenteredText(dst *ebiten.Image, str string, face *text.GoTextFace, centerX, centerY float64, clr color.NRGBA, alpha float64) {
	str = utils.DisplayText(str)
	if face == nil || str == "" || alpha <= 0 {
		return
	}

	// 阴影偏移量
	shadowOffsetX := 2.0
	shadowOffsetY := 2.0
	// 为了让"文字+阴影"整体看起来垂直居中，将主文字向上偏移阴影的一半
	visualCenterOffsetY := -shadowOffsetY / 2.0

	shadowOp := &text.DrawOptions{}
	shadowOp.LayoutOptions.PrimaryAlign = text.AlignCenter
	shadowOp.LayoutOptions.SecondaryAlign = text.AlignCenter
	shadowOp.GeoM.Translate(centerX+shadowOffsetX, centerY+shadowOffsetY+visualCenterOffsetY)
	shadowOp.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 60})
	shadowOp.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, str, face, shadowOp)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(centerX, centerY+visualCenterOffsetY)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, str, face, op)
}

// DrawSprite 以 (cx, cy) 为中心绘制精灵，支持缩放、旋转（角度）与透明度
func DrawSprite(dst, sprite *ebiten.Image, cx, cy, scale, rotation, alpha float64) {
	if sprite == nil || alpha <= 0 || scale <= 0 {
		return
	}
	w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	if rotation != 0 {
		op.GeoM.Rotate(rotation * degToRad)
	}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(sprite, op)
}
