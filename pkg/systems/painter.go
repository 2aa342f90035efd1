package systems

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Painter 2D 绘制目标
// 彩纸模拟器只依赖这个接口，测试中使用记录型实现替代 GPU 画布
type Painter interface {
	// Clear 清空整个画布
	Clear()
	// FillRect 以 (cx, cy) 为中心绘制旋转矩形，rotation 单位为角度
	FillRect(cx, cy, w, h, rotation float64, clr color.RGBA, alpha float64)
	// FillCircle 以 (cx, cy) 为中心绘制实心圆
	FillCircle(cx, cy, radius float64, clr color.RGBA, alpha float64)
}

// whiteSubImage DrawTriangles 使用的纯白纹理（首次绘制时创建）
var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

func whiteTexture() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
	})
	return whiteSubImage
}

// ImagePainter 基于 ebiten.Image 的 Painter 实现
type ImagePainter struct {
	target   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewImagePainter 创建绘制到 target 的 Painter
func NewImagePainter(target *ebiten.Image) *ImagePainter {
	return &ImagePainter{target: target}
}

// Target 返回绘制目标
func (p *ImagePainter) Target() *ebiten.Image {
	return p.target
}

// Clear 清空画布
func (p *ImagePainter) Clear() {
	p.target.Clear()
}

// FillRect 绘制旋转矩形
func (p *ImagePainter) FillRect(cx, cy, w, h, rotation float64, clr color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	rad := rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	hw, hh := w/2, h/2

	var path vector.Path
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	for i, c := range corners {
		x := float32(cx + c[0]*cos - c[1]*sin)
		y := float32(cy + c[0]*sin + c[1]*cos)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	p.vertices, p.indices = path.AppendVerticesAndIndicesForFilling(p.vertices[:0], p.indices[:0])
	r, g, b, a := straightColor(clr, alpha)
	for i := range p.vertices {
		p.vertices[i].SrcX = 1
		p.vertices[i].SrcY = 1
		p.vertices[i].ColorR = r
		p.vertices[i].ColorG = g
		p.vertices[i].ColorB = b
		p.vertices[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	p.target.DrawTriangles(p.vertices, p.indices, whiteTexture(), op)
}

// FillCircle 绘制实心圆
func (p *ImagePainter) FillCircle(cx, cy, radius float64, clr color.RGBA, alpha float64) {
	if alpha <= 0 || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(p.target, float32(cx), float32(cy), float32(radius), premultiply(clr, alpha), true)
}

// straightColor 转换为顶点使用的非预乘颜色分量
func straightColor(clr color.RGBA, alpha float64) (float32, float32, float32, float32) {
	a := float32(math.Min(1, math.Max(0, alpha))) * float32(clr.A) / 255
	return float32(clr.R) / 255, float32(clr.G) / 255, float32(clr.B) / 255, a
}

// premultiply 按透明度生成预乘颜色（color.RGBA 约定为预乘）
func premultiply(clr color.RGBA, alpha float64) color.RGBA {
	a := math.Min(1, math.Max(0, alpha))
	return color.RGBA{
		R: uint8(float64(clr.R) * a),
		G: uint8(float64(clr.G) * a),
		B: uint8(float64(clr.B) * a),
		A: uint8(float64(clr.A) * a),
	}
}
