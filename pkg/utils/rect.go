package utils

import (
	"image"
	"math"
)

// Rect 轴对齐矩形（屏幕或文档坐标，左上角为原点）
type Rect struct {
	X, Y float64 // 左上角
	W, H float64 // 宽高
}

// Right 返回右边界
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom 返回下边界
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX 返回中心X坐标
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY 返回中心Y坐标
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Area 返回面积，尺寸为负时视为 0
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Contains 检查点是否在矩形内（含左上边界，不含右下边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect 检查 other 是否完全位于 r 内部
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Translate 返回平移后的矩形
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset 返回四周各向内收缩 padding 的矩形
// 收缩后尺寸不会小于 0
func (r Rect) Inset(padding float64) Rect {
	w := r.W - 2*padding
	h := r.H - 2*padding
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + padding, Y: r.Y + padding, W: w, H: h}
}

// Intersect 返回两个矩形的交集，无交集时返回零尺寸矩形
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// VisibleFraction 返回 r 落在 viewport 中的面积比例 [0, 1]
// 零面积矩形返回 0
func (r Rect) VisibleFraction(viewport Rect) float64 {
	area := r.Area()
	if area == 0 {
		return 0
	}
	return r.Intersect(viewport).Area() / area
}

// Image 转换为整数像素矩形（向外取整）
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}
