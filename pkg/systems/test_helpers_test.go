package systems

import (
	"image/color"
	"math/rand"
)

// paintOp 记录一次绘制调用
type paintOp struct {
	kind  string // "clear" | "rect" | "circle"
	x, y  float64
	alpha float64
	clr   color.RGBA
}

// recordingPainter 记录所有绘制调用的 Painter，用于无 GPU 测试
type recordingPainter struct {
	ops []paintOp
}

func (p *recordingPainter) Clear() {
	p.ops = append(p.ops, paintOp{kind: "clear"})
}

func (p *recordingPainter) FillRect(cx, cy, w, h, rotation float64, clr color.RGBA, alpha float64) {
	p.ops = append(p.ops, paintOp{kind: "rect", x: cx, y: cy, alpha: alpha, clr: clr})
}

func (p *recordingPainter) FillCircle(cx, cy, radius float64, clr color.RGBA, alpha float64) {
	p.ops = append(p.ops, paintOp{kind: "circle", x: cx, y: cy, alpha: alpha, clr: clr})
}

// count 统计指定类型的调用次数
func (p *recordingPainter) count(kind string) int {
	n := 0
	for _, op := range p.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// shapesAfterLastClear 返回最后一次清屏后绘制的图形数量
func (p *recordingPainter) shapesAfterLastClear() int {
	n := 0
	for i := len(p.ops) - 1; i >= 0; i-- {
		if p.ops[i].kind == "clear" {
			return n
		}
		n++
	}
	return n
}

func (p *recordingPainter) reset() {
	p.ops = p.ops[:0]
}

// newTestRand 返回固定种子的随机数生成器
func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(20240214))
}
