// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerFrame 当前帧的指针状态
// 同时支持鼠标和触摸，触摸优先
type PointerFrame struct {
	// 指针位置（屏幕坐标）
	X, Y float64
	// 是否刚刚按下 / 释放
	JustPressed  bool
	JustReleased bool
	// 当前指针来自触摸
	Touch bool
}

// KeyFrame 当前帧的按键事件
type KeyFrame struct {
	// FocusNext / FocusPrev Tab 与 Shift+Tab
	FocusNext bool
	FocusPrev bool
	// Activate Enter 或 Space
	Activate bool
	// SectionNext / SectionPrev 方向键与翻页键
	SectionNext bool
	SectionPrev bool
	// ToggleFullscreen F11
	ToggleFullscreen bool
}

// InputFrame 一帧内收集到的全部输入
type InputFrame struct {
	Pointer PointerFrame
	Keys    KeyFrame
	// WheelY 滚轮纵向增量（向下为正，单位：格）
	WheelY float64
}

// 保存最后一次触摸位置（触摸释放时已无法查询位置）
var lastTouchX, lastTouchY int

// ReadInput 读取当前帧的输入状态
// 每帧只调用一次，结果交给各系统使用
func ReadInput() InputFrame {
	frame := InputFrame{
		Pointer: readPointer(),
		Keys:    readKeys(),
	}
	_, wy := ebiten.Wheel()
	// ebiten 中向上滚动为正
	frame.WheelY = -wy
	return frame
}

func readPointer() PointerFrame {
	// 首先检查新的触摸
	justTouched := inpututil.AppendJustPressedTouchIDs(nil)
	if len(justTouched) > 0 {
		x, y := ebiten.TouchPosition(justTouched[0])
		lastTouchX, lastTouchY = x, y
		return PointerFrame{X: float64(x), Y: float64(y), JustPressed: true, Touch: true}
	}

	// 活动中的触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = x, y
		return PointerFrame{X: float64(x), Y: float64(y), Touch: true}
	}

	// 触摸释放时使用保存的最后触摸位置
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		return PointerFrame{X: float64(lastTouchX), Y: float64(lastTouchY), JustReleased: true, Touch: true}
	}

	// 鼠标
	x, y := ebiten.CursorPosition()
	return PointerFrame{
		X:            float64(x),
		Y:            float64(y),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

func readKeys() KeyFrame {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	tab := inpututil.IsKeyJustPressed(ebiten.KeyTab)
	return KeyFrame{
		FocusNext: tab && !shift,
		FocusPrev: tab && shift,
		Activate: inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace),
		SectionNext: inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) ||
			inpututil.IsKeyJustPressed(ebiten.KeyPageDown),
		SectionPrev: inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
			inpututil.IsKeyJustPressed(ebiten.KeyPageUp),
		ToggleFullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
	}
}
