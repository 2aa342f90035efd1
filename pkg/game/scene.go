package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a full-window scene of the greeting.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景在窗口尺寸变化时收到新的逻辑尺寸
// 每次尺寸变化都会调用，首次布局时也会调用
type Resizable interface {
	Resize(width, height int)
}

// Exitable 是一个可选接口，用于在窗口关闭时收尾（停止音乐、保存偏好）
type Exitable interface {
	// OnExit 在程序退出前调用
	// 返回 false 表示收尾失败（程序仍会正常退出）
	OnExit() bool
}
