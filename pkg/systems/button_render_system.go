package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/ecs"
)

const (
	// buttonFontSize 按钮文字字号
	buttonFontSize = 20.0
	// toggleFontSize 音乐开关文字字号
	toggleFontSize = 12.0
	// musicIconSize 音乐开关图标尺寸
	musicIconSize = 22
)

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有按钮实体
//
// 职责：
//   - 渲染按钮背景（圆角矩形，主按钮使用强调色）
//   - 渲染按钮文字（自动居中，带阴影效果）
//   - 根据按钮状态调整外观（hover 提亮、焦点描边、渐显透明度）
//   - 躲避按钮使用 DodgeSystem 的过渡偏移与抖动
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
	buttons       *ButtonSystem
	dodge         *DodgeSystem
	resources     UIResources
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager, buttons *ButtonSystem, dodge *DodgeSystem, resources UIResources) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
		buttons:       buttons,
		dodge:         dodge,
		resources:     resources,
	}
}

// Draw 渲染指定层的所有可见按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image, layer components.ButtonLayer) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		if button.Layer != layer || !button.Visible {
			continue
		}
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
// 用于需要精确控制渲染顺序的场景（如弹窗内的按钮）
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || !button.Visible {
		return
	}

	x, y := s.DrawPosition(entityID)
	alpha := button.FadeIn
	if alpha <= 0 {
		return
	}

	if button.ID == components.ButtonMusicToggle {
		s.drawMusicToggle(screen, button, x, y, alpha)
		return
	}

	s.drawButtonBackground(screen, button, x, y, alpha)
	s.drawButtonText(screen, button, x, y, alpha)
}

// DrawPosition 返回按钮当前绘制的左上角屏幕坐标
// 躲避按钮使用过渡中的偏移并叠加抖动
func (s *ButtonRenderSystem) DrawPosition(entityID ecs.EntityID) (float64, float64) {
	rect := s.buttons.ScreenRect(entityID)
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || s.dodge == nil || !ecs.HasComponent[*components.DodgeComponent](s.entityManager, entityID) {
		return rect.X, rect.Y
	}
	// ScreenRect 已包含目标偏移，替换为过渡中的偏移
	dx, dy := s.dodge.DisplayOffset(entityID)
	x := rect.X - button.OffsetX + dx + s.dodge.ShakeOffset(entityID)
	y := rect.Y - button.OffsetY + dy
	return x, y
}

// drawButtonBackground 渲染按钮背景
func (s *ButtonRenderSystem) drawButtonBackground(screen *ebiten.Image, button *components.ButtonComponent, x, y, alpha float64) {
	base := ColorCardWhite
	if button.Primary {
		base = ColorPink
	}
	if button.Hovered && button.Enabled {
		base = Lighten(base, 0.15)
	}
	if !button.Enabled {
		base = WithAlpha(base, 0.5)
	}

	radius := button.Height / 2
	// 柔和阴影
	FillRoundedRect(screen, x, y+3, button.Width, button.Height, radius, WithAlpha(color.NRGBA{A: 40}, alpha))
	FillRoundedRect(screen, x, y, button.Width, button.Height, radius, WithAlpha(base, alpha))

	if button.Focused {
		vector.StrokeRect(screen, float32(x-3), float32(y-3), float32(button.Width+6), float32(button.Height+6), 2,
			WithAlpha(ColorDeepPink, alpha), true)
	}
}

// drawButtonText 渲染按钮文字（自动居中，带阴影效果）
func (s *ButtonRenderSystem) drawButtonText(screen *ebiten.Image, button *components.ButtonComponent, x, y, alpha float64) {
	if button.Label == "" || s.resources == nil {
		return
	}
	clr := ColorDeepPink
	if button.Primary {
		clr = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	DrawCenteredText(screen, button.Label, s.resources.Font(buttonFontSize),
		x+button.Width/2, y+button.Height/2, clr, alpha)
}

// drawMusicToggle 渲染右下角的圆形音乐开关（音符图标 + Play/Pause）
func (s *ButtonRenderSystem) drawMusicToggle(screen *ebiten.Image, button *components.ButtonComponent, x, y, alpha float64) {
	cx := x + button.Width/2
	cy := y + button.Height/2
	radius := math.Min(button.Width, button.Height) / 2

	base := ColorPink
	if button.Hovered {
		base = Lighten(base, 0.15)
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy+2), float32(radius), WithAlpha(color.NRGBA{A: 50}, alpha), true)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(radius), WithAlpha(base, alpha), true)
	if button.Focused {
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(radius+3), 2, WithAlpha(ColorDeepPink, alpha), true)
	}

	if s.resources == nil {
		return
	}
	DrawSprite(screen, s.resources.GlyphSprite("♪", musicIconSize), cx, cy-radius*0.25, 1, 0, alpha)
	DrawCenteredText(screen, button.Label, s.resources.Font(toggleFontSize),
		cx, cy+radius*0.45, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, alpha)
}
