package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/utils"
)

const (
	// scoreFontSize 分数字号
	scoreFontSize = 24.0
	// hintFontSize 提示文字字号
	hintFontSize = 18.0
	// caughtPopScale 被接住的目标放大到的比例
	caughtPopScale = 1.6
)

// CatchGameRenderSystem 渲染接爱心小游戏
//
// 职责：
//   - 游戏区域背景
//   - 下落中的目标与被接住后的放大淡出
//   - 分数标签（计分后短暂放大）与状态提示
type CatchGameRenderSystem struct {
	entityManager *ecs.EntityManager
	game          *CatchGameSystem
	scroll        *ScrollSystem
	resources     UIResources

	// area 返回游戏区域的文档矩形
	area RectFunc
	// catchRemoval 被接住后到移除的时长，用于放大动画
	catchRemoval float64
	// hint 空闲时显示的提示文字
	hint string
}

// NewCatchGameRenderSystem 创建小游戏渲染系统
func NewCatchGameRenderSystem(em *ecs.EntityManager, game *CatchGameSystem, scroll *ScrollSystem, resources UIResources, area RectFunc, catchRemoval float64) *CatchGameRenderSystem {
	return &CatchGameRenderSystem{
		entityManager: em,
		game:          game,
		scroll:        scroll,
		resources:     resources,
		area:          area,
		catchRemoval:  catchRemoval,
		hint:          fmt.Sprintf("%s the falling hearts", utils.PointerVerb()),
	}
}

// CaughtPose 返回被接住目标的缩放与透明度
func CaughtPose(caughtAge, removal float64) (scale, alpha float64) {
	if removal <= 0 {
		return 1, 0
	}
	p := utils.Clamp01(caughtAge / removal)
	return 1 + (caughtPopScale-1)*utils.EaseOutCubic(p), 1 - p
}

// Draw 渲染游戏区域
func (s *CatchGameRenderSystem) Draw(screen *ebiten.Image) {
	area := s.area()
	if area.VisibleFraction(s.scroll.Viewport()) <= 0 {
		return
	}
	x, y := s.scroll.ToScreen(area.X, area.Y)

	FillRoundedRect(screen, x, y, area.W, area.H, 24, WithAlpha(ColorCardWhite, 0.6))
	vector.StrokeRect(screen, float32(x), float32(y), float32(area.W), float32(area.H), 1, WithAlpha(ColorPink, 0.4), true)

	s.drawTargets(screen, x, y, area)
	s.drawScore(screen, x+area.W/2, y-28)

	state := s.game.State()
	if state.Phase == GameIdle && s.resources != nil {
		DrawCenteredText(screen, s.hint, s.resources.Font(hintFontSize), x+area.W/2, y+area.H/2, ColorInk, 0.6)
	}
}

func (s *CatchGameRenderSystem) drawTargets(screen *ebiten.Image, areaX, areaY float64, area utils.Rect) {
	if s.resources == nil {
		return
	}
	// 只在区域内绘制：超出部分裁掉
	clip := screen.SubImage(utils.Rect{X: areaX, Y: areaY, W: area.W, H: area.H}.Image()).(*ebiten.Image)

	for _, id := range s.game.Targets() {
		target, ok := ecs.GetComponent[*components.GameTargetComponent](s.entityManager, id)
		if !ok {
			continue
		}
		scale, alpha := 1.0, 1.0
		if target.Caught {
			scale, alpha = CaughtPose(target.CaughtAge, s.catchRemoval)
		}
		cx := areaX + target.X + target.Size/2
		cy := areaY + s.game.TargetY(target) + target.Size/2
		DrawSprite(clip, s.resources.HeartSprite(target.Glyph, int(target.Size)), cx, cy, scale, 0, alpha)
	}
}

func (s *CatchGameRenderSystem) drawScore(screen *ebiten.Image, centerX, centerY float64) {
	if s.resources == nil {
		return
	}
	face := s.resources.Font(scoreFontSize)
	if face == nil {
		return
	}
	state := s.game.State()
	label := fmt.Sprintf("Score: %d", state.Score)
	if state.Phase == GameWon {
		label = "You caught my heart!"
	}

	scale := s.game.ScorePopScale()
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(centerX, centerY)
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff})
	text.Draw(screen, label, face, op)
}
