package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/utils"
)

// DecorationRenderSystem 渲染漂浮爱心与闪光
// 装饰位置以所属区块的百分比表示，绘制时换算为屏幕坐标；
// 所属区块完全不在视口内时跳过
type DecorationRenderSystem struct {
	entityManager *ecs.EntityManager
	scroll        *ScrollSystem
	resources     UIResources
}

// NewDecorationRenderSystem 创建装饰渲染系统
func NewDecorationRenderSystem(em *ecs.EntityManager, scroll *ScrollSystem, resources UIResources) *DecorationRenderSystem {
	return &DecorationRenderSystem{
		entityManager: em,
		scroll:        scroll,
		resources:     resources,
	}
}

// DecorationCenter 返回装饰中心在文档坐标中的位置
func DecorationCenter(d *components.DecorationComponent, pose DecorationPose, section utils.Rect) (float64, float64) {
	x := section.X + section.W*d.XPercent/100 + d.Size/2
	y := section.Y + section.H*pose.YPercent/100
	return x, y
}

// Draw 渲染指定类型的装饰
func (s *DecorationRenderSystem) Draw(screen *ebiten.Image, kind components.DecorationKind) {
	if s.resources == nil {
		return
	}
	viewport := s.scroll.Viewport()

	for _, id := range ecs.GetEntitiesWith2[*components.DecorationComponent, *components.LifetimeComponent](s.entityManager) {
		deco, _ := ecs.GetComponent[*components.DecorationComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if deco.Kind != kind || lifetime.IsExpired {
			continue
		}

		section := s.scroll.SectionRect(deco.Section)
		if section.VisibleFraction(viewport) <= 0 {
			continue
		}

		var pose DecorationPose
		var sprite *ebiten.Image
		switch deco.Kind {
		case components.DecorationFloatingHeart:
			pose = FloatingHeartPose(deco, lifetime.CurrentLifetime)
			sprite = s.resources.HeartSprite(deco.Glyph, int(deco.Size))
		case components.DecorationSparkle:
			pose = SparklePose(deco, lifetime.CurrentLifetime)
			sprite = s.resources.SparkleSprite(int(deco.Size))
		}

		docX, docY := DecorationCenter(deco, pose, section)
		x, y := s.scroll.ToScreen(docX, docY)
		DrawSprite(screen, sprite, x, y, pose.Scale, pose.Rotation, pose.Alpha)
	}
}
