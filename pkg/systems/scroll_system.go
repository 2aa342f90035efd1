package systems

import (
	"log"
	"math"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/utils"
)

// ScrollSystem 管理页面视口的滚动
//
// 分区依次纵向堆叠，每个分区高度等于视口高度。
// 支持平滑滚动到指定分区（EaseInOutCubic）和滚轮的即时滚动；
// 滚轮输入会打断进行中的平滑滚动。
type ScrollSystem struct {
	entityManager *ecs.EntityManager
	scrollEntity  ecs.EntityID

	sectionCount   int
	viewportWidth  float64
	viewportHeight float64
}

// NewScrollSystem 创建滚动系统，视口初始停在第一个分区
func NewScrollSystem(em *ecs.EntityManager, sectionCount int, viewportWidth, viewportHeight float64) *ScrollSystem {
	ss := &ScrollSystem{
		entityManager:  em,
		sectionCount:   sectionCount,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}

	ss.scrollEntity = em.CreateEntity()
	ecs.AddComponent(em, ss.scrollEntity, &components.ScrollComponent{
		Duration:      config.ScrollDuration,
		TargetSection: -1,
	})
	return ss
}

func (ss *ScrollSystem) component() *components.ScrollComponent {
	comp, ok := ecs.GetComponent[*components.ScrollComponent](ss.entityManager, ss.scrollEntity)
	if !ok {
		// 实体被外部清理时重建，保证滚动状态始终可用
		ss.scrollEntity = ss.entityManager.CreateEntity()
		comp = &components.ScrollComponent{Duration: config.ScrollDuration, TargetSection: -1}
		ecs.AddComponent(ss.entityManager, ss.scrollEntity, comp)
	}
	return comp
}

// Resize 同步视口尺寸，滚动位置按当前分区重新对齐
func (ss *ScrollSystem) Resize(width, height float64) {
	if width == ss.viewportWidth && height == ss.viewportHeight {
		return
	}
	comp := ss.component()
	section := ss.CurrentSection()
	ss.viewportWidth = width
	ss.viewportHeight = height

	if comp.IsAnimating && comp.TargetSection >= 0 {
		comp.StartY = ss.clamp(comp.StartY)
		comp.TargetY = ss.sectionTop(comp.TargetSection)
		return
	}
	comp.ScrollY = ss.sectionTop(section)
}

// Update 推进平滑滚动动画
func (ss *ScrollSystem) Update(deltaTime float64) {
	comp := ss.component()
	if !comp.IsAnimating {
		return
	}

	comp.Elapsed += deltaTime
	progress := 1.0
	if comp.Duration > 0 {
		progress = utils.Clamp01(comp.Elapsed / comp.Duration)
	}
	comp.ScrollY = utils.Lerp(comp.StartY, comp.TargetY, utils.EaseInOutCubic(progress))

	if progress >= 1 {
		comp.ScrollY = comp.TargetY
		comp.IsAnimating = false
		log.Printf("[ScrollSystem] Arrived at section %d (y=%.0f)", comp.TargetSection, comp.ScrollY)
	}
}

// ScrollToSection 平滑滚动到指定分区
// 索引越界时忽略并返回 false
func (ss *ScrollSystem) ScrollToSection(index int) bool {
	if index < 0 || index >= ss.sectionCount {
		log.Printf("[ScrollSystem] Ignoring scroll to unknown section %d", index)
		return false
	}
	comp := ss.component()
	comp.StartY = comp.ScrollY
	comp.TargetY = ss.sectionTop(index)
	comp.TargetSection = index
	comp.Elapsed = 0
	comp.IsAnimating = comp.StartY != comp.TargetY
	log.Printf("[ScrollSystem] Scrolling to section %d (%.0f -> %.0f)", index, comp.StartY, comp.TargetY)
	return true
}

// JumpToSection 立即跳到指定分区（无动画）
func (ss *ScrollSystem) JumpToSection(index int) bool {
	if index < 0 || index >= ss.sectionCount {
		return false
	}
	comp := ss.component()
	comp.IsAnimating = false
	comp.TargetSection = index
	comp.ScrollY = ss.sectionTop(index)
	return true
}

// ScrollBy 即时滚动指定距离（滚轮），会打断平滑滚动
func (ss *ScrollSystem) ScrollBy(dy float64) {
	if dy == 0 {
		return
	}
	comp := ss.component()
	comp.IsAnimating = false
	comp.TargetSection = -1
	comp.ScrollY = ss.clamp(comp.ScrollY + dy)
}

// ScrollY 返回当前滚动位置
func (ss *ScrollSystem) ScrollY() float64 {
	return ss.component().ScrollY
}

// IsAnimating 是否正在平滑滚动
func (ss *ScrollSystem) IsAnimating() bool {
	return ss.component().IsAnimating
}

// CurrentSection 返回视口中心所在的分区
func (ss *ScrollSystem) CurrentSection() int {
	if ss.viewportHeight <= 0 || ss.sectionCount == 0 {
		return 0
	}
	center := ss.component().ScrollY + ss.viewportHeight/2
	index := int(math.Floor(center / ss.viewportHeight))
	if index < 0 {
		return 0
	}
	if index >= ss.sectionCount {
		return ss.sectionCount - 1
	}
	return index
}

// Viewport 返回视口在文档坐标中的矩形
func (ss *ScrollSystem) Viewport() utils.Rect {
	return utils.Rect{X: 0, Y: ss.component().ScrollY, W: ss.viewportWidth, H: ss.viewportHeight}
}

// SectionRect 返回分区在文档坐标中的矩形
func (ss *ScrollSystem) SectionRect(index int) utils.Rect {
	return utils.Rect{X: 0, Y: float64(index) * ss.viewportHeight, W: ss.viewportWidth, H: ss.viewportHeight}
}

// SectionCount 返回分区数量
func (ss *ScrollSystem) SectionCount() int {
	return ss.sectionCount
}

// PageHeight 返回整个文档的高度
func (ss *ScrollSystem) PageHeight() float64 {
	return float64(ss.sectionCount) * ss.viewportHeight
}

// ToScreen 文档坐标转换为屏幕坐标
func (ss *ScrollSystem) ToScreen(docX, docY float64) (float64, float64) {
	return docX, docY - ss.component().ScrollY
}

// ToDocument 屏幕坐标转换为文档坐标
func (ss *ScrollSystem) ToDocument(screenX, screenY float64) (float64, float64) {
	return screenX, screenY + ss.component().ScrollY
}

func (ss *ScrollSystem) sectionTop(index int) float64 {
	return ss.clamp(float64(index) * ss.viewportHeight)
}

func (ss *ScrollSystem) clamp(y float64) float64 {
	maxY := ss.PageHeight() - ss.viewportHeight
	if maxY < 0 {
		maxY = 0
	}
	return math.Max(0, math.Min(maxY, y))
}
