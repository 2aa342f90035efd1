package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/timing"
	"github.com/gonewx/valentine/pkg/utils"
)

// DodgeTrigger 触发躲避的交互类型
type DodgeTrigger int

const (
	TriggerHover DodgeTrigger = iota
	TriggerTouchStart
	TriggerFocus
	TriggerClick
)

func (t DodgeTrigger) String() string {
	switch t {
	case TriggerHover:
		return "hover"
	case TriggerTouchStart:
		return "touchstart"
	case TriggerFocus:
		return "focus"
	case TriggerClick:
		return "click"
	}
	return "unknown"
}

const (
	// finaleTweenLength 结尾按钮平移过渡时长（秒）
	finaleTweenLength = 0.2
	// touchDodgeDelay 触摸触发时延迟躲避（秒）
	touchDodgeDelay = 0.01
	// shakeAmplitude 抖动幅度（像素）
	shakeAmplitude = 6.0
)

// DodgeOffset 计算元素的随机平移量
//
// 每个轴的可用范围以元素的静止位置为中心对称：
// 取元素到 (容器 - padding) 两侧边界距离的较小值 r，偏移在 [-r, r) 内均匀分布。
// 平移后的矩形始终落在缩小后的容器内；容器或元素尺寸退化时 r 收缩为 0。
func DodgeOffset(container, element utils.Rect, padding float64, rng *rand.Rand) (float64, float64) {
	inner := container.Inset(padding)
	rangeX := math.Min(element.X-inner.X, inner.Right()-element.Right())
	rangeY := math.Min(element.Y-inner.Y, inner.Bottom()-element.Bottom())
	if rangeX < 0 || math.IsNaN(rangeX) {
		rangeX = 0
	}
	if rangeY < 0 || math.IsNaN(rangeY) {
		rangeY = 0
	}
	dx := (rng.Float64()*2 - 1) * rangeX
	dy := (rng.Float64()*2 - 1) * rangeY
	return dx, dy
}

// DodgeSystem 让按钮躲开用户的指针或焦点
//
// 弹窗变体在悬停、触摸、聚焦时躲避；
// 结尾变体在悬停、点击、触摸时躲避，拦截点击的默认动作并短暂抖动，
// 触摸触发延迟 10ms 后才移动。
type DodgeSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *timing.Scheduler
	rng           *rand.Rand

	shakeLength float64
	containers  map[ecs.EntityID]RectFunc
}

// NewDodgeSystem 创建躲避系统
func NewDodgeSystem(em *ecs.EntityManager, scheduler *timing.Scheduler, rng *rand.Rand, shakeLength float64) *DodgeSystem {
	return &DodgeSystem{
		entityManager: em,
		scheduler:     scheduler,
		rng:           rng,
		shakeLength:   shakeLength,
		containers:    make(map[ecs.EntityID]RectFunc),
	}
}

// SetContainer 指定按钮的容器矩形（与按钮静止位置同一坐标系）
func (ds *DodgeSystem) SetContainer(id ecs.EntityID, container RectFunc) {
	ds.containers[id] = container
}

// HandleTrigger 处理一次交互
// 返回 true 表示该交互的默认动作应被拦截
func (ds *DodgeSystem) HandleTrigger(id ecs.EntityID, trigger DodgeTrigger) bool {
	dodge, ok := ecs.GetComponent[*components.DodgeComponent](ds.entityManager, id)
	if !ok {
		return false
	}

	switch dodge.Variant {
	case components.DodgeModal:
		switch trigger {
		case TriggerHover, TriggerTouchStart, TriggerFocus:
			ds.dodge(id)
		}
		return false

	case components.DodgeFinale:
		switch trigger {
		case TriggerHover:
			ds.dodge(id)
			return false
		case TriggerClick:
			ds.dodge(id)
			return true
		case TriggerTouchStart:
			ds.scheduler.After(touchDodgeDelay, func() {
				ds.dodge(id)
			})
			return true
		}
	}
	return false
}

// dodge 重新计算按钮偏移
// 按钮或容器缺失时静默跳过
func (ds *DodgeSystem) dodge(id ecs.EntityID) {
	if !ds.entityManager.IsAlive(id) {
		return
	}
	button, ok := ecs.GetComponent[*components.ButtonComponent](ds.entityManager, id)
	if !ok {
		return
	}
	dodge, ok := ecs.GetComponent[*components.DodgeComponent](ds.entityManager, id)
	if !ok {
		return
	}
	containerFn, ok := ds.containers[id]
	if !ok || containerFn == nil {
		log.Printf("[DodgeSystem] No container for button %s, skipping", button.ID)
		return
	}

	element := utils.Rect{X: button.X, Y: button.Y, W: button.Width, H: button.Height}
	dx, dy := DodgeOffset(containerFn(), element, dodge.Padding, ds.rng)

	if dodge.Variant == components.DodgeFinale {
		dodge.FromX, dodge.FromY = ds.DisplayOffset(id)
		dodge.TweenElapsed = 0
		dodge.TweenLength = finaleTweenLength
		dodge.ShakeRemaining = ds.shakeLength
	}
	button.OffsetX, button.OffsetY = dx, dy
	dodge.Dodges++
	log.Printf("[DodgeSystem] %s dodged to (%.1f, %.1f)", button.ID, dx, dy)
}

// Update 推进平移过渡与抖动
func (ds *DodgeSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.DodgeComponent](ds.entityManager) {
		dodge, ok := ecs.GetComponent[*components.DodgeComponent](ds.entityManager, id)
		if !ok {
			continue
		}
		if dodge.TweenElapsed < dodge.TweenLength {
			dodge.TweenElapsed = math.Min(dodge.TweenLength, dodge.TweenElapsed+deltaTime)
		}
		if dodge.ShakeRemaining > 0 {
			dodge.ShakeRemaining = math.Max(0, dodge.ShakeRemaining-deltaTime)
		}
	}
}

// DisplayOffset 返回按钮当前用于绘制的偏移（含过渡，不含抖动）
func (ds *DodgeSystem) DisplayOffset(id ecs.EntityID) (float64, float64) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](ds.entityManager, id)
	if !ok {
		return 0, 0
	}
	dodge, ok := ecs.GetComponent[*components.DodgeComponent](ds.entityManager, id)
	if !ok || dodge.TweenLength <= 0 || dodge.TweenElapsed >= dodge.TweenLength {
		return button.OffsetX, button.OffsetY
	}
	t := utils.EaseOutBack(dodge.TweenElapsed / dodge.TweenLength)
	return utils.Lerp(dodge.FromX, button.OffsetX, t), utils.Lerp(dodge.FromY, button.OffsetY, t)
}

// ShakeOffset 返回当前抖动的水平位移
func (ds *DodgeSystem) ShakeOffset(id ecs.EntityID) float64 {
	dodge, ok := ecs.GetComponent[*components.DodgeComponent](ds.entityManager, id)
	if !ok || dodge.ShakeRemaining <= 0 || ds.shakeLength <= 0 {
		return 0
	}
	elapsed := ds.shakeLength - dodge.ShakeRemaining
	// 4 次往返，幅度随时间衰减
	phase := elapsed / ds.shakeLength * 4 * 2 * math.Pi
	return math.Sin(phase) * shakeAmplitude * (dodge.ShakeRemaining / ds.shakeLength)
}
