package systems

import (
	"log"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/utils"
)

// buttonFadeSpeed 按钮渐显速度（每秒）
const buttonFadeSpeed = 2.5

// ButtonSystem 按钮交互系统
// 负责处理按钮的悬停、点击、触摸和键盘焦点
//
// 职责：
//   - 命中测试使用静止矩形加上躲避偏移
//   - 悬停、触摸、聚焦、点击转发给 DodgeSystem，由其决定是否拦截默认动作
//   - 未被拦截的点击调用按 ButtonID 注册的处理函数
//   - 弹窗打开时文档层按钮不响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	dodge         *DodgeSystem

	handlers map[components.ButtonID]func()

	scrollY     float64
	modalActive bool

	hovered ecs.EntityID
	focused ecs.EntityID

	// 按下时所在的按钮，释放时仍在其上才算点击
	pressed           ecs.EntityID
	pressedSuppressed bool
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager, dodge *DodgeSystem) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		dodge:         dodge,
		handlers:      make(map[components.ButtonID]func()),
	}
}

// SetHandler 注册按钮的点击处理函数
func (s *ButtonSystem) SetHandler(id components.ButtonID, handler func()) {
	s.handlers[id] = handler
}

// SetScroll 同步页面滚动位置（文档层按钮的屏幕坐标依赖它）
func (s *ButtonSystem) SetScroll(scrollY float64) {
	s.scrollY = scrollY
}

// SetModalActive 弹窗打开时屏蔽文档层按钮
func (s *ButtonSystem) SetModalActive(active bool) {
	s.modalActive = active
	if active {
		s.focused = 0
	}
}

// Find 按 ButtonID 查找按钮实体
func (s *ButtonSystem) Find(id components.ButtonID) (ecs.EntityID, bool) {
	for _, entity := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity)
		if button.ID == id {
			return entity, true
		}
	}
	return 0, false
}

// ScreenRect 返回按钮当前的屏幕矩形（含躲避偏移）
func (s *ButtonSystem) ScreenRect(entity ecs.EntityID) utils.Rect {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity)
	if !ok {
		return utils.Rect{}
	}
	r := utils.Rect{X: button.X + button.OffsetX, Y: button.Y + button.OffsetY, W: button.Width, H: button.Height}
	if button.Layer == components.LayerDocument {
		r.Y -= s.scrollY
	}
	return r
}

// interactive 按钮当前是否可交互
func (s *ButtonSystem) interactive(button *components.ButtonComponent) bool {
	if !button.Visible || !button.Enabled {
		return false
	}
	if s.modalActive && button.Layer == components.LayerDocument {
		return false
	}
	return true
}

// buttonAt 返回屏幕坐标处最上层的可交互按钮（悬浮层优先）
func (s *ButtonSystem) buttonAt(x, y float64) (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager)
	for _, layer := range []components.ButtonLayer{components.LayerOverlay, components.LayerDocument} {
		for i := len(entities) - 1; i >= 0; i-- {
			button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entities[i])
			if button.Layer != layer || !s.interactive(button) {
				continue
			}
			if s.ScreenRect(entities[i]).Contains(x, y) {
				return entities[i], true
			}
		}
	}
	return 0, false
}

// HandleInput 处理一帧的指针和键盘输入
func (s *ButtonSystem) HandleInput(input utils.InputFrame) {
	s.handlePointer(input.Pointer)
	s.handleKeys(input.Keys)
}

func (s *ButtonSystem) handlePointer(p utils.PointerFrame) {
	under, hit := s.buttonAt(p.X, p.Y)

	// 悬停（仅鼠标）：进入按钮的那一帧触发
	if !p.Touch {
		if hit && under != s.hovered {
			s.trigger(under, TriggerHover)
		}
		s.setHovered(under, hit)
	}

	if p.JustPressed {
		s.pressed, s.pressedSuppressed = 0, false
		if hit {
			s.pressed = under
			if p.Touch {
				s.pressedSuppressed = s.trigger(under, TriggerTouchStart)
			}
		}
	}

	if p.JustReleased {
		pressed, suppressed := s.pressed, s.pressedSuppressed
		s.pressed, s.pressedSuppressed = 0, false
		// 躲避按钮可能已经移开，点击以按下时的按钮为准
		if pressed != 0 && !suppressed && (under == pressed || s.isDodger(pressed)) {
			s.Click(pressed)
		}
	}
}

func (s *ButtonSystem) setHovered(entity ecs.EntityID, hit bool) {
	if s.hovered != 0 {
		if button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, s.hovered); ok {
			button.Hovered = false
		}
	}
	s.hovered = 0
	if !hit {
		return
	}
	if button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity); ok {
		button.Hovered = true
		s.hovered = entity
	}
}

func (s *ButtonSystem) handleKeys(k utils.KeyFrame) {
	switch {
	case k.FocusNext:
		s.moveFocus(1)
	case k.FocusPrev:
		s.moveFocus(-1)
	}
	if k.Activate && s.focused != 0 && s.entityManager.IsAlive(s.focused) {
		s.Click(s.focused)
	}
}

// focusable 返回可聚焦按钮（创建顺序即 Tab 顺序）
func (s *ButtonSystem) focusable() []ecs.EntityID {
	var result []ecs.EntityID
	for _, entity := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity)
		if s.interactive(button) {
			result = append(result, entity)
		}
	}
	return result
}

func (s *ButtonSystem) moveFocus(step int) {
	list := s.focusable()
	if len(list) == 0 {
		return
	}
	index := -1
	for i, entity := range list {
		if entity == s.focused {
			index = i
			break
		}
	}
	if index < 0 {
		if step > 0 {
			index = 0
		} else {
			index = len(list) - 1
		}
	} else {
		index = (index + step + len(list)) % len(list)
	}
	s.Focus(list[index])
}

// Focus 将键盘焦点移到按钮上
func (s *ButtonSystem) Focus(entity ecs.EntityID) {
	if s.focused != 0 {
		if button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, s.focused); ok {
			button.Focused = false
		}
	}
	s.focused = 0
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity)
	if !ok {
		return
	}
	button.Focused = true
	s.focused = entity
	s.trigger(entity, TriggerFocus)
}

// Focused 返回当前焦点按钮
func (s *ButtonSystem) Focused() ecs.EntityID {
	return s.focused
}

// Click 对按钮执行一次点击，返回处理函数是否被调用
func (s *ButtonSystem) Click(entity ecs.EntityID) bool {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity)
	if !ok || !s.interactive(button) {
		return false
	}
	if s.trigger(entity, TriggerClick) {
		log.Printf("[ButtonSystem] Click on %s suppressed", button.ID)
		return false
	}
	handler, ok := s.handlers[button.ID]
	if !ok || handler == nil {
		return false
	}
	log.Printf("[ButtonSystem] Click on %s", button.ID)
	handler()
	return true
}

// trigger 转发交互给躲避系统，返回是否拦截默认动作
func (s *ButtonSystem) trigger(entity ecs.EntityID, trigger DodgeTrigger) bool {
	if s.dodge == nil || !s.isDodger(entity) {
		return false
	}
	return s.dodge.HandleTrigger(entity, trigger)
}

func (s *ButtonSystem) isDodger(entity ecs.EntityID) bool {
	return ecs.HasComponent[*components.DodgeComponent](s.entityManager, entity)
}

// Update 推进按钮渐显
func (s *ButtonSystem) Update(deltaTime float64) {
	for _, entity := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity)
		if button.Visible && button.FadeIn < 1 {
			button.FadeIn += deltaTime * buttonFadeSpeed
			if button.FadeIn > 1 {
				button.FadeIn = 1
			}
		}
	}
}
