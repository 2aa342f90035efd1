package scenes

import (
	"log"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/systems"
	"github.com/gonewx/valentine/pkg/utils"
)

// initSystems 创建所有逻辑系统
func (s *GreetingScene) initSystems(width, height int) {
	em := s.entityManager
	cfg := s.cfg

	s.scrollSystem = systems.NewScrollSystem(em, config.SectionCount, float64(width), float64(height))
	s.visibilitySystem = systems.NewVisibilitySystem()
	s.dodgeSystem = systems.NewDodgeSystem(em, s.scheduler, s.rng, cfg.Proposal.ShakeLength)
	s.buttonSystem = systems.NewButtonSystem(em, s.dodgeSystem)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)

	s.typewriter = systems.NewTypewriterSystem(cfg.Typewriter, cfg.TypewriterText(), s.scheduler)
	s.typewriter.OnFinished = s.revealContinue

	s.catchGame = systems.NewCatchGameSystem(em, cfg.Game, s.scheduler, s.rng)
	area := s.layout.GameArea()
	s.catchGame.SetArea(area.W, area.H)
	s.catchGame.OnWin = s.openModal

	s.decorations = systems.NewDecorationSystem(em, s.scheduler, s.rng, cfg.Hearts, cfg.Sparkles)
	s.revealSystem = systems.NewRevealSystem(em, s.visibilitySystem, func(section, index int) utils.Rect {
		return s.layout.RevealRect(section, index)
	})
	s.confetti = systems.NewConfettiSystem(cfg.Confetti, cfg.PaletteColors(), s.scheduler, s.rng, width, height)

	s.modalEntity = em.CreateEntity()
	ecs.AddComponent(em, s.modalEntity, &components.ModalComponent{})
}

// initButtons 创建按钮实体并注册点击处理
// 创建顺序即键盘 Tab 顺序
func (s *GreetingScene) initButtons() {
	labels := s.cfg.Buttons

	s.addButton(components.ButtonOpenHeart, labels.OpenHeart, components.LayerDocument, true, true)
	s.addButton(components.ButtonNavReasons, labels.Continue, components.LayerDocument, false, true)
	s.addButton(components.ButtonNavGame, labels.ToGame, components.LayerDocument, true, true)
	s.addButton(components.ButtonStartGame, labels.StartGame, components.LayerDocument, true, true)
	s.addButton(components.ButtonFinalYes, labels.FinalYes, components.LayerDocument, true, true)
	s.addButton(components.ButtonFinalNo, labels.FinalNo, components.LayerDocument, true, false)
	s.addButton(components.ButtonModalYes, labels.ModalYes, components.LayerOverlay, false, true)
	s.addButton(components.ButtonModalNo, labels.ModalNo, components.LayerOverlay, false, false)
	s.addButton(components.ButtonMusicToggle, s.musicLabel(), components.LayerOverlay, true, true)

	// 躲避按钮
	modalNo := s.buttonEntities[components.ButtonModalNo]
	ecs.AddComponent(s.entityManager, modalNo, &components.DodgeComponent{
		Variant: components.DodgeModal,
		Padding: s.cfg.Proposal.ModalDodge,
	})
	s.dodgeSystem.SetContainer(modalNo, s.layout.ModalCard)

	finalNo := s.buttonEntities[components.ButtonFinalNo]
	ecs.AddComponent(s.entityManager, finalNo, &components.DodgeComponent{
		Variant: components.DodgeFinale,
		Padding: s.cfg.Proposal.FinaleDodge,
	})
	s.dodgeSystem.SetContainer(finalNo, s.layout.FinalProposal)

	s.buttonSystem.SetHandler(components.ButtonOpenHeart, s.onOpenHeart)
	s.buttonSystem.SetHandler(components.ButtonNavReasons, func() { s.navigateTo(config.SectionReasons) })
	s.buttonSystem.SetHandler(components.ButtonNavGame, func() { s.navigateTo(config.SectionGame) })
	s.buttonSystem.SetHandler(components.ButtonStartGame, s.onStartGame)
	s.buttonSystem.SetHandler(components.ButtonModalYes, s.onModalYes)
	s.buttonSystem.SetHandler(components.ButtonFinalYes, s.onFinalYes)
	s.buttonSystem.SetHandler(components.ButtonMusicToggle, s.onMusicToggle)
	// 两个"不"按钮没有默认动作：弹窗变体只躲避，结尾变体拦截点击

	log.Printf("[GreetingScene] Created %d buttons", len(s.buttonEntities))
}

// addButton 创建一个按钮实体，布局矩形由 layoutButtons 每帧更新
func (s *GreetingScene) addButton(id components.ButtonID, label string, layer components.ButtonLayer, visible, primary bool) ecs.EntityID {
	entity := s.entityManager.CreateEntity()
	fade := 0.0
	if visible {
		fade = 1
	}
	ecs.AddComponent(s.entityManager, entity, &components.ButtonComponent{
		ID:      id,
		Label:   label,
		Layer:   layer,
		Visible: visible,
		Enabled: true,
		FadeIn:  fade,
		Primary: primary,
	})
	s.buttonEntities[id] = entity
	return entity
}

// initObservers 注册可见性触发：打字机、结尾闪光、渐显元素
func (s *GreetingScene) initObservers() {
	s.visibilitySystem.Observe("message", func() utils.Rect {
		return s.layout.Section(config.SectionMessage)
	}, s.cfg.Typewriter.Threshold, true, s.typewriter.Start)

	s.visibilitySystem.Observe("final", func() utils.Rect {
		return s.layout.Section(config.SectionFinal)
	}, s.cfg.Sparkles.Threshold, true, s.decorations.StartSparkles)

	s.revealSystem.Add(config.SectionReasons, 0, s.sectionTitle(config.SectionReasons))
	for i, reason := range s.cfg.Reasons {
		s.revealSystem.Add(config.SectionReasons, i+1, reason)
	}
	s.revealSystem.Add(config.SectionGame, 0, s.sectionTitle(config.SectionGame))
}

// initRenderSystems 创建渲染系统
func (s *GreetingScene) initRenderSystems() {
	em := s.entityManager
	s.buttonRender = systems.NewButtonRenderSystem(em, s.buttonSystem, s.dodgeSystem, s.resources)
	s.decorationRender = systems.NewDecorationRenderSystem(em, s.scrollSystem, s.resources)
	s.catchGameRender = systems.NewCatchGameRenderSystem(em, s.catchGame, s.scrollSystem, s.resources,
		func() utils.Rect { return s.layout.GameArea() }, s.cfg.Game.CatchRemoval)
}

// layoutButtons 根据当前视口重新计算按钮静止矩形
func (s *GreetingScene) layoutButtons() {
	l := s.layout
	modalYes, modalNo := l.ModalButtons()
	finalYes, finalNo := l.FinalButtons()

	rects := map[components.ButtonID]utils.Rect{
		components.ButtonOpenHeart:   l.OpenHeartButton(),
		components.ButtonNavReasons:  l.ContinueButton(),
		components.ButtonNavGame:     l.ToGameButton(),
		components.ButtonStartGame:   l.StartGameButton(),
		components.ButtonFinalYes:    finalYes,
		components.ButtonFinalNo:     finalNo,
		components.ButtonModalYes:    modalYes,
		components.ButtonModalNo:     modalNo,
		components.ButtonMusicToggle: l.MusicToggle(),
	}
	for id, rect := range rects {
		button := s.button(id)
		if button == nil {
			continue
		}
		button.X, button.Y, button.Width, button.Height = rect.X, rect.Y, rect.W, rect.H
	}

	if start := s.button(components.ButtonStartGame); start != nil {
		start.Enabled = !s.catchGame.State().Running
	}
	s.buttonSystem.SetScroll(s.scrollSystem.ScrollY())
}

// button 返回按钮组件，实体缺失时返回 nil
func (s *GreetingScene) button(id components.ButtonID) *components.ButtonComponent {
	entity, ok := s.buttonEntities[id]
	if !ok {
		return nil
	}
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entity)
	if !ok {
		return nil
	}
	return button
}

// sectionTitle 返回分区标题
func (s *GreetingScene) sectionTitle(section int) string {
	if section < 0 || section >= len(s.cfg.Sections) {
		return ""
	}
	return s.cfg.Sections[section].Title
}
