package scenes

import (
	"log"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/utils"
)

// modalFadeSpeed 弹窗淡入淡出速度（每秒）
const modalFadeSpeed = 4.0

// handleInput 分发一帧的输入：按钮 → 小游戏点击 → 键盘导航 → 滚轮
func (s *GreetingScene) handleInput(input utils.InputFrame) {
	s.buttonSystem.HandleInput(input)

	if input.Pointer.JustPressed && !s.modalActive() {
		s.tryCatch(input.Pointer.X, input.Pointer.Y)
	}

	if s.modalActive() {
		return
	}
	switch {
	case input.Keys.SectionNext:
		s.navigateTo(s.currentSection + 1)
	case input.Keys.SectionPrev:
		s.navigateTo(s.currentSection - 1)
	}
	if input.WheelY != 0 {
		s.scrollSystem.ScrollBy(input.WheelY * config.WheelScrollSpeed)
		s.currentSection = s.scrollSystem.CurrentSection()
	}
}

// navigateTo 平滑滚动到指定分区，越界时忽略
func (s *GreetingScene) navigateTo(index int) {
	if index < 0 || index >= config.SectionCount {
		return
	}
	if s.scrollSystem.ScrollToSection(index) {
		s.currentSection = index
	}
}

// tryCatch 屏幕坐标处有下落目标时接住它
func (s *GreetingScene) tryCatch(screenX, screenY float64) bool {
	docX, docY := s.scrollSystem.ToDocument(screenX, screenY)
	area := s.layout.GameArea()
	if !area.Contains(docX, docY) {
		return false
	}
	target, ok := s.catchGame.HitTest(docX-area.X, docY-area.Y)
	if !ok {
		return false
	}
	return s.catchGame.Catch(target)
}

// onOpenHeart 首页按钮：进入留言区并尝试自动播放音乐
func (s *GreetingScene) onOpenHeart() {
	s.navigateTo(config.SectionMessage)
	if s.audio == nil || s.audio.Playing() {
		return
	}
	if !s.audio.Autoplay(s.cfg.Music.AutoplayVolume) {
		log.Printf("[GreetingScene] Autoplay failed, music stays off")
	}
	s.syncMusicLabel()
}

// onMusicToggle 切换音乐播放
func (s *GreetingScene) onMusicToggle() {
	if s.audio == nil {
		return
	}
	s.audio.Toggle(s.cfg.Music.ToggleVolume)
	s.syncMusicLabel()
}

func (s *GreetingScene) musicLabel() string {
	if s.audio == nil {
		return "Play"
	}
	return s.audio.Label()
}

func (s *GreetingScene) syncMusicLabel() {
	if button := s.button(components.ButtonMusicToggle); button != nil {
		button.Label = s.musicLabel()
	}
}

// revealContinue 打字机结束后显示"继续"按钮
func (s *GreetingScene) revealContinue() {
	if button := s.button(components.ButtonNavReasons); button != nil {
		button.Visible = true
		button.FadeIn = 0
	}
}

// onStartGame 开始（或重新开始）小游戏
func (s *GreetingScene) onStartGame() {
	area := s.layout.GameArea()
	s.catchGame.SetArea(area.W, area.H)
	s.catchGame.Start()
}

// modal 返回弹窗状态组件
func (s *GreetingScene) modal() *components.ModalComponent {
	modal, ok := ecs.GetComponent[*components.ModalComponent](s.entityManager, s.modalEntity)
	if !ok {
		return nil
	}
	return modal
}

func (s *GreetingScene) modalActive() bool {
	modal := s.modal()
	return modal != nil && modal.Active
}

// openModal 小游戏胜利后打开表白弹窗
func (s *GreetingScene) openModal() {
	modal := s.modal()
	if modal == nil || modal.Active {
		return
	}
	modal.Active = true
	s.buttonSystem.SetModalActive(true)
	for _, id := range []components.ButtonID{components.ButtonModalYes, components.ButtonModalNo} {
		if button := s.button(id); button != nil {
			button.Visible = true
			button.FadeIn = 0
		}
	}
	log.Printf("[GreetingScene] Modal opened")
}

// closeModal 关闭弹窗
func (s *GreetingScene) closeModal() {
	modal := s.modal()
	if modal == nil || !modal.Active {
		return
	}
	modal.Active = false
	s.buttonSystem.SetModalActive(false)
	for _, id := range []components.ButtonID{components.ButtonModalYes, components.ButtonModalNo} {
		if button := s.button(id); button != nil {
			button.Visible = false
			button.Hovered = false
			button.Focused = false
		}
	}
	log.Printf("[GreetingScene] Modal closed")
}

// updateModal 推进弹窗遮罩的淡入淡出
func (s *GreetingScene) updateModal(deltaTime float64) {
	modal := s.modal()
	if modal == nil {
		return
	}
	if modal.Active {
		modal.Fade = utils.Clamp01(modal.Fade + deltaTime*modalFadeSpeed)
	} else {
		modal.Fade = utils.Clamp01(modal.Fade - deltaTime*modalFadeSpeed)
	}
}

// onModalYes 弹窗"是"：关闭弹窗，滚动到结尾，显示庆祝并放彩纸
func (s *GreetingScene) onModalYes() {
	s.closeModal()
	s.navigateTo(config.SectionFinal)
	s.celebrationVisible = true
	s.confetti.Launch()
}

// onFinalYes 结尾"是"：放彩纸，稍后打开消息链接
func (s *GreetingScene) onFinalYes() {
	s.confetti.Launch()
	link := utils.BuildWhatsAppURL(s.cfg.Proposal.Phone, s.cfg.Proposal.Message)
	s.scheduler.After(s.cfg.Proposal.LinkDelay, func() {
		if s.opener == nil {
			log.Printf("[GreetingScene] No link opener, link: %s", link)
			return
		}
		if err := s.opener.Open(link); err != nil {
			log.Printf("[GreetingScene] Warning: %v", err)
		}
	})
}
