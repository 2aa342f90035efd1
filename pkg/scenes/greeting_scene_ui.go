package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/systems"
	"github.com/gonewx/valentine/pkg/utils"
)

const (
	subtitleFontSize = 20.0
	reasonFontSize   = 18.0
	// messageLineSpacing 打字机文本行距倍数
	messageLineSpacing = 1.5
	// cursorBlinkPeriod 光标闪烁周期（秒）
	cursorBlinkPeriod = 1.0
)

// sectionBackgrounds 各分区背景色（自上而下渐变的起止色）
var sectionBackgrounds = [config.SectionCount][2]color.NRGBA{
	{{R: 0xff, G: 0xe4, B: 0xec, A: 0xff}, {R: 0xff, G: 0xc9, B: 0xdb, A: 0xff}},
	{{R: 0xff, G: 0xf0, B: 0xf5, A: 0xff}, {R: 0xff, G: 0xe4, B: 0xec, A: 0xff}},
	{{R: 0xf6, G: 0xe9, B: 0xff, A: 0xff}, {R: 0xff, G: 0xf0, B: 0xf5, A: 0xff}},
	{{R: 0xff, G: 0xe4, B: 0xec, A: 0xff}, {R: 0xf6, G: 0xe9, B: 0xff, A: 0xff}},
	{{R: 0xff, G: 0xd6, B: 0xe4, A: 0xff}, {R: 0xff, G: 0xb3, B: 0xcb, A: 0xff}},
}

// backgroundBands 渐变背景的色带数量
const backgroundBands = 24

// drawSections 绘制视口内各分区的渐变背景
func (s *GreetingScene) drawSections(screen *ebiten.Image) {
	viewport := s.scrollSystem.Viewport()
	for i := 0; i < config.SectionCount; i++ {
		section := s.layout.Section(i)
		if section.VisibleFraction(viewport) <= 0 {
			continue
		}
		_, top := s.scrollSystem.ToScreen(0, section.Y)
		from, to := sectionBackgrounds[i][0], sectionBackgrounds[i][1]
		band := section.H / backgroundBands
		for b := 0; b < backgroundBands; b++ {
			t := float64(b) / float64(backgroundBands-1)
			clr := color.NRGBA{
				R: uint8(utils.Lerp(float64(from.R), float64(to.R), t)),
				G: uint8(utils.Lerp(float64(from.G), float64(to.G), t)),
				B: uint8(utils.Lerp(float64(from.B), float64(to.B), t)),
				A: 0xff,
			}
			// 多画 1 像素避免色带之间出现缝隙
			vector.DrawFilledRect(screen, 0, float32(top+float64(b)*band), float32(section.W), float32(band+1), clr, false)
		}
	}
}

// drawSectionContent 绘制各分区的文字内容
func (s *GreetingScene) drawSectionContent(screen *ebiten.Image) {
	if s.resources == nil {
		return
	}
	viewport := s.scrollSystem.Viewport()
	visible := func(section int) bool {
		return s.layout.Section(section).VisibleFraction(viewport) > 0
	}

	if visible(config.SectionLanding) {
		s.drawLanding(screen)
	}
	if visible(config.SectionMessage) {
		s.drawMessage(screen)
	}
	if visible(config.SectionReasons) {
		s.drawReasons(screen)
	}
	if visible(config.SectionGame) {
		s.drawGameHeader(screen)
	}
	if visible(config.SectionFinal) {
		s.drawFinal(screen)
	}
}

// drawText 在文档坐标 (docX, docY) 处居中绘制文字
func (s *GreetingScene) drawText(screen *ebiten.Image, str string, size, docX, docY float64, clr color.NRGBA, alpha float64) {
	x, y := s.scrollSystem.ToScreen(docX, docY)
	systems.DrawCenteredText(screen, str, s.resources.Font(size), x, y, clr, alpha)
}

func (s *GreetingScene) drawLanding(screen *ebiten.Image) {
	sec := s.cfg.Sections[config.SectionLanding]
	cx := s.layout.Width / 2
	s.drawText(screen, sec.Title, config.TitleFontSize+8, cx, s.layout.at(config.SectionLanding, LandingTitleY), systems.ColorDeepPink, 1)
	s.drawText(screen, sec.Subtitle, subtitleFontSize, cx, s.layout.at(config.SectionLanding, LandingSubtitleY), systems.ColorInk, 0.8)
}

// drawMessage 打字机文本：按区域宽度换行，未完成时在末尾绘制闪烁光标
func (s *GreetingScene) drawMessage(screen *ebiten.Image) {
	sec := s.cfg.Sections[config.SectionMessage]
	s.drawText(screen, sec.Title, config.TitleFontSize, s.layout.Width/2, s.layout.at(config.SectionMessage, SectionTitleY), systems.ColorDeepPink, 1)

	face := s.resources.Font(config.TextFontSize)
	if face == nil {
		return
	}
	box := s.layout.MessageText()
	output := utils.DisplayText(s.typewriter.Output())
	lines := utils.WrapText(output, face, box.W)

	if s.showCursor() {
		if len(lines) == 0 {
			lines = []string{""}
		}
		lines[len(lines)-1] += "|"
	}

	lineHeight := config.TextFontSize * messageLineSpacing
	x, y := s.scrollSystem.ToScreen(box.CenterX(), box.Y)
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(x, y+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(systems.ColorInk)
		text.Draw(screen, line, face, op)
	}
}

// showCursor 打字过程中光标按周期闪烁，结束后隐藏
func (s *GreetingScene) showCursor() bool {
	if !s.typewriter.Started() || !s.typewriter.CursorVisible() {
		return false
	}
	phase := s.scheduler.Now() / cursorBlinkPeriod
	return phase-float64(int(phase)) < 0.5
}

// drawReasons 标题与理由卡片，按渐显状态绘制
func (s *GreetingScene) drawReasons(screen *ebiten.Image) {
	for _, reveal := range s.revealSystem.InSection(config.SectionReasons) {
		alpha, offsetY := systems.RevealPose(reveal)
		if alpha <= 0 {
			continue
		}
		rect := s.layout.RevealRect(config.SectionReasons, reveal.Index)
		if reveal.Index == 0 {
			s.drawText(screen, reveal.Text, config.TitleFontSize, rect.CenterX(), rect.CenterY()+offsetY, systems.ColorDeepPink, alpha)
			continue
		}
		x, y := s.scrollSystem.ToScreen(rect.X, rect.Y+offsetY)
		systems.FillRoundedRect(screen, x, y, rect.W, rect.H, 18, systems.WithAlpha(systems.ColorCardWhite, alpha))
		systems.DrawSprite(screen, s.resources.HeartSprite("💖", 20), x+24, y+rect.H/2, 1, 0, alpha)
		s.drawWrapped(screen, reveal.Text, reasonFontSize, x+44, y, rect.W-56, rect.H, alpha)
	}
}

// drawWrapped 在矩形内左对齐换行绘制文字（纵向居中）
func (s *GreetingScene) drawWrapped(screen *ebiten.Image, str string, size, x, y, w, h, alpha float64) {
	face := s.resources.Font(size)
	if face == nil {
		return
	}
	lines := utils.WrapText(utils.DisplayText(str), face, w)
	lineHeight := size * 1.3
	top := y + (h-lineHeight*float64(len(lines)))/2
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, top+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(systems.ColorInk)
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(screen, line, face, op)
	}
}

func (s *GreetingScene) drawGameHeader(screen *ebiten.Image) {
	sec := s.cfg.Sections[config.SectionGame]
	cx := s.layout.Width / 2
	for _, reveal := range s.revealSystem.InSection(config.SectionGame) {
		alpha, offsetY := systems.RevealPose(reveal)
		s.drawText(screen, reveal.Text, config.TitleFontSize, cx, s.layout.at(config.SectionGame, SectionTitleY)+offsetY, systems.ColorDeepPink, alpha)
	}
	s.drawText(screen, sec.Subtitle, subtitleFontSize-2, cx, s.layout.at(config.SectionGame, GameSubtitleY), systems.ColorInk, 0.7)
}

// drawFinal 结尾表白框与庆祝面板
func (s *GreetingScene) drawFinal(screen *ebiten.Image) {
	sec := s.cfg.Sections[config.SectionFinal]
	box := s.layout.FinalProposal()
	x, y := s.scrollSystem.ToScreen(box.X, box.Y)
	systems.FillRoundedRect(screen, x, y+4, box.W, box.H, 28, color.NRGBA{A: 30})
	systems.FillRoundedRect(screen, x, y, box.W, box.H, 28, systems.ColorCardWhite)

	face := s.resources.Font(config.TitleFontSize - 6)
	if face != nil {
		lines := utils.WrapText(utils.DisplayText(sec.Title), face, box.W-48)
		lineHeight := (config.TitleFontSize - 6) * 1.3
		for i, line := range lines {
			systems.DrawCenteredText(screen, line, face, box.CenterX(), y+48+float64(i)*lineHeight, systems.ColorDeepPink, 1)
		}
	}

	if !s.celebrationVisible {
		return
	}
	cx, cy := s.layout.Celebration()
	s.drawText(screen, s.cfg.Proposal.CelebrationTitle, config.TitleFontSize, cx, cy-18, systems.ColorDeepPink, s.celebrationFade)
	s.drawText(screen, s.cfg.Proposal.CelebrationMessage, subtitleFontSize, cx, cy+22, systems.ColorInk, s.celebrationFade)
}

// drawModal 弹窗：半透明遮罩与卡片（屏幕坐标）
func (s *GreetingScene) drawModal(screen *ebiten.Image) {
	modal := s.modal()
	if modal == nil || modal.Fade <= 0 {
		return
	}
	alpha := modal.Fade
	vector.DrawFilledRect(screen, 0, 0, float32(s.layout.Width), float32(s.layout.Height),
		systems.WithAlpha(color.NRGBA{R: 0x2a, G: 0x0a, B: 0x18, A: 0x99}, alpha), false)

	card := s.layout.ModalCard()
	// 卡片从略小放大到原尺寸
	grow := 0.9 + 0.1*utils.EaseOutBack(alpha)
	w, h := card.W*grow, card.H*grow
	systems.FillRoundedRect(screen, card.CenterX()-w/2, card.CenterY()-h/2, w, h, 28, systems.WithAlpha(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, alpha))

	if s.resources == nil {
		return
	}
	systems.DrawSprite(screen, s.resources.HeartSprite("💘", 40), card.CenterX(), card.Y+44, 1, 0, alpha)
	systems.DrawCenteredText(screen, s.cfg.Proposal.ModalTitle, s.resources.Font(subtitleFontSize+4),
		card.CenterX(), card.Y+92, systems.ColorDeepPink, alpha)

	face := s.resources.Font(reasonFontSize)
	if face == nil {
		return
	}
	for i, line := range utils.WrapText(utils.DisplayText(s.cfg.Proposal.ModalMessage), face, card.W-48) {
		systems.DrawCenteredText(screen, line, face, card.CenterX(), card.Y+128+float64(i)*reasonFontSize*1.3, systems.ColorInk, alpha)
	}
}
