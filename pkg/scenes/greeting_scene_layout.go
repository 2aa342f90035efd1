package scenes

import (
	"math"

	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/utils"
)

// Layout ratios, relative to the section (viewport) height
const (
	LandingTitleY    = 0.36
	LandingSubtitleY = 0.46
	LandingButtonY   = 0.60

	SectionTitleY = 0.14

	MessageTextTop  = 0.28
	MessageTextSide = 0.12
	MessageButtonY  = 0.82

	ReasonsTop      = 0.28
	ReasonCardH     = 84.0
	ReasonCardGap   = 18.0
	ReasonCardMaxW  = 360.0
	ReasonsButtonY  = 0.86
	GameSubtitleY   = 0.20
	GameAreaTop     = 0.27
	GameButtonGap   = 14.0
	FinalProposalY  = 0.52
	CelebrationY    = 0.84
	MusicToggleEdge = 20.0

	// OpenHeartWidth 首页按钮较宽
	OpenHeartWidth = 240.0
	// ModalButtonWidth 弹窗按钮宽度
	ModalButtonWidth = 150.0
)

// PageLayout 页面布局计算
// 所有分区矩形为文档坐标，弹窗与悬浮按钮为屏幕坐标
type PageLayout struct {
	Width, Height float64
}

// Section 返回第 index 个分区的文档矩形
func (l PageLayout) Section(index int) utils.Rect {
	return utils.Rect{X: 0, Y: float64(index) * l.Height, W: l.Width, H: l.Height}
}

// at 返回分区内纵向比例 ratio 处的文档 Y 坐标
func (l PageLayout) at(section int, ratio float64) float64 {
	return l.Section(section).Y + l.Height*ratio
}

// centered 返回以 (cx, cy) 为中心的矩形
func centered(cx, cy, w, h float64) utils.Rect {
	return utils.Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// OpenHeartButton 首页"打开"按钮
func (l PageLayout) OpenHeartButton() utils.Rect {
	return centered(l.Width/2, l.at(config.SectionLanding, LandingButtonY), OpenHeartWidth, config.ButtonHeight)
}

// ContinueButton 留言区的"继续"按钮
func (l PageLayout) ContinueButton() utils.Rect {
	return centered(l.Width/2, l.at(config.SectionMessage, MessageButtonY), config.ButtonWidth, config.ButtonHeight)
}

// MessageText 打字机文本区域
func (l PageLayout) MessageText() utils.Rect {
	side := l.Width * MessageTextSide
	top := l.at(config.SectionMessage, MessageTextTop)
	bottom := l.at(config.SectionMessage, MessageButtonY) - config.ButtonHeight
	return utils.Rect{X: side, Y: top, W: l.Width - 2*side, H: math.Max(0, bottom-top)}
}

// ReasonCard 理由卡片（两列排列），index 从 0 开始
func (l PageLayout) ReasonCard(index int) utils.Rect {
	cardW := math.Min(ReasonCardMaxW, (l.Width-3*ReasonCardGap)/2)
	col := index % 2
	row := index / 2
	totalW := 2*cardW + ReasonCardGap
	x := (l.Width-totalW)/2 + float64(col)*(cardW+ReasonCardGap)
	y := l.at(config.SectionReasons, ReasonsTop) + float64(row)*(ReasonCardH+ReasonCardGap)
	return utils.Rect{X: x, Y: y, W: cardW, H: ReasonCardH}
}

// SectionTitle 分区标题所在矩形（用于渐显观察）
func (l PageLayout) SectionTitle(section int) utils.Rect {
	return centered(l.Width/2, l.at(section, SectionTitleY), l.Width*0.8, config.TitleFontSize*1.6)
}

// RevealRect 渐显元素布局：index 0 为标题，其余为理由卡片
func (l PageLayout) RevealRect(section, index int) utils.Rect {
	if index == 0 || section != config.SectionReasons {
		return l.SectionTitle(section)
	}
	return l.ReasonCard(index - 1)
}

// ToGameButton 理由区进入小游戏的按钮
func (l PageLayout) ToGameButton() utils.Rect {
	return centered(l.Width/2, l.at(config.SectionReasons, ReasonsButtonY), config.ButtonWidth, config.ButtonHeight)
}

// GameArea 小游戏区域
func (l PageLayout) GameArea() utils.Rect {
	w := l.Width * config.GameAreaWidthRatio
	h := l.Height * config.GameAreaHeightRatio
	return utils.Rect{X: (l.Width - w) / 2, Y: l.at(config.SectionGame, GameAreaTop), W: w, H: h}
}

// StartGameButton 小游戏区域下方的开始按钮
func (l PageLayout) StartGameButton() utils.Rect {
	area := l.GameArea()
	return utils.Rect{
		X: l.Width/2 - config.ButtonWidth/2,
		Y: area.Bottom() + GameButtonGap,
		W: config.ButtonWidth,
		H: config.ButtonHeight,
	}
}

// FinalProposal 结尾表白框
func (l PageLayout) FinalProposal() utils.Rect {
	w := math.Min(config.FinalProposalWidth, l.Width-40)
	return centered(l.Width/2, l.at(config.SectionFinal, FinalProposalY), w, config.FinalProposalHeight)
}

// FinalButtons 表白框底部的两个按钮（是、不）
func (l PageLayout) FinalButtons() (yes, no utils.Rect) {
	box := l.FinalProposal()
	y := box.Bottom() - config.ButtonHeight - 28
	gap := 24.0
	w := ModalButtonWidth
	yes = utils.Rect{X: box.CenterX() - gap/2 - w, Y: y, W: w, H: config.ButtonHeight}
	no = utils.Rect{X: box.CenterX() + gap/2, Y: y, W: w, H: config.ButtonHeight}
	return yes, no
}

// Celebration 庆祝面板中心（文档坐标）
func (l PageLayout) Celebration() (float64, float64) {
	return l.Width / 2, l.at(config.SectionFinal, CelebrationY)
}

// ModalCard 弹窗卡片（屏幕坐标）
func (l PageLayout) ModalCard() utils.Rect {
	w := math.Min(config.ModalCardWidth, l.Width-32)
	return centered(l.Width/2, l.Height/2, w, config.ModalCardHeight)
}

// ModalButtons 弹窗底部的两个按钮（屏幕坐标）
func (l PageLayout) ModalButtons() (yes, no utils.Rect) {
	card := l.ModalCard()
	y := card.Bottom() - config.ButtonHeight - 28
	gap := 20.0
	w := math.Min(ModalButtonWidth, (card.W-gap-40)/2)
	yes = utils.Rect{X: card.CenterX() - gap/2 - w, Y: y, W: w, H: config.ButtonHeight}
	no = utils.Rect{X: card.CenterX() + gap/2, Y: y, W: w, H: config.ButtonHeight}
	return yes, no
}

// MusicToggle 右下角悬浮的音乐开关（屏幕坐标）
func (l PageLayout) MusicToggle() utils.Rect {
	size := config.MusicToggleSize
	return utils.Rect{
		X: l.Width - size - MusicToggleEdge,
		Y: l.Height - size - MusicToggleEdge,
		W: size,
		H: size,
	}
}
