package config

// 布局配置常量
// 本文件定义了页面区块、窗口尺寸与各 UI 元素的布局参数
// 所有区块纵向堆叠在"文档坐标系"中，每个区块高度等于当前视口高度

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = 960

	// GameWindowHeight 默认窗口高度
	GameWindowHeight = 640

	// GameWindowTitle 窗口标题
	GameWindowTitle = "For You 💖"
)

// Section indices (区块索引，按文档从上到下)
const (
	SectionLanding = iota
	SectionMessage
	SectionReasons
	SectionGame
	SectionFinal

	// SectionCount 区块总数
	SectionCount
)

// Scroll Configuration (滚动配置)
const (
	// ScrollDuration 程序化平滑滚动时长（秒）
	ScrollDuration = 0.8

	// WheelScrollSpeed 鼠标滚轮每格滚动的像素数
	WheelScrollSpeed = 40.0
)

// UI element sizes (UI 元素尺寸)
const (
	// ButtonWidth 普通按钮宽度
	ButtonWidth = 180.0
	// ButtonHeight 普通按钮高度
	ButtonHeight = 48.0

	// GameAreaWidthRatio 游戏区域宽度占视口宽度的比例
	GameAreaWidthRatio = 0.7
	// GameAreaHeightRatio 游戏区域高度占视口高度的比例
	GameAreaHeightRatio = 0.6

	// ModalCardWidth 弹窗卡片宽度
	ModalCardWidth = 420.0
	// ModalCardHeight 弹窗卡片高度
	ModalCardHeight = 260.0

	// FinalProposalWidth 结尾表白框宽度
	FinalProposalWidth = 460.0
	// FinalProposalHeight 结尾表白框高度
	FinalProposalHeight = 220.0

	// MusicToggleSize 音乐开关按钮尺寸（右下角悬浮）
	MusicToggleSize = 56.0

	// RevealOffset 渐显动画初始下移距离
	RevealOffset = 30.0
	// RevealDuration 渐显动画时长（秒）
	RevealDuration = 0.8
	// RevealThreshold 触发渐显的可见比例
	RevealThreshold = 0.15

	// TextFontSize 正文字号
	TextFontSize = 22.0
	// TitleFontSize 标题字号
	TitleFontSize = 36.0
)
