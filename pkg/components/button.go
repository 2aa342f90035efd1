package components

// ButtonID 按钮标识
type ButtonID string

const (
	ButtonOpenHeart   ButtonID = "open-heart"
	ButtonNavReasons  ButtonID = "nav-to-reasons"
	ButtonNavGame     ButtonID = "nav-to-game"
	ButtonStartGame   ButtonID = "start-game"
	ButtonModalYes    ButtonID = "btn-yes"
	ButtonModalNo     ButtonID = "btn-no"
	ButtonFinalYes    ButtonID = "final-yes"
	ButtonFinalNo     ButtonID = "final-no"
	ButtonMusicToggle ButtonID = "music-toggle"
)

// ButtonLayer 按钮所在层，决定坐标系与命中测试
type ButtonLayer int

const (
	// LayerDocument 随页面滚动（文档坐标）
	LayerDocument ButtonLayer = iota
	// LayerOverlay 固定在屏幕上（弹窗、悬浮按钮，屏幕坐标）
	LayerOverlay
)

// ButtonComponent 按钮组件
// 纯数据：外观文字、布局矩形、交互状态
type ButtonComponent struct {
	ID    ButtonID
	Label string
	Layer ButtonLayer

	// 静止时的布局矩形（由场景每帧根据视口重新计算）
	X, Y          float64
	Width, Height float64

	// 相对静止位置的平移（躲避行为写入）
	OffsetX, OffsetY float64

	Visible bool
	Enabled bool

	// 交互状态（由 ButtonSystem 每帧更新）
	Hovered bool
	Focused bool

	// FadeIn 渐显进度 [0, 1]，1 为完全显示
	FadeIn float64
	// Primary 主按钮使用强调色
	Primary bool
}

// DodgeVariant 躲避行为变体
type DodgeVariant int

const (
	// DodgeModal 弹窗中的"再想想"按钮：悬停、触摸、聚焦时躲避
	DodgeModal DodgeVariant = iota
	// DodgeFinale 结尾的"不"按钮：悬停、点击、触摸时躲避，拦截点击并抖动
	DodgeFinale
)

// DodgeComponent 标记按钮会躲避交互
type DodgeComponent struct {
	Variant DodgeVariant
	Padding float64 // 与容器边缘保持的最小距离（像素）

	// ShakeRemaining 剩余抖动时间（秒），>0 时渲染抖动
	ShakeRemaining float64
	// Dodges 累计躲避次数
	Dodges int

	// 平移过渡：从 From 偏移缓动到按钮的 Offset（仅结尾变体）
	FromX, FromY float64
	TweenElapsed float64
	TweenLength  float64
}
