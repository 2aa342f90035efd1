package components

// ScrollComponent 页面滚动状态
// 页面由若干全屏分区纵向排列，ScrollY 为视口顶部在文档坐标中的位置
type ScrollComponent struct {
	// ScrollY 当前滚动位置（文档坐标，像素）
	ScrollY float64

	// IsAnimating 是否处于平滑滚动中
	IsAnimating bool

	// StartY / TargetY 平滑滚动的起止位置
	StartY  float64
	TargetY float64

	// Elapsed 已经过的动画时间（秒）
	Elapsed float64

	// Duration 动画总时长（秒）
	Duration float64

	// TargetSection 平滑滚动的目标分区，-1 表示手动滚动
	TargetSection int
}
