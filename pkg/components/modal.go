package components

// ModalComponent 弹窗状态
// 只通过显式的打开/关闭调用切换，不做持久化
type ModalComponent struct {
	Active bool
	// Fade 显示进度 [0, 1]，用于淡入淡出
	Fade float64
}
