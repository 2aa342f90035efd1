package components

// GameTargetComponent 接爱心小游戏中的下落目标
//
// 仅能通过移除改变：被接住（Caught）或自然落地过期。
// 两条移除路径可能竞争，移除必须是幂等的。
type GameTargetComponent struct {
	Glyph        string
	X            float64 // 游戏区域内的水平位置（像素）
	Size         float64 // 目标尺寸（像素）
	FallDuration float64 // 从顶部落到底部所需时间（秒）
	Age          float64 // 已下落时间（秒）

	// Caught 是否已被接住（已进入移除流程）
	Caught bool
	// CaughtAge 被接住后经过的时间，用于"弹出"动画
	CaughtAge float64
}
