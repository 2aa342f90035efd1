package components

// LifetimeComponent 实体的存在时限
// 生成时写入计算好的寿命，到期后实体被移除
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}

// Remaining 剩余寿命（秒），已过期时为 0
func (l *LifetimeComponent) Remaining() float64 {
	if l.IsExpired || l.CurrentLifetime >= l.MaxLifetime {
		return 0
	}
	return l.MaxLifetime - l.CurrentLifetime
}
