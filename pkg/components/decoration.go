package components

// DecorationKind 装饰类型
type DecorationKind int

const (
	// DecorationFloatingHeart 首页漂浮爱心（自下而上飘动）
	DecorationFloatingHeart DecorationKind = iota
	// DecorationSparkle 结尾区域闪光（原地缩放旋转）
	DecorationSparkle
)

// DecorationComponent 漂浮装饰数据
// 仅由其所在区块拥有，存在时间记录在同一实体的 LifetimeComponent 中，
// 到期后由 LifetimeSystem 移除
type DecorationComponent struct {
	Kind    DecorationKind
	Glyph   string
	Section int // 所属区块索引

	// XPercent/YPercent 相对所属区块的位置百分比 [0, 100)
	XPercent float64
	YPercent float64

	Size     float64 // 字号（像素）
	Duration float64 // 动画时长（秒）
	Delay    float64 // 动画开始前的等待（秒）
}

// Progress 根据已存在时间计算动画进度 [0, 1]
// 延迟期间返回负值，表示尚未开始
func (d *DecorationComponent) Progress(age float64) float64 {
	if d.Duration <= 0 {
		return 1
	}
	p := (age - d.Delay) / d.Duration
	if p > 1 {
		return 1
	}
	return p
}
