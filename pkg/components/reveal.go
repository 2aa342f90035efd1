package components

// RevealComponent 进入视口时的渐显动画
type RevealComponent struct {
	Section int     // 所属区块
	Index   int     // 同一区块内的顺序，用于错开动画
	Visible bool    // 是否已触发
	Elapsed float64 // 触发后经过的时间（秒）
	Text    string
}
