//go:build mobile

package utils

// IsMobile 移动端编译时返回 true
func IsMobile() bool {
	return true
}

// PointerVerb 移动端统一使用 "Tap"
func PointerVerb() string {
	return "Tap"
}
