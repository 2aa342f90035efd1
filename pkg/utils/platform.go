//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 设置环境变量 VALENTINE_MOBILE_EMULATE=1 可在桌面上模拟触屏文案与布局
func IsMobile() bool {
	return os.Getenv("VALENTINE_MOBILE_EMULATE") == "1"
}

// PointerVerb 返回提示文案中使用的指针动词
func PointerVerb() string {
	if IsMobile() {
		return "Tap"
	}
	return "Click"
}
