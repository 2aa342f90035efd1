// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// "data/" 路径从嵌入的配置读取；"assets/" 路径（音乐等体积较大的可选资源）
// 从磁盘读取，缺失时由调用方降级处理。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	assetsRoot  = "."
	initialized bool
)

// Init 初始化嵌入的数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// SetAssetsRoot 设置 "assets/" 资源所在的磁盘根目录（默认当前目录）
func SetAssetsRoot(root string) {
	assetsRoot = root
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// ReadFile 根据路径前缀读取文件内容
// 路径必须以 "assets/" 或 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)

	switch {
	case strings.HasPrefix(path, "data/"):
		if !initialized {
			return nil, fmt.Errorf("embedded package not initialized, call Init() first")
		}
		return fs.ReadFile(dataFS, path)
	case strings.HasPrefix(path, "assets/"):
		return os.ReadFile(filepath.Join(assetsRoot, filepath.FromSlash(path)))
	}
	return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// Exists 检查资源是否存在
func Exists(path string) bool {
	path = normalize(path)

	switch {
	case strings.HasPrefix(path, "data/"):
		if !initialized {
			return false
		}
		_, err := fs.Stat(dataFS, path)
		return err == nil
	case strings.HasPrefix(path, "assets/"):
		_, err := os.Stat(filepath.Join(assetsRoot, filepath.FromSlash(path)))
		return err == nil
	}
	return false
}
