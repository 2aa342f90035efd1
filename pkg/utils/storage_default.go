//go:build !android

package utils

// settingsDirName 设置文件所在的子目录名
const settingsDirName = "settings"

// EnsureStorageDir 非 Android 平台由 gdata 自行创建目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串（使用 gdata 默认位置）
func GetStoragePath() string {
	return ""
}
