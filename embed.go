// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
package main

import "embed"

// 音乐等 assets/ 资源体积较大，从磁盘读取，缺失时静音运行
//
//go:embed data
var dataFS embed.FS
