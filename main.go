// Package main 情人节贺卡桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose          Enable verbose logging
//	--config <path>    Load greeting content from a YAML file instead of the embedded default
//	--section <index>  Jump straight to a section (0 landing ... 4 final)
//	--assets <dir>     Directory that contains assets/ (default: current directory)
//
// Controls:
//
//	Mouse wheel / arrow keys  - Scroll between sections
//	Tab / Shift+Tab           - Move focus between buttons
//	Enter / Space             - Activate the focused button
//	F11                       - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/valentine/pkg/app"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag  = flag.String("config", "", "Path to a greeting YAML file (default: embedded data/greeting.yaml)")
	sectionFlag = flag.Int("section", 0, "Section to start at (0-4)")
	assetsFlag  = flag.String("assets", ".", "Directory that contains assets/")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)
	embedded.SetAssetsRoot(*assetsFlag)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		ConfigPath:   *configFlag,
		StartSection: *sectionFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	runErr := ebiten.RunGame(gameApp)

	// 窗口关闭时停止音乐并保存偏好
	gameApp.GetSceneManager().Exit()

	if runErr != nil {
		log.Fatal(runErr)
	}
}
