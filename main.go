package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/wyatan/klondike/pkg/app"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细日志")
	style   = flag.String("style", "", "胜利动画风格（classic / modern），为空则沿用设置")
)

func main() {
	flag.Parse()

	// 存储打开失败时降级为内存设置，游戏照常运行
	storage, err := gdata.Open(gdata.Config{AppName: "klondike"})
	if err != nil {
		log.Printf("[Main] settings storage unavailable: %v", err)
		storage = nil
	}

	a, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Style:   *style,
		Assets:  assetsFS,
		Storage: storage,
	})
	if err != nil {
		log.Fatal(err)
	}

	settings := a.Settings().GetSettings()
	ebiten.SetWindowSize(settings.WindowWidth, settings.WindowHeight)
	ebiten.SetWindowTitle("Klondike")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if settings.Maximized {
		ebiten.MaximizeWindow()
	}

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
	a.SaveSettings()
}
