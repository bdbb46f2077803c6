// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：装配资源管理器、设置管理器、
// 动画配置和牌桌场景，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/wyatan/klondike/pkg/config"
	"github.com/wyatan/klondike/pkg/game"
	"github.com/wyatan/klondike/pkg/scenes"
)

// animationConfigPath 胜利动画调参文件（嵌入资源内路径）
const animationConfigPath = "assets/config/victory_animation.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Style 覆盖存档中的胜利动画风格（"classic" / "modern"），为空则沿用设置
	Style string
	// Assets 嵌入资源文件系统
	Assets fs.FS
	// Storage 跨平台设置存储，可为 nil（降级为内存设置）
	Storage *gdata.Manager
}

// App 应用核心包装器，实现 ebiten.Game 接口
type App struct {
	scene    *scenes.GameScene
	settings *game.SettingsManager
	verbose  bool

	width  int
	height int
}

// NewApp 创建并装配游戏应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings := game.NewSettingsManager(cfg.Storage)
	if err := settings.Load(); err != nil {
		log.Printf("[App] settings load failed, using defaults: %v", err)
	}
	if cfg.Style != "" {
		settings.SetAnimationStyle(cfg.Style)
	}

	animCfg, err := config.LoadAnimationConfig(cfg.Assets, animationConfigPath)
	if err != nil {
		return nil, fmt.Errorf("动画配置加载失败: %w", err)
	}

	resources := game.NewResourceManager(cfg.Assets)
	scene := scenes.NewGameScene(resources, settings, animCfg)

	log.Printf("[App] initialized: style=%s draw3=%v",
		settings.GetSettings().AnimationStyle, settings.GetSettings().DrawThree)

	return &App{
		scene:    scene,
		settings: settings,
		verbose:  cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑，每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / 60.0
	return a.scene.Update(deltaTime)
}

// Draw 绘制游戏画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.scene.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸；窗口可调，逻辑尺寸跟随窗口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width = outsideWidth
		a.height = outsideHeight
		a.scene.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// SaveSettings 退出前保存窗口尺寸等设置
func (a *App) SaveSettings() {
	if !ebiten.IsFullscreen() {
		w, h := ebiten.WindowSize()
		a.settings.SetWindowSize(w, h, ebiten.IsWindowMaximized())
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] settings save failed: %v", err)
	}
}

// Settings 返回设置管理器，main 包用其恢复窗口尺寸
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
