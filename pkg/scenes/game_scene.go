// Package scenes 实现牌桌场景：布局绘制、鼠标/键盘输入、
// 胜利检测与胜利动画的触发和关闭。
package scenes

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wyatan/klondike/pkg/anim"
	"github.com/wyatan/klondike/pkg/config"
	"github.com/wyatan/klondike/pkg/game"
	"github.com/wyatan/klondike/pkg/render"
)

// doubleClickWindow 双击判定的最大间隔
const doubleClickWindow = 350 * time.Millisecond

// doubleClickSlop 双击判定允许的最大位移（像素）
const doubleClickSlop = 6

// selectionKind 当前选中的来源堆类型
type selectionKind uint8

const (
	selectNone selectionKind = iota
	selectWaste
	selectTableau
)

// selection 点选-再点移动的中间状态
type selection struct {
	kind   selectionKind
	column int // 牌桌列（kind == selectTableau 时有效）
	index  int // 列内起始下标
}

// GameScene 主游戏场景
//
// 每帧 Update 处理输入并推进胜利动画，Draw 通过 render.Backend
// 绘制整张牌桌。胜利动画期间普通输入被吞掉，点击直接关闭动画。
type GameScene struct {
	resources *game.ResourceManager
	settings  *game.SettingsManager
	state     *game.GameState
	sheet     *game.SpriteSheet
	animCfg   *config.AnimationConfig
	backend   render.EbitenBackend

	metrics game.CardMetrics
	width   int
	height  int

	sel selection

	lastClickAt time.Time
	lastClickX  int
	lastClickY  int

	victory anim.Victory

	// clock 可替换时钟，测试中注入固定时间
	clock func() time.Time
}

// NewGameScene 创建牌桌场景并发一局新牌
func NewGameScene(resources *game.ResourceManager, settings *game.SettingsManager, animCfg *config.AnimationConfig) *GameScene {
	s := &GameScene{
		resources: resources,
		settings:  settings,
		animCfg:   animCfg,
		backend:   render.NewEbitenBackend(),
		state:     game.NewGameState(),
		clock:     time.Now,
	}
	if resources != nil {
		s.sheet = resources.LoadCardSheet("assets/images/cards.png")
	}
	mode := game.DrawOne
	if settings != nil && settings.GetSettings().DrawThree {
		mode = game.DrawThree
	}
	if err := s.state.DealNewGame(mode); err != nil {
		// 随机种子获取失败时退回固定种子，牌局仍可玩
		log.Printf("[GameScene] random seed unavailable: %v", err)
		s.state.DealWithSeed(mode, 1)
	}
	log.Printf("[GameScene] new game: mode=%s seed=%d", s.state.Mode, s.state.Seed)
	return s
}

// Layout 更新视口大小并重算布局尺寸
func (s *GameScene) Layout(width, height int) {
	s.width = width
	s.height = height
	cellW, cellH := 0, 0
	if s.sheet.Valid() {
		cellW, cellH = s.sheet.CellW, s.sheet.CellH
	}
	s.metrics = game.ComputeCardMetrics(s.state, cellW, cellH, width, height)
	if s.victory != nil {
		s.victory.UpdateViewport(s.metrics, width, height)
	}
}

// Update 处理一帧输入
func (s *GameScene) Update(deltaTime float64) error {
	if s.victory != nil {
		s.updateVictory()
		return nil
	}
	s.handleKeys()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.handleClick(x, y)
	}
	return nil
}

// Draw 绘制整张牌桌到屏幕
func (s *GameScene) Draw(screen *ebiten.Image) {
	surface := render.ImageSurface{Image: screen}
	s.drawTable(s.backend, surface)
	if s.victory != nil {
		s.victory.Draw(s.backend, surface, s.sheet)
	}
}

// State 返回当前牌局（verify 工具和测试使用）
func (s *GameScene) State() *game.GameState {
	return s.state
}

// updateVictory 推进胜利动画；结束或点击时关闭并重新发牌
func (s *GameScene) updateVictory() {
	finished := s.victory.Tick(s.clock())
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if finished || clicked || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.dismissVictory()
	}
}

func (s *GameScene) dismissVictory() {
	s.victory = nil
	if err := s.state.DealNewGame(s.state.Mode); err != nil {
		s.state.DealWithSeed(s.state.Mode, s.state.Seed+1)
	}
	log.Printf("[GameScene] victory dismissed, new game seed=%d", s.state.Seed)
}

// startVictory 胜利后收集种子并启动所选风格的动画
func (s *GameScene) startVictory() {
	style := "classic"
	if s.settings != nil {
		style = s.settings.GetSettings().AnimationStyle
	}
	seeds := anim.OrderSeeds(anim.GatherSeeds(s.state, s.metrics))
	s.victory = anim.NewVictory(style, seeds, s.metrics, s.width, s.height, s.animCfg, s.clock())
	s.sel = selection{}
	log.Printf("[GameScene] victory! style=%s cards=%d", style, len(seeds))
}

// checkWin 每次成功移动后调用
func (s *GameScene) checkWin() {
	if s.state.IsWon() {
		s.startVictory()
	}
}

func (s *GameScene) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if err := s.state.DealNewGame(s.state.Mode); err != nil {
			s.state.DealWithSeed(s.state.Mode, s.state.Seed+1)
		}
		s.sel = selection{}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := s.state.DealAgain(); err != nil {
			log.Printf("[GameScene] redeal failed: %v", err)
		}
		s.sel = selection{}
	case inpututil.IsKeyJustPressed(ebiten.KeyU),
		ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if !s.state.Undo() {
			log.Printf("[GameScene] nothing to undo")
		}
		s.sel = selection{}
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		s.toggleDrawMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyF8):
		// 调试路径：直接填满收牌堆触发动画
		s.state.PushUndo()
		if s.state.ForceCompleteFoundations() {
			s.checkWin()
		} else {
			s.state.Undo()
		}
	}
}

// toggleDrawMode 切换翻一张/翻三张并重新发牌
func (s *GameScene) toggleDrawMode() {
	mode := game.DrawOne
	if s.state.Mode == game.DrawOne {
		mode = game.DrawThree
	}
	if s.settings != nil {
		s.settings.SetDrawThree(mode == game.DrawThree)
	}
	if err := s.state.DealNewGame(mode); err != nil {
		s.state.DealWithSeed(mode, s.state.Seed+1)
	}
	s.sel = selection{}
	log.Printf("[GameScene] draw mode now %s", mode)
}
