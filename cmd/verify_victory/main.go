// verify_victory 胜利动画手动验证工具
//
// 直接摆出一局已完成的牌并立刻播放胜利动画，用于在不打完整局
// 的情况下目视检查两种动画风格：
//
//	go run ./cmd/verify_victory -style classic -seed 7
//	go run ./cmd/verify_victory -style modern
//
// 动画播完后自动重新播放；Esc 退出。
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wyatan/klondike/pkg/anim"
	"github.com/wyatan/klondike/pkg/config"
	"github.com/wyatan/klondike/pkg/game"
	"github.com/wyatan/klondike/pkg/render"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

var (
	styleFlag = flag.String("style", "classic", "动画风格（classic / modern）")
	seedFlag  = flag.Uint64("seed", 7, "发牌种子")
	loopFlag  = flag.Bool("loop", true, "播完后自动重播")
)

// VerifyVictoryGame 循环播放胜利动画的验证游戏
type VerifyVictoryGame struct {
	state   *game.GameState
	metrics game.CardMetrics
	sheet   *game.SpriteSheet
	backend render.EbitenBackend
	animCfg *config.AnimationConfig

	victory  anim.Victory
	finished bool
	replays  int
}

// NewVerifyVictoryGame 摆好一局完成的牌
func NewVerifyVictoryGame() *VerifyVictoryGame {
	animCfg, err := config.LoadAnimationConfig(nil, "assets/config/victory_animation.yaml")
	if err != nil {
		log.Fatal("动画配置加载失败: ", err)
	}

	gs := game.NewGameState()
	gs.DealWithSeed(game.DrawOne, *seedFlag)
	if !gs.ForceCompleteFoundations() {
		log.Fatal("无法强制完成牌局")
	}
	log.Printf("[Verify] seed=%d style=%s", *seedFlag, *styleFlag)

	resources := game.NewResourceManager(nil)
	g := &VerifyVictoryGame{
		state:   gs,
		sheet:   resources.LoadCardSheet("assets/images/cards.png"),
		backend: render.NewEbitenBackend(),
		animCfg: animCfg,
	}
	return g
}

func (g *VerifyVictoryGame) startPlayback() {
	cellW, cellH := 0, 0
	if g.sheet.Valid() {
		cellW, cellH = g.sheet.CellW, g.sheet.CellH
	}
	g.metrics = game.ComputeCardMetrics(g.state, cellW, cellH, screenWidth, screenHeight)
	seeds := anim.OrderSeeds(anim.GatherSeeds(g.state, g.metrics))
	g.victory = anim.NewVictory(*styleFlag, seeds, g.metrics, screenWidth, screenHeight, g.animCfg, time.Now())
	g.finished = false
	g.replays++
	log.Printf("[Verify] playback #%d: %d cards", g.replays, len(seeds))
}

// Update 推进动画
func (g *VerifyVictoryGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.victory == nil {
		g.startPlayback()
	}
	if !g.finished && g.victory.Tick(time.Now()) {
		g.finished = true
		log.Printf("[Verify] playback #%d finished", g.replays)
		if *loopFlag {
			g.victory = nil
		}
	}
	return nil
}

// Draw 绘制动画帧
func (g *VerifyVictoryGame) Draw(screen *ebiten.Image) {
	if g.victory == nil {
		return
	}
	g.victory.Draw(g.backend, render.ImageSurface{Image: screen}, g.sheet)
}

// Layout 返回逻辑屏幕尺寸
func (g *VerifyVictoryGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Klondike - 胜利动画验证")

	if err := ebiten.RunGame(NewVerifyVictoryGame()); err != nil {
		log.Fatal(err)
	}
}
