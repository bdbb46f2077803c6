package anim

import (
	"image"
	"math"
	"time"

	"github.com/wyatan/klondike/pkg/config"
	"github.com/wyatan/klondike/pkg/game"
	"github.com/wyatan/klondike/pkg/render"
)

// ModernVictory is the arc-throw cascade: cards launch with a sideways
// throw, arc under gravity, rebound off the walls and floor, and leave
// play once they have spent their bounces. Nothing is baked; every
// in-flight card is drawn fresh each frame, and finished cards vanish.
type ModernVictory struct {
	cfg      *config.AnimationConfig
	emitters []Emitter

	nextEmit    int
	emitTimer   float64
	accumulator float64
	lastTick    time.Time

	foundationEmitted [game.FoundationPiles]int
	columnCap         [game.FoundationPiles]int

	metrics game.CardMetrics
	width   int
	height  int
}

// NewModernVictory creates an arc-throw playback from ordered seeds.
func NewModernVictory(seeds []Seed, metrics game.CardMetrics, width, height int, cfg *config.AnimationConfig, now time.Time) *ModernVictory {
	if cfg == nil {
		cfg = config.DefaultAnimationConfig()
	}
	v := &ModernVictory{
		cfg:      cfg,
		emitters: BuildEmitters(seeds),
		metrics:  metrics,
		width:    width,
		height:   height,
		lastTick: now,
	}
	for _, e := range v.emitters {
		if e.Column >= 0 && e.Column < game.FoundationPiles {
			v.columnCap[e.Column]++
		}
	}
	return v
}

// UpdateViewport applies a resize mid-playback.
func (v *ModernVictory) UpdateViewport(metrics game.CardMetrics, width, height int) {
	v.metrics = metrics
	v.width = width
	v.height = height
}

// Tick advances the simulation to now and reports whether every card
// has launched and left play.
func (v *ModernVictory) Tick(now time.Time) bool {
	delta := now.Sub(v.lastTick).Seconds()
	v.lastTick = now
	if delta <= 0 {
		delta = v.cfg.FixedDT
	}
	if delta > v.cfg.MaxFrameDelta {
		delta = v.cfg.MaxFrameDelta
	}

	v.emitTimer += delta
	for v.emitTimer >= v.cfg.EmitInterval && v.nextEmit < len(v.emitters) {
		v.emitTimer -= v.cfg.EmitInterval
		v.emitCard(v.nextEmit)
		v.nextEmit++
	}

	v.accumulator += delta
	steps := 0
	for v.accumulator >= v.cfg.FixedDT {
		v.accumulator -= v.cfg.FixedDT
		v.integrate()
		steps++
		if steps >= v.cfg.MaxCatchUpSteps {
			v.accumulator = 0
			break
		}
	}
	return v.Finished()
}

// Finished reports whether every emitter has launched and left play.
func (v *ModernVictory) Finished() bool {
	if v.nextEmit < len(v.emitters) {
		return false
	}
	for i := range v.emitters {
		if v.emitters[i].Spawned && !v.emitters[i].Settled {
			return false
		}
	}
	return true
}

// EmittedFrom reports how many cards the given foundation column has
// launched so far.
func (v *ModernVictory) EmittedFrom(column int) int {
	if column < 0 || column >= game.FoundationPiles {
		return 0
	}
	return v.foundationEmitted[column]
}

func (v *ModernVictory) emitCard(index int) {
	if index < 0 || index >= len(v.emitters) {
		return
	}
	e := &v.emitters[index]
	e.Spawned = true
	e.Settled = false
	e.Pos = e.Start
	e.bounces = 0

	// Alternate throw direction and spread speeds by pile and rank so
	// no two cards trace the same arc.
	dir := 1.0
	if index%2 == 0 {
		dir = -1.0
	}
	column := e.Column
	if column < 0 {
		column = index % game.FoundationPiles
	}
	rank := float64(e.Card.Rank)
	e.VelX = dir * (v.cfg.ThrowHorizontal + float64(column)*55 + rank*6)
	e.VelY = v.cfg.ThrowVertical - float64(column)*40 - rank*4

	if e.Column >= 0 && e.Column < game.FoundationPiles &&
		v.foundationEmitted[e.Column] < v.columnCap[e.Column] {
		v.foundationEmitted[e.Column]++
	}
}

func (v *ModernVictory) integrate() {
	dt := v.cfg.FixedDT
	floorY := float64(v.height - v.metrics.CardH)
	rightX := float64(v.width - v.metrics.CardW)
	for i := range v.emitters {
		e := &v.emitters[i]
		if !e.Spawned || e.Settled {
			continue
		}
		e.VelY += v.cfg.Gravity * dt
		e.Pos.X += e.VelX * dt
		e.Pos.Y += e.VelY * dt
		e.VelX *= v.cfg.HorizontalDrag

		if e.Pos.X <= 0 {
			e.Pos.X = 0
			e.VelX = -e.VelX * v.cfg.WallDamping
		} else if e.Pos.X >= rightX {
			e.Pos.X = rightX
			e.VelX = -e.VelX * v.cfg.WallDamping
		}
		if e.Pos.Y >= floorY {
			e.Pos.Y = floorY
			if e.VelY > 0 {
				e.VelY = -e.VelY * v.cfg.FloorDamping
				e.bounces++
				// Only leave play from floor contact, never mid-arc
				// where vertical speed passes through zero.
				if e.bounces >= v.cfg.ExitBounces && math.Abs(e.VelY) < v.cfg.SettleVelocity {
					e.Settled = true
				}
			}
		}
	}
}

// Draw renders every in-flight card; there is no accumulation layer in
// this style.
func (v *ModernVictory) Draw(backend render.Backend, screen render.Surface, sheet render.CardSheet) {
	for i := range v.emitters {
		e := &v.emitters[i]
		if !e.Spawned || e.Settled {
			continue
		}
		rect := image.Rect(int(e.Pos.X), int(e.Pos.Y),
			int(e.Pos.X)+v.metrics.CardW, int(e.Pos.Y)+v.metrics.CardH)
		render.DrawCardFace(backend, screen, sheet, e.Card.SpriteIndex, rect, v.metrics.FaceInset)
	}
}
