package anim

import (
	"image"
	"time"

	"github.com/wyatan/klondike/pkg/config"
	"github.com/wyatan/klondike/pkg/game"
	"github.com/wyatan/klondike/pkg/render"
)

// ClassicVictory is the straight-drop cascade: each card falls from its
// foundation pile, bounces on the floor until it settles, and every
// intermediate position is baked into the accumulation layer so the
// trail stays on screen for the whole playback.
//
// All methods run on the game loop goroutine; nothing here is safe for
// concurrent use.
type ClassicVictory struct {
	cfg      *config.AnimationConfig
	emitters []Emitter
	pending  []Clone

	layer  render.Surface
	layerW int
	layerH int

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

// NewClassicVictory creates a playback over a pre-built emitter list.
// The accumulation layer stays unset until the first Draw.
func NewClassicVictory(emitters []Emitter, metrics game.CardMetrics, width, height int, cfg *config.AnimationConfig, now time.Time) *ClassicVictory {
	if cfg == nil {
		cfg = config.DefaultAnimationConfig()
	}
	v := &ClassicVictory{
		cfg:      cfg,
		emitters: emitters,
		metrics:  metrics,
		width:    width,
		height:   height,
		lastTick: now,
	}
	for _, e := range emitters {
		if e.Column >= 0 && e.Column < game.FoundationPiles {
			v.columnCap[e.Column]++
		}
	}
	return v
}

// UpdateViewport applies a resize mid-playback. The layer recreation
// itself happens lazily in Draw via EnsureLayer.
func (v *ClassicVictory) UpdateViewport(metrics game.CardMetrics, width, height int) {
	v.metrics = metrics
	v.width = width
	v.height = height
}

// Tick advances the simulation to now and reports whether every card
// has launched and settled.
func (v *ClassicVictory) Tick(now time.Time) bool {
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
			// Drop the backlog after a host stall instead of
			// grinding through it in one frame.
			v.accumulator = 0
			break
		}
	}
	return v.Finished()
}

// Finished reports launch-and-settle completion for every emitter.
func (v *ClassicVictory) Finished() bool {
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
func (v *ClassicVictory) EmittedFrom(column int) int {
	if column < 0 || column >= game.FoundationPiles {
		return 0
	}
	return v.foundationEmitted[column]
}

func (v *ClassicVictory) emitCard(index int) {
	if index < 0 || index >= len(v.emitters) {
		return
	}
	e := &v.emitters[index]
	e.Spawned = true
	e.Settled = false
	e.VelY = 0
	e.Pos = e.Start
	if e.Column >= 0 && e.Column < game.FoundationPiles &&
		v.foundationEmitted[e.Column] < v.columnCap[e.Column] {
		v.foundationEmitted[e.Column]++
	}
	// First frame after spawn already shows the card at its source.
	v.recordClone(e.Card, e.Pos)
}

// integrate advances every in-flight emitter by one fixed step.
func (v *ClassicVictory) integrate() {
	dt := v.cfg.FixedDT
	floorY := float64(v.height - v.metrics.CardH)
	for i := range v.emitters {
		e := &v.emitters[i]
		if !e.Spawned || e.Settled {
			continue
		}
		e.VelY += v.cfg.Gravity * dt
		e.Pos.Y += e.VelY * dt
		if e.Pos.Y >= floorY {
			e.Pos.Y = floorY
			if e.VelY > 0 {
				e.VelY = -e.VelY * v.cfg.FloorDamping
			}
			if -e.VelY < v.cfg.SettleVelocity {
				e.VelY = 0
				e.Settled = true
			}
		}
		v.recordClone(e.Card, e.Pos)
	}
}

// recordClone is the single queueing point for both the spawn path and
// the per-tick integration path.
func (v *ClassicVictory) recordClone(card game.Card, pos Point) {
	v.pending = append(v.pending, Clone{Card: card, Pos: pos})
}

// EnsureLayer creates the accumulation layer on first use and recreates
// it when the viewport size changes. On recreation the baked trail is
// lost; settled cards are re-queued at their resting positions so the
// pile survives the resize.
func (v *ClassicVictory) EnsureLayer(backend render.Backend, width, height int) {
	if v.layer != nil && v.layerW == width && v.layerH == height {
		return
	}
	recreated := v.layer != nil
	v.layer = backend.NewSurface(width, height)
	v.layerW = width
	v.layerH = height
	if recreated {
		for i := range v.emitters {
			e := &v.emitters[i]
			if e.Spawned && e.Settled {
				v.recordClone(e.Card, e.Pos)
			}
		}
	}
}

// FlushPending bakes every queued clone into the layer and clears the
// queue. Idempotent on an empty queue.
func (v *ClassicVictory) FlushPending(backend render.Backend, sheet render.CardSheet) {
	if len(v.pending) == 0 {
		return
	}
	if v.layer == nil {
		return
	}
	for _, c := range v.pending {
		rect := image.Rect(int(c.Pos.X), int(c.Pos.Y),
			int(c.Pos.X)+v.metrics.CardW, int(c.Pos.Y)+v.metrics.CardH)
		render.DrawCardFace(backend, v.layer, sheet, c.Card.SpriteIndex, rect, v.metrics.FaceInset)
	}
	v.pending = v.pending[:0]
}

// Draw renders one frame: bake pending clones, blit the layer, then
// draw the still-moving cards fresh on top.
func (v *ClassicVictory) Draw(backend render.Backend, screen render.Surface, sheet render.CardSheet) {
	v.EnsureLayer(backend, v.width, v.height)
	v.FlushPending(backend, sheet)
	if v.layer != nil {
		bounds := v.layer.Bounds()
		backend.AlphaBlit(screen, bounds, v.layer, bounds)
	}
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
