// Package anim implements the victory card cascade: per-foundation
// emitters launch cards one at a time, a fixed-timestep integrator
// animates their fall, and finished frames are baked into an offscreen
// accumulation layer so per-frame cost stays flat as cards pile up.
package anim

import (
	"time"

	"github.com/wyatan/klondike/pkg/config"
	"github.com/wyatan/klondike/pkg/game"
	"github.com/wyatan/klondike/pkg/render"
)

// Point is a position in viewport pixels.
type Point struct {
	X float64
	Y float64
}

// Victory is one playback of the win animation. Implementations are
// single-threaded: Tick, UpdateViewport and Draw are all called from the
// game loop goroutine.
type Victory interface {
	// UpdateViewport refreshes the card geometry and viewport size.
	// Called every frame before Tick, so live resizes take effect
	// mid-playback.
	UpdateViewport(metrics game.CardMetrics, width, height int)

	// Tick advances the animation to now and reports whether the
	// playback has fully finished.
	Tick(now time.Time) bool

	// Draw renders the current animation frame onto the screen.
	Draw(backend render.Backend, screen render.Surface, sheet render.CardSheet)

	// EmittedFrom reports how many cards the given foundation column
	// has launched so far; the table renderer hides that many cards
	// from the top of the pile.
	EmittedFrom(column int) int
}

// NewVictory creates a playback of the requested style ("classic" or
// "modern"); unknown styles fall back to classic.
func NewVictory(style string, seeds []Seed, metrics game.CardMetrics, width, height int, cfg *config.AnimationConfig, now time.Time) Victory {
	if style == "modern" {
		return NewModernVictory(seeds, metrics, width, height, cfg, now)
	}
	return NewClassicVictory(BuildEmitters(seeds), metrics, width, height, cfg, now)
}
