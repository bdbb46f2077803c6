package anim

import (
	"testing"
	"time"

	"github.com/wyatan/klondike/pkg/config"
	"github.com/wyatan/klondike/pkg/game"
)

func testMetrics() game.CardMetrics {
	return game.CardMetrics{
		CardW:          80,
		CardH:          100,
		ColumnGap:      12,
		RowGap:         16,
		FaceDownOffset: 12,
		FaceUpOffset:   20,
		FaceInset:      4,
		Margin:         16,
	}
}

// singleEmitter builds a one-card playback starting at (100, 0) with a
// floor line at y=400 (viewport height 500, card height 100).
func singleEmitter(cfg *config.AnimationConfig, now time.Time) *ClassicVictory {
	seeds := []Seed{{
		Card:       game.NewCard(game.Hearts, game.Ace),
		Pos:        Point{X: 100, Y: 0},
		Foundation: 0,
	}}
	return NewClassicVictory(BuildEmitters(seeds), testMetrics(), 800, 500, cfg, now)
}

// tickSteps drives the playback with one fixed step of wall time per
// call so each Tick runs exactly one physics step.
func tickSteps(v *ClassicVictory, cfg *config.AnimationConfig, start time.Time, steps int) time.Time {
	now := start
	for i := 0; i < steps; i++ {
		now = now.Add(time.Duration(cfg.FixedDT * float64(time.Second)))
		v.Tick(now)
	}
	return now
}

func TestClassicVictory_SettlesOnFloor(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)

	tickSteps(v, cfg, start, 5000)

	e := v.emitters[0]
	if !e.Spawned {
		t.Fatal("emitter never spawned")
	}
	if !e.Settled {
		t.Fatal("emitter never settled")
	}
	if e.Pos.X != 100 || e.Pos.Y != 400 {
		t.Errorf("Expected resting position (100, 400), got (%v, %v)", e.Pos.X, e.Pos.Y)
	}
	if e.VelY != 0 {
		t.Errorf("Expected zero velocity after settle, got %v", e.VelY)
	}
	if len(v.pending) < 1 {
		t.Fatal("expected at least one recorded clone")
	}
	last := v.pending[len(v.pending)-1]
	if last.Pos.X != 100 || last.Pos.Y != 400 {
		t.Errorf("Expected final clone at (100, 400), got (%v, %v)", last.Pos.X, last.Pos.Y)
	}
}

func TestClassicVictory_Determinism(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)

	run := func() (Point, int) {
		v := singleEmitter(cfg, start)
		now := start
		ticks := 0
		for i := 0; i < 5000; i++ {
			now = now.Add(time.Duration(cfg.FixedDT * float64(time.Second)))
			v.Tick(now)
			ticks++
			if v.emitters[0].Settled {
				break
			}
		}
		return v.emitters[0].Pos, ticks
	}

	pos1, ticks1 := run()
	pos2, ticks2 := run()
	if pos1 != pos2 {
		t.Errorf("Expected identical settle positions, got %v and %v", pos1, pos2)
	}
	if ticks1 != ticks2 {
		t.Errorf("Expected identical tick counts, got %d and %d", ticks1, ticks2)
	}
}

func TestClassicVictory_SettleIsTerminal(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)

	now := tickSteps(v, cfg, start, 5000)
	if !v.emitters[0].Settled {
		t.Fatal("emitter never settled")
	}

	pos := v.emitters[0].Pos
	v.pending = v.pending[:0]
	for i := 0; i < 100; i++ {
		now = now.Add(time.Duration(cfg.FixedDT * float64(time.Second)))
		v.Tick(now)
	}
	if v.emitters[0].Pos != pos {
		t.Errorf("Settled emitter moved from %v to %v", pos, v.emitters[0].Pos)
	}
	if len(v.pending) != 0 {
		t.Errorf("Settled emitter enqueued %d clones", len(v.pending))
	}
}

func TestClassicVictory_MonotonicEmission(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	start := time.Unix(0, 0)
	seeds := make([]Seed, 0, 4)
	for f := 0; f < 4; f++ {
		seeds = append(seeds, Seed{
			Card:       game.NewCard(game.Suit(f), game.King),
			Pos:        Point{X: float64(100 * f), Y: 0},
			Foundation: f,
		})
	}
	v := NewClassicVictory(BuildEmitters(seeds), testMetrics(), 800, 500, cfg, start)

	now := start
	prev := 0
	for i := 0; i < 200; i++ {
		now = now.Add(time.Duration(cfg.FixedDT * float64(time.Second)))
		v.Tick(now)
		if v.nextEmit < prev {
			t.Fatalf("nextEmit decreased from %d to %d", prev, v.nextEmit)
		}
		if v.nextEmit > len(v.emitters) {
			t.Fatalf("nextEmit %d exceeds emitter count %d", v.nextEmit, len(v.emitters))
		}
		prev = v.nextEmit
	}
}

func TestClassicVictory_EmissionSchedule(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	start := time.Unix(0, 0)
	seeds := make([]Seed, 0, 4)
	for f := 0; f < 4; f++ {
		seeds = append(seeds, Seed{
			Card:       game.NewCard(game.Suit(f), game.King),
			Pos:        Point{X: float64(100 * f), Y: 0},
			Foundation: f,
		})
	}
	v := NewClassicVictory(BuildEmitters(seeds), testMetrics(), 800, 500, cfg, start)

	// Four spawn intervals of wall time, delivered in fixed steps.
	steps := int(4*cfg.EmitInterval/cfg.FixedDT) + 1
	tickSteps(v, cfg, start, steps)

	if v.nextEmit != 4 {
		t.Errorf("Expected nextEmit 4 after four intervals, got %d", v.nextEmit)
	}
	for f := 0; f < 4; f++ {
		if got := v.EmittedFrom(f); got != 1 {
			t.Errorf("Expected foundation %d to have emitted 1 card, got %d", f, got)
		}
	}
}

func TestClassicVictory_EmittedFromSaturates(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)

	tickSteps(v, cfg, start, 5000)

	if got := v.EmittedFrom(0); got != 1 {
		t.Errorf("Expected 1 emitted from column 0, got %d", got)
	}
	if got := v.EmittedFrom(3); got != 0 {
		t.Errorf("Expected 0 emitted from empty column, got %d", got)
	}
	if got := v.EmittedFrom(-1); got != 0 {
		t.Errorf("Expected 0 for out-of-range column, got %d", got)
	}
}

func TestClassicVictory_Completion(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)

	if v.Finished() {
		t.Fatal("playback reported finished before emitting")
	}
	now := start
	finished := false
	for i := 0; i < 5000; i++ {
		now = now.Add(time.Duration(cfg.FixedDT * float64(time.Second)))
		if v.Tick(now) {
			finished = true
			break
		}
	}
	if !finished {
		t.Fatal("playback never reported finished")
	}
	if v.nextEmit != len(v.emitters) {
		t.Errorf("Finished with nextEmit %d of %d", v.nextEmit, len(v.emitters))
	}
	for i := range v.emitters {
		if !v.emitters[i].Settled {
			t.Errorf("Finished with emitter %d unsettled", i)
		}
	}
}

func TestClassicVictory_FlushClearsPending(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)
	tickSteps(v, cfg, start, 50)

	if len(v.pending) == 0 {
		t.Fatal("expected pending clones before flush")
	}
	backend := &recordingBackend{}
	v.EnsureLayer(backend, 800, 500)
	v.FlushPending(backend, newFakeSheet())

	if len(v.pending) != 0 {
		t.Errorf("Expected empty pending after flush, got %d", len(v.pending))
	}
}

func TestClassicVictory_FlushEmptyIsNoop(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)

	backend := &recordingBackend{}
	v.EnsureLayer(backend, 800, 500)
	layer := v.layer
	before := backend.drawCalls()

	v.FlushPending(backend, newFakeSheet())

	if backend.drawCalls() != before {
		t.Errorf("Expected zero draw calls, got %d", backend.drawCalls()-before)
	}
	if v.layer != layer {
		t.Error("Flush of empty queue replaced the layer")
	}
}

func TestClassicVictory_EnsureLayerIdentity(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	v := singleEmitter(cfg, time.Unix(0, 0))
	backend := &recordingBackend{}

	v.EnsureLayer(backend, 800, 500)
	first := v.layer
	if first == nil {
		t.Fatal("EnsureLayer did not create a layer")
	}

	v.EnsureLayer(backend, 800, 500)
	if v.layer != first {
		t.Error("EnsureLayer with unchanged size recreated the layer")
	}
	if backend.surfacesCreated != 1 {
		t.Errorf("Expected 1 surface created, got %d", backend.surfacesCreated)
	}

	v.EnsureLayer(backend, 1024, 700)
	if v.layer == first {
		t.Error("EnsureLayer with new size kept the old layer")
	}
	if backend.surfacesCreated != 2 {
		t.Errorf("Expected 2 surfaces created, got %d", backend.surfacesCreated)
	}
}

func TestClassicVictory_ResizeRebakesSettled(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)
	backend := &recordingBackend{}
	sheet := newFakeSheet()

	tickSteps(v, cfg, start, 5000)
	v.EnsureLayer(backend, 800, 500)
	v.FlushPending(backend, sheet)
	if len(v.pending) != 0 {
		t.Fatal("flush left pending clones")
	}

	v.EnsureLayer(backend, 1024, 700)
	if len(v.pending) != 1 {
		t.Fatalf("Expected 1 rebaked clone after resize, got %d", len(v.pending))
	}
	if v.pending[0].Pos != (Point{X: 100, Y: 400}) {
		t.Errorf("Rebaked clone at %v, expected resting position", v.pending[0].Pos)
	}
}

func TestClassicVictory_DrawBlitsLayerAndInFlight(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)
	backend := &recordingBackend{}
	sheet := newFakeSheet()
	screen := &fakeSurface{w: 800, h: 500}

	// A few steps in the card is airborne.
	tickSteps(v, cfg, start, 10)
	if v.emitters[0].Settled {
		t.Fatal("card settled too early for this test")
	}
	v.Draw(backend, screen, sheet)

	layerBlits := 0
	screenBlits := 0
	for _, c := range backend.blits {
		if c.dst == screen {
			screenBlits++
		} else {
			layerBlits++
		}
	}
	// Pending clones bake into the layer; the screen gets the layer
	// blit plus the live card's face blit.
	if layerBlits == 0 {
		t.Error("expected clone bakes into the layer")
	}
	if screenBlits != 2 {
		t.Errorf("Expected layer blit plus one live card blit, got %d", screenBlits)
	}
}

func TestClassicVictory_StallClampsCatchUp(t *testing.T) {
	cfg := config.DefaultAnimationConfig()
	cfg.EmitInterval = 0.01
	start := time.Unix(0, 0)
	v := singleEmitter(cfg, start)

	// A ten second stall must not grind through 500 physics steps.
	v.Tick(start.Add(10 * time.Second))

	if v.accumulator >= v.cfg.FixedDT {
		t.Errorf("Expected drained or dropped backlog after stall, accumulator %v", v.accumulator)
	}
	if len(v.pending) > v.cfg.MaxCatchUpSteps+1 {
		t.Errorf("Stall produced %d clones, expected at most %d", len(v.pending), v.cfg.MaxCatchUpSteps+1)
	}
}
