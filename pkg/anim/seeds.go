package anim

import (
	"github.com/wyatan/klondike/pkg/game"
)

// Seed describes one card the cascade may launch: the card itself, the
// screen position of the pile it launches from, and which foundation
// column it belongs to (-1 for stock/waste/tableau extras).
type Seed struct {
	Card       game.Card
	Pos        Point
	Foundation int
}

// Emitter tracks the flight of a single card. Identity is the index in
// the controller's emitter slice; insertion order is spawn order.
type Emitter struct {
	Column  int
	Start   Point
	Pos     Point
	VelX    float64
	VelY    float64
	Card    game.Card
	Spawned bool
	Settled bool
	bounces int
}

// Clone is an immutable (card, position) snapshot queued for baking
// into the accumulation layer.
type Clone struct {
	Card game.Card
	Pos  Point
}

// GatherSeeds snapshots every card on the table as launch seeds.
// Foundation cards come first, top of pile first within each column,
// then waste, stock and tableau leftovers for games won early via
// auto-complete being off.
func GatherSeeds(gs *game.GameState, m game.CardMetrics) []Seed {
	if gs == nil {
		return nil
	}
	seeds := make([]Seed, 0, game.DeckSize)
	for f := 0; f < game.FoundationPiles; f++ {
		x := float64(m.ColumnX(foundationColumn(f)))
		y := float64(m.TopY())
		pile := gs.Foundations[f].Cards
		for i := len(pile) - 1; i >= 0; i-- {
			card := pile[i]
			card.FaceUp = true
			seeds = append(seeds, Seed{Card: card, Pos: Point{X: x, Y: y}, Foundation: f})
		}
	}
	wx := float64(m.ColumnX(1))
	wy := float64(m.TopY())
	for i := gs.Waste.Len() - 1; i >= 0; i-- {
		card := gs.Waste.Cards[i]
		card.FaceUp = true
		seeds = append(seeds, Seed{Card: card, Pos: Point{X: wx, Y: wy}, Foundation: -1})
	}
	sx := float64(m.ColumnX(0))
	for i := gs.Stock.Len() - 1; i >= 0; i-- {
		card := gs.Stock.Cards[i]
		card.FaceUp = true
		seeds = append(seeds, Seed{Card: card, Pos: Point{X: sx, Y: wy}, Foundation: -1})
	}
	for col := 0; col < game.TableauPiles; col++ {
		x := float64(m.ColumnX(col))
		y := float64(m.TableauY())
		for i, card := range gs.Tableaus[col].Cards {
			card.FaceUp = true
			off := m.FaceDownOffset
			if i > 0 && gs.Tableaus[col].Cards[i-1].FaceUp {
				off = m.FaceUpOffset
			}
			if i > 0 {
				y += float64(off)
			}
			seeds = append(seeds, Seed{Card: card, Pos: Point{X: x, Y: y}, Foundation: -1})
		}
	}
	return seeds
}

// foundationColumn maps a foundation index to its layout column. The
// top row is stock, waste, a gap, then the four foundations.
func foundationColumn(foundation int) int {
	return 3 + foundation
}

// OrderSeeds arranges seeds in launch order: Kings first, then Queens,
// down to Aces, interleaved across the four foundation columns so the
// cascade alternates left to right. Seeds without a foundation column
// follow at the end in their gathered order.
func OrderSeeds(seeds []Seed) []Seed {
	ordered := make([]Seed, 0, len(seeds))
	var byFoundation [game.FoundationPiles][]Seed
	var extras []Seed
	for _, s := range seeds {
		if s.Foundation >= 0 && s.Foundation < game.FoundationPiles {
			byFoundation[s.Foundation] = append(byFoundation[s.Foundation], s)
		} else {
			extras = append(extras, s)
		}
	}
	for rank := game.King; rank >= game.Ace; rank-- {
		for f := 0; f < game.FoundationPiles; f++ {
			for _, s := range byFoundation[f] {
				if s.Card.Rank == rank {
					ordered = append(ordered, s)
					break
				}
			}
		}
	}
	// Foundation piles with duplicate or missing ranks leave a few
	// seeds unmatched; keep them so every card still launches.
	for f := 0; f < game.FoundationPiles; f++ {
		for _, s := range byFoundation[f] {
			if !containsSeed(ordered, s) {
				ordered = append(ordered, s)
			}
		}
	}
	ordered = append(ordered, extras...)
	return ordered
}

func containsSeed(seeds []Seed, s Seed) bool {
	for _, o := range seeds {
		if o.Card == s.Card && o.Foundation == s.Foundation {
			return true
		}
	}
	return false
}

// FilterFoundation keeps only seeds that launch from a foundation pile.
func FilterFoundation(seeds []Seed) []Seed {
	out := make([]Seed, 0, len(seeds))
	for _, s := range seeds {
		if s.Foundation >= 0 {
			out = append(out, s)
		}
	}
	return out
}

// BuildEmitters turns an ordered seed list into the emitter sequence
// the controller owns. Position mirrors the start until spawn.
func BuildEmitters(seeds []Seed) []Emitter {
	emitters := make([]Emitter, len(seeds))
	for i, s := range seeds {
		emitters[i] = Emitter{
			Column: s.Foundation,
			Start:  s.Pos,
			Pos:    s.Pos,
			Card:   s.Card,
		}
	}
	return emitters
}
