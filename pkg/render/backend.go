package render

import (
	"image"
	"image/color"
)

// Surface is an opaque drawing target or source. The concrete type is
// backend-specific; callers only ever borrow a Surface for the duration
// of a single draw call and never retain backend internals.
type Surface interface {
	Bounds() image.Rectangle
}

// Backend abstracts the handful of drawing primitives the card renderer
// needs. The production implementation draws on ebiten images; tests use
// a recording fake so draw behavior can be asserted without a display.
type Backend interface {
	// NewSurface creates an offscreen surface of the given size.
	// Sizes below 1x1 are clamped.
	NewSurface(width, height int) Surface

	// FillRect fills an axis-aligned rectangle.
	FillRect(dst Surface, rect image.Rectangle, fill color.Color)

	// RoundedRect draws a filled rounded rectangle with a 1px border.
	RoundedRect(dst Surface, rect image.Rectangle, radius int, fill, border color.Color)

	// AlphaBlit copies srcRect from src into dstRect of dst with
	// source-over alpha compositing, scaling if the sizes differ.
	// Degenerate source or destination rectangles are a no-op.
	AlphaBlit(dst Surface, dstRect image.Rectangle, src Surface, srcRect image.Rectangle)
}

// CardSheet is the sprite-atlas lookup the card draw strategies consume.
// Implementations may be absent or invalid at any time; drawing falls
// back to the placeholder in that case.
type CardSheet interface {
	// Valid reports whether the sheet can serve as a blit source.
	Valid() bool
	// CellRect maps a sprite index to its source rectangle.
	CellRect(spriteIndex int) image.Rectangle
	// Source returns the atlas surface.
	Source() Surface
}

// InsetRect shrinks a rectangle by the given amount on every side.
func InsetRect(rect image.Rectangle, inset int) image.Rectangle {
	return image.Rect(rect.Min.X+inset, rect.Min.Y+inset, rect.Max.X-inset, rect.Max.Y-inset)
}
