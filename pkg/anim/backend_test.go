package anim

import (
	"image"
	"image/color"

	"github.com/wyatan/klondike/pkg/render"
)

// fakeSurface stands in for an offscreen image in tests.
type fakeSurface struct {
	w, h int
}

func (s *fakeSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.w, s.h)
}

type blitCall struct {
	dst     render.Surface
	dstRect image.Rectangle
	src     render.Surface
	srcRect image.Rectangle
}

// recordingBackend counts draw calls instead of rasterizing.
type recordingBackend struct {
	surfacesCreated int
	fills           []image.Rectangle
	rounded         []image.Rectangle
	blits           []blitCall
}

func (b *recordingBackend) NewSurface(width, height int) render.Surface {
	b.surfacesCreated++
	return &fakeSurface{w: width, h: height}
}

func (b *recordingBackend) FillRect(dst render.Surface, rect image.Rectangle, fill color.Color) {
	b.fills = append(b.fills, rect)
}

func (b *recordingBackend) RoundedRect(dst render.Surface, rect image.Rectangle, radius int, fill, border color.Color) {
	b.rounded = append(b.rounded, rect)
}

func (b *recordingBackend) AlphaBlit(dst render.Surface, dstRect image.Rectangle, src render.Surface, srcRect image.Rectangle) {
	b.blits = append(b.blits, blitCall{dst: dst, dstRect: dstRect, src: src, srcRect: srcRect})
}

func (b *recordingBackend) drawCalls() int {
	return len(b.fills) + len(b.rounded) + len(b.blits)
}

// fakeSheet is a minimal valid card atlas for tests.
type fakeSheet struct {
	cellW, cellH int
	source       render.Surface
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{cellW: 120, cellH: 168, source: &fakeSurface{w: 120 * 13, h: 168 * 4}}
}

func (s *fakeSheet) Valid() bool {
	return s != nil
}

func (s *fakeSheet) CellRect(spriteIndex int) image.Rectangle {
	col := spriteIndex % 13
	row := spriteIndex / 13
	x := col * s.cellW
	y := row * s.cellH
	return image.Rect(x, y, x+s.cellW, y+s.cellH)
}

func (s *fakeSheet) Source() render.Surface {
	return s.source
}
