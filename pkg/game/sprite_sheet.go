package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wyatan/klondike/pkg/render"
)

// SpriteSheet wraps a card atlas image laid out as a fixed grid:
// 13 columns (Ace..King) by 4 rows (one per suit). Cell size is derived
// from the image bounds, so any resolution works as long as the grid
// layout matches.
//
// A nil *SpriteSheet is a valid "no atlas" value; callers fall back to
// placeholder rendering in that case.
type SpriteSheet struct {
	Image *ebiten.Image
	CellW int
	CellH int
}

// NewSpriteSheet slices the atlas into the fixed card grid.
// Returns nil if the image is missing or too small to hold the grid.
func NewSpriteSheet(img *ebiten.Image) *SpriteSheet {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	cellW := bounds.Dx() / SpriteColumns
	cellH := bounds.Dy() / SpriteRows
	if cellW < 2 || cellH < 2 {
		return nil
	}
	return &SpriteSheet{Image: img, CellW: cellW, CellH: cellH}
}

// Valid reports whether the sheet can be used as a blit source.
func (s *SpriteSheet) Valid() bool {
	return s != nil && s.Image != nil && s.CellW > 0 && s.CellH > 0
}

// Source returns the atlas as a render surface for blitting.
func (s *SpriteSheet) Source() render.Surface {
	if s == nil {
		return nil
	}
	return render.ImageSurface{Image: s.Image}
}

// CellRect returns the source rectangle of the given sprite index
// within the atlas. Out-of-range indices return the zero rectangle.
func (s *SpriteSheet) CellRect(spriteIndex int) image.Rectangle {
	if !s.Valid() || spriteIndex < 0 || spriteIndex >= SpriteColumns*SpriteRows {
		return image.Rectangle{}
	}
	col := spriteIndex % SpriteColumns
	row := spriteIndex / SpriteColumns
	x := s.Image.Bounds().Min.X + col*s.CellW
	y := s.Image.Bounds().Min.Y + row*s.CellH
	return image.Rect(x, y, x+s.CellW, y+s.CellH)
}
