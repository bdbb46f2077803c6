package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageSurface adapts an *ebiten.Image to the Surface interface.
type ImageSurface struct {
	Image *ebiten.Image
}

// Bounds returns the image bounds.
func (s ImageSurface) Bounds() image.Rectangle {
	if s.Image == nil {
		return image.Rectangle{}
	}
	return s.Image.Bounds()
}

// EbitenBackend implements Backend on top of ebiten images.
// It is stateless; a single value can be shared by the whole app.
type EbitenBackend struct{}

// NewEbitenBackend returns the ebiten-backed drawing backend.
func NewEbitenBackend() EbitenBackend {
	return EbitenBackend{}
}

// NewSurface creates an offscreen ebiten image.
func (EbitenBackend) NewSurface(width, height int) Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return ImageSurface{Image: ebiten.NewImage(width, height)}
}

// FillRect fills a rectangle on the destination image.
func (EbitenBackend) FillRect(dst Surface, rect image.Rectangle, fill color.Color) {
	img := ebitenImage(dst)
	if img == nil || rect.Empty() {
		return
	}
	vector.DrawFilledRect(img,
		float32(rect.Min.X), float32(rect.Min.Y),
		float32(rect.Dx()), float32(rect.Dy()),
		fill, false)
}

// RoundedRect draws a rounded rectangle as a border-colored rounded fill
// with the interior fill inset by one pixel on top. Corner rounding is
// composed from two axis rects plus four corner circles, which keeps the
// call on the stable vector primitives.
func (EbitenBackend) RoundedRect(dst Surface, rect image.Rectangle, radius int, fill, border color.Color) {
	img := ebitenImage(dst)
	if img == nil || rect.Empty() {
		return
	}
	drawRoundedFill(img, rect, radius, border)
	inner := InsetRect(rect, 1)
	if inner.Empty() {
		return
	}
	innerRadius := radius - 1
	if innerRadius < 0 {
		innerRadius = 0
	}
	drawRoundedFill(img, inner, innerRadius, fill)
}

// AlphaBlit draws srcRect of src into dstRect of dst. Ebiten's default
// composite mode is already source-over, so no blend setup is needed.
func (EbitenBackend) AlphaBlit(dst Surface, dstRect image.Rectangle, src Surface, srcRect image.Rectangle) {
	dstImg := ebitenImage(dst)
	srcImg := ebitenImage(src)
	if dstImg == nil || srcImg == nil || dstRect.Empty() || srcRect.Empty() {
		return
	}
	srcRect = srcRect.Intersect(srcImg.Bounds())
	if srcRect.Empty() {
		return
	}
	cell := srcImg.SubImage(srcRect).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(
		float64(dstRect.Dx())/float64(srcRect.Dx()),
		float64(dstRect.Dy())/float64(srcRect.Dy()),
	)
	op.GeoM.Translate(float64(dstRect.Min.X), float64(dstRect.Min.Y))
	dstImg.DrawImage(cell, op)
}

func drawRoundedFill(img *ebiten.Image, rect image.Rectangle, radius int, clr color.Color) {
	maxRadius := minInt(rect.Dx(), rect.Dy()) / 2
	if radius > maxRadius {
		radius = maxRadius
	}
	if radius <= 0 {
		vector.DrawFilledRect(img,
			float32(rect.Min.X), float32(rect.Min.Y),
			float32(rect.Dx()), float32(rect.Dy()),
			clr, false)
		return
	}

	r := float32(radius)
	// Center band full height, side bands between the corner circles.
	vector.DrawFilledRect(img,
		float32(rect.Min.X+radius), float32(rect.Min.Y),
		float32(rect.Dx()-2*radius), float32(rect.Dy()),
		clr, false)
	vector.DrawFilledRect(img,
		float32(rect.Min.X), float32(rect.Min.Y+radius),
		r, float32(rect.Dy()-2*radius),
		clr, false)
	vector.DrawFilledRect(img,
		float32(rect.Max.X-radius), float32(rect.Min.Y+radius),
		r, float32(rect.Dy()-2*radius),
		clr, false)

	vector.DrawFilledCircle(img, float32(rect.Min.X+radius), float32(rect.Min.Y+radius), r, clr, true)
	vector.DrawFilledCircle(img, float32(rect.Max.X-radius), float32(rect.Min.Y+radius), r, clr, true)
	vector.DrawFilledCircle(img, float32(rect.Min.X+radius), float32(rect.Max.Y-radius), r, clr, true)
	vector.DrawFilledCircle(img, float32(rect.Max.X-radius), float32(rect.Max.Y-radius), r, clr, true)
}

func ebitenImage(s Surface) *ebiten.Image {
	if s == nil {
		return nil
	}
	if is, ok := s.(ImageSurface); ok {
		return is.Image
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
