package render

import (
	"image"
	"image/color"
)

// Card draw strategies. Both take every input explicitly (backend,
// destination, atlas, geometry) instead of closing over shared state, so
// a draw call can never alias the animation state that produced it.

// Card face colors, matching the classic green-table scheme.
var (
	placeholderFill   = color.RGBA{R: 8, G: 96, B: 24, A: 255}
	placeholderBorder = color.RGBA{A: 255}
	faceFill          = color.RGBA{R: 252, G: 252, B: 252, A: 255}
	faceBorder        = color.RGBA{R: 204, G: 204, B: 204, A: 255}
	backFill          = color.RGBA{R: 30, G: 60, B: 150, A: 255}
	backBorder        = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	backPanel         = color.RGBA{R: 12, G: 32, B: 104, A: 255}
	backStripe        = color.RGBA{R: 200, G: 48, B: 64, A: 255}
)

// spriteTrim is the number of edge pixels dropped from every atlas cell
// to avoid bleeding neighbor cells when the blit is scaled.
const spriteTrim = 1

// DrawCardPlaceholder draws the empty-slot / missing-asset card shape:
// a dark green rounded rect with a thin inner outline.
func DrawCardPlaceholder(b Backend, dst Surface, rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	radius := cardRadius(rect)
	b.RoundedRect(dst, rect, radius, placeholderFill, placeholderBorder)
	inner := InsetRect(rect, 3)
	if inner.Empty() {
		return
	}
	innerRadius := radius - 2
	if innerRadius < 4 {
		innerRadius = 4
	}
	b.RoundedRect(dst, inner, innerRadius, placeholderFill, placeholderBorder)
}

// DrawCardBack draws a face-down card.
func DrawCardBack(b Backend, dst Surface, rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	radius := cardRadius(rect)
	b.RoundedRect(dst, rect, radius, backFill, backBorder)

	inner := InsetRect(rect, 4)
	if inner.Empty() {
		return
	}
	innerRadius := radius - 4
	if innerRadius < 4 {
		innerRadius = 4
	}
	b.RoundedRect(dst, inner, innerRadius, backPanel, backPanel)

	stripeWidth := inner.Dx() / 6
	if stripeWidth < 8 {
		stripeWidth = 8
	}
	stripeArea := InsetRect(inner, 6)
	if stripeArea.Empty() || stripeArea.Dx() < stripeWidth {
		return
	}
	stripeRadius := innerRadius - 4
	if stripeRadius < 3 {
		stripeRadius = 3
	}
	left := image.Rect(stripeArea.Min.X, stripeArea.Min.Y, stripeArea.Min.X+stripeWidth, stripeArea.Max.Y)
	right := image.Rect(stripeArea.Max.X-stripeWidth, stripeArea.Min.Y, stripeArea.Max.X, stripeArea.Max.Y)
	b.RoundedRect(dst, left, stripeRadius, backStripe, backStripe)
	b.RoundedRect(dst, right, stripeRadius, backStripe, backStripe)
}

// DrawCardFace draws a face-up card: a white rounded base, then the
// trimmed atlas cell alpha-blitted into the inset interior. Falls back
// to the placeholder when the atlas is unavailable, and skips the blit
// entirely when the destination degenerates after inset clamping.
func DrawCardFace(b Backend, dst Surface, sheet CardSheet, spriteIndex int, rect image.Rectangle, faceInset int) {
	if rect.Empty() {
		return
	}
	if sheet == nil || !sheet.Valid() {
		DrawCardPlaceholder(b, dst, rect)
		return
	}
	src := sheet.CellRect(spriteIndex)
	if src.Empty() {
		DrawCardPlaceholder(b, dst, rect)
		return
	}

	b.RoundedRect(dst, rect, cardRadius(rect), faceFill, faceBorder)

	trimmed := InsetRect(src, spriteTrim)
	if trimmed.Empty() {
		trimmed = src
	}

	// Clamp the inset so the destination can never invert.
	shorter := minInt(rect.Dx(), rect.Dy())
	faceGap := shorter / 32
	if faceGap < 2 {
		faceGap = 2
	}
	inset := faceInset + faceGap
	if maxInset := rect.Dx()/2 - 1; inset > maxInset {
		inset = maxInset
	}
	if maxInset := rect.Dy()/2 - 1; inset > maxInset {
		inset = maxInset
	}
	if inset < 0 {
		inset = 0
	}
	inner := InsetRect(rect, inset)
	if inner.Dx() <= 0 || inner.Dy() <= 0 {
		return
	}
	b.AlphaBlit(dst, inner, sheet.Source(), trimmed)
}

func cardRadius(rect image.Rectangle) int {
	radius := minInt(rect.Dx(), rect.Dy()) / 6
	if radius < 6 {
		radius = 6
	}
	return radius
}
