package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// ResourceManager provides loading and caching for image assets so each
// file is decoded at most once. It is NOT thread-safe; all loading
// happens on the game's single update/render goroutine.
//
// Missing optional assets (the card atlas in particular) are not errors
// at this level: LoadCardSheet returns a nil sheet and the renderer
// falls back to placeholder cards.
type ResourceManager struct {
	imageCache map[string]*ebiten.Image
	assets     fs.FS // embedded assets; file system lookup is tried first
}

// NewResourceManager creates a ResourceManager with empty caches.
// assets may be nil, in which case only on-disk paths are consulted.
func NewResourceManager(assets fs.FS) *ResourceManager {
	return &ResourceManager{
		imageCache: make(map[string]*ebiten.Image),
		assets:     assets,
	}
}

// LoadImage loads and caches an image. The path is first resolved
// against the working directory, then against the embedded assets.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[path]; exists {
		return cached, nil
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadCardSheet loads the card atlas and slices it into the 13x4 grid.
// A missing or undersized atlas is downgraded to a nil sheet with a log
// line; the caller keeps running with placeholder rendering.
func (rm *ResourceManager) LoadCardSheet(path string) *SpriteSheet {
	img, err := rm.LoadImage(path)
	if err != nil {
		log.Printf("[ResourceManager] card atlas unavailable: %v (using placeholders)", err)
		return nil
	}
	sheet := NewSpriteSheet(img)
	if sheet == nil {
		log.Printf("[ResourceManager] card atlas %s too small for %dx%d grid (using placeholders)",
			path, SpriteColumns, SpriteRows)
		return nil
	}
	log.Printf("[ResourceManager] card atlas loaded: %s (cell %dx%d)", path, sheet.CellW, sheet.CellH)
	return sheet
}

func (rm *ResourceManager) readFile(path string) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}
	if rm.assets != nil {
		return fs.ReadFile(rm.assets, path)
	}
	return nil, os.ErrNotExist
}
