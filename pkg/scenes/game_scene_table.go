package scenes

import (
	"image"
	"image/color"

	"github.com/wyatan/klondike/pkg/game"
	"github.com/wyatan/klondike/pkg/render"
)

var (
	tableFelt     = color.RGBA{R: 0, G: 100, B: 40, A: 255}
	emptySlotFill = color.RGBA{R: 0, G: 84, B: 32, A: 255}
	emptySlotEdge = color.RGBA{R: 24, G: 140, B: 64, A: 255}
	selectTint    = color.RGBA{R: 255, G: 220, B: 80, A: 90}
)

// drawTable 绘制桌面背景和所有牌堆
//
// 胜利动画期间收牌堆顶部已发射的牌不再绘制，由动画层接管。
func (s *GameScene) drawTable(backend render.Backend, screen render.Surface) {
	backend.FillRect(screen, screen.Bounds(), tableFelt)

	s.drawStock(backend, screen)
	s.drawWaste(backend, screen)
	s.drawFoundations(backend, screen)
	s.drawTableaus(backend, screen)
}

func (s *GameScene) drawStock(backend render.Backend, screen render.Surface) {
	rect := s.stockRect()
	if s.state.StockCount() == 0 {
		s.drawEmptySlot(backend, screen, rect)
		return
	}
	render.DrawCardBack(backend, screen, rect)
}

func (s *GameScene) drawWaste(backend render.Backend, screen render.Surface) {
	rect := s.wasteRect()
	top, ok := s.state.WasteTop()
	if !ok {
		s.drawEmptySlot(backend, screen, rect)
		return
	}
	render.DrawCardFace(backend, screen, s.sheet, top.SpriteIndex, rect, s.metrics.FaceInset)
	if s.sel.kind == selectWaste {
		backend.FillRect(screen, rect, selectTint)
	}
}

func (s *GameScene) drawFoundations(backend render.Backend, screen render.Surface) {
	for f := 0; f < game.FoundationPiles; f++ {
		rect := s.foundationRect(f)
		pile := s.state.Foundations[f].Cards
		visible := len(pile)
		if s.victory != nil {
			visible -= s.victory.EmittedFrom(f)
		}
		if visible <= 0 {
			s.drawEmptySlot(backend, screen, rect)
			continue
		}
		top := pile[visible-1]
		render.DrawCardFace(backend, screen, s.sheet, top.SpriteIndex, rect, s.metrics.FaceInset)
	}
}

func (s *GameScene) drawTableaus(backend render.Backend, screen render.Surface) {
	for col := 0; col < game.TableauPiles; col++ {
		x := s.metrics.ColumnX(col)
		pile := s.state.Tableaus[col].Cards
		if len(pile) == 0 {
			s.drawEmptySlot(backend, screen, s.metrics.CardRect(x, s.metrics.TableauY()))
			continue
		}
		y := s.metrics.TableauY()
		for i, card := range pile {
			if i > 0 {
				off := s.metrics.FaceDownOffset
				if pile[i-1].FaceUp {
					off = s.metrics.FaceUpOffset
				}
				y += off
			}
			rect := s.metrics.CardRect(x, y)
			if card.FaceUp {
				render.DrawCardFace(backend, screen, s.sheet, card.SpriteIndex, rect, s.metrics.FaceInset)
			} else {
				render.DrawCardBack(backend, screen, rect)
			}
			if s.sel.kind == selectTableau && s.sel.column == col && i >= s.sel.index {
				backend.FillRect(screen, rect, selectTint)
			}
		}
	}
}

func (s *GameScene) drawEmptySlot(backend render.Backend, screen render.Surface, rect image.Rectangle) {
	radius := rect.Dx() / 6
	if radius < 6 {
		radius = 6
	}
	backend.RoundedRect(screen, rect, radius, emptySlotFill, emptySlotEdge)
}
