package scenes

import (
	"image"
	"time"

	"github.com/wyatan/klondike/pkg/game"
)

// handleClick 牌桌鼠标点击分发
//
// 第一次点击选中来源堆，第二次点击尝试移动；双击顶牌自动上收牌堆。
func (s *GameScene) handleClick(x, y int) {
	now := s.clock()
	double := s.isDoubleClick(now, x, y)
	s.lastClickAt = now
	s.lastClickX = x
	s.lastClickY = y

	pt := image.Pt(x, y)
	switch {
	case pt.In(s.stockRect()):
		s.state.PushUndo()
		action := s.state.StockClick()
		if action.Drawn == 0 && action.Recycled == 0 {
			s.state.Undo()
		}
		s.sel = selection{}
	case pt.In(s.wasteRect()):
		s.clickWaste(double)
	default:
		if f, ok := s.foundationAt(pt); ok {
			s.clickFoundation(f)
			return
		}
		if col, index, ok := s.tableauAt(pt); ok {
			s.clickTableau(col, index, double)
			return
		}
		s.sel = selection{}
	}
}

func (s *GameScene) isDoubleClick(now time.Time, x, y int) bool {
	if s.lastClickAt.IsZero() || now.Sub(s.lastClickAt) > doubleClickWindow {
		return false
	}
	dx, dy := x-s.lastClickX, y-s.lastClickY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= doubleClickSlop && dy <= doubleClickSlop
}

func (s *GameScene) clickWaste(double bool) {
	if s.state.WasteCount() == 0 {
		s.sel = selection{}
		return
	}
	if double {
		if s.tryMove(s.state.MoveWasteToAnyFoundation) {
			s.sel = selection{}
		}
		return
	}
	if s.sel.kind == selectWaste {
		s.sel = selection{}
		return
	}
	s.sel = selection{kind: selectWaste}
}

func (s *GameScene) clickFoundation(foundation int) {
	switch s.sel.kind {
	case selectWaste:
		s.tryMove(func() bool { return s.state.MoveWasteToFoundation(foundation) })
	case selectTableau:
		col := s.sel.column
		if s.sel.index == s.state.Tableaus[col].Len()-1 {
			s.tryMove(func() bool { return s.state.MoveTableauToFoundation(col, foundation) })
		}
	}
	s.sel = selection{}
}

func (s *GameScene) clickTableau(column, index int, double bool) {
	pile := s.state.Tableaus[column].Cards

	if double && index == len(pile)-1 && index >= 0 {
		s.sel = selection{}
		s.tryMove(func() bool { return s.state.MoveTableauTopToAnyFoundation(column) })
		return
	}

	if s.sel.kind == selectNone {
		if index >= 0 && index < len(pile) && pile[index].FaceUp {
			s.sel = selection{kind: selectTableau, column: column, index: index}
		}
		return
	}

	switch s.sel.kind {
	case selectWaste:
		s.tryMove(func() bool { return s.state.MoveWasteToTableau(column) })
	case selectTableau:
		if s.sel.column == column {
			// 同列再点：换选中起点或取消
			s.sel = selection{}
			if index >= 0 && index < len(pile) && pile[index].FaceUp {
				s.sel = selection{kind: selectTableau, column: column, index: index}
			}
			return
		}
		from, start := s.sel.column, s.sel.index
		s.tryMove(func() bool { return s.moveTableauStack(from, start, column) })
	}
	s.sel = selection{}
}

// moveTableauStack 把 from 列 start 起的牌叠移到 to 列
func (s *GameScene) moveTableauStack(from, start, to int) bool {
	stack := s.state.ExtractTableauStack(from, start)
	if stack == nil {
		return false
	}
	if !s.state.PlaceTableauStack(to, stack) {
		s.state.CancelTableauStack(from, stack)
		return false
	}
	s.state.RevealTableauTop(from)
	return true
}

// tryMove 带撤销快照执行一次移动，成功后检查胜利
func (s *GameScene) tryMove(move func() bool) bool {
	s.state.PushUndo()
	if !move() {
		s.state.Undo()
		return false
	}
	s.checkWin()
	return true
}

func (s *GameScene) stockRect() image.Rectangle {
	return s.metrics.CardRect(s.metrics.ColumnX(0), s.metrics.TopY())
}

func (s *GameScene) wasteRect() image.Rectangle {
	return s.metrics.CardRect(s.metrics.ColumnX(1), s.metrics.TopY())
}

func (s *GameScene) foundationRect(foundation int) image.Rectangle {
	return s.metrics.CardRect(s.metrics.ColumnX(3+foundation), s.metrics.TopY())
}

func (s *GameScene) foundationAt(pt image.Point) (int, bool) {
	for f := 0; f < game.FoundationPiles; f++ {
		if pt.In(s.foundationRect(f)) {
			return f, true
		}
	}
	return 0, false
}

// tableauAt 命中检测牌桌列，返回列号和列内卡牌下标。
// 空列命中基础格时下标为 -1。
func (s *GameScene) tableauAt(pt image.Point) (column, index int, ok bool) {
	for col := 0; col < game.TableauPiles; col++ {
		x := s.metrics.ColumnX(col)
		if pt.X < x || pt.X >= x+s.metrics.CardW {
			continue
		}
		pile := s.state.Tableaus[col].Cards
		if len(pile) == 0 {
			if pt.In(s.metrics.CardRect(x, s.metrics.TableauY())) {
				return col, -1, true
			}
			continue
		}
		y := s.metrics.TableauY()
		tops := make([]int, len(pile))
		for i := range pile {
			if i > 0 {
				off := s.metrics.FaceDownOffset
				if pile[i-1].FaceUp {
					off = s.metrics.FaceUpOffset
				}
				y += off
			}
			tops[i] = y
		}
		// 从最上面的牌往下找第一张包含点击点的
		for i := len(pile) - 1; i >= 0; i-- {
			if pt.In(s.metrics.CardRect(x, tops[i])) {
				return col, i, true
			}
		}
	}
	return 0, 0, false
}
