package game

import "image"

// CardMetrics 当前视口下的卡牌布局尺寸
//
// 所有字段由 ComputeCardMetrics 按视口大小统一缩放得出，
// 每帧重新计算，渲染和命中检测共用同一份。
type CardMetrics struct {
	CardW          int // 卡牌宽度
	CardH          int // 卡牌高度
	ColumnGap      int // 列间距
	RowGap         int // 顶部区域与牌桌区域的间距
	FaceDownOffset int // 背面朝上卡牌的堆叠偏移
	FaceUpOffset   int // 正面朝上卡牌的堆叠偏移
	FaceInset      int // 牌面图案相对卡牌边缘的内缩
	Margin         int // 桌面四周留白
}

// ComputeCardMetrics 根据视口大小计算布局尺寸
//
// 以图集单元尺寸（无图集时用默认尺寸）为基准，先算出完整布局需要的
// 最小宽高，再按视口等比缩放，缩放系数限制在 [0.35, 4.0]。
// gs 用于估算最高的牌桌列；gs 为 nil 时按单张卡牌高度估算。
func ComputeCardMetrics(gs *GameState, cellW, cellH, width, height int) CardMetrics {
	baseW := cellW
	baseH := cellH
	if baseW <= 0 {
		baseW = DefaultCardWidth
	}
	if baseH <= 0 {
		baseH = DefaultCardHeight
	}

	marginBase := maxInt(baseW/4, 16)
	columnGapBase := maxInt(baseW/8, 12)
	rowGapBase := maxInt(baseH/6, 16)
	faceDownOffsetBase := maxInt(baseH/6, 12)
	faceUpOffsetBase := maxInt(baseH/4, 20)
	faceInsetBase := maxInt(baseW/24, 4)

	requiredWidth := marginBase*2 + baseW*TableauPiles + columnGapBase*(TableauPiles-1)
	maxTableauHeight := baseH
	if gs != nil {
		for i := range gs.Tableaus {
			cards := gs.Tableaus[i].Cards
			if len(cards) == 0 {
				continue
			}
			visible := len(cards)
			if visible > MaxTableauDrawCards {
				visible = MaxTableauDrawCards
			}
			start := len(cards) - visible
			columnHeight := baseH
			for _, card := range cards[start : len(cards)-1] {
				if card.FaceUp {
					columnHeight += faceUpOffsetBase
				} else {
					columnHeight += faceDownOffsetBase
				}
			}
			if columnHeight > maxTableauHeight {
				maxTableauHeight = columnHeight
			}
		}
	}
	requiredHeight := marginBase*2 + baseH + rowGapBase + maxTableauHeight

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	scale := minFloat(float64(width)/float64(requiredWidth), float64(height)/float64(requiredHeight))
	if scale < 0.35 {
		scale = 0.35
	}
	if scale > 4.0 {
		scale = 4.0
	}

	scaled := func(value, minimum int) int {
		v := int(float64(value)*scale + 0.5)
		if v < minimum {
			v = minimum
		}
		return v
	}

	return CardMetrics{
		CardW:          scaled(baseW, 8),
		CardH:          scaled(baseH, 12),
		ColumnGap:      scaled(columnGapBase, 6),
		RowGap:         scaled(rowGapBase, 8),
		FaceDownOffset: scaled(faceDownOffsetBase, 6),
		FaceUpOffset:   scaled(faceUpOffsetBase, 10),
		FaceInset:      scaled(faceInsetBase, 2),
		Margin:         scaled(marginBase, 12),
	}
}

// ColumnX 第 column 列的X坐标（顶部区域和牌桌区域共用列网格）
func (m CardMetrics) ColumnX(column int) int {
	return m.Margin + column*(m.CardW+m.ColumnGap)
}

// TopY 顶部区域（抽牌堆/弃牌堆/收牌堆）的Y坐标
func (m CardMetrics) TopY() int {
	return m.Margin
}

// TableauY 牌桌区域的起始Y坐标
func (m CardMetrics) TableauY() int {
	return m.Margin + m.CardH + m.RowGap
}

// CardRect 以 (x, y) 为左上角的卡牌矩形
func (m CardMetrics) CardRect(x, y int) image.Rectangle {
	return image.Rect(x, y, x+m.CardW, y+m.CardH)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
