package game

// 纸牌游戏常量
// 图集尺寸需要与 assets/images/cards.png 的切片布局保持一致

const (
	// DeckSize 标准牌组张数
	DeckSize = 52

	// SpriteColumns 卡牌图集的列数（A~K 共13列）
	SpriteColumns = 13

	// SpriteRows 卡牌图集的行数（四种花色各一行）
	SpriteRows = 4

	// FoundationPiles 基础堆（收牌堆）数量
	FoundationPiles = 4

	// TableauPiles 牌桌列数
	TableauPiles = 7

	// DefaultCardWidth 无图集时的默认卡牌宽度（像素）
	DefaultCardWidth = 120

	// DefaultCardHeight 无图集时的默认卡牌高度（像素）
	DefaultCardHeight = 168

	// MaxTableauDrawCards 单列最多渲染的卡牌数，超出部分压缩显示
	MaxTableauDrawCards = 19

	// MaxUndoDepth 撤销栈的最大深度，超出后丢弃最旧的快照
	MaxUndoDepth = 128
)
