package game

// 卡牌基础模型
// 本文件定义花色、点数和单张卡牌，以及标准52张牌组的生成与洗牌。
// 精灵索引与卡牌图集布局绑定：13列（A~K）x 4行（黑桃/红心/方块/梅花）。

// Suit 花色
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// CardColor 卡牌颜色（红/黑），用于判定接龙规则
type CardColor uint8

const (
	Black CardColor = iota
	Red
)

// Row 返回花色在图集中的行号
func (s Suit) Row() int {
	return int(s)
}

// Color 返回花色对应的颜色
func (s Suit) Color() CardColor {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "♣"
	}
}

// Rank 点数，Ace=1 .. King=13
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Column 返回点数在图集中的列号（0-based）
func (r Rank) Column() int {
	return int(r) - 1
}

func (r Rank) String() string {
	labels := [...]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	if r < Ace || r > King {
		return "?"
	}
	return labels[r-1]
}

// Card 单张卡牌
// SpriteIndex 在创建时根据花色和点数计算，之后不再变化
type Card struct {
	Suit        Suit
	Rank        Rank
	FaceUp      bool
	SpriteIndex int
}

// NewCard 创建一张背面朝上的卡牌
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		Suit:        suit,
		Rank:        rank,
		FaceUp:      false,
		SpriteIndex: suit.Row()*SpriteColumns + rank.Column(),
	}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Pile 一摞卡牌，索引0为最底部
type Pile struct {
	Cards []Card
}

// Top 返回最顶部的卡牌
func (p *Pile) Top() (Card, bool) {
	if len(p.Cards) == 0 {
		return Card{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

// Pop 移除并返回最顶部的卡牌
func (p *Pile) Pop() (Card, bool) {
	if len(p.Cards) == 0 {
		return Card{}, false
	}
	card := p.Cards[len(p.Cards)-1]
	p.Cards = p.Cards[:len(p.Cards)-1]
	return card, true
}

// Push 将卡牌放到最顶部
func (p *Pile) Push(card Card) {
	p.Cards = append(p.Cards, card)
}

// Len 返回卡牌数量
func (p *Pile) Len() int {
	return len(p.Cards)
}

// NewDeck 生成标准52张牌组（未洗牌，全部背面朝上）
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

// ShuffleDeck 使用给定种子对牌组做确定性洗牌（Fisher-Yates）
// 相同种子产生相同的牌序，便于复盘和测试
func ShuffleDeck(deck []Card, seed uint64) {
	rng := newShuffleRNG(seed)
	for i := len(deck) - 1; i >= 1; i-- {
		j := int(rng.next()) % (i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// shuffleRNG 洗牌专用的 xorshift64* 随机数生成器
// 不依赖全局 rand，保证种子到牌序的映射稳定
type shuffleRNG struct {
	state uint64
}

func newShuffleRNG(seed uint64) *shuffleRNG {
	if seed == 0 {
		seed = 0x4D445EED
	}
	return &shuffleRNG{state: seed}
}

func (r *shuffleRNG) next() uint32 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return uint32((x * 0x2545F4914F6CDD1D) >> 32)
}
