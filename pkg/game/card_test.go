package game

import "testing"

// TestNewDeck_FullDeck 测试新牌组包含 52 张不重复的牌
func TestNewDeck_FullDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("Expected %d cards, got %d", DeckSize, len(deck))
	}
	seen := map[int]bool{}
	for _, c := range deck {
		if c.FaceUp {
			t.Errorf("card %v dealt face up", c)
		}
		if seen[c.SpriteIndex] {
			t.Errorf("duplicate sprite index %d", c.SpriteIndex)
		}
		seen[c.SpriteIndex] = true
	}
}

// TestNewCard_SpriteIndex 测试图集下标按 行*13+列 编码
func TestNewCard_SpriteIndex(t *testing.T) {
	tests := []struct {
		suit Suit
		rank Rank
		want int
	}{
		{Spades, Ace, 0},
		{Spades, King, 12},
		{Hearts, Ace, 13},
		{Diamonds, Seven, 2*13 + 6},
		{Clubs, King, 3*13 + 12},
	}
	for _, tt := range tests {
		c := NewCard(tt.suit, tt.rank)
		if c.SpriteIndex != tt.want {
			t.Errorf("%v%v: sprite index %d, want %d", tt.suit, tt.rank, c.SpriteIndex, tt.want)
		}
	}
}

// TestSuit_Color 测试红黑判定
func TestSuit_Color(t *testing.T) {
	if Spades.Color() != Black || Clubs.Color() != Black {
		t.Error("spades/clubs should be black")
	}
	if Hearts.Color() != Red || Diamonds.Color() != Red {
		t.Error("hearts/diamonds should be red")
	}
}

// TestShuffleDeck_Deterministic 测试同种子洗牌结果一致
func TestShuffleDeck_Deterministic(t *testing.T) {
	a := NewDeck()
	b := NewDeck()
	ShuffleDeck(a, 12345)
	ShuffleDeck(b, 12345)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("deck diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}

	c := NewDeck()
	ShuffleDeck(c, 54321)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical shuffles")
	}
}

// TestPile_PushPopTop 测试牌堆基本操作
func TestPile_PushPopTop(t *testing.T) {
	var p Pile
	if _, ok := p.Top(); ok {
		t.Error("empty pile reported a top card")
	}
	if _, ok := p.Pop(); ok {
		t.Error("empty pile popped a card")
	}

	ace := NewCard(Spades, Ace)
	two := NewCard(Spades, Two)
	p.Push(ace)
	p.Push(two)

	if top, _ := p.Top(); top != two {
		t.Errorf("Expected top %v, got %v", two, top)
	}
	if p.Len() != 2 {
		t.Errorf("Expected length 2, got %d", p.Len())
	}
	if card, _ := p.Pop(); card != two {
		t.Errorf("Expected pop %v, got %v", two, card)
	}
	if p.Len() != 1 {
		t.Errorf("Expected length 1 after pop, got %d", p.Len())
	}
}
