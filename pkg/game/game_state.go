package game

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Klondike（经典纸牌接龙）的核心规则状态
//
// 状态由四部分组成：
//   - Stock: 抽牌堆（背面朝上）
//   - Waste: 弃牌堆（正面朝上，仅顶牌可操作）
//   - Foundations: 4个收牌堆，按花色从A到K收齐后获胜
//   - Tableaus: 7个牌桌列，交替颜色降序接龙
//
// 所有操作方法对非法输入（越界列号、空堆）直接返回 false/零值，
// 不会 panic，调用方无需预先校验。

// DrawMode 抽牌模式
type DrawMode uint8

const (
	// DrawOne 每次从抽牌堆翻1张
	DrawOne DrawMode = iota
	// DrawThree 每次从抽牌堆翻3张
	DrawThree
)

func (m DrawMode) String() string {
	if m == DrawThree {
		return "draw3"
	}
	return "draw1"
}

// StockAction 点击抽牌堆的结果
type StockAction struct {
	Drawn    int // 翻到弃牌堆的张数
	Recycled int // 回收到抽牌堆的张数
}

// GameState 一局游戏的完整状态
type GameState struct {
	Stock       Pile
	Waste       Pile
	Foundations [FoundationPiles]Pile
	Tableaus    [TableauPiles]Pile
	Mode        DrawMode
	Score       int
	Moves       int
	Seed        uint64

	// 撤销快照栈，最旧的在前
	undoStack []GameState
}

// NewGameState 创建空的游戏状态（未发牌）
func NewGameState() *GameState {
	return &GameState{}
}

// DealNewGame 用随机种子开始新的一局
func (gs *GameState) DealNewGame(mode DrawMode) error {
	seed, err := randomSeed()
	if err != nil {
		return err
	}
	gs.dealWithSeed(mode, seed)
	return nil
}

// DealAgain 用相同的种子重新发牌（重玩本局）
func (gs *GameState) DealAgain() error {
	seed := gs.Seed
	if seed == 0 {
		var err error
		seed, err = randomSeed()
		if err != nil {
			return err
		}
	}
	gs.dealWithSeed(gs.Mode, seed)
	return nil
}

// DealWithSeed 用指定种子发牌，供测试和验证工具使用
func (gs *GameState) DealWithSeed(mode DrawMode, seed uint64) {
	gs.dealWithSeed(mode, seed)
}

func (gs *GameState) dealWithSeed(mode DrawMode, seed uint64) {
	deck := NewDeck()
	ShuffleDeck(deck, seed)

	gs.Mode = mode
	gs.Score = 0
	gs.Moves = 0
	gs.Seed = seed
	gs.Stock.Cards = nil
	gs.Waste.Cards = nil
	for i := range gs.Foundations {
		gs.Foundations[i].Cards = nil
	}
	for i := range gs.Tableaus {
		gs.Tableaus[i].Cards = nil
	}
	gs.undoStack = nil

	// 牌桌第i列发i+1张，仅最后一张正面朝上
	for column := 0; column < TableauPiles; column++ {
		count := column + 1
		cards := make([]Card, 0, count)
		for idx := 0; idx < count; idx++ {
			card := deck[len(deck)-1]
			deck = deck[:len(deck)-1]
			card.FaceUp = idx == count-1
			cards = append(cards, card)
		}
		gs.Tableaus[column].Cards = cards
	}

	// 剩余的牌全部背面朝上进抽牌堆
	for i := range deck {
		deck[i].FaceUp = false
	}
	gs.Stock.Cards = deck
}

// StockClick 点击抽牌堆：有牌则翻牌，没牌则回收弃牌堆
func (gs *GameState) StockClick() StockAction {
	if gs.Stock.Len() == 0 {
		return StockAction{Recycled: gs.recycleStock()}
	}
	return StockAction{Drawn: gs.drawFromStock()}
}

func (gs *GameState) drawFromStock() int {
	drawCount := 1
	if gs.Mode == DrawThree {
		drawCount = 3
	}
	if drawCount > gs.Stock.Len() {
		drawCount = gs.Stock.Len()
	}
	moved := 0
	for i := 0; i < drawCount; i++ {
		card, ok := gs.Stock.Pop()
		if !ok {
			break
		}
		card.FaceUp = true
		gs.Waste.Push(card)
		moved++
	}
	if moved > 0 {
		gs.Moves++
	}
	return moved
}

func (gs *GameState) recycleStock() int {
	moved := 0
	for {
		card, ok := gs.Waste.Pop()
		if !ok {
			break
		}
		card.FaceUp = false
		gs.Stock.Push(card)
		moved++
	}
	if moved > 0 {
		gs.Moves++
	}
	return moved
}

// MoveWasteToFoundation 弃牌堆顶牌移到指定收牌堆
func (gs *GameState) MoveWasteToFoundation(foundation int) bool {
	if foundation < 0 || foundation >= FoundationPiles {
		return false
	}
	card, ok := gs.Waste.Top()
	if !ok || !gs.CanAcceptFoundation(foundation, card) {
		return false
	}
	gs.Waste.Pop()
	return gs.PlaceOnFoundation(foundation, card)
}

// MoveWasteToTableau 弃牌堆顶牌移到指定牌桌列
func (gs *GameState) MoveWasteToTableau(column int) bool {
	if column < 0 || column >= TableauPiles {
		return false
	}
	card, ok := gs.Waste.Top()
	if !ok {
		return false
	}
	top, hasTop := gs.Tableaus[column].Top()
	if !canPlaceOnTableau(card, top, hasTop) {
		return false
	}
	gs.Waste.Pop()
	gs.Tableaus[column].Push(card)
	gs.Moves++
	return true
}

// MoveTableauToFoundation 牌桌列顶牌移到指定收牌堆，成功后自动翻开下一张
func (gs *GameState) MoveTableauToFoundation(column, foundation int) bool {
	if column < 0 || column >= TableauPiles || foundation < 0 || foundation >= FoundationPiles {
		return false
	}
	card, ok := gs.Tableaus[column].Top()
	if !ok || !card.FaceUp || !gs.CanAcceptFoundation(foundation, card) {
		return false
	}
	gs.Tableaus[column].Pop()
	if gs.PlaceOnFoundation(foundation, card) {
		gs.RevealTableauTop(column)
		return true
	}
	return false
}

// ExtractTableauStack 从牌桌列取出从 index 开始的整段接龙
// 段内必须全部正面朝上且构成合法的交替颜色降序，否则返回 nil
func (gs *GameState) ExtractTableauStack(column, index int) []Card {
	if column < 0 || column >= TableauPiles {
		return nil
	}
	pile := &gs.Tableaus[column]
	if index < 0 || index >= pile.Len() {
		return nil
	}
	if !pile.Cards[index].FaceUp {
		return nil
	}
	stack := pile.Cards[index:]
	if !isValidTableauRun(stack) {
		return nil
	}
	extracted := make([]Card, len(stack))
	copy(extracted, stack)
	pile.Cards = pile.Cards[:index]
	return extracted
}

// CancelTableauStack 将取出的接龙段放回原列（拖拽取消）
func (gs *GameState) CancelTableauStack(column int, stack []Card) {
	if column < 0 || column >= TableauPiles {
		return
	}
	gs.Tableaus[column].Cards = append(gs.Tableaus[column].Cards, stack...)
}

// CanAcceptTableauStack 判断牌桌列能否接收整段接龙
func (gs *GameState) CanAcceptTableauStack(column int, stack []Card) bool {
	if column < 0 || column >= TableauPiles || len(stack) == 0 {
		return false
	}
	if !isValidTableauRun(stack) {
		return false
	}
	top, hasTop := gs.Tableaus[column].Top()
	return canPlaceOnTableau(stack[0], top, hasTop)
}

// PlaceTableauStack 将整段接龙放到牌桌列
func (gs *GameState) PlaceTableauStack(column int, stack []Card) bool {
	if !gs.CanAcceptTableauStack(column, stack) {
		return false
	}
	gs.Tableaus[column].Cards = append(gs.Tableaus[column].Cards, stack...)
	gs.Moves++
	return true
}

// RevealTableauTop 翻开牌桌列顶牌（如果背面朝上）
func (gs *GameState) RevealTableauTop(column int) {
	if column < 0 || column >= TableauPiles {
		return
	}
	pile := &gs.Tableaus[column]
	if n := pile.Len(); n > 0 && !pile.Cards[n-1].FaceUp {
		pile.Cards[n-1].FaceUp = true
		gs.Score += 5
	}
}

// CanAcceptFoundation 判断收牌堆能否接收该牌
func (gs *GameState) CanAcceptFoundation(foundation int, card Card) bool {
	if foundation < 0 || foundation >= FoundationPiles {
		return false
	}
	top, hasTop := gs.Foundations[foundation].Top()
	return canPlaceOnFoundation(card, top, hasTop)
}

// PlaceOnFoundation 将牌放到收牌堆并计分
func (gs *GameState) PlaceOnFoundation(foundation int, card Card) bool {
	if !gs.CanAcceptFoundation(foundation, card) {
		return false
	}
	gs.Foundations[foundation].Push(card)
	gs.Moves++
	gs.Score += 10
	return true
}

// MoveWasteToAnyFoundation 弃牌堆顶牌自动找收牌堆
func (gs *GameState) MoveWasteToAnyFoundation() bool {
	card, ok := gs.Waste.Top()
	if !ok {
		return false
	}
	for idx := 0; idx < FoundationPiles; idx++ {
		if gs.CanAcceptFoundation(idx, card) {
			gs.Waste.Pop()
			return gs.PlaceOnFoundation(idx, card)
		}
	}
	return false
}

// MoveTableauTopToAnyFoundation 牌桌列顶牌自动找收牌堆
func (gs *GameState) MoveTableauTopToAnyFoundation(column int) bool {
	if column < 0 || column >= TableauPiles {
		return false
	}
	card, ok := gs.Tableaus[column].Top()
	if !ok || !card.FaceUp {
		return false
	}
	for idx := 0; idx < FoundationPiles; idx++ {
		if gs.CanAcceptFoundation(idx, card) {
			gs.Tableaus[column].Pop()
			if gs.PlaceOnFoundation(idx, card) {
				gs.RevealTableauTop(column)
				return true
			}
			return false
		}
	}
	return false
}

// WasteTop 返回弃牌堆顶牌
func (gs *GameState) WasteTop() (Card, bool) {
	return gs.Waste.Top()
}

// WasteCount 弃牌堆张数
func (gs *GameState) WasteCount() int {
	return gs.Waste.Len()
}

// StockCount 抽牌堆张数
func (gs *GameState) StockCount() int {
	return gs.Stock.Len()
}

// TableauColumn 返回指定牌桌列的卡牌切片（只读）
func (gs *GameState) TableauColumn(column int) []Card {
	if column < 0 || column >= TableauPiles {
		return nil
	}
	return gs.Tableaus[column].Cards
}

// IsWon 四个收牌堆全部收齐13张即获胜
func (gs *GameState) IsWon() bool {
	for i := range gs.Foundations {
		if gs.Foundations[i].Len() != 13 {
			return false
		}
	}
	return true
}

// ForceCompleteFoundations 调试用：把所有牌按花色收进收牌堆直接获胜
// 已经获胜或者桌面没有任何牌时返回 false
func (gs *GameState) ForceCompleteFoundations() bool {
	if gs.IsWon() {
		return false
	}

	initialFoundationCards := 0
	var foundationSuits [FoundationPiles]*Suit
	collected := make([]Card, 0, DeckSize)
	for idx := range gs.Foundations {
		initialFoundationCards += gs.Foundations[idx].Len()
		if top, ok := gs.Foundations[idx].Top(); ok {
			suit := top.Suit
			foundationSuits[idx] = &suit
		}
		collected = append(collected, gs.Foundations[idx].Cards...)
		gs.Foundations[idx].Cards = nil
	}
	collected = append(collected, gs.Stock.Cards...)
	collected = append(collected, gs.Waste.Cards...)
	for idx := range gs.Tableaus {
		collected = append(collected, gs.Tableaus[idx].Cards...)
	}
	if len(collected) == 0 {
		return false
	}
	totalCards := len(collected)

	// 按花色分组后按点数排序
	var perSuit [FoundationPiles][]Card
	for _, card := range collected {
		card.FaceUp = true
		row := card.Suit.Row()
		perSuit[row] = append(perSuit[row], card)
	}
	for row := range perSuit {
		sortCardsByRank(perSuit[row])
	}

	// 已有花色的收牌堆保持花色不变，空堆按剩余花色依次分配
	var used [FoundationPiles]bool
	for _, suit := range foundationSuits {
		if suit != nil {
			used[suit.Row()] = true
		}
	}
	remaining := make([]Suit, 0, FoundationPiles)
	for suit := Spades; suit <= Clubs; suit++ {
		if !used[suit.Row()] {
			remaining = append(remaining, suit)
		}
	}
	for idx := range foundationSuits {
		if foundationSuits[idx] == nil {
			var suit Suit
			if len(remaining) > 0 {
				suit = remaining[0]
				remaining = remaining[1:]
			} else {
				suit = Suit(idx % FoundationPiles)
			}
			foundationSuits[idx] = &suit
		}
		gs.Foundations[idx].Cards = perSuit[foundationSuits[idx].Row()]
		perSuit[foundationSuits[idx].Row()] = nil
	}

	added := totalCards - initialFoundationCards
	if added > 0 {
		gs.Moves += added
		gs.Score += added * 10
	}
	gs.Stock.Cards = nil
	gs.Waste.Cards = nil
	for idx := range gs.Tableaus {
		gs.Tableaus[idx].Cards = nil
	}
	return true
}

// Clone 深拷贝当前状态（不含撤销栈），供撤销快照和动画种子使用
func (gs *GameState) Clone() *GameState {
	clone := &GameState{
		Mode:  gs.Mode,
		Score: gs.Score,
		Moves: gs.Moves,
		Seed:  gs.Seed,
	}
	clone.Stock.Cards = append([]Card(nil), gs.Stock.Cards...)
	clone.Waste.Cards = append([]Card(nil), gs.Waste.Cards...)
	for i := range gs.Foundations {
		clone.Foundations[i].Cards = append([]Card(nil), gs.Foundations[i].Cards...)
	}
	for i := range gs.Tableaus {
		clone.Tableaus[i].Cards = append([]Card(nil), gs.Tableaus[i].Cards...)
	}
	return clone
}

// PushUndo 保存当前状态快照，栈满时丢弃最旧的快照
func (gs *GameState) PushUndo() {
	snapshot := gs.Clone()
	if len(gs.undoStack) >= MaxUndoDepth {
		copy(gs.undoStack, gs.undoStack[1:])
		gs.undoStack = gs.undoStack[:len(gs.undoStack)-1]
	}
	gs.undoStack = append(gs.undoStack, *snapshot)
}

// Undo 恢复到上一个快照，栈空时返回 false
func (gs *GameState) Undo() bool {
	if len(gs.undoStack) == 0 {
		return false
	}
	snapshot := gs.undoStack[len(gs.undoStack)-1]
	stack := gs.undoStack[:len(gs.undoStack)-1]
	*gs = snapshot
	gs.undoStack = stack
	return true
}

// CanUndo 撤销栈是否非空
func (gs *GameState) CanUndo() bool {
	return len(gs.undoStack) > 0
}

func isValidTableauRun(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	for _, card := range cards {
		if !card.FaceUp {
			return false
		}
	}
	for i := 0; i+1 < len(cards); i++ {
		upper, lower := cards[i], cards[i+1]
		if upper.Suit.Color() == lower.Suit.Color() {
			return false
		}
		if upper.Rank != lower.Rank+1 {
			return false
		}
	}
	return true
}

func canPlaceOnFoundation(card Card, top Card, hasTop bool) bool {
	if !hasTop {
		return card.Rank == Ace
	}
	return card.Suit == top.Suit && card.Rank == top.Rank+1
}

func canPlaceOnTableau(card Card, top Card, hasTop bool) bool {
	if !hasTop {
		return card.Rank == King
	}
	return top.FaceUp && card.Suit.Color() != top.Suit.Color() && card.Rank+1 == top.Rank
}

func sortCardsByRank(cards []Card) {
	// 单个花色最多13张，插入排序足够
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && cards[j].Rank < cards[j-1].Rank; j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}

func randomSeed() (uint64, error) {
	var bytes [8]byte
	if _, err := rand.Read(bytes[:]); err != nil {
		return 0, fmt.Errorf("读取随机种子失败: %w", err)
	}
	return binary.LittleEndian.Uint64(bytes[:]), nil
}
