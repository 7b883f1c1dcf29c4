package mahjong

import (
	"fmt"

	"mjx/common/log"
)

// WinResult 一家和了的结算
type WinResult struct {
	Winner  int    `json:"winner" bson:"winner"`
	Loser   int    `json:"loser" bson:"loser"` // 自摸为 -1
	WinTile Tile   `json:"win_tile" bson:"win_tile"`
	Score   Score  `json:"score" bson:"score"`
	Points  int    `json:"points" bson:"points"` // 和了者实际获得的点数，含本场与供托
	Hand    []Tile `json:"hand" bson:"hand"`
	Melds   []Meld `json:"melds" bson:"melds"`
}

// RoundResult 一局的结束信息，Deltas 不含局中已经支付的立直棒
type RoundResult struct {
	Kind              RoundEndKind     `json:"kind" bson:"kind"`
	Board             ScoreBoard       `json:"board" bson:"board"` // 结算后的分数板（局数/本场尚未推进）
	Wins              []WinResult      `json:"wins,omitempty" bson:"wins,omitempty"`
	Tenpai            [NumPlayers]bool `json:"tenpai" bson:"tenpai"`
	Deltas            [NumPlayers]int  `json:"deltas" bson:"deltas"`
	SticksTaken       bool             `json:"sticks_taken" bson:"sticks_taken"`
	Renchan           bool             `json:"renchan" bson:"renchan"`
	DoraIndicators    []Tile           `json:"dora_indicators" bson:"dora_indicators"`
	UraDoraIndicators []Tile           `json:"ura_dora_indicators,omitempty" bson:"ura_dora_indicators,omitempty"`
	Seed              uint64           `json:"seed" bson:"seed"`
	Events            []Event          `json:"events" bson:"events"`
}

func (r *RoundResult) clone() *RoundResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Wins = make([]WinResult, len(r.Wins))
	for i, w := range r.Wins {
		w.Hand = append([]Tile(nil), w.Hand...)
		melds := make([]Meld, len(w.Melds))
		for j, m := range w.Melds {
			melds[j] = m.clone()
		}
		w.Melds = melds
		w.Score.Yaku = append([]YakuHan(nil), w.Score.Yaku...)
		c.Wins[i] = w
	}
	c.DoraIndicators = append([]Tile(nil), r.DoraIndicators...)
	c.UraDoraIndicators = append([]Tile(nil), r.UraDoraIndicators...)
	c.Events = make([]Event, len(r.Events))
	for i, e := range r.Events {
		c.Events[i] = Event{Seat: e.Seat, Action: e.Action.clone()}
	}
	return &c
}

// RoundState 一局的完整隐藏信息状态，单线程使用
type RoundState struct {
	rules    Rules
	board    ScoreBoard
	seed     uint64
	searcher *Searcher

	wall    *TileWall
	hands   [NumPlayers]*Hand
	rivers  [NumPlayers]*River
	history ActionHistory
	stage   Stage

	riichi        [NumPlayers]bool
	doubleRiichi  [NumPlayers]bool
	ippatsu       [NumPlayers]bool
	tempFuriten   [NumPlayers]bool
	riichiFuriten [NumPlayers]bool
	kans          [NumPlayers]int
	riichiPending int // 立直宣言牌还没通过的座位，-1 表示没有
	callMade      bool
	pendingDora   int
	rinshan       bool
	lastTile      Tile // 响应窗口中被打出/加杠的牌
	kuikae        []TileType

	result *RoundResult
	broken error
}

// NewRoundState 用 seed 洗牌并配牌，庄家摸第一张
func NewRoundState(rules Rules, board ScoreBoard, seed uint64) (*RoundState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if board.Dealer < 0 || board.Dealer >= NumPlayers {
		return nil, newMalformed("庄家座位非法: %d", board.Dealer)
	}
	s := &RoundState{
		rules:         rules,
		board:         board,
		seed:          seed,
		searcher:      DefaultSearcher(),
		wall:          NewTileWall(seed, rules.RedFives),
		riichiPending: -1,
	}
	s.deal()
	if err := s.drawFor(board.Dealer, false); err != nil {
		return nil, err
	}
	log.Debug("新的一局 %s seed=%d", board, seed)
	return s, nil
}

// deal 从庄家开始 4-4-4-1 配牌
func (s *RoundState) deal() {
	var dealt [NumPlayers][]Tile
	for pass := 0; pass < 4; pass++ {
		n := 4
		if pass == 3 {
			n = 1
		}
		for i := 0; i < NumPlayers; i++ {
			seat := (s.board.Dealer + i) % NumPlayers
			for k := 0; k < n; k++ {
				t, _ := s.wall.Draw()
				dealt[seat] = append(dealt[seat], t)
			}
		}
	}
	for seat := range s.hands {
		s.hands[seat] = newHand(dealt[seat])
		s.rivers[seat] = &River{}
	}
}

func (s *RoundState) Rules() Rules { return s.rules }

func (s *RoundState) Seed() uint64 { return s.seed }

// Board 当前分数板（立直棒在宣言牌通过时就已经扣除）
func (s *RoundState) Board() ScoreBoard { return s.board }

func (s *RoundState) Stage() Stage { return s.stage.clone() }

func (s *RoundState) Done() bool { return s.stage.Kind == StageRoundEnd }

// Result 本局未结束时返回 nil
func (s *RoundState) Result() *RoundResult { return s.result.clone() }

func (s *RoundState) History() []Event { return s.history.Events() }

// Err 状态损坏时返回对应的 InvariantViolationError
func (s *RoundState) Err() error { return s.broken }

func (s *RoundState) WallRemaining() int { return s.wall.Remaining() }

func (s *RoundState) DoraIndicators() []Tile { return s.wall.DoraIndicators() }

// Observe 某个座位的视角，座位越界时返回 nil
func (s *RoundState) Observe(seat int) *Observation {
	if seat < 0 || seat >= NumPlayers {
		return nil
	}
	return &Observation{who: seat, state: s}
}

// Apply 只有一个玩家需要表态时的便捷写法
func (s *RoundState) Apply(seat int, a Action) error {
	return s.Step(map[int]Action{seat: a})
}

// Step 校验全部动作之后才修改状态，校验失败时状态不变
func (s *RoundState) Step(actions map[int]Action) error {
	if s.broken != nil {
		return s.broken
	}
	if s.stage.Kind == StageRoundEnd {
		return ErrRoundOver
	}
	acting := map[int]bool{}
	for _, seat := range s.stage.ActingSeats() {
		acting[seat] = true
	}
	for seat := 0; seat < NumPlayers; seat++ {
		if a, ok := actions[seat]; ok && !acting[seat] {
			return newIllegal(seat, a, "当前不需要该座位行动")
		}
	}
	for seat := range actions {
		if seat < 0 || seat >= NumPlayers {
			return newMalformed("座位越界: %d", seat)
		}
	}

	chosen := make(map[int]Action, len(acting))
	for _, seat := range s.stage.ActingSeats() {
		a, ok := actions[seat]
		if !ok {
			return newIllegal(seat, Action{Type: ActionNoAction}, "缺少动作")
		}
		if err := s.checkWellFormed(seat, a); err != nil {
			return err
		}
		legal, ok := FindAction(s.LegalActions(seat), a)
		if !ok {
			return newIllegal(seat, a, fmt.Sprintf("不在合法动作中 (%s)", s.stage))
		}
		if legal.Type != a.Type || !SameTiles(a, legal) {
			return newIllegal(seat, a, fmt.Sprintf("用牌与合法动作 %s 不符", legal))
		}
		chosen[seat] = legal
	}

	if err := s.apply(chosen); err != nil {
		s.corrupt(err)
		return s.broken
	}
	if err := s.checkInvariants(); err != nil {
		s.corrupt(err)
		return s.broken
	}
	return nil
}

func (s *RoundState) corrupt(err error) {
	s.broken = err
	log.Error("局面状态损坏 seed=%d: %v", s.seed, err)
}

// checkWellFormed 动作引用的牌必须真实存在并由玩家持有
func (s *RoundState) checkWellFormed(seat int, a Action) error {
	if a.Type < ActionDiscard || a.Type > ActionNoAction {
		return newMalformed("未知动作类型: %d", a.Type)
	}
	validTile := func(t Tile) bool {
		return t.Type >= 0 && int(t.Type) < NumTileTypes && t.ID >= 0 && t.ID < 4
	}
	h := s.hands[seat]
	switch a.Type {
	case ActionDiscard, ActionAddedKan, ActionClosedKan:
		if !validTile(a.Tile) || !h.Has(a.Tile) {
			return newMalformed("座位 %d 不持有 %s", seat, a.Tile)
		}
	case ActionChi, ActionPon, ActionOpenKan:
		if !validTile(a.Tile) || !s.stage.Kind.IsReactive() || a.Tile.Index() != s.lastTile.Index() {
			return newMalformed("座位 %d 鸣牌对象不是刚打出的牌: %s", seat, a.Tile)
		}
	}
	for _, t := range a.Using {
		if !validTile(t) || !h.Has(t) {
			return newMalformed("座位 %d 不持有 %s", seat, t)
		}
	}
	return nil
}

func (s *RoundState) apply(chosen map[int]Action) error {
	switch s.stage.Kind {
	case StageAfterDraw, StageAfterRiichi, StageAfterCall:
		seat := s.stage.Actor
		a := chosen[seat]
		switch a.Type {
		case ActionDiscard:
			return s.discard(seat, a.Tile)
		case ActionRiichi:
			s.history.append(seat, a)
			s.stage = Stage{Kind: StageAfterRiichi, Actor: seat}
			return nil
		case ActionClosedKan:
			return s.closedKan(seat, a)
		case ActionAddedKan:
			return s.addedKan(seat, a)
		case ActionTsumo:
			return s.finishTsumo(seat)
		case ActionKyuushu:
			s.history.append(seat, a)
			return s.abort(RoundEndNineTerminals)
		}
	case StageAfterDiscard:
		return s.resolveDiscard(chosen)
	case StageAfterKanAdded:
		return s.resolveChankan(chosen)
	}
	return newInvariant("阶段 %s 无法执行动作 %v", s.stage, chosen)
}

func (s *RoundState) drawFor(seat int, replacement bool) error {
	var (
		t  Tile
		ok bool
	)
	if replacement {
		t, ok = s.wall.DrawReplacement()
	} else {
		t, ok = s.wall.Draw()
	}
	if !ok {
		return newInvariant("需要摸牌但牌山已空 (replacement=%v)", replacement)
	}
	s.hands[seat].draw(t)
	s.rinshan = replacement
	s.kuikae = nil
	s.stage = Stage{Kind: StageAfterDraw, Actor: seat}
	return nil
}

func (s *RoundState) revealPendingDora() {
	for ; s.pendingDora > 0; s.pendingDora-- {
		s.wall.RevealDora()
	}
}

func (s *RoundState) discard(seat int, tile Tile) error {
	h := s.hands[seat]
	declaring := s.stage.Kind == StageAfterRiichi
	firstTurn := s.firstUninterrupted(seat)
	tsumogiri := h.isTsumogiri(tile)
	if !h.remove(tile) {
		return newInvariant("座位 %d 打出不持有的牌 %s", seat, tile)
	}
	h.clearDrawn()
	s.rivers[seat].push(RiverEntry{Tile: tile, Riichi: declaring, Tsumogiri: tsumogiri})
	s.history.append(seat, NewDiscard(tile))

	if s.riichi[seat] {
		s.ippatsu[seat] = false
	}
	if declaring {
		s.riichi[seat] = true
		s.ippatsu[seat] = true
		s.doubleRiichi[seat] = firstTurn
		s.riichiPending = seat
	}
	s.tempFuriten[seat] = false
	s.rinshan = false
	s.kuikae = nil
	s.lastTile = tile
	s.revealPendingDora()

	var pending []int
	for _, o := range seatsAfter(seat) {
		if len(s.reactions(o, tile, seat)) > 0 {
			pending = append(pending, o)
		}
	}
	if len(pending) > 0 {
		s.stage = Stage{Kind: StageAfterDiscard, Actor: seat, Pending: pending}
		return nil
	}
	return s.discardPassed(seat, tile)
}

// markMissed 听这张牌却没有荣和：未立直为同巡振听，立直中为永久振听
func (s *RoundState) markMissed(from int, tile Tile) {
	for _, o := range seatsAfter(from) {
		for _, w := range s.waits(o) {
			if w != tile.Type {
				continue
			}
			if s.riichi[o] {
				s.riichiFuriten[o] = true
			} else {
				s.tempFuriten[o] = true
			}
		}
	}
}

// establishRiichi 立直宣言牌没有被荣和，支付 1000 点立直棒
func (s *RoundState) establishRiichi() {
	if seat := s.riichiPending; seat >= 0 {
		s.board.Points[seat] -= 1000
		s.board.RiichiSticks++
		s.riichiPending = -1
	}
}

func (s *RoundState) abortAfterDiscard() RoundEndKind {
	allRiichi := true
	for _, r := range s.riichi {
		allRiichi = allRiichi && r
	}
	if allRiichi {
		return RoundEndFourRiichi
	}
	if !s.callMade {
		first := s.rivers[0].entries
		same := len(first) == 1 && first[0].Tile.Type.IsWind()
		for seat := 1; same && seat < NumPlayers; seat++ {
			e := s.rivers[seat].entries
			same = len(e) == 1 && e[0].Tile.Type == first[0].Tile.Type
		}
		if same {
			return RoundEndFourWinds
		}
	}
	if s.totalKans() == 4 {
		for _, k := range s.kans {
			if k == 4 {
				return RoundEndNone
			}
		}
		return RoundEndFourKans
	}
	return RoundEndNone
}

// discardPassed 打出的牌没有人鸣牌或荣和
func (s *RoundState) discardPassed(discarder int, tile Tile) error {
	s.markMissed(discarder, tile)
	s.establishRiichi()
	if kind := s.abortAfterDiscard(); kind != RoundEndNone {
		return s.abort(kind)
	}
	if s.wall.Remaining() == 0 {
		return s.exhaustiveDraw()
	}
	return s.drawFor(NextSeat(discarder), false)
}

// resolveDiscard 优先级：荣和 > 碰/大明杠 > 吃；同优先级离打牌者近的优先
func (s *RoundState) resolveDiscard(chosen map[int]Action) error {
	discarder, tile := s.stage.Actor, s.lastTile
	var rons []int
	caller := -1
	for _, seat := range seatsAfter(discarder) {
		a, ok := chosen[seat]
		if !ok {
			continue
		}
		switch a.Type {
		case ActionRon:
			rons = append(rons, seat)
		case ActionPon, ActionOpenKan:
			if caller < 0 || chosen[caller].Type == ActionChi {
				caller = seat
			}
		case ActionChi:
			if caller < 0 {
				caller = seat
			}
		}
	}
	if len(rons) > 0 {
		if len(rons) == 3 && s.rules.ThreeRonAbort {
			return s.abort(RoundEndThreeRon)
		}
		if len(rons) > s.rules.MaxRon {
			rons = rons[:s.rules.MaxRon]
		}
		return s.finishRon(discarder, tile, rons, false)
	}
	if caller < 0 {
		return s.discardPassed(discarder, tile)
	}

	s.markMissed(discarder, tile)
	s.establishRiichi()
	if kind := s.abortAfterDiscard(); kind != RoundEndNone {
		return s.abort(kind)
	}
	return s.applyCall(caller, chosen[caller], discarder)
}

func (s *RoundState) applyCall(seat int, a Action, from int) error {
	h := s.hands[seat]
	for _, t := range a.Using {
		if !h.remove(t) {
			return newInvariant("座位 %d 鸣牌时缺少 %s", seat, t)
		}
	}
	h.clearDrawn()
	s.rivers[from].markLastCalled()

	meld := Meld{Tiles: append(append([]Tile(nil), a.Using...), a.Tile), Called: a.Tile, From: from}
	sortTiles(meld.Tiles)
	switch a.Type {
	case ActionChi:
		meld.Type = MeldChi
	case ActionPon:
		meld.Type = MeldPon
	default:
		meld.Type = MeldOpenKan
	}
	h.melds = append(h.melds, meld)
	s.callMade = true
	s.ippatsu = [NumPlayers]bool{}
	s.history.append(seat, a)

	if meld.Type == MeldOpenKan {
		s.kans[seat]++
		s.pendingDora++
		return s.drawFor(seat, true)
	}
	s.kuikae = forbiddenAfterCall(a)
	s.stage = Stage{Kind: StageAfterCall, Actor: seat}
	return nil
}

func (s *RoundState) closedKan(seat int, a Action) error {
	h := s.hands[seat]
	tiles := h.OfType(a.Tile.Type)
	if len(tiles) != 4 {
		return newInvariant("座位 %d 暗杠 %s 但只有 %d 张", seat, a.Tile.Type, len(tiles))
	}
	for _, t := range tiles {
		h.remove(t)
	}
	h.clearDrawn()
	h.melds = append(h.melds, Meld{Type: MeldClosedKan, Tiles: tiles, Called: a.Tile, From: -1})
	s.kans[seat]++
	s.callMade = true
	s.ippatsu = [NumPlayers]bool{}
	s.history.append(seat, Action{Type: ActionClosedKan, Tile: a.Tile, Using: tiles})
	// 暗杠立即翻宝牌，之前明杠留下的也一起翻
	s.revealPendingDora()
	s.wall.RevealDora()
	return s.drawFor(seat, true)
}

func (s *RoundState) addedKan(seat int, a Action) error {
	h := s.hands[seat]
	idx := -1
	for i, m := range h.melds {
		if m.Type == MeldPon && m.Kind() == a.Tile.Type {
			idx = i
			break
		}
	}
	if idx < 0 || !h.remove(a.Tile) {
		return newInvariant("座位 %d 加杠 %s 没有对应的碰", seat, a.Tile)
	}
	h.clearDrawn()
	m := &h.melds[idx]
	m.Type = MeldAddedKan
	m.Tiles = append(m.Tiles, a.Tile)
	sortTiles(m.Tiles)
	s.history.append(seat, a)
	s.lastTile = a.Tile

	var pending []int
	for _, o := range seatsAfter(seat) {
		if s.canRon(o, a.Tile, true) {
			pending = append(pending, o)
		}
	}
	if len(pending) > 0 {
		s.stage = Stage{Kind: StageAfterKanAdded, Actor: seat, Pending: pending}
		return nil
	}
	return s.completeAddedKan(seat)
}

func (s *RoundState) completeAddedKan(seat int) error {
	s.kans[seat]++
	s.callMade = true
	s.ippatsu = [NumPlayers]bool{}
	s.revealPendingDora()
	s.pendingDora++
	return s.drawFor(seat, true)
}

func (s *RoundState) resolveChankan(chosen map[int]Action) error {
	actor, tile := s.stage.Actor, s.lastTile
	var rons []int
	for _, seat := range seatsAfter(actor) {
		if a, ok := chosen[seat]; ok && a.Type == ActionRon {
			rons = append(rons, seat)
		}
	}
	if len(rons) == 0 {
		s.markMissed(actor, tile)
		return s.completeAddedKan(actor)
	}
	if len(rons) == 3 && s.rules.ThreeRonAbort {
		return s.abort(RoundEndThreeRon)
	}
	if len(rons) > s.rules.MaxRon {
		rons = rons[:s.rules.MaxRon]
	}
	return s.finishRon(actor, tile, rons, true)
}

func (s *RoundState) winResult(seat, loser int, tile Tile, score Score) WinResult {
	h := s.hands[seat]
	return WinResult{
		Winner:  seat,
		Loser:   loser,
		WinTile: tile,
		Score:   score,
		Hand:    h.Tiles(),
		Melds:   h.Melds(),
	}
}

func (s *RoundState) finishRon(loser int, tile Tile, winners []int, chankan bool) error {
	// 荣和时立直宣言不成立
	if s.riichiPending == loser {
		s.riichiPending = -1
	}
	res := &RoundResult{Kind: RoundEndRon}
	for i, w := range winners {
		score, ok := EvaluateWin(s.winSituation(w, tile, false, chankan))
		if !ok {
			return newInvariant("座位 %d 荣和 %s 但不成和", w, tile)
		}
		pay := RonPoints(score.Basic, w == s.board.Dealer)
		gain := pay
		if i == 0 {
			pay += 300 * s.board.Honba
			gain = pay + 1000*s.board.RiichiSticks
		}
		res.Deltas[loser] -= pay
		res.Deltas[w] += gain
		wr := s.winResult(w, loser, tile, score)
		wr.Points = gain
		res.Wins = append(res.Wins, wr)
		if w == s.board.Dealer {
			res.Renchan = true
		}
		s.history.append(w, Action{Type: ActionRon, Tile: tile})
	}
	res.SticksTaken = s.board.RiichiSticks > 0
	s.board.RiichiSticks = 0
	return s.finish(res, loser)
}

func (s *RoundState) finishTsumo(seat int) error {
	drawn, ok := s.hands[seat].Drawn()
	if !ok {
		return newInvariant("座位 %d 自摸但没有摸牌", seat)
	}
	score, ok := EvaluateWin(s.winSituation(seat, drawn, true, false))
	if !ok {
		return newInvariant("座位 %d 自摸 %s 但不成和", seat, drawn)
	}
	dealer := s.board.Dealer
	fromDealer, fromOther := TsumoPoints(score.Basic, seat == dealer)
	res := &RoundResult{Kind: RoundEndTsumo, Renchan: seat == dealer}
	for _, o := range seatsAfter(seat) {
		pay := fromOther
		if o == dealer {
			pay = fromDealer
		}
		pay += 100 * s.board.Honba
		res.Deltas[o] -= pay
		res.Deltas[seat] += pay
	}
	res.Deltas[seat] += 1000 * s.board.RiichiSticks
	res.SticksTaken = s.board.RiichiSticks > 0
	s.board.RiichiSticks = 0
	wr := s.winResult(seat, -1, drawn, score)
	wr.Points = res.Deltas[seat]
	res.Wins = append(res.Wins, wr)
	s.history.append(seat, Action{Type: ActionTsumo, Tile: drawn})
	return s.finish(res, seat)
}

// exhaustiveDraw 荒牌流局，不听者共付 3000 点给听牌者
func (s *RoundState) exhaustiveDraw() error {
	res := &RoundResult{Kind: RoundEndDrawExhaustive}
	n := 0
	for seat := range s.hands {
		h := s.hands[seat]
		res.Tenpai[seat] = s.searcher.ShantenAll(h.Counts34(), len(h.melds)) == 0
		if res.Tenpai[seat] {
			n++
		}
	}
	if n > 0 && n < NumPlayers {
		for seat, t := range res.Tenpai {
			if t {
				res.Deltas[seat] = 3000 / n
			} else {
				res.Deltas[seat] = -3000 / (NumPlayers - n)
			}
		}
	}
	res.Renchan = res.Tenpai[s.board.Dealer]
	return s.finish(res, s.stage.Actor)
}

func (s *RoundState) abort(kind RoundEndKind) error {
	res := &RoundResult{Kind: kind, Renchan: true}
	for seat := range s.hands {
		h := s.hands[seat]
		if h.Size() == 13 {
			res.Tenpai[seat] = s.searcher.ShantenAll(h.Counts34(), len(h.melds)) == 0
		}
	}
	return s.finish(res, s.stage.Actor)
}

func (s *RoundState) finish(res *RoundResult, actor int) error {
	for seat := range s.board.Points {
		s.board.Points[seat] += res.Deltas[seat]
	}
	res.Board = s.board
	res.Seed = s.seed
	res.Events = s.history.Events()
	res.DoraIndicators = s.wall.DoraIndicators()
	for _, w := range res.Wins {
		if s.riichi[w.Winner] {
			res.UraDoraIndicators = s.wall.UraDoraIndicators()
			break
		}
	}
	s.result = res
	s.stage = Stage{Kind: StageRoundEnd, Actor: actor}
	log.Debug("本局结束 %s %s deltas=%v", res.Kind, s.board, res.Deltas)
	return nil
}

// holdsExtra 这个座位此时应持有 14 张
func (s *RoundState) holdsExtra(seat int) bool {
	switch s.stage.Kind {
	case StageAfterDraw, StageAfterRiichi, StageAfterCall:
		return seat == s.stage.Actor
	case StageRoundEnd:
		if seat != s.stage.Actor || s.result == nil {
			return false
		}
		return s.result.Kind == RoundEndTsumo || s.result.Kind == RoundEndNineTerminals
	}
	return false
}

// checkInvariants 牌的守恒与手牌张数
func (s *RoundState) checkInvariants() error {
	var seen [TileLimit]bool
	total := 0
	mark := func(t Tile, where string) error {
		idx := t.Index()
		if idx < 0 || idx >= TileLimit {
			return newInvariant("%s 中出现非法牌 %d", where, idx)
		}
		if seen[idx] {
			return newInvariant("%s 中的 %s 重复出现", where, t)
		}
		seen[idx] = true
		total++
		return nil
	}
	for _, t := range s.wall.RemainingTiles() {
		if err := mark(t, "牌山"); err != nil {
			return err
		}
	}
	for seat := range s.hands {
		h := s.hands[seat]
		for _, t := range h.tiles {
			if err := mark(t, "手牌"); err != nil {
				return err
			}
		}
		for _, m := range h.melds {
			for _, t := range m.Tiles {
				if err := mark(t, "副露"); err != nil {
					return err
				}
			}
		}
		for _, t := range s.rivers[seat].tilesInRiver() {
			if err := mark(t, "牌河"); err != nil {
				return err
			}
		}
		want := 13
		if s.holdsExtra(seat) {
			want = 14
		}
		if h.Size() != want || len(h.melds) > 4 {
			return newInvariant("座位 %d 手牌 %d 张，应为 %d", seat, h.Size(), want)
		}
	}
	if total != TileLimit {
		return newInvariant("牌总数 %d != %d", total, TileLimit)
	}
	return nil
}

func sortTiles(tiles []Tile) {
	for i := 1; i < len(tiles); i++ {
		for j := i; j > 0 && tiles[j].Index() < tiles[j-1].Index(); j-- {
			tiles[j], tiles[j-1] = tiles[j-1], tiles[j]
		}
	}
}
