package mahjong

import "fmt"

type MeldSnapshot struct {
	Type   MeldType `json:"type" bson:"type"`
	Tiles  []int    `json:"tiles" bson:"tiles"`
	Called int      `json:"called" bson:"called"`
	From   int      `json:"from" bson:"from"`
}

type RiverSnapshot struct {
	Tile      int  `json:"tile" bson:"tile"`
	Called    bool `json:"called" bson:"called"`
	Riichi    bool `json:"riichi" bson:"riichi"`
	Tsumogiri bool `json:"tsumogiri" bson:"tsumogiri"`
}

type HandSnapshot struct {
	Tiles []int           `json:"tiles" bson:"tiles"`
	Melds []MeldSnapshot  `json:"melds" bson:"melds"`
	Drawn int             `json:"drawn" bson:"drawn"` // 没有摸牌时为 -1
	River []RiverSnapshot `json:"river" bson:"river"`
}

// RoundSnapshot 一局的完整状态，可以用 JSON/BSON 保存后恢复
type RoundSnapshot struct {
	Rules         Rules                    `json:"rules" bson:"rules"`
	Board         ScoreBoard               `json:"board" bson:"board"`
	Seed          uint64                   `json:"seed" bson:"seed"`
	Wall          WallSnapshot             `json:"wall" bson:"wall"`
	Hands         [NumPlayers]HandSnapshot `json:"hands" bson:"hands"`
	History       []Event                  `json:"history" bson:"history"`
	Stage         Stage                    `json:"stage" bson:"stage"`
	Riichi        [NumPlayers]bool         `json:"riichi" bson:"riichi"`
	DoubleRiichi  [NumPlayers]bool         `json:"double_riichi" bson:"double_riichi"`
	Ippatsu       [NumPlayers]bool         `json:"ippatsu" bson:"ippatsu"`
	TempFuriten   [NumPlayers]bool         `json:"temp_furiten" bson:"temp_furiten"`
	RiichiFuriten [NumPlayers]bool         `json:"riichi_furiten" bson:"riichi_furiten"`
	Kans          [NumPlayers]int          `json:"kans" bson:"kans"`
	RiichiPending int                      `json:"riichi_pending" bson:"riichi_pending"`
	CallMade      bool                     `json:"call_made" bson:"call_made"`
	PendingDora   int                      `json:"pending_dora" bson:"pending_dora"`
	Rinshan       bool                     `json:"rinshan" bson:"rinshan"`
	LastTile      int                      `json:"last_tile" bson:"last_tile"`
	Kuikae        []TileType               `json:"kuikae,omitempty" bson:"kuikae,omitempty"`
	Result        *RoundResult             `json:"result,omitempty" bson:"result,omitempty"`
}

func tileIndices(tiles []Tile) []int {
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = t.Index()
	}
	return out
}

// Snapshot 不修改状态
func (s *RoundState) Snapshot() *RoundSnapshot {
	snap := &RoundSnapshot{
		Rules:         s.rules,
		Board:         s.board,
		Seed:          s.seed,
		Wall:          s.wall.snapshot(),
		History:       s.history.Events(),
		Stage:         s.stage.clone(),
		Riichi:        s.riichi,
		DoubleRiichi:  s.doubleRiichi,
		Ippatsu:       s.ippatsu,
		TempFuriten:   s.tempFuriten,
		RiichiFuriten: s.riichiFuriten,
		Kans:          s.kans,
		RiichiPending: s.riichiPending,
		CallMade:      s.callMade,
		PendingDora:   s.pendingDora,
		Rinshan:       s.rinshan,
		LastTile:      s.lastTile.Index(),
		Kuikae:        append([]TileType(nil), s.kuikae...),
		Result:        s.result.clone(),
	}
	for seat, h := range s.hands {
		hs := HandSnapshot{Tiles: tileIndices(h.tiles), Drawn: -1}
		if d, ok := h.Drawn(); ok {
			hs.Drawn = d.Index()
		}
		for _, m := range h.melds {
			hs.Melds = append(hs.Melds, MeldSnapshot{
				Type:   m.Type,
				Tiles:  tileIndices(m.Tiles),
				Called: m.Called.Index(),
				From:   m.From,
			})
		}
		for _, e := range s.rivers[seat].entries {
			hs.River = append(hs.River, RiverSnapshot{
				Tile:      e.Tile.Index(),
				Called:    e.Called,
				Riichi:    e.Riichi,
				Tsumogiri: e.Tsumogiri,
			})
		}
		snap.Hands[seat] = hs
	}
	return snap
}

// RestoreRoundState 由快照重建局面，数据不一致时返回 MalformedInputError
func RestoreRoundState(snap *RoundSnapshot) (*RoundState, error) {
	if snap == nil {
		return nil, newMalformed("快照为空")
	}
	if err := snap.Rules.Validate(); err != nil {
		return nil, newMalformed("规则非法: %v", err)
	}
	if snap.Board.Dealer < 0 || snap.Board.Dealer >= NumPlayers {
		return nil, newMalformed("庄家座位非法: %d", snap.Board.Dealer)
	}
	if snap.Stage.Kind < StageAfterDraw || snap.Stage.Kind > StageRoundEnd ||
		snap.Stage.Actor < 0 || snap.Stage.Actor >= NumPlayers {
		return nil, newMalformed("阶段非法: %s", snap.Stage)
	}
	for _, p := range snap.Stage.Pending {
		if p < 0 || p >= NumPlayers || p == snap.Stage.Actor {
			return nil, newMalformed("响应座位非法: %d", p)
		}
	}
	if snap.RiichiPending < -1 || snap.RiichiPending >= NumPlayers {
		return nil, newMalformed("立直座位非法: %d", snap.RiichiPending)
	}
	if snap.Stage.Kind == StageRoundEnd && snap.Result == nil {
		return nil, newMalformed("已结束的局面缺少结算")
	}

	red := snap.Rules.RedFives
	wall, err := restoreWall(snap.Wall, red)
	if err != nil {
		return nil, err
	}
	tile := func(idx int) (Tile, error) {
		if idx < 0 || idx >= TileLimit {
			return Tile{}, newMalformed("牌编号越界: %d", idx)
		}
		return TileFromIndex(idx, red), nil
	}
	tiles := func(idx []int) ([]Tile, error) {
		out := make([]Tile, 0, len(idx))
		for _, i := range idx {
			t, err := tile(i)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	}

	s := &RoundState{
		rules:         snap.Rules,
		board:         snap.Board,
		seed:          snap.Seed,
		searcher:      DefaultSearcher(),
		wall:          wall,
		stage:         snap.Stage.clone(),
		riichi:        snap.Riichi,
		doubleRiichi:  snap.DoubleRiichi,
		ippatsu:       snap.Ippatsu,
		tempFuriten:   snap.TempFuriten,
		riichiFuriten: snap.RiichiFuriten,
		kans:          snap.Kans,
		riichiPending: snap.RiichiPending,
		callMade:      snap.CallMade,
		pendingDora:   snap.PendingDora,
		rinshan:       snap.Rinshan,
		kuikae:        append([]TileType(nil), snap.Kuikae...),
		result:        snap.Result.clone(),
	}
	if s.lastTile, err = tile(snap.LastTile); err != nil {
		return nil, err
	}
	for _, e := range snap.History {
		if e.Seat < 0 || e.Seat >= NumPlayers {
			return nil, newMalformed("历史记录座位非法: %d", e.Seat)
		}
		s.history.append(e.Seat, e.Action)
	}

	for seat, hs := range snap.Hands {
		concealed, err := tiles(hs.Tiles)
		if err != nil {
			return nil, err
		}
		h := newHand(concealed)
		for _, ms := range hs.Melds {
			mt, err := tiles(ms.Tiles)
			if err != nil {
				return nil, err
			}
			called, err := tile(ms.Called)
			if err != nil {
				return nil, err
			}
			if len(mt) < 3 || len(mt) > 4 || ms.Type < MeldChi || ms.Type > MeldAddedKan {
				return nil, newMalformed("座位 %d 副露非法: %+v", seat, ms)
			}
			h.melds = append(h.melds, Meld{Type: ms.Type, Tiles: mt, Called: called, From: ms.From})
		}
		if hs.Drawn >= 0 {
			d, err := tile(hs.Drawn)
			if err != nil {
				return nil, err
			}
			if !h.Has(d) {
				return nil, newMalformed("座位 %d 摸到的牌 %s 不在手中", seat, d)
			}
			h.drawn, h.hasDrawn = d, true
		}
		s.hands[seat] = h

		r := &River{}
		for _, rs := range hs.River {
			t, err := tile(rs.Tile)
			if err != nil {
				return nil, err
			}
			r.push(RiverEntry{Tile: t, Called: rs.Called, Riichi: rs.Riichi, Tsumogiri: rs.Tsumogiri})
		}
		s.rivers[seat] = r
	}

	if err := s.checkInvariants(); err != nil {
		return nil, newMalformed("快照不一致: %v", err)
	}
	return s, nil
}

// String 调试用
func (s *RoundSnapshot) String() string {
	return fmt.Sprintf("seed=%d %s %s history=%d", s.Seed, s.Board, s.Stage, len(s.History))
}
