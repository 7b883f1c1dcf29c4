package mahjong

// totalKans 场上杠的总数
func (s *RoundState) totalKans() int {
	n := 0
	for _, k := range s.kans {
		n += k
	}
	return n
}

// canKan 还能不能开杠：最多四杠，且需要能补岭上牌
func (s *RoundState) canKan() bool {
	return s.totalKans() < 4 && s.wall.Remaining() > 0
}

// firstUninterrupted 第一巡且没有人鸣牌（天和/地和/两立直/九种九牌）
func (s *RoundState) firstUninterrupted(seat int) bool {
	return s.rivers[seat].Len() == 0 && !s.callMade
}

// waits 13 张时的听牌
func (s *RoundState) waits(seat int) []TileType {
	h := s.hands[seat]
	return s.searcher.Waits(h.Counts34(), len(h.melds))
}

// isFuriten 舍张振听、同巡振听、立直后见逃
func (s *RoundState) isFuriten(seat int) bool {
	if s.tempFuriten[seat] || s.riichiFuriten[seat] {
		return true
	}
	for _, w := range s.waits(seat) {
		if s.rivers[seat].Contains(w) {
			return true
		}
	}
	return false
}

func (s *RoundState) winSituation(seat int, winTile Tile, tsumo, chankan bool) WinSituation {
	h := s.hands[seat]
	concealed := h.Tiles()
	if tsumo {
		for i, t := range concealed {
			if t.Index() == winTile.Index() {
				concealed = append(concealed[:i], concealed[i+1:]...)
				break
			}
		}
	}
	lastTile := s.wall.Remaining() == 0
	return WinSituation{
		Concealed:         concealed,
		Melds:             h.Melds(),
		WinTile:           winTile,
		Tsumo:             tsumo,
		SeatWind:          s.board.SeatWind(seat),
		RoundWind:         s.board.RoundWind(),
		Riichi:            s.riichi[seat],
		DoubleRiichi:      s.doubleRiichi[seat],
		Ippatsu:           s.ippatsu[seat],
		Haitei:            tsumo && lastTile && !s.rinshan,
		Houtei:            !tsumo && !chankan && lastTile,
		Rinshan:           tsumo && s.rinshan,
		Chankan:           chankan,
		Tenhou:            tsumo && seat == s.board.Dealer && s.firstUninterrupted(seat),
		Chiihou:           tsumo && seat != s.board.Dealer && s.firstUninterrupted(seat),
		OpenTanyao:        s.rules.OpenTanyao,
		DoraIndicators:    s.wall.DoraIndicators(),
		UraDoraIndicators: s.wall.UraDoraIndicators(),
	}
}

// canTsumo 摸到的牌是否能自摸（成和且有役）
func (s *RoundState) canTsumo(seat int) (Tile, bool) {
	drawn, ok := s.hands[seat].Drawn()
	if !ok {
		return Tile{}, false
	}
	_, win := EvaluateWin(s.winSituation(seat, drawn, true, false))
	return drawn, win
}

// canRon 荣和判定：成和、有役、非振听
func (s *RoundState) canRon(seat int, tile Tile, chankan bool) bool {
	h := s.hands[seat]
	work := h.Counts34()
	work[tile.Type]++
	if !s.searcher.IsAgariAll(work, len(h.melds)) {
		return false
	}
	if s.isFuriten(seat) {
		return false
	}
	_, ok := EvaluateWin(s.winSituation(seat, tile, false, chankan))
	return ok
}

// canDeclareRiichi 门清、未立直、点数 ≥1000、牌山至少还能摸一巡、存在听牌打法
func (s *RoundState) canDeclareRiichi(seat int) bool {
	h := s.hands[seat]
	if s.riichi[seat] || !h.IsMenzen() || s.board.Points[seat] < 1000 || s.wall.Remaining() < NumPlayers {
		return false
	}
	return len(s.tenpaiDiscards(seat)) > 0
}

// tenpaiDiscards 打出后仍听牌的牌种
func (s *RoundState) tenpaiDiscards(seat int) map[TileType]bool {
	h := s.hands[seat]
	counts := h.Counts34()
	out := map[TileType]bool{}
	for tt := 0; tt < NumTileTypes; tt++ {
		if counts[tt] == 0 {
			continue
		}
		counts[tt]--
		if s.searcher.ShantenAll(counts, len(h.melds)) == 0 {
			out[TileType(tt)] = true
		}
		counts[tt]++
	}
	return out
}

// canKyuushu 第一巡、无人鸣牌、幺九牌 ≥9 种
func (s *RoundState) canKyuushu(seat int) bool {
	if !s.firstUninterrupted(seat) {
		return false
	}
	counts := s.hands[seat].Counts34()
	kinds := 0
	for _, idx := range kokushiTiles {
		if counts[idx] > 0 {
			kinds++
		}
	}
	return kinds >= 9
}

// riichiKanKeepsWaits 立直后暗杠只允许杠摸到的牌，且不改变听牌
func (s *RoundState) riichiKanKeepsWaits(seat int, drawn Tile) bool {
	h := s.hands[seat]
	counts := h.Counts34()
	if counts[drawn.Type] != 4 {
		return false
	}
	before := counts
	before[drawn.Type]--
	after := counts
	after[drawn.Type] = 0
	w1 := s.searcher.Waits(before, len(h.melds))
	w2 := s.searcher.Waits(after, len(h.melds)+1)
	if len(w1) == 0 || len(w1) != len(w2) {
		return false
	}
	for i := range w1 {
		if w1[i] != w2[i] {
			return false
		}
	}
	return true
}

// forbiddenAfterCall 食替：鸣牌后不能打出同一种牌，吃的话也不能打出顺子另一端的牌
func forbiddenAfterCall(a Action) []TileType {
	forbidden := []TileType{a.Tile.Type}
	if a.Type != ActionChi {
		return forbidden
	}
	start := a.Tile.Type
	for _, t := range a.Using {
		if t.Type < start {
			start = t.Type
		}
	}
	switch a.Tile.Type - start {
	case 0:
		if start.Number() <= 6 {
			forbidden = append(forbidden, start+3)
		}
	case 2:
		if start.Number() >= 2 {
			forbidden = append(forbidden, start-1)
		}
	}
	return forbidden
}

// leavesDiscard 鸣牌后至少要剩一张可以打的牌
func (s *RoundState) leavesDiscard(seat int, a Action) bool {
	used := map[int]bool{}
	for _, t := range a.Using {
		used[t.Index()] = true
	}
	forbidden := forbiddenAfterCall(a)
	for _, t := range s.hands[seat].tiles {
		if used[t.Index()] {
			continue
		}
		ok := true
		for _, f := range forbidden {
			if t.Type == f {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
