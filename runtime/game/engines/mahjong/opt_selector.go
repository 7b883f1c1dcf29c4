package mahjong

// LegalActions 某个座位当前的合法动作，按动作编号排序且不重复
func (s *RoundState) LegalActions(seat int) []Action {
	if seat < 0 || seat >= NumPlayers || s.broken != nil {
		return nil
	}
	var out []Action
	switch s.stage.Kind {
	case StageAfterDraw:
		if seat == s.stage.Actor {
			out = s.afterDrawActions(seat)
		}
	case StageAfterRiichi:
		if seat == s.stage.Actor {
			out = s.riichiDiscards(seat)
		}
	case StageAfterCall:
		if seat == s.stage.Actor {
			out = s.discardActions(seat, s.kuikae)
		}
	case StageAfterDiscard:
		if s.isPending(seat) {
			out = append(s.reactions(seat, s.lastTile, s.stage.Actor), NoAction())
		}
	case StageAfterKanAdded:
		if s.isPending(seat) && s.canRon(seat, s.lastTile, true) {
			out = []Action{{Type: ActionRon, Tile: s.lastTile}, NoAction()}
		}
	}
	sortActions(out)
	return dedupActions(out)
}

func (s *RoundState) isPending(seat int) bool {
	for _, p := range s.stage.Pending {
		if p == seat {
			return true
		}
	}
	return false
}

func (s *RoundState) afterDrawActions(seat int) []Action {
	h := s.hands[seat]
	drawn, hasDrawn := h.Drawn()
	var out []Action

	if s.riichi[seat] {
		out = append(out, NewDiscard(drawn))
		if s.canKan() && s.riichiKanKeepsWaits(seat, drawn) {
			out = append(out, Action{Type: ActionClosedKan, Tile: drawn, Using: h.OfType(drawn.Type)})
		}
	} else {
		out = s.discardActions(seat, nil)
		if s.canKan() {
			counts := h.Counts34()
			for tt := 0; tt < NumTileTypes; tt++ {
				if counts[tt] == 4 {
					tiles := h.OfType(TileType(tt))
					out = append(out, Action{Type: ActionClosedKan, Tile: tiles[0], Using: tiles})
				}
			}
			for _, m := range h.melds {
				if m.Type != MeldPon {
					continue
				}
				if tiles := h.OfType(m.Kind()); len(tiles) > 0 {
					out = append(out, Action{Type: ActionAddedKan, Tile: tiles[0]})
				}
			}
		}
		if s.canDeclareRiichi(seat) {
			out = append(out, Action{Type: ActionRiichi})
		}
		if s.canKyuushu(seat) {
			out = append(out, Action{Type: ActionKyuushu})
		}
	}

	if hasDrawn {
		if tile, ok := s.canTsumo(seat); ok {
			out = append(out, Action{Type: ActionTsumo, Tile: tile})
		}
	}
	return out
}

// discardActions 每种打法一个动作，赤5单独算；同值时优先摸切那一张
func (s *RoundState) discardActions(seat int, forbidden []TileType) []Action {
	h := s.hands[seat]
	drawn, hasDrawn := h.Drawn()
	byValue := map[int]Tile{}
	for _, t := range h.tiles {
		skip := false
		for _, f := range forbidden {
			if t.Type == f {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		k := t.valueKey()
		if _, ok := byValue[k]; !ok || (hasDrawn && drawn.Index() == t.Index()) {
			byValue[k] = t
		}
	}
	out := make([]Action, 0, len(byValue))
	for _, t := range byValue {
		out = append(out, NewDiscard(t))
	}
	return out
}

// riichiDiscards 立直宣言后只能打出保持听牌的牌
func (s *RoundState) riichiDiscards(seat int) []Action {
	ok := s.tenpaiDiscards(seat)
	var out []Action
	for _, a := range s.discardActions(seat, nil) {
		if ok[a.Tile.Type] {
			out = append(out, a)
		}
	}
	return out
}

// reactions 对 discarder 打出的 tile 可以做的响应（不含过）
func (s *RoundState) reactions(seat int, tile Tile, discarder int) []Action {
	var out []Action
	if s.canRon(seat, tile, false) {
		out = append(out, Action{Type: ActionRon, Tile: tile})
	}
	// 河底牌只能荣和，立直后不能鸣牌
	if s.wall.Remaining() == 0 || s.riichi[seat] {
		return out
	}

	h := s.hands[seat]
	same := h.OfType(tile.Type)
	var plain, red []Tile
	for _, t := range same {
		if t.Red {
			red = append(red, t)
		} else {
			plain = append(plain, t)
		}
	}

	var pons [][]Tile
	if len(plain) >= 2 {
		pons = append(pons, plain[:2])
	}
	if len(red) > 0 && len(plain) >= 1 {
		pons = append(pons, []Tile{red[0], plain[0]})
	}
	for _, using := range pons {
		a := Action{Type: ActionPon, Tile: tile, Using: append([]Tile(nil), using...)}
		if s.leavesDiscard(seat, a) {
			out = append(out, a)
		}
	}
	if len(same) == 3 && s.canKan() {
		out = append(out, Action{Type: ActionOpenKan, Tile: tile, Using: same})
	}

	if seat == NextSeat(discarder) && tile.Type.IsNumbered() {
		out = append(out, s.chiOptions(seat, tile)...)
	}
	return out
}

// chiOptions 鸣入的牌在顺子中的每个位置、是否用赤5，各一个选项
func (s *RoundState) chiOptions(seat int, tile Tile) []Action {
	h := s.hands[seat]
	n := tile.Type.Number()
	var out []Action
	for pos := 0; pos < 3; pos++ {
		startNum := n - pos
		if startNum < 1 || startNum > 7 {
			continue
		}
		start := tile.Type - TileType(pos)
		var need []TileType
		for k := 0; k < 3; k++ {
			if k != pos {
				need = append(need, start+TileType(k))
			}
		}
		first := variants(h.OfType(need[0]))
		second := variants(h.OfType(need[1]))
		for _, a := range first {
			for _, b := range second {
				act := Action{Type: ActionChi, Tile: tile, Using: []Tile{a, b}}
				if s.leavesDiscard(seat, act) {
					out = append(out, act)
				}
			}
		}
	}
	return out
}

// variants 同种牌中普通牌与赤牌各取一张作为候选
func variants(tiles []Tile) []Tile {
	var out []Tile
	var havePlain, haveRed bool
	for _, t := range tiles {
		if t.Red && !haveRed {
			out = append(out, t)
			haveRed = true
		} else if !t.Red && !havePlain {
			out = append(out, t)
			havePlain = true
		}
	}
	return out
}
