package mahjong

type blockKind int

const (
	blockSequence blockKind = iota // 顺子
	blockTriplet                   // 刻子
	blockKan                       // 杠子
)

// block 和了形中的一个面子，顺子记最小的牌
type block struct {
	kind     blockKind
	tile     TileType
	open     bool // 副露，或荣和完成的刻子（按明刻计）
	fromMeld bool
}

func (b block) contains(tt TileType) bool {
	if b.kind == blockSequence {
		return tt >= b.tile && tt <= b.tile+2
	}
	return b.tile == tt
}

func (b block) hasYaochu() bool {
	if b.kind == blockSequence {
		return b.tile.Number() == 1 || b.tile.Number() == 7
	}
	return b.tile.IsYaochu()
}

func (b block) isTripletLike() bool {
	return b.kind == blockTriplet || b.kind == blockKan
}

type waitShape int

const (
	waitRyanmen waitShape = iota // 两面
	waitKanchan                  // 嵌张
	waitPenchan                  // 边张
	waitShanpon                  // 双碰
	waitTanki                    // 单骑
	waitSpecial                  // 七对子/国士
)

// agariShape 一种拆解方式 + 和了牌落在哪个位置
type agariShape struct {
	pair    TileType
	blocks  []block
	wait    waitShape
	chiitoi bool
	kokushi bool
}

func meldBlocks(melds []Meld) []block {
	out := make([]block, 0, len(melds))
	for _, m := range melds {
		b := block{tile: m.Kind(), open: m.IsOpen(), fromMeld: true}
		switch m.Type {
		case MeldChi:
			b.kind = blockSequence
		case MeldPon:
			b.kind = blockTriplet
		default:
			b.kind = blockKan
		}
		out = append(out, b)
	}
	return out
}

// enumerateConcealed 枚举暗手（含和了牌）所有 雀头+面子 的拆法
func enumerateConcealed(h Hand34, need int) [][]block {
	var out [][]block
	for p := 0; p < NumTileTypes; p++ {
		if h[p] < 2 {
			continue
		}
		work := h
		work[p] -= 2
		collectBlocks(&work, need, nil, func(blocks []block) {
			shape := make([]block, 0, len(blocks)+1)
			// 第一个元素借用 kind=-1 记录雀头
			shape = append(shape, block{kind: -1, tile: TileType(p)})
			shape = append(shape, blocks...)
			out = append(out, shape)
		})
	}
	return out
}

func collectBlocks(h *Hand34, need int, cur []block, emit func([]block)) {
	i := -1
	for k := 0; k < NumTileTypes; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if need == 0 {
		if i == -1 {
			emit(cur)
		}
		return
	}
	if i == -1 {
		return
	}
	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		collectBlocks(h, need-1, append(cur, block{kind: blockTriplet, tile: TileType(i)}), emit)
		(*h)[i] += 3
	}
	if isNumberTile(i) && i+2 < NumTileTypes && suitOf(i) == suitOf(i+2) &&
		(*h)[i+1] > 0 && (*h)[i+2] > 0 {
		(*h)[i]--
		(*h)[i+1]--
		(*h)[i+2]--
		collectBlocks(h, need-1, append(cur, block{kind: blockSequence, tile: TileType(i)}), emit)
		(*h)[i]++
		(*h)[i+1]++
		(*h)[i+2]++
	}
}

// agariShapes 所有可能的和了形，concealed14 为暗手加和了牌
func agariShapes(concealed14 Hand34, melds []Meld, winTile TileType, tsumo bool) []agariShape {
	var out []agariShape
	if len(melds) == 0 {
		if IsAgariKokushi(concealed14) {
			return []agariShape{{kokushi: true, wait: waitSpecial, pair: kokushiPair(concealed14)}}
		}
		if IsAgariChiitoi(concealed14) {
			out = append(out, agariShape{chiitoi: true, wait: waitTanki, pair: winTile})
		}
	}

	fixed := meldBlocks(melds)
	for _, raw := range enumerateConcealed(concealed14, 4-len(melds)) {
		pair := raw[0].tile
		concealedBlocks := raw[1:]

		if pair == winTile {
			blocks := append(append([]block(nil), concealedBlocks...), fixed...)
			out = append(out, agariShape{pair: pair, blocks: blocks, wait: waitTanki})
		}
		seen := map[[2]int]bool{}
		for i, b := range concealedBlocks {
			if !b.contains(winTile) {
				continue
			}
			key := [2]int{int(b.kind), int(b.tile)}
			if seen[key] {
				continue
			}
			seen[key] = true

			blocks := append([]block(nil), concealedBlocks...)
			var wait waitShape
			if b.kind == blockTriplet {
				wait = waitShanpon
				if !tsumo {
					blocks[i].open = true
				}
			} else {
				wait = sequenceWait(b.tile, winTile)
			}
			blocks = append(blocks, fixed...)
			out = append(out, agariShape{pair: pair, blocks: blocks, wait: wait})
		}
	}
	return out
}

func sequenceWait(start, win TileType) waitShape {
	switch win - start {
	case 1:
		return waitKanchan
	case 0:
		if start.Number() == 7 {
			return waitPenchan
		}
		return waitRyanmen
	default:
		if start.Number() == 1 {
			return waitPenchan
		}
		return waitRyanmen
	}
}

func kokushiPair(h Hand34) TileType {
	for _, idx := range kokushiTiles {
		if h[idx] == 2 {
			return TileType(idx)
		}
	}
	return -1
}
