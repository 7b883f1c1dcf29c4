package mahjong

import "math/rand"

const (
	dealTiles     = 13
	deadWallSize  = 14
	deadWallStart = TileLimit - deadWallSize // 122
	rinshanTiles  = 4
	maxDora       = 5
	doraStart     = deadWallStart + rinshanTiles // 126，之后偶数位为宝牌指示牌，奇数位为里宝牌指示牌
)

// TileWall 牌山
// tiles[0:122) 为配牌与活牌区，tiles[122:126) 为岭上牌，tiles[126:136) 为宝牌/里宝牌指示牌
// 每摸一张岭上牌，活牌区尾部的一张补入王牌，海底相应提前一张
type TileWall struct {
	tiles       [TileLimit]Tile
	drawPos     int
	liveEnd     int
	rinshanUsed int
	doraCount   int
}

// NewTileWall 用 seed 洗牌，同一个 seed 总是得到同一副牌山
func NewTileWall(seed uint64, redFives bool) *TileWall {
	w := &TileWall{liveEnd: deadWallStart, doraCount: 1}
	for i := range w.tiles {
		w.tiles[i] = TileFromIndex(i, redFives)
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(TileLimit, func(i, j int) {
		w.tiles[i], w.tiles[j] = w.tiles[j], w.tiles[i]
	})
	return w
}

// Draw 从活牌区摸一张，摸完返回 false
func (w *TileWall) Draw() (Tile, bool) {
	if w.drawPos >= w.liveEnd {
		return Tile{}, false
	}
	t := w.tiles[w.drawPos]
	w.drawPos++
	return t, true
}

// DrawReplacement 杠后摸岭上牌
func (w *TileWall) DrawReplacement() (Tile, bool) {
	if w.rinshanUsed >= rinshanTiles || w.drawPos >= w.liveEnd {
		return Tile{}, false
	}
	t := w.tiles[deadWallStart+w.rinshanUsed]
	w.rinshanUsed++
	w.liveEnd--
	return t, true
}

// RevealDora 翻开下一张宝牌指示牌
func (w *TileWall) RevealDora() (Tile, bool) {
	if w.doraCount >= maxDora {
		return Tile{}, false
	}
	w.doraCount++
	return w.tiles[doraStart+2*(w.doraCount-1)], true
}

// Remaining 活牌区剩余张数
func (w *TileWall) Remaining() int {
	return w.liveEnd - w.drawPos
}

func (w *TileWall) DoraIndicators() []Tile {
	out := make([]Tile, 0, w.doraCount)
	for i := 0; i < w.doraCount; i++ {
		out = append(out, w.tiles[doraStart+2*i])
	}
	return out
}

func (w *TileWall) UraDoraIndicators() []Tile {
	out := make([]Tile, 0, w.doraCount)
	for i := 0; i < w.doraCount; i++ {
		out = append(out, w.tiles[doraStart+2*i+1])
	}
	return out
}

// RemainingTiles 尚未进入任何手牌的牌（活牌区与王牌）
func (w *TileWall) RemainingTiles() []Tile {
	out := make([]Tile, 0, TileLimit-w.drawPos)
	out = append(out, w.tiles[w.drawPos:deadWallStart]...)
	out = append(out, w.tiles[deadWallStart+w.rinshanUsed:]...)
	return out
}

// Visible34 各牌种已公开的张数（宝牌指示牌）
func (w *TileWall) Visible34(dst *[NumTileTypes]uint8) {
	for _, t := range w.DoraIndicators() {
		dst[t.Type]++
	}
}

// WallSnapshot 牌山的可序列化形式，牌以 0-135 编号保存
type WallSnapshot struct {
	Tiles       []int `json:"tiles" bson:"tiles"`
	DrawPos     int   `json:"draw_pos" bson:"draw_pos"`
	LiveEnd     int   `json:"live_end" bson:"live_end"`
	RinshanUsed int   `json:"rinshan_used" bson:"rinshan_used"`
	DoraCount   int   `json:"dora_count" bson:"dora_count"`
}

func (w *TileWall) snapshot() WallSnapshot {
	s := WallSnapshot{
		Tiles:       make([]int, TileLimit),
		DrawPos:     w.drawPos,
		LiveEnd:     w.liveEnd,
		RinshanUsed: w.rinshanUsed,
		DoraCount:   w.doraCount,
	}
	for i, t := range w.tiles {
		s.Tiles[i] = t.Index()
	}
	return s
}

func restoreWall(s WallSnapshot, redFives bool) (*TileWall, error) {
	if len(s.Tiles) != TileLimit {
		return nil, newMalformed("牌山张数 %d != %d", len(s.Tiles), TileLimit)
	}
	if s.DrawPos < 0 || s.DrawPos > s.LiveEnd || s.LiveEnd > deadWallStart ||
		s.RinshanUsed < 0 || s.RinshanUsed > rinshanTiles || deadWallStart-s.LiveEnd != s.RinshanUsed ||
		s.DoraCount < 1 || s.DoraCount > maxDora {
		return nil, newMalformed("牌山游标越界: %+v", s)
	}
	w := &TileWall{
		drawPos:     s.DrawPos,
		liveEnd:     s.LiveEnd,
		rinshanUsed: s.RinshanUsed,
		doraCount:   s.DoraCount,
	}
	var seen [TileLimit]bool
	for i, idx := range s.Tiles {
		if idx < 0 || idx >= TileLimit || seen[idx] {
			return nil, newMalformed("牌山中的牌编号非法或重复: %d", idx)
		}
		seen[idx] = true
		w.tiles[i] = TileFromIndex(idx, redFives)
	}
	return w, nil
}
