package mahjong

import "sort"

// Hand 玩家手牌：暗手（按编号排序）+ 副露
type Hand struct {
	tiles    []Tile
	melds    []Meld
	drawn    Tile
	hasDrawn bool
}

func newHand(tiles []Tile) *Hand {
	h := &Hand{
		tiles: make([]Tile, 0, 14),
		melds: make([]Meld, 0, 4),
	}
	for _, t := range tiles {
		h.add(t)
	}
	return h
}

// Tiles 暗手副本
func (h *Hand) Tiles() []Tile {
	return append([]Tile(nil), h.tiles...)
}

// Melds 副露副本
func (h *Hand) Melds() []Meld {
	out := make([]Meld, len(h.melds))
	for i, m := range h.melds {
		out[i] = m.clone()
	}
	return out
}

// Drawn 最新摸到的牌，打出或鸣牌后清空
func (h *Hand) Drawn() (Tile, bool) {
	return h.drawn, h.hasDrawn
}

// Size 暗手张数 + 每个副露按 3 张计
func (h *Hand) Size() int {
	return len(h.tiles) + 3*len(h.melds)
}

// IsMenzen 门清，暗杠不破坏门清
func (h *Hand) IsMenzen() bool {
	for _, m := range h.melds {
		if m.IsOpen() {
			return false
		}
	}
	return true
}

func (h *Hand) Counts34() Hand34 {
	return countsOf(h.tiles)
}

func (h *Hand) Count(tt TileType) int {
	n := 0
	for _, t := range h.tiles {
		if t.Type == tt {
			n++
		}
	}
	return n
}

// OfType 暗手中某种牌的全部实体牌
func (h *Hand) OfType(tt TileType) []Tile {
	var out []Tile
	for _, t := range h.tiles {
		if t.Type == tt {
			out = append(out, t)
		}
	}
	return out
}

func (h *Hand) Has(tile Tile) bool {
	for _, t := range h.tiles {
		if t.Index() == tile.Index() {
			return true
		}
	}
	return false
}

func (h *Hand) add(tile Tile) {
	i := sort.Search(len(h.tiles), func(i int) bool { return h.tiles[i].Index() >= tile.Index() })
	h.tiles = append(h.tiles, Tile{})
	copy(h.tiles[i+1:], h.tiles[i:])
	h.tiles[i] = tile
}

func (h *Hand) draw(tile Tile) {
	h.add(tile)
	h.drawn = tile
	h.hasDrawn = true
}

func (h *Hand) remove(tile Tile) bool {
	for i := range h.tiles {
		if h.tiles[i].Index() == tile.Index() {
			h.tiles = append(h.tiles[:i], h.tiles[i+1:]...)
			if h.hasDrawn && h.drawn.Index() == tile.Index() {
				h.hasDrawn = false
			}
			return true
		}
	}
	return false
}

func (h *Hand) clearDrawn() {
	h.hasDrawn = false
}

// isTsumogiri 是否摸切
func (h *Hand) isTsumogiri(tile Tile) bool {
	return h.hasDrawn && h.drawn.Index() == tile.Index()
}

func (h *Hand) clone() *Hand {
	return &Hand{
		tiles:    h.Tiles(),
		melds:    h.Melds(),
		drawn:    h.drawn,
		hasDrawn: h.hasDrawn,
	}
}

// RiverEntry 牌河中的一张，被鸣走的牌已移入对方副露，这里只留记录
type RiverEntry struct {
	Tile      Tile `json:"tile" bson:"tile"`
	Called    bool `json:"called" bson:"called"`
	Riichi    bool `json:"riichi" bson:"riichi"`
	Tsumogiri bool `json:"tsumogiri" bson:"tsumogiri"`
}

type River struct {
	entries []RiverEntry
}

func (r *River) Entries() []RiverEntry {
	return append([]RiverEntry(nil), r.entries...)
}

func (r *River) Len() int { return len(r.entries) }

func (r *River) push(e RiverEntry) {
	r.entries = append(r.entries, e)
}

func (r *River) markLastCalled() {
	if n := len(r.entries); n > 0 {
		r.entries[n-1].Called = true
	}
}

// Contains 自家弃过这种牌（含被鸣走的），用于振听判断
func (r *River) Contains(tt TileType) bool {
	for _, e := range r.entries {
		if e.Tile.Type == tt {
			return true
		}
	}
	return false
}

// tilesInRiver 仍留在牌河中的实体牌
func (r *River) tilesInRiver() []Tile {
	out := make([]Tile, 0, len(r.entries))
	for _, e := range r.entries {
		if !e.Called {
			out = append(out, e.Tile)
		}
	}
	return out
}
