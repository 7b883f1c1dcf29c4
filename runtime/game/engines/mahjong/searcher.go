package mahjong

import (
	"sync"

	"mjx/common/cache"
	"mjx/common/log"
)

type Hand34 [NumTileTypes]uint8

type Candidate struct {
	DiscardType    TileType
	DiscardOptions []Tile     // 实体牌：红5/普通5
	Waits          []TileType // 听哪些牌
	Ukeire         int        // 有效张数
}

// Searcher 和牌/向听/听牌搜索，结果放进进程内共享的 ristretto 缓存
type Searcher struct {
	cache *cache.GeneralCache
}

const searcherCacheEntries = 1 << 20

var (
	defaultSearcher     *Searcher
	defaultSearcherOnce sync.Once
)

// DefaultSearcher 所有对局共用一个缓存
func DefaultSearcher() *Searcher {
	defaultSearcherOnce.Do(func() {
		c, err := cache.NewGeneralCache(searcherCacheEntries, 0)
		if err != nil {
			log.Warn("searcher 缓存创建失败，退化为无缓存: %v", err)
		}
		defaultSearcher = NewSearcher(c)
	})
	return defaultSearcher
}

// NewSearcher c 为 nil 时不缓存
func NewSearcher(c *cache.GeneralCache) *Searcher {
	return &Searcher{cache: c}
}

func (s *Searcher) load(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *Searcher) store(key string, v interface{}) {
	if s.cache != nil {
		s.cache.Set(key, v)
	}
}

// SeekCandidates 弃牌后,有哪些牌听牌，是否允许立直由引擎层判断
func (s *Searcher) SeekCandidates(hand14 []Tile, fixedMelds int, visible *[NumTileTypes]uint8) []Candidate {
	h14, discardOpts := Hand34FromTiles(hand14)
	var out []Candidate

	for i := 0; i < NumTileTypes; i++ {
		if h14[i] == 0 {
			continue
		}

		h13 := h14
		h13[i]--

		waits, ukeire := s.WaitsAndUkeire(h13, fixedMelds, visible)
		if len(waits) == 0 {
			continue
		}

		out = append(out, Candidate{
			DiscardType:    TileType(i),
			DiscardOptions: discardOpts[TileType(i)],
			Waits:          waits,
			Ukeire:         ukeire,
		})
	}

	return out
}

// Waits 13 张（扣除副露）时听哪些牌，无听牌返回 nil
func (s *Searcher) Waits(h13 Hand34, fixedMelds int) []TileType {
	key := "w" + h13.keyWithFixedMelds(fixedMelds)
	if v, ok := s.load(key); ok {
		return append([]TileType(nil), v.([]TileType)...)
	}

	var waits []TileType
	for t := 0; t < NumTileTypes; t++ {
		if h13[t] >= 4 {
			continue
		}
		work := h13
		work[t]++
		if s.IsAgariAll(work, fixedMelds) {
			waits = append(waits, TileType(t))
		}
	}

	s.store(key, append([]TileType(nil), waits...))
	return waits
}

// WaitsAndUkeire 枚举听牌 + 计算进张
func (s *Searcher) WaitsAndUkeire(h13 Hand34, fixedMelds int, visible *[NumTileTypes]uint8) ([]TileType, int) {
	waits := s.Waits(h13, fixedMelds)
	return waits, ukeireByWaits(h13, waits, visible)
}

// ukeireByWaits 计算听牌的进张数
func ukeireByWaits(h13 Hand34, waits []TileType, visible *[NumTileTypes]uint8) int {
	ukeire := 0
	for _, tt := range waits {
		idx := int(tt)
		add := 4 - int(h13[idx])
		if visible != nil {
			add -= int((*visible)[idx])
		}
		if add > 0 {
			ukeire += add
		}
	}
	return ukeire
}

// Ukeire 一向听以上时，能使向听数前进的牌种与张数
func (s *Searcher) Ukeire(h13 Hand34, fixedMelds int, visible *[NumTileTypes]uint8) ([]TileType, int) {
	base := s.ShantenAll(h13, fixedMelds)
	var kinds []TileType
	for t := 0; t < NumTileTypes; t++ {
		if h13[t] >= 4 {
			continue
		}
		work := h13
		work[t]++
		if s.bestAfterDiscard(work, fixedMelds) < base {
			kinds = append(kinds, TileType(t))
		}
	}
	return kinds, ukeireByWaits(h13, kinds, visible)
}

func (s *Searcher) bestAfterDiscard(h14 Hand34, fixedMelds int) int {
	best := 8
	for i := 0; i < NumTileTypes; i++ {
		if h14[i] == 0 {
			continue
		}
		h14[i]--
		if v := s.ShantenAll(h14, fixedMelds); v < best {
			best = v
		}
		h14[i]++
	}
	return best
}

// IsAgariAll 是否和牌
func (s *Searcher) IsAgariAll(h Hand34, fixedMelds int) bool {
	key := "a" + h.keyWithFixedMelds(fixedMelds)
	if v, ok := s.load(key); ok {
		return v.(bool)
	}

	var ok bool
	if fixedMelds > 0 {
		ok = IsAgariNormal(h, fixedMelds)
	} else {
		ok = IsAgariNormal(h, 0) || IsAgariChiitoi(h) || IsAgariKokushi(h)
	}

	s.store(key, ok)
	return ok
}

// IsAgariNormal 普通牌型是否和牌，核心思想，找雀头、组面子
func IsAgariNormal(h Hand34, fixedMelds int) bool {
	need := 4 - fixedMelds // 需要组成的面子数
	if need < 0 || h.Count() != need*3+2 {
		return false
	}

	for j := 0; j < NumTileTypes; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(&work, need) {
			return true
		}
	}
	return false
}

// IsAgariChiitoi 七对子是否和牌，四张相同不算两对
func IsAgariChiitoi(h Hand34) bool {
	pairs := 0
	for i := 0; i < NumTileTypes; i++ {
		switch h[i] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// IsAgariKokushi 国士无双是否和牌
func IsAgariKokushi(h Hand34) bool {
	if h.Count() != 14 {
		return false
	}
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	return unique == 13 && pair
}

func canFormMelds(h *Hand34, need int) bool {
	if need == 0 {
		for i := 0; i < NumTileTypes; i++ {
			if (*h)[i] != 0 {
				return false
			}
		}
		return true
	}

	// 找第一个非 0
	i := -1
	for k := 0; k < NumTileTypes; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return false
	}
	// 刻子
	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		if canFormMelds(h, need-1) {
			(*h)[i] += 3
			return true
		}
		(*h)[i] += 3
	}
	// 顺子（仅数牌）
	if isNumberTile(i) && i+2 < NumTileTypes && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			if canFormMelds(h, need-1) {
				(*h)[i]++
				(*h)[i+1]++
				(*h)[i+2]++
				return true
			}
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
	}

	return false
}

// -------------- 基础工具：转换与 key --------------

func Hand34FromTiles(tiles []Tile) (Hand34, map[TileType][]Tile) {
	var h Hand34
	opts := make(map[TileType][]Tile, NumTileTypes)
	for _, t := range tiles {
		h[int(t.Type)]++
		opts[t.Type] = append(opts[t.Type], t)
	}
	return h, opts
}

func countsOf(tiles []Tile) Hand34 {
	var h Hand34
	for _, t := range tiles {
		h[t.Type]++
	}
	return h
}

func (h Hand34) Count() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

func (h Hand34) keyWithFixedMelds(fixedMelds int) string {
	var b [NumTileTypes + 1]byte
	for i := 0; i < NumTileTypes; i++ {
		b[i] = byte(h[i])
	}
	b[NumTileTypes] = byte(fixedMelds)
	return string(b[:])
}

func isNumberTile(i int) bool { return i >= int(Man1) && i <= int(So9) }

func suitOf(i int) int {
	switch {
	case i >= int(Man1) && i <= int(Man9):
		return 0
	case i >= int(Pin1) && i <= int(Pin9):
		return 1
	case i >= int(So1) && i <= int(So9):
		return 2
	default:
		return -1
	}
}

var kokushiTiles = [13]int{
	int(Man1), int(Man9),
	int(Pin1), int(Pin9),
	int(So1), int(So9),
	int(East), int(South), int(West), int(North),
	int(White), int(Green), int(Red),
}

// ShantenAll 向听数，带副露；0 为听牌，-1 为和了
func (s *Searcher) ShantenAll(h Hand34, fixedMelds int) int {
	key := "s" + h.keyWithFixedMelds(fixedMelds)
	if v, ok := s.load(key); ok {
		return v.(int)
	}

	best := ShantenNormal(h, fixedMelds)
	if fixedMelds == 0 {
		if v := ShantenChiitoi(h); v < best {
			best = v
		}
		if v := ShantenKokushi(h); v < best {
			best = v
		}
	}

	s.store(key, best)
	return best
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h Hand34) int {
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenChiitoi 七对子向听数
func ShantenChiitoi(h Hand34) int {
	pairs := 0
	unique := 0
	for i := 0; i < NumTileTypes; i++ {
		if h[i] > 0 {
			unique++
		}
		if h[i] >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

func ShantenNormal(h Hand34, fixedMelds int) int {
	best := 8 // 一般型最差上界
	work := h
	dfsNormalShanten(&work, fixedMelds, 0, 0, &best)
	return best
}

// dfsNormalShanten 普通牌型向听数搜索 m：当前已经形成的面子数(包含 fixedMelds)、p：雀头数（0/1）、t：搭子数（taatsu）、best：全局最小向听
func dfsNormalShanten(h *Hand34, m int, p int, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}

	sh := 8 - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := -1
	for k := 0; k < NumTileTypes; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}

	if !isNumberTile(i) {
		if (*h)[i] >= 3 {
			(*h)[i] -= 3
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i] += 3
		}

		if p == 0 && (*h)[i] >= 2 {
			(*h)[i] -= 2
			dfsNormalShanten(h, m, 1, t, best)
			(*h)[i] += 2
		}

		if (*h)[i] >= 2 {
			(*h)[i] -= 2
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i] += 2
		}

		(*h)[i]--
		dfsNormalShanten(h, m, p, t, best)
		(*h)[i]++
		return
	}

	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		(*h)[i] += 3
	}

	if i+2 < NumTileTypes && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
	}

	if p == 0 && (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, 1, t, best)
		(*h)[i] += 2
	}

	// 对子当作搭子（双碰）
	if (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, p, t+1, best)
		(*h)[i] += 2
	}

	if i+1 < NumTileTypes && suitOf(i) == suitOf(i+1) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+1]++
		}
	}

	if i+2 < NumTileTypes && suitOf(i) == suitOf(i+2) {
		if (*h)[i] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+2]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+2]++
		}
	}

	(*h)[i]--
	dfsNormalShanten(h, m, p, t, best)
	(*h)[i]++
}
