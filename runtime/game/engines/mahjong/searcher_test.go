package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mjx/common/cache"
)

func hand34(s string) Hand34 {
	h, _ := Hand34FromTiles(MustParseTiles(s))
	return h
}

func TestSearcherKokushiShantenAndAgari(t *testing.T) {
	s := NewSearcher(nil)

	h13 := hand34("19m19p19s1234567z")
	assert.Equal(t, 0, s.ShantenAll(h13, 0))
	assert.Len(t, s.Waits(h13, 0), 13, "国士十三面")

	h14 := h13
	h14[Man1]++
	assert.True(t, s.IsAgariAll(h14, 0))
	assert.True(t, IsAgariKokushi(h14))
	// 有副露时不考虑国士
	assert.NotEqual(t, 0, s.ShantenAll(h13, 1))
}

func TestSearcherChiitoiShantenAndAgari(t *testing.T) {
	s := NewSearcher(nil)

	h13 := hand34("112233m1122p11s1z")
	assert.Equal(t, 0, s.ShantenAll(h13, 0))
	waits, ukeire := s.WaitsAndUkeire(h13, 0, nil)
	assert.Equal(t, []TileType{East}, waits)
	assert.Equal(t, 3, ukeire)

	visible := [NumTileTypes]uint8{}
	visible[East] = 2
	_, ukeire = s.WaitsAndUkeire(h13, 0, &visible)
	assert.Equal(t, 1, ukeire, "已公开的牌不算进张")

	h14 := h13
	h14[East]++
	assert.True(t, s.IsAgariAll(h14, 0))
	assert.True(t, IsAgariChiitoi(h14))
}

func TestSearcherNormalAgari(t *testing.T) {
	s := NewSearcher(nil)
	assert.True(t, s.IsAgariAll(hand34("123789m123p123s11z"), 0))
	assert.True(t, s.IsAgariAll(hand34("789m123p123s11z"), 1), "一组副露时剩 11 张")
	assert.False(t, s.IsAgariAll(hand34("123789m123p124s11z"), 0))
}

func TestSearcherShanten(t *testing.T) {
	s := NewSearcher(nil)
	cases := []struct {
		hand string
		want int
	}{
		{"123m456p789s1122z", 0},
		{"123m456p789s1123z", 1},
		{"13m456p789s11234z", 2},
		{"1111222233334z", 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, s.ShantenAll(hand34(c.hand), 0), c.hand)
	}
}

func TestSearcherCandidates(t *testing.T) {
	s := NewSearcher(nil)

	// 打 1s 后 123m 123p 123s 78m 11z 听 6m/9m
	cands := s.SeekCandidates(MustParseTiles("12378m123p1123s11z"), 0, nil)
	var found *Candidate
	for i := range cands {
		if cands[i].DiscardType == So1 {
			found = &cands[i]
		}
	}
	require.NotNil(t, found)
	assert.ElementsMatch(t, []TileType{Man6, Man9}, found.Waits)
	assert.Equal(t, 8, found.Ukeire)
	assert.Len(t, found.DiscardOptions, 2)
}

func TestSearcherUkeire(t *testing.T) {
	s := NewSearcher(nil)
	// 一向听：23m 的两面与 11z/22z 的对碰
	h13 := hand34("23m456p789s11z22z5z")
	require.Equal(t, 1, s.ShantenAll(h13, 0))
	kinds, n := s.Ukeire(h13, 0, nil)
	assert.Contains(t, kinds, Man1)
	assert.Contains(t, kinds, Man4)
	assert.Contains(t, kinds, East)
	assert.Greater(t, n, 0)
}

func TestSearcherCachedMatchesUncached(t *testing.T) {
	c, err := cache.NewGeneralCache(1024, 0)
	require.NoError(t, err)
	defer c.Close()
	cached, plain := NewSearcher(c), NewSearcher(nil)

	hands := []string{"19m19p19s1234567z", "112233m1122p11s1z", "123m456p789s1122z", "2468m1357p258s123z"}
	for round := 0; round < 2; round++ {
		for _, h := range hands {
			h13 := hand34(h)
			assert.Equal(t, plain.ShantenAll(h13, 0), cached.ShantenAll(h13, 0), h)
			assert.Equal(t, plain.Waits(h13, 0), cached.Waits(h13, 0), h)
		}
		c.Wait()
	}
}
