package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileWallDeterministic(t *testing.T) {
	a := NewTileWall(12345, true)
	b := NewTileWall(12345, true)
	c := NewTileWall(12346, true)
	assert.Equal(t, a.tiles, b.tiles)
	assert.NotEqual(t, a.tiles, c.tiles)

	var seen [TileLimit]bool
	reds := 0
	for _, tile := range a.tiles {
		require.False(t, seen[tile.Index()], "重复的牌 %s", tile)
		seen[tile.Index()] = true
		if tile.Red {
			reds++
		}
	}
	assert.Equal(t, 3, reds)
	assert.Equal(t, deadWallStart, a.Remaining())
	assert.Len(t, a.DoraIndicators(), 1)
}

func TestTileWallDrawUntilEmpty(t *testing.T) {
	w := NewTileWall(1, false)
	n := 0
	for {
		if _, ok := w.Draw(); !ok {
			break
		}
		n++
	}
	assert.Equal(t, deadWallStart, n)
	assert.Zero(t, w.Remaining())
	_, ok := w.DrawReplacement()
	assert.False(t, ok, "活牌区摸完后不能再补岭上牌")
	assert.Len(t, w.RemainingTiles(), deadWallSize)
}

func TestTileWallReplacementShortensLiveWall(t *testing.T) {
	w := NewTileWall(99, true)
	before := w.Remaining()
	for i := 0; i < rinshanTiles; i++ {
		tile, ok := w.DrawReplacement()
		require.True(t, ok)
		assert.Equal(t, w.tiles[deadWallStart+i], tile)
		_, ok = w.RevealDora()
		require.True(t, ok)
		assert.Equal(t, before-i-1, w.Remaining())
	}
	_, ok := w.DrawReplacement()
	assert.False(t, ok)
	_, ok = w.RevealDora()
	assert.False(t, ok, "宝牌指示牌最多 5 张")

	dora := w.DoraIndicators()
	ura := w.UraDoraIndicators()
	require.Len(t, dora, maxDora)
	require.Len(t, ura, maxDora)
	for i := range dora {
		assert.Equal(t, w.tiles[doraStart+2*i], dora[i])
		assert.Equal(t, w.tiles[doraStart+2*i+1], ura[i])
	}
	// 王牌始终 14 张
	assert.Len(t, w.RemainingTiles(), w.Remaining()+deadWallSize)
}

func TestTileWallSnapshotRoundTrip(t *testing.T) {
	w := NewTileWall(7, true)
	for i := 0; i < 30; i++ {
		w.Draw()
	}
	w.DrawReplacement()
	w.RevealDora()

	restored, err := restoreWall(w.snapshot(), true)
	require.NoError(t, err)
	assert.Equal(t, w, restored)

	bad := w.snapshot()
	bad.LiveEnd = deadWallStart
	_, err = restoreWall(bad, true)
	assert.ErrorIs(t, err, ErrMalformedInput)

	bad = w.snapshot()
	bad.Tiles[0] = bad.Tiles[1]
	_, err = restoreWall(bad, true)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestSeedSources(t *testing.T) {
	a, b := NewSeedSequence(42), NewSeedSequence(42)
	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		x := a.NextSeed()
		assert.Equal(t, x, b.NextSeed())
		assert.False(t, seen[x])
		seen[x] = true
	}

	f := NewFixedSeeds(5, 6)
	assert.Equal(t, uint64(5), f.NextSeed())
	assert.Equal(t, uint64(6), f.NextSeed())
	tail := f.NextSeed()
	g := NewFixedSeeds(5, 6)
	g.NextSeed()
	g.NextSeed()
	assert.Equal(t, tail, g.NextSeed(), "用完之后仍然确定")
}

func TestParseTiles(t *testing.T) {
	tiles, err := ParseTiles("1230m 55p 1z")
	require.NoError(t, err)
	require.Len(t, tiles, 7)
	assert.Equal(t, Man5, tiles[3].Type)
	assert.True(t, tiles[3].Red)
	assert.Equal(t, 0, tiles[3].ID)
	assert.Equal(t, 1, tiles[4].ID, "普通 5 从 ID 1 开始")
	assert.Equal(t, East, tiles[6].Type)

	for _, bad := range []string{"8z", "0z", "11111m", "12", "1x"} {
		_, err := ParseTiles(bad)
		assert.Error(t, err, bad)
	}
}
