package realtime

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mjx/core/domain/repository"
	"mjx/runtime/game/engines/mahjong"
)

// fakeRedis 按 recordRankingScript 的语义在内存中累加
type fakeRedis struct {
	hashes map[string]map[string]string
	calls  int
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{hashes: map[string]map[string]string{}}
}

func (f *fakeRedis) hincr(key, field string, n int) {
	h, ok := f.hashes[key]
	if !ok {
		h = map[string]string{}
		f.hashes[key] = h
	}
	cur, _ := strconv.Atoi(h[field])
	h[field] = strconv.Itoa(cur + n)
}

func (f *fakeRedis) EvalScript(_ context.Context, name, _ string, keys []string, args ...any) (any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if name != "recordRanking" || len(args) != 2*len(keys) {
		return nil, fmt.Errorf("unexpected script call %s", name)
	}
	for i, key := range keys {
		f.hincr(key, "games", 1)
		f.hincr(key, fmt.Sprintf("rank%v", args[i]), 1)
		f.hincr(key, "points", args[i+len(keys)].(int))
	}
	return int64(len(keys)), nil
}

func (f *fakeRedis) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hashes[key], nil
}

func result(ranks [4]int, points [4]int) *mahjong.GameResult {
	return &mahjong.GameResult{ID: "g", Ranks: ranks, Points: points}
}

func TestRankingBoardConsume(t *testing.T) {
	redis := newFakeRedis()
	board := NewRankingBoard(redis, [4]string{"rule", "random", "rule", "random"})
	ctx := context.Background()

	require.NoError(t, board.Consume(ctx, result([4]int{1, 2, 3, 4}, [4]int{40000, 30000, 20000, 10000})))
	require.NoError(t, board.Consume(ctx, result([4]int{2, 1, 4, 3}, [4]int{30000, 40000, 10000, 20000})))
	assert.Equal(t, 2, redis.calls)

	standings, err := board.Standings(ctx, "rule", "random", "nobody")
	require.NoError(t, err)
	require.Len(t, standings, 3)

	rule := standings[0]
	assert.Equal(t, 4, rule.Games)
	assert.Equal(t, [4]int{1, 1, 1, 1}, rule.Ranks)
	assert.Equal(t, 100000, rule.Points)
	assert.InDelta(t, 2.5, rule.AverageRank(), 1e-9)

	random := standings[1]
	assert.Equal(t, 4, random.Games)
	assert.Equal(t, [4]int{1, 1, 1, 1}, random.Ranks)

	assert.Equal(t, Standing{Agent: "nobody"}, standings[2])
	assert.Zero(t, standings[2].AverageRank())
}

func TestRankingBoardErrors(t *testing.T) {
	redis := newFakeRedis()
	redis.err = errors.New("connection refused")
	board := NewRankingBoard(redis, [4]string{"a", "b", "c", "d"})

	err := board.Consume(context.Background(), result([4]int{1, 2, 3, 4}, [4]int{}))
	assert.ErrorIs(t, err, repository.ErrRedis)
	_, err = board.Standings(context.Background(), "a")
	assert.ErrorIs(t, err, repository.ErrRedis)
	assert.Error(t, board.Consume(context.Background(), nil))
}

func TestParseStanding(t *testing.T) {
	_, err := parseStanding("a", map[string]string{"games": "x"})
	assert.Error(t, err)
	_, err = parseStanding("a", map[string]string{"rank9": "1"})
	assert.Error(t, err)

	s, err := parseStanding("a", map[string]string{"games": "3", "rank1": "2", "rank4": "1", "points": "-500"})
	require.NoError(t, err)
	assert.Equal(t, Standing{Agent: "a", Games: 3, Ranks: [4]int{2, 0, 0, 1}, Points: -500}, s)
	assert.InDelta(t, 2.0, s.AverageRank(), 1e-9)
}
