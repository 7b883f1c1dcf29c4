package runner

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mjx/runtime/game/agent"
	"mjx/runtime/game/engines/mahjong"
)

func shortRules() mahjong.Rules {
	r := mahjong.DefaultRules()
	r.Rounds, r.MaxRounds = 4, 8
	return r
}

func options(t *testing.T, games, parallel int, names ...string) Options {
	t.Helper()
	opts := Options{Games: games, Parallel: parallel, Seed: 42, Rules: shortRules()}
	for seat, name := range names {
		f, err := agent.Lookup(name)
		require.NoError(t, err)
		opts.Agents[seat] = f
		opts.AgentNames[seat] = name
	}
	return opts
}

type recordingSink struct {
	mu      sync.Mutex
	results []*mahjong.GameResult
	err     error
}

func (s *recordingSink) Consume(_ context.Context, res *mahjong.GameResult) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, res)
	return nil
}

func TestRunnerSummaryIndependentOfParallelism(t *testing.T) {
	run := func(parallel int) (Summary, *recordingSink) {
		sink := &recordingSink{}
		r, err := New(options(t, 8, parallel, "rule", "random", "tsumogiri", "random"), sink)
		require.NoError(t, err)
		summary, err := r.Run(context.Background())
		require.NoError(t, err)
		return summary, sink
	}
	serial, sink := run(1)
	parallel, _ := run(4)
	assert.Equal(t, serial, parallel)

	assert.Equal(t, 8, serial.Games)
	require.Len(t, sink.results, 8)
	rounds := 0
	for _, res := range sink.results {
		rounds += len(res.Rounds)
	}
	assert.Equal(t, rounds, serial.Rounds)
	kinds := 0
	for _, n := range serial.EndKinds {
		kinds += n
	}
	assert.Equal(t, rounds, kinds)
	for seat, p := range serial.Players {
		total := 0
		for _, n := range p.RankCounts {
			total += n
		}
		assert.Equal(t, 8, total, "座位 %d", seat)
		assert.InDelta(t, 2.5, p.AvgRank, 1.5)
	}
	assert.Equal(t, "rule", serial.Players[0].Name)
}

func TestRunnerSinkErrorCancelsRun(t *testing.T) {
	boom := errors.New("boom")
	r, err := New(options(t, 4, 2, "tsumogiri", "tsumogiri", "tsumogiri", "tsumogiri"), &recordingSink{err: boom})
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	active, _, _ := r.Rooms().GetStats()
	assert.Zero(t, active)
}

func TestRunnerCancelledContext(t *testing.T) {
	r, err := New(options(t, 3, 1, "random", "random", "random", "random"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// stubborn 永远选择过，打牌时必然非法
type stubborn struct{}

func (stubborn) Act(*mahjong.Observation) mahjong.Action { return mahjong.NoAction() }

func TestRunnerIllegalActionPolicy(t *testing.T) {
	opts := options(t, 2, 2, "random", "random", "random", "random")
	opts.Agents[2] = func(uint64) agent.Agent { return stubborn{} }

	r, err := New(opts)
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, mahjong.ErrIllegalAction, "默认直接终止")

	opts.OnIllegal = OnIllegalFallback
	r, err = New(opts)
	require.NoError(t, err)
	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Games)
	_, finished, failed := r.Rooms().GetStats()
	assert.Equal(t, 2, finished)
	assert.Zero(t, failed)
}

func TestRunnerOptionsValidation(t *testing.T) {
	opts := options(t, 1, 1, "rule", "rule", "rule", "rule")

	bad := opts
	bad.Games = 0
	_, err := New(bad)
	assert.Error(t, err)

	bad = opts
	bad.OnIllegal = "ignore"
	_, err = New(bad)
	assert.Error(t, err)

	bad = opts
	bad.Agents[3] = nil
	_, err = New(bad)
	assert.Error(t, err)

	bad = opts
	bad.Rules.Rounds = 3
	_, err = New(bad)
	assert.Error(t, err)

	bad = opts
	bad.Parallel = 0
	r, err := New(bad)
	require.NoError(t, err)
	assert.Equal(t, 1, r.opts.Parallel)
	assert.Equal(t, OnIllegalAbort, r.opts.OnIllegal)
}

func TestCollector(t *testing.T) {
	c := NewCollector([mahjong.NumPlayers]string{"a", "b", "c", "d"})
	assert.Error(t, c.Consume(context.Background(), nil))
	assert.Error(t, c.Consume(context.Background(), &mahjong.GameResult{Ranks: [4]int{0, 1, 2, 3}}))

	games := []*mahjong.GameResult{
		{Ranks: [4]int{1, 2, 3, 4}, Points: [4]int{40000, 30000, 20000, 10000}, Rounds: []mahjong.RoundResult{{Kind: mahjong.RoundEndRon}}},
		{Ranks: [4]int{4, 1, 2, 3}, Points: [4]int{0, 50000, 30000, 20000}, Rounds: []mahjong.RoundResult{{Kind: mahjong.RoundEndRon}, {Kind: mahjong.RoundEndDrawExhaustive}}},
	}
	for _, g := range games {
		require.NoError(t, c.Consume(context.Background(), g))
	}
	s := c.Summary()
	assert.Equal(t, 2, s.Games)
	assert.Equal(t, 3, s.Rounds)
	assert.Equal(t, map[string]int{"RON": 2, "DRAW_EXHAUSTIVE": 1}, s.EndKinds)

	a := s.Players[0]
	assert.Equal(t, [4]int{1, 0, 0, 1}, a.RankCounts)
	assert.InDelta(t, 2.5, a.AvgRank, 1e-9)
	assert.InDelta(t, 20000, a.AvgPoints, 1e-9)
	assert.InDelta(t, 3.0, a.StableDan, 1e-9)
	assert.Equal(t, "豪杰", a.Tier)
	assert.True(t, math.IsInf(s.Players[1].StableDan, 1))
	assert.Equal(t, "魂天", s.Players[1].Tier)
	assert.Contains(t, s.String(), "0:a")
}

func TestStableDan(t *testing.T) {
	assert.InDelta(t, 5.0, StableDan([4]int{1, 1, 0, 1}), 1e-9)
	assert.True(t, math.IsInf(StableDan([4]int{}), 1))
}

func TestRoomManager(t *testing.T) {
	rm := NewRoomManager()
	require.NoError(t, rm.CreateRoom(&Room{ID: "r1"}))
	require.NoError(t, rm.CreateRoom(&Room{ID: "r2"}))
	assert.Error(t, rm.CreateRoom(&Room{ID: "r1"}))

	room, ok := rm.GetRoom("r1")
	require.True(t, ok)
	assert.Equal(t, "r1", room.ID)
	assert.Len(t, rm.GetAllRooms(), 2)

	require.NoError(t, rm.DeleteRoom("r1", false))
	require.NoError(t, rm.DeleteRoom("r2", true))
	assert.Error(t, rm.DeleteRoom("r2", false))
	active, finished, failed := rm.GetStats()
	assert.Equal(t, [3]int{0, 1, 1}, [3]int{active, finished, failed})
}
