package env

import (
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

func TestEnvPlaysFullGame(t *testing.T) {
	e := New(shortRules()).WithFirstDealer(1)
	assert.ErrorIs(t, e.Step(nil), mahjong.ErrGameOver, "Reset 之前")
	assert.Nil(t, e.GameResult())
	assert.Empty(t, e.ActingPlayers())

	require.NoError(t, e.Reset(2024))
	assert.Equal(t, []int{1}, e.ActingPlayers(), "起家先摸牌")

	agents := [mahjong.NumPlayers]agent.Agent{}
	for seat := range agents {
		agents[seat] = agent.NewRandomAgent(uint64(seat))
	}
	for steps := 0; !e.Done(); steps++ {
		require.Less(t, steps, 100000)
		assert.Equal(t, [mahjong.NumPlayers]int{}, e.Rewards())
		obs := e.Observations()
		require.Len(t, obs, len(e.ActingPlayers()))
		actions := map[int]mahjong.Action{}
		for seat, o := range obs {
			require.Equal(t, seat, o.Who())
			actions[seat] = agents[seat].Act(o)
		}
		require.NoError(t, e.Step(actions))
	}

	res := e.GameResult()
	require.NotNil(t, res)
	assert.Equal(t, 1, res.FirstDealer)
	rewards := e.Rewards()
	sum := 0
	for seat, r := range rewards {
		assert.Equal(t, DefaultRewards[res.Ranks[seat]-1], r)
		sum += r
	}
	assert.Zero(t, sum)
	assert.Empty(t, e.Observations())
	assert.ErrorIs(t, e.Step(map[int]mahjong.Action{}), mahjong.ErrGameOver)
}

func TestEnvCustomRewards(t *testing.T) {
	e := New(shortRules()).WithRewards([mahjong.NumPlayers]int{3, 2, 1, 0})
	require.NoError(t, e.Reset(7))
	tsumogiri := agent.TsumogiriAgent{}
	for !e.Done() {
		actions := map[int]mahjong.Action{}
		for seat, o := range e.Observations() {
			actions[seat] = tsumogiri.Act(o)
		}
		require.NoError(t, e.Step(actions))
	}
	res := e.GameResult()
	rewards := e.Rewards()
	assert.Equal(t, 3, rewards[res.Rankings[0]])
	assert.Equal(t, 0, rewards[res.Rankings[3]])
}

func TestEnvResetRejectsBadRules(t *testing.T) {
	bad := shortRules()
	bad.MaxRon = 0
	assert.Error(t, New(bad).Reset(1))
	assert.Error(t, New(shortRules()).WithFirstDealer(5).Reset(1))
}

func TestEnvObservationIsPartial(t *testing.T) {
	e := New(shortRules())
	require.NoError(t, e.Reset(99))
	obs := e.Observations()[0]
	view := obs.Snapshot()
	assert.Len(t, view.Hand, 14)
	require.NotNil(t, view.Drawn)
	for seat, p := range view.Players {
		if seat == 0 {
			continue
		}
		assert.Equal(t, 13, p.Concealed, "其他家只能看到张数")
	}
	assert.NotEmpty(t, view.Legal)
}
